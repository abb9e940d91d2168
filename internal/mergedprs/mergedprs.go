// Package mergedprs reports the pull requests that were merged in a time
// range.
package mergedprs

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/logfields"
)

const (
	dateLayout     = "2006-01-02"
	mergedAtLayout = "2006-01-02 | 15:04"

	argYesterday = "yesterday"
	argToday     = "today"
)

// ParseRange converts the optional start and end arguments to a time
// range.
// The start is "yesterday" (now - 24h, default) or a date in the format
// YYYY-MM-DD, denoting the start of the day in UTC.
// The end is "today" (now, default) or a date, denoting the end of the day
// in UTC.
func ParseRange(args []string, now time.Time) (since, until time.Time, err error) {
	if len(args) > 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("expected at most 2 arguments, got %d", len(args))
	}

	now = now.UTC()

	since = now.Add(-24 * time.Hour)
	if len(args) > 0 && args[0] != argYesterday {
		since, err = time.Parse(dateLayout, args[0])
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q, expected format is YYYY-MM-DD", args[0])
		}
	}

	until = now
	if len(args) > 1 && args[1] != argToday {
		day, err := time.Parse(dateLayout, args[1])
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q, expected format is YYYY-MM-DD", args[1])
		}

		until = day.Add(24*time.Hour - time.Nanosecond)
	}

	if until.Before(since) {
		return time.Time{}, time.Time{}, fmt.Errorf("end %s is before start %s", until.Format(dateLayout), since.Format(dateLayout))
	}

	return since, until, nil
}

type Reporter struct {
	clt    githubclt.API
	logger *zap.Logger
	owner  string
	repo   string
}

func NewReporter(clt githubclt.API, owner, repo string) *Reporter {
	return &Reporter{
		clt: clt,
		logger: zap.L().Named("merged_prs").With(
			logfields.RepositoryOwner(owner),
			logfields.Repository(repo),
		),
		owner: owner,
		repo:  repo,
	}
}

// MergedBetween returns the pull requests that were merged in [since,
// until], ordered by their merge time.
func (r *Reporter) MergedBetween(ctx context.Context, since, until time.Time) ([]*githubclt.PullRequest, error) {
	var result []*githubclt.PullRequest

	it := r.clt.ListPullRequests(ctx, r.owner, r.repo, "closed", "updated", "desc")
	for {
		pr, err := it.Next()
		if err != nil {
			return nil, fmt.Errorf("listing pull requests failed: %w", err)
		}

		if pr == nil {
			break
		}

		if !pr.IsMerged() || pr.MergedAt.Before(since) || pr.MergedAt.After(until) {
			continue
		}

		result = append(result, pr)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].MergedAt.Before(result[j].MergedAt)
	})

	r.logger.Info(
		"retrieved merged pull requests",
		zap.Time("since", since),
		zap.Time("until", until),
		zap.Int("count", len(result)),
		logfields.Event("merged_prs_retrieved"),
	)

	return result, nil
}

// WriteReport writes the list of merged pull requests to w.
func WriteReport(w io.Writer, since, until time.Time, prs []*githubclt.PullRequest) error {
	sinceStr := since.UTC().Format(dateLayout)
	untilStr := until.UTC().Format(dateLayout)

	if len(prs) == 0 {
		_, err := fmt.Fprintf(w, "No PRs merged between %s and %s.", sinceStr, untilStr)
		return err
	}

	if _, err := fmt.Fprintf(w, "Merged PRs between %s and %s:\n", sinceStr, untilStr); err != nil {
		return err
	}

	for _, pr := range prs {
		_, err := fmt.Fprintf(w, "- %s (Merged at: %s)\n", pr.Title, pr.MergedAt.UTC().Format(mergedAtLayout))
		if err != nil {
			return err
		}
	}

	return nil
}
