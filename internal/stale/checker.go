package stale

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/logfields"
	"github.com/simplesurance/prkeeper/internal/metrics"
	"github.com/simplesurance/prkeeper/internal/notify"
)

const loggerName = "stale_checker"

// Mode defines which pull requests are checked.
type Mode string

const (
	// ModeScheduled checks all open pull requests.
	ModeScheduled Mode = "scheduled"
	// ModePullRequest checks only the pull request that triggered the run.
	ModePullRequest Mode = "pull-request"
)

// ParseMode converts s to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeScheduled, ModePullRequest:
		return m, nil
	default:
		return "", fmt.Errorf("unsupported mode: %q, supported modes: %s, %s", s, ModeScheduled, ModePullRequest)
	}
}

type Config struct {
	Owner      string
	Repository string
	// Days is the age in days at which a pull request is stale.
	Days int
	// NotifiedLabel is added to notified pull requests.
	NotifiedLabel string
	// SkipLabels are labels of pull requests that are not checked.
	SkipLabels []string
	// AttachReason enables querying and reporting why a pull request is
	// not merged yet.
	AttachReason bool
	Metrics      *metrics.Collector
}

// Checker notifies the authors of stale pull requests.
// A pull request is notified by a comment, the notified label and
// optionally a Slack message.
type Checker struct {
	clt     githubclt.API
	poster  notify.Poster
	logger  *zap.Logger
	metrics *metrics.Collector
	now     func() time.Time

	owner         string
	repo          string
	days          int
	notifiedLabel string
	skipLabels    []string
	attachReason  bool
}

// NewChecker creates a Checker.
// poster can be nil, Slack messages are not sent then.
func NewChecker(clt githubclt.API, poster notify.Poster, cfg *Config) *Checker {
	return &Checker{
		clt:    clt,
		poster: poster,
		logger: zap.L().Named(loggerName).With(
			logfields.RepositoryOwner(cfg.Owner),
			logfields.Repository(cfg.Repository),
		),
		metrics:       cfg.Metrics,
		now:           time.Now,
		owner:         cfg.Owner,
		repo:          cfg.Repository,
		days:          cfg.Days,
		notifiedLabel: cfg.NotifiedLabel,
		skipLabels:    cfg.SkipLabels,
		attachReason:  cfg.AttachReason,
	}
}

// CheckAll checks all open pull requests of the repository.
// Failures to process a pull request are logged, the remaining ones are
// still checked. The returned error contains all failures.
func (c *Checker) CheckAll(ctx context.Context) error {
	var errs []error
	var cnt int

	it := c.clt.ListPullRequests(ctx, c.owner, c.repo, "open", "created", "asc")
	for {
		pr, err := it.Next()
		if err != nil {
			errs = append(errs, fmt.Errorf("listing pull requests failed: %w", err))
			break
		}

		if pr == nil {
			break
		}

		cnt++

		if err := c.check(ctx, pr); err != nil {
			c.metrics.PullRequestInc(metrics.PRResultFailed)
			c.logger.Error(
				"checking pull request failed",
				logfields.PullRequest(pr.Number),
				logfields.Event("checking_pull_request_failed"),
				zap.Error(err),
			)

			errs = append(errs, fmt.Errorf("pull request #%d: %w", pr.Number, err))
		}
	}

	c.logger.Info(
		"checked open pull requests",
		zap.Int("pull_requests", cnt),
		zap.Int("failures", len(errs)),
		logfields.Event("stale_check_finished"),
	)

	return errors.Join(errs...)
}

// CheckPullRequest checks a single pull request.
func (c *Checker) CheckPullRequest(ctx context.Context, prNumber int) error {
	pr, err := c.clt.PullRequest(ctx, c.owner, c.repo, prNumber)
	if err != nil {
		return fmt.Errorf("retrieving pull request failed: %w", err)
	}

	if pr.State != "" && pr.State != "open" {
		c.logger.Info(
			"pull request is not open, skipping",
			logfields.PullRequest(prNumber),
			zap.String("state", pr.State),
		)
		c.metrics.PullRequestInc(metrics.PRResultSkipped)

		return nil
	}

	if err := c.check(ctx, pr); err != nil {
		c.metrics.PullRequestInc(metrics.PRResultFailed)
		return err
	}

	return nil
}

func (c *Checker) skipLabel(pr *githubclt.PullRequest) (string, bool) {
	if pr.HasLabel(c.notifiedLabel) {
		return c.notifiedLabel, true
	}

	for _, l := range c.skipLabels {
		if pr.HasLabel(l) {
			return l, true
		}
	}

	return "", false
}

func (c *Checker) check(ctx context.Context, pr *githubclt.PullRequest) error {
	age := AgeInDays(pr.CreatedAt, c.now())
	logger := c.logger.With(
		logfields.PullRequest(pr.Number),
		zap.Int("age_days", age),
	)

	if !IsStale(age, c.days) {
		logger.Debug("pull request is not stale")
		c.metrics.PullRequestInc(metrics.PRResultSkipped)
		return nil
	}

	if lbl, skip := c.skipLabel(pr); skip {
		logger.Info("pull request is stale but has skip label, skipping", logfields.Label(lbl))
		c.metrics.PullRequestInc(metrics.PRResultSkipped)
		return nil
	}

	var reason string
	if c.attachReason {
		status, err := c.clt.ReviewStatus(ctx, c.owner, c.repo, pr.Number)
		if err != nil {
			return fmt.Errorf("retrieving review status failed: %w", err)
		}

		reason = Reason(status)
		logger = logger.With(logfields.Reason(reason))
	}

	if err := c.clt.CreateIssueComment(ctx, c.owner, c.repo, pr.Number, Comment(pr.Author, age, reason)); err != nil {
		return fmt.Errorf("creating comment failed: %w", err)
	}
	c.metrics.ActionInc(metrics.ActionCommentCreated)

	if err := c.clt.AddLabels(ctx, c.owner, c.repo, pr.Number, []string{c.notifiedLabel}); err != nil {
		return fmt.Errorf("adding label %q failed: %w", c.notifiedLabel, err)
	}
	c.metrics.ActionInc(metrics.ActionLabelAdded)

	logger.Info("notified author of stale pull request", logfields.User(pr.Author), logfields.Event("stale_pr_notified"))

	if c.poster != nil {
		if err := c.poster.Post(ctx, notify.StalePRMessage(pr, age, reason)); err != nil {
			return fmt.Errorf("posting slack message failed: %w", err)
		}

		c.metrics.ActionInc(metrics.ActionSlackMessage)
		logger.Info("posted stale pull request slack message", logfields.Event("stale_pr_slack_message_posted"))
	}

	c.metrics.PullRequestInc(metrics.PRResultProcessed)

	return nil
}

// Comment returns the text of the comment that notifies author about the
// stale pull request.
func Comment(author string, ageDays int, reason string) string {
	result := fmt.Sprintf("@%s This PR has been open for %d days. Please update its status.", author, ageDays)
	if reason != "" {
		result += fmt.Sprintf(" Reason: %s.", reason)
	}

	return result
}
