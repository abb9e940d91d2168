package sizelabel

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/logfields"
	"github.com/simplesurance/prkeeper/internal/metrics"
)

const loggerName = "size_labeler"

// Labeler assigns the size label matching the number of changed lines to a
// pull request and removes other size labels.
type Labeler struct {
	clt     githubclt.API
	logger  *zap.Logger
	metrics *metrics.Collector
	table   Table
	owner   string
	repo    string
}

func New(clt githubclt.API, owner, repo string, table Table, m *metrics.Collector) (*Labeler, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid size table: %w", err)
	}

	return &Labeler{
		clt: clt,
		logger: zap.L().Named(loggerName).With(
			logfields.RepositoryOwner(owner),
			logfields.Repository(repo),
		),
		metrics: m,
		table:   table,
		owner:   owner,
		repo:    repo,
	}, nil
}

// ChangedLines returns the sum of added and deleted lines.
func ChangedLines(files []*githubclt.ChangedFile) int {
	var result int

	for _, f := range files {
		result += f.Additions + f.Deletions
	}

	return result
}

func (l *Labeler) Run(ctx context.Context, prNumber int) error {
	logger := l.logger.With(logfields.PullRequest(prNumber))

	files, err := l.clt.ChangedFiles(ctx, l.owner, l.repo, prNumber)
	if err != nil {
		return fmt.Errorf("retrieving changed files failed: %w", err)
	}

	changedLines := ChangedLines(files)

	size, found := l.table.For(changedLines)
	if !found {
		logger.Info("no size label found for changed lines", zap.Int("changed_lines", changedLines))
		return nil
	}

	logger = logger.With(zap.Int("changed_lines", changedLines), logfields.Label(size.Label))
	logger.Debug("determined size label")

	prLabels, err := l.clt.IssueLabels(ctx, l.owner, l.repo, prNumber)
	if err != nil {
		return fmt.Errorf("retrieving labels of pull request failed: %w", err)
	}

	var hasLabel bool

	for _, lbl := range prLabels {
		if lbl == size.Label {
			hasLabel = true
			continue
		}

		if !l.table.IsSizeLabel(lbl) {
			continue
		}

		if err := l.clt.RemoveLabel(ctx, l.owner, l.repo, prNumber, lbl); err != nil {
			return fmt.Errorf("removing label %q failed: %w", lbl, err)
		}

		l.metrics.ActionInc(metrics.ActionLabelRemoved)
		logger.Info("removed outdated size label", zap.String("removed_label", lbl), logfields.Event("label_removed"))
	}

	if hasLabel {
		logger.Info("size label is already assigned")
		return nil
	}

	if err := l.ensureLabel(ctx, size); err != nil {
		return err
	}

	if err := l.clt.AddLabels(ctx, l.owner, l.repo, prNumber, []string{size.Label}); err != nil {
		return fmt.Errorf("adding label failed: %w", err)
	}

	l.metrics.ActionInc(metrics.ActionLabelAdded)
	logger.Info("size label added", logfields.Event("label_added"))

	return nil
}

// ensureLabel creates the label of size if it does not exist in the
// repository and updates its color if it differs.
func (l *Labeler) ensureLabel(ctx context.Context, size *Size) error {
	labels, err := l.clt.RepositoryLabels(ctx, l.owner, l.repo)
	if err != nil {
		return fmt.Errorf("retrieving repository labels failed: %w", err)
	}

	for _, lbl := range labels {
		if lbl.Name != size.Label {
			continue
		}

		if strings.EqualFold(lbl.Color, size.Color) {
			return nil
		}

		if err := l.clt.UpdateLabelColor(ctx, l.owner, l.repo, size.Label, size.Color); err != nil {
			return fmt.Errorf("updating color of label %q failed: %w", size.Label, err)
		}

		l.logger.Info(
			"updated label color",
			logfields.Label(size.Label),
			zap.String("color", size.Color),
		)

		return nil
	}

	if err := l.clt.CreateLabel(ctx, l.owner, l.repo, size.Label, size.Color, ""); err != nil {
		return fmt.Errorf("creating label %q failed: %w", size.Label, err)
	}

	l.metrics.ActionInc(metrics.ActionLabelCreated)
	l.logger.Info(
		"label created",
		logfields.Label(size.Label),
		zap.String("color", size.Color),
		logfields.Event("label_created"),
	)

	return nil
}
