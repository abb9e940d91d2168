package labeler

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/codeowners"
	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/logfields"
	"github.com/simplesurance/prkeeper/internal/metrics"
)

const loggerName = "labeler"

// Labeler adds labels and assignees to a pull request, depending on the
// files it changes.
type Labeler struct {
	clt     githubclt.API
	logger  *zap.Logger
	metrics *metrics.Collector

	owner          string
	repo           string
	filters        *Filters
	codeOwnersPath string
	labelColor     string
	labelDesc      string
}

type Config struct {
	Owner          string
	Repository     string
	Filters        *Filters
	CodeOwnersPath string
	LabelColor     string
	LabelDesc      string
	Metrics        *metrics.Collector
}

func New(clt githubclt.API, cfg *Config) *Labeler {
	return &Labeler{
		clt: clt,
		logger: zap.L().Named(loggerName).With(
			logfields.RepositoryOwner(cfg.Owner),
			logfields.Repository(cfg.Repository),
		),
		metrics:        cfg.Metrics,
		owner:          cfg.Owner,
		repo:           cfg.Repository,
		filters:        cfg.Filters,
		codeOwnersPath: cfg.CodeOwnersPath,
		labelColor:     cfg.LabelColor,
		labelDesc:      cfg.LabelDesc,
	}
}

// Run labels the pull request prNumber and assigns its owners.
// The CODEOWNERS file is read from the head branch of the pull request.
// Failures to create labels or to add assignees are logged and do not
// cause an error.
func (l *Labeler) Run(ctx context.Context, prNumber int) error {
	logger := l.logger.With(logfields.PullRequest(prNumber))

	pr, err := l.clt.PullRequest(ctx, l.owner, l.repo, prNumber)
	if err != nil {
		return fmt.Errorf("retrieving pull request failed: %w", err)
	}

	owners, err := l.codeOwners(ctx, pr.HeadRef)
	if err != nil {
		return err
	}

	changedFiles, err := l.clt.ChangedFiles(ctx, l.owner, l.repo, prNumber)
	if err != nil {
		return fmt.Errorf("retrieving changed files failed: %w", err)
	}

	files := make([]string, 0, len(changedFiles))
	for _, f := range changedFiles {
		files = append(files, f.Name)
	}

	logger.Debug("retrieved changed files", zap.Strings("files", files))

	labels := Resolve(files, l.filters, owners)
	if len(labels) == 0 {
		logger.Info("no matching labels found", logfields.Event("no_labels_matched"))
	} else {
		l.createMissingLabels(ctx, labels)

		if err := l.clt.AddLabels(ctx, l.owner, l.repo, prNumber, labels); err != nil {
			return fmt.Errorf("adding labels failed: %w", err)
		}

		l.metrics.ActionInc(metrics.ActionLabelAdded)
		logger.Info("labels added", logfields.Labels(labels), logfields.Event("labels_added"))
	}

	assignees := owners.CommonAssignees(files)
	if len(assignees) == 0 {
		logger.Info("no assignees found")
		return nil
	}

	if err := l.clt.AddAssignees(ctx, l.owner, l.repo, prNumber, assignees); err != nil {
		logger.Error(
			"adding assignees failed",
			logfields.Assignees(assignees),
			logfields.Event("adding_assignees_failed"),
			zap.Error(err),
		)
		return nil
	}

	l.metrics.ActionInc(metrics.ActionAssigneesAdded)
	logger.Info("assignees added", logfields.Assignees(assignees), logfields.Event("assignees_added"))

	return nil
}

func (l *Labeler) codeOwners(ctx context.Context, ref string) (*codeowners.Owners, error) {
	data, err := l.clt.FileContent(ctx, l.owner, l.repo, l.codeOwnersPath, ref)
	if err != nil {
		if errors.Is(err, githubclt.ErrNotFound) {
			l.logger.Warn(
				"codeowners file not found, continuing without ownership information",
				zap.String("path", l.codeOwnersPath),
				logfields.Branch(ref),
			)
			return codeowners.Empty(), nil
		}

		return nil, fmt.Errorf("retrieving %s failed: %w", l.codeOwnersPath, err)
	}

	owners, err := codeowners.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s failed: %w", l.codeOwnersPath, err)
	}

	l.logger.Debug("parsed codeowners file", zap.Strings("paths", owners.Paths()))

	return owners, nil
}

func (l *Labeler) createMissingLabels(ctx context.Context, labels []string) {
	existing, err := l.clt.RepositoryLabels(ctx, l.owner, l.repo)
	if err != nil {
		l.logger.Warn(
			"retrieving repository labels failed, skipping label creation",
			zap.Error(err),
		)
		return
	}

	existingNames := make(map[string]struct{}, len(existing))
	for _, lbl := range existing {
		existingNames[lbl.Name] = struct{}{}
	}

	for _, lbl := range labels {
		if _, exists := existingNames[lbl]; exists {
			continue
		}

		if err := l.clt.CreateLabel(ctx, l.owner, l.repo, lbl, l.labelColor, l.labelDesc); err != nil {
			l.logger.Warn(
				"creating label failed",
				logfields.Label(lbl),
				logfields.Event("creating_label_failed"),
				zap.Error(err),
			)
			continue
		}

		l.metrics.ActionInc(metrics.ActionLabelCreated)
		l.logger.Info("label created", logfields.Label(lbl), logfields.Event("label_created"))
	}
}
