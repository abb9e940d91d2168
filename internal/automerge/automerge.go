// Package automerge merges approved pull requests.
package automerge

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/logfields"
	"github.com/simplesurance/prkeeper/internal/metrics"
)

// MergeMethods are the merge methods supported by GitHub.
var MergeMethods = []string{"merge", "squash", "rebase"}

// Result describes what Run did with a pull request.
type Result string

const (
	ResultMerged      Result = "merged"
	ResultBlocked     Result = "blocked"
	ResultNotApproved Result = "not_approved"
)

type Config struct {
	Owner       string
	Repository  string
	BlockLabel  string
	MergeMethod string
	Metrics     *metrics.Collector
}

// Merger merges pull requests that have at least one approving review and
// do not have the block label.
type Merger struct {
	clt         githubclt.API
	logger      *zap.Logger
	metrics     *metrics.Collector
	owner       string
	repo        string
	blockLabel  string
	mergeMethod string
}

func New(clt githubclt.API, cfg *Config) (*Merger, error) {
	if !isSupportedMergeMethod(cfg.MergeMethod) {
		return nil, fmt.Errorf("unsupported merge method: %q, supported: %v", cfg.MergeMethod, MergeMethods)
	}

	return &Merger{
		clt: clt,
		logger: zap.L().Named("auto_merge").With(
			logfields.RepositoryOwner(cfg.Owner),
			logfields.Repository(cfg.Repository),
		),
		metrics:     cfg.Metrics,
		owner:       cfg.Owner,
		repo:        cfg.Repository,
		blockLabel:  cfg.BlockLabel,
		mergeMethod: cfg.MergeMethod,
	}, nil
}

func isSupportedMergeMethod(m string) bool {
	for _, s := range MergeMethods {
		if s == m {
			return true
		}
	}

	return false
}

func (m *Merger) Run(ctx context.Context, prNumber int) (Result, error) {
	logger := m.logger.With(logfields.PullRequest(prNumber))

	labels, err := m.clt.IssueLabels(ctx, m.owner, m.repo, prNumber)
	if err != nil {
		return "", fmt.Errorf("retrieving labels failed: %w", err)
	}

	for _, l := range labels {
		if l == m.blockLabel {
			logger.Info("pull request has block label, skipping auto-merge", logfields.Label(l))
			m.metrics.PullRequestInc(metrics.PRResultSkipped)
			return ResultBlocked, nil
		}
	}

	approved, err := m.clt.PullRequestIsApproved(ctx, m.owner, m.repo, prNumber)
	if err != nil {
		return "", fmt.Errorf("retrieving reviews failed: %w", err)
	}

	if !approved {
		logger.Info("pull request is not approved, skipping auto-merge")
		m.metrics.PullRequestInc(metrics.PRResultSkipped)
		return ResultNotApproved, nil
	}

	if err := m.clt.MergePullRequest(ctx, m.owner, m.repo, prNumber, m.mergeMethod); err != nil {
		m.metrics.PullRequestInc(metrics.PRResultFailed)
		return "", fmt.Errorf("merging pull request failed: %w", err)
	}

	m.metrics.ActionInc(metrics.ActionMerged)
	m.metrics.PullRequestInc(metrics.PRResultProcessed)
	logger.Info(
		"pull request merged",
		zap.String("merge_method", m.mergeMethod),
		logfields.Event("pull_request_merged"),
	)

	return ResultMerged, nil
}
