// Package prnotify announces new pull requests in Slack after their
// required checks succeeded.
package prnotify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/codeowners"
	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/logfields"
	"github.com/simplesurance/prkeeper/internal/metrics"
	"github.com/simplesurance/prkeeper/internal/notify"
)

// CheckWaiter blocks until the required checks of a commit succeeded.
type CheckWaiter interface {
	Wait(ctx context.Context, owner, repo, sha string) error
}

type Config struct {
	Owner      string
	Repository string
	// UseCodeOwners enables notifying the owners of the changed files.
	UseCodeOwners  bool
	CodeOwnersPath string
	UserMapping    notify.UserMapping
	Metrics        *metrics.Collector
}

// Notifier posts a Slack message for a new pull request, mentioning its
// assignees, requested reviewers and optionally code owners.
type Notifier struct {
	clt     githubclt.API
	poster  notify.Poster
	waiter  CheckWaiter
	logger  *zap.Logger
	metrics *metrics.Collector

	owner          string
	repo           string
	useCodeOwners  bool
	codeOwnersPath string
	userMapping    notify.UserMapping
}

func New(clt githubclt.API, poster notify.Poster, waiter CheckWaiter, cfg *Config) *Notifier {
	return &Notifier{
		clt:    clt,
		poster: poster,
		waiter: waiter,
		logger: zap.L().Named("pr_notifier").With(
			logfields.RepositoryOwner(cfg.Owner),
			logfields.Repository(cfg.Repository),
		),
		metrics:        cfg.Metrics,
		owner:          cfg.Owner,
		repo:           cfg.Repository,
		useCodeOwners:  cfg.UseCodeOwners,
		codeOwnersPath: cfg.CodeOwnersPath,
		userMapping:    cfg.UserMapping,
	}
}

// Run waits until the required checks of the head commit of pr succeeded
// and posts the notification.
// If waiting fails, no notification is sent and the error is returned.
func (n *Notifier) Run(ctx context.Context, pr *githubclt.PullRequest) error {
	logger := n.logger.With(logfields.PullRequest(pr.Number), logfields.Commit(pr.HeadSHA))

	if err := n.waiter.Wait(ctx, n.owner, n.repo, pr.HeadSHA); err != nil {
		return fmt.Errorf("waiting for required checks failed: %w", err)
	}

	users, err := n.usersToNotify(ctx, pr)
	if err != nil {
		return err
	}

	mentions, unmapped := n.userMapping.Mentions(users)
	if len(unmapped) > 0 {
		logger.Info("no slack id known for users, they are not mentioned", zap.Strings("users", unmapped))
	}

	msg := notify.SectionMessage(notify.PRCreatedText(pr, mentions))
	notify.WithSender(msg, pr.Author, n.avatarURL(ctx, pr.Author))

	if err := n.poster.Post(ctx, msg); err != nil {
		return fmt.Errorf("posting slack message failed: %w", err)
	}

	n.metrics.ActionInc(metrics.ActionSlackMessage)
	logger.Info(
		"pull request notification posted",
		zap.Strings("mentioned_users", users),
		logfields.Event("pr_notification_posted"),
	)

	return nil
}

func (n *Notifier) usersToNotify(ctx context.Context, pr *githubclt.PullRequest) ([]string, error) {
	users := map[string]struct{}{}

	for _, u := range pr.Assignees {
		users[u] = struct{}{}
	}

	for _, u := range pr.RequestedReviewers {
		users[u] = struct{}{}
	}

	if n.useCodeOwners {
		owners, err := n.changedFilesOwners(ctx, pr.Number)
		if err != nil {
			return nil, err
		}

		for _, u := range owners {
			users[u] = struct{}{}
		}
	}

	result := make([]string, 0, len(users))
	for u := range users {
		result = append(result, u)
	}

	sort.Strings(result)

	return result, nil
}

// changedFilesOwners returns the owners of the files changed by the pull
// request. The CODEOWNERS file is read from the default branch.
func (n *Notifier) changedFilesOwners(ctx context.Context, prNumber int) ([]string, error) {
	data, err := n.clt.FileContent(ctx, n.owner, n.repo, n.codeOwnersPath, "")
	if err != nil {
		if errors.Is(err, githubclt.ErrNotFound) {
			n.logger.Warn("codeowners file not found, code owners are not notified", zap.String("path", n.codeOwnersPath))
			return nil, nil
		}

		return nil, fmt.Errorf("retrieving %s failed: %w", n.codeOwnersPath, err)
	}

	owners, err := codeowners.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s failed: %w", n.codeOwnersPath, err)
	}

	files, err := n.clt.ChangedFiles(ctx, n.owner, n.repo, prNumber)
	if err != nil {
		return nil, fmt.Errorf("retrieving changed files failed: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}

	return owners.OwnersOfPrefixes(names), nil
}

// avatarURL returns the avatar of login, or an empty string if it can not
// be retrieved.
func (n *Notifier) avatarURL(ctx context.Context, login string) string {
	url, err := n.clt.AvatarURL(ctx, login)
	if err != nil {
		n.logger.Warn("retrieving avatar url failed", logfields.User(login), zap.Error(err))
		return ""
	}

	return url
}
