// Package metadatanotify reminds authors of pull requests that change the
// database to release the affected metadata fields.
package metadatanotify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/logfields"
	"github.com/simplesurance/prkeeper/internal/metrics"
	"github.com/simplesurance/prkeeper/internal/notify"
)

// DefaultAvatarURL is used as icon when the avatar of the author can not be
// retrieved.
const DefaultAvatarURL = "https://github.githubassets.com/images/modules/logos_page/GitHub-Mark.png"

type Config struct {
	Owner       string
	Repository  string
	Label       string
	UserMapping notify.UserMapping
	Metrics     *metrics.Collector
}

type Notifier struct {
	clt     githubclt.API
	poster  notify.Poster
	logger  *zap.Logger
	metrics *metrics.Collector

	owner       string
	repo        string
	label       string
	userMapping notify.UserMapping
}

func New(clt githubclt.API, poster notify.Poster, cfg *Config) *Notifier {
	return &Notifier{
		clt:    clt,
		poster: poster,
		logger: zap.L().Named("metadata_notifier").With(
			logfields.RepositoryOwner(cfg.Owner),
			logfields.Repository(cfg.Repository),
		),
		metrics:     cfg.Metrics,
		owner:       cfg.Owner,
		repo:        cfg.Repository,
		label:       cfg.Label,
		userMapping: cfg.UserMapping,
	}
}

// Run posts the reminder if the pull request has the configured label.
// author is the user that is mentioned, if it is empty the author of the
// pull request is used.
// It returns true if a reminder was posted.
func (n *Notifier) Run(ctx context.Context, prNumber int, author string) (bool, error) {
	logger := n.logger.With(logfields.PullRequest(prNumber))

	pr, err := n.clt.PullRequest(ctx, n.owner, n.repo, prNumber)
	if err != nil {
		return false, fmt.Errorf("retrieving pull request failed: %w", err)
	}

	if !pr.HasLabel(n.label) {
		logger.Info("pull request does not have the label, no reminder sent", logfields.Label(n.label))
		return false, nil
	}

	if author == "" {
		author = pr.Author
	}

	avatarURL, err := n.clt.AvatarURL(ctx, author)
	if err != nil || avatarURL == "" {
		logger.Warn("retrieving avatar url failed, using default icon", logfields.User(author), zap.Error(err))
		avatarURL = DefaultAvatarURL
	}

	msg := notify.WithSender(
		&slack.WebhookMessage{
			Text: notify.MetadataReminderText(n.userMapping.MentionOrLogin(author), pr, n.label),
		},
		author,
		avatarURL,
	)

	if err := n.poster.Post(ctx, msg); err != nil {
		return false, fmt.Errorf("posting slack message failed: %w", err)
	}

	n.metrics.ActionInc(metrics.ActionSlackMessage)
	logger.Info("metadata reminder posted", logfields.User(author), logfields.Event("metadata_reminder_posted"))

	return true, nil
}
