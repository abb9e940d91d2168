// Package notify sends messages to a Slack incoming webhook.
package notify

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/logfields"
)

const defaultHTTPTimeout = time.Minute

//go:generate mockgen -destination=mocks/poster.go -package=mocks . Poster

// Poster sends a message to Slack.
type Poster interface {
	Post(ctx context.Context, msg *slack.WebhookMessage) error
}

// Client posts messages to a Slack incoming webhook.
type Client struct {
	webhookURL string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(webhookURL string) (*Client, error) {
	if webhookURL == "" {
		return nil, errors.New("webhook url is empty")
	}

	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     zap.L().Named("slack"),
	}, nil
}

func (c *Client) Post(ctx context.Context, msg *slack.WebhookMessage) error {
	if err := slack.PostWebhookCustomHTTPContext(ctx, c.webhookURL, c.httpClient, msg); err != nil {
		return err
	}

	c.logger.Debug("message posted", logfields.Event("slack_message_posted"))

	return nil
}

// DryPoster logs messages instead of sending them.
type DryPoster struct {
	logger *zap.Logger
}

func NewDryPoster() *DryPoster {
	return &DryPoster{logger: zap.L().Named("slack").With(logfields.DryRun(true))}
}

func (p *DryPoster) Post(_ context.Context, msg *slack.WebhookMessage) error {
	p.logger.Info(
		"simulated posting slack message",
		zap.String("text", msg.Text),
		zap.String("username", msg.Username),
		zap.String("icon_url", msg.IconURL),
		logfields.Event("slack_message_posted"),
	)

	return nil
}

var (
	_ Poster = (*Client)(nil)
	_ Poster = (*DryPoster)(nil)
)
