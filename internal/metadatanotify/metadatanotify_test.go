package metadatanotify

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/githubclt/mocks"
	"github.com/simplesurance/prkeeper/internal/notify"
	notifymocks "github.com/simplesurance/prkeeper/internal/notify/mocks"
)

const (
	repoOwner = "testman"
	repo      = "repo"
)

func newTestNotifier(t *testing.T, clt githubclt.API, poster notify.Poster) *Notifier {
	t.Helper()

	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	return New(clt, poster, &Config{
		Owner:       repoOwner,
		Repository:  repo,
		Label:       "database",
		UserMapping: notify.UserMapping{"alice": "U1"},
	})
}

func TestRunPostsReminderForLabelledPR(t *testing.T) {
	mockctrl := gomock.NewController(t)
	clt := mocks.NewMockAPI(mockctrl)
	poster := notifymocks.NewMockPoster(mockctrl)

	clt.EXPECT().
		PullRequest(gomock.Any(), repoOwner, repo, 4).
		Return(&githubclt.PullRequest{
			Number: 4,
			Title:  "Add column",
			Author: "alice",
			URL:    "https://github.com/testman/repo/pull/4",
			Labels: []string{"database"},
		}, nil)

	clt.EXPECT().AvatarURL(gomock.Any(), "alice").Return("https://avatars/alice", nil)

	poster.EXPECT().
		Post(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *slack.WebhookMessage) error {
			assert.Equal(t,
				"<@U1>, your PR *<https://github.com/testman/repo/pull/4|Add column>* has the *'database'* label! Don't forget to release fields in metadata.",
				msg.Text,
			)
			assert.Equal(t, "alice", msg.Username)
			assert.Equal(t, "https://avatars/alice", msg.IconURL)
			return nil
		})

	sent, err := newTestNotifier(t, clt, poster).Run(context.Background(), 4, "")
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestRunUnmappedUserAndMissingAvatar(t *testing.T) {
	mockctrl := gomock.NewController(t)
	clt := mocks.NewMockAPI(mockctrl)
	poster := notifymocks.NewMockPoster(mockctrl)

	clt.EXPECT().
		PullRequest(gomock.Any(), repoOwner, repo, 4).
		Return(&githubclt.PullRequest{Number: 4, Author: "alice", Labels: []string{"database"}}, nil)

	clt.EXPECT().AvatarURL(gomock.Any(), "bob").Return("", errors.New("not found"))

	poster.EXPECT().
		Post(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *slack.WebhookMessage) error {
			assert.Contains(t, msg.Text, "@bob, your PR")
			assert.Equal(t, DefaultAvatarURL, msg.IconURL)
			return nil
		})

	sent, err := newTestNotifier(t, clt, poster).Run(context.Background(), 4, "bob")
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestRunWithoutLabel(t *testing.T) {
	mockctrl := gomock.NewController(t)
	clt := mocks.NewMockAPI(mockctrl)
	poster := notifymocks.NewMockPoster(mockctrl)

	clt.EXPECT().
		PullRequest(gomock.Any(), repoOwner, repo, 4).
		Return(&githubclt.PullRequest{Number: 4, Author: "alice", Labels: []string{"XS"}}, nil)

	sent, err := newTestNotifier(t, clt, poster).Run(context.Background(), 4, "")
	require.NoError(t, err)
	assert.False(t, sent)
}
