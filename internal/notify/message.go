package notify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/slack-go/slack"

	"github.com/simplesurance/prkeeper/internal/githubclt"
)

// UserMapping maps GitHub logins to Slack member IDs.
type UserMapping map[string]string

// Mention returns the Slack mention of login.
// ok is false if no Slack ID is known for it.
func (m UserMapping) Mention(login string) (mention string, ok bool) {
	id, exists := m[login]
	if !exists || id == "" {
		return "", false
	}

	return "<@" + id + ">", true
}

// MentionOrLogin returns the Slack mention of login, or "@<login>" if
// login is not mapped.
func (m UserMapping) MentionOrLogin(login string) string {
	if mention, ok := m.Mention(login); ok {
		return mention
	}

	return "@" + login
}

// Mentions returns the Slack mentions of the logins, in sorted login order.
// Logins without a Slack ID are returned as unmapped.
func (m UserMapping) Mentions(logins []string) (mentions, unmapped []string) {
	sorted := append([]string(nil), logins...)
	sort.Strings(sorted)

	for _, login := range sorted {
		if mention, ok := m.Mention(login); ok {
			mentions = append(mentions, mention)
			continue
		}

		unmapped = append(unmapped, login)
	}

	return mentions, unmapped
}

// SectionMessage returns a message with text as fallback text and as
// markdown section block.
func SectionMessage(text string) *slack.WebhookMessage {
	return SectionMessageWithFallback(text, text)
}

// SectionMessageWithFallback returns a message with a markdown section
// block containing text. fallback is shown in notifications.
func SectionMessageWithFallback(fallback, text string) *slack.WebhookMessage {
	return &slack.WebhookMessage{
		Text: fallback,
		Blocks: &slack.Blocks{
			BlockSet: []slack.Block{
				slack.NewSectionBlock(
					slack.NewTextBlockObject(slack.MarkdownType, text, false, false),
					nil, nil,
				),
			},
		},
	}
}

// WithSender sets the username and avatar that are shown for the message.
// Empty values are omitted from the payload.
func WithSender(msg *slack.WebhookMessage, username, iconURL string) *slack.WebhookMessage {
	msg.Username = username
	msg.IconURL = iconURL

	return msg
}

// PRCreatedText returns the notification text for a new pull request.
func PRCreatedText(pr *githubclt.PullRequest, mentions []string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "*<%s|PR #%d: %s>*", pr.URL, pr.Number, pr.Title)
	if len(mentions) > 0 {
		sb.WriteString(" - Notifying: ")
		sb.WriteString(strings.Join(mentions, " "))
	}

	return sb.String()
}

// StalePRMessage returns the message for a pull request that is open for
// ageDays. reason is omitted when empty.
func StalePRMessage(pr *githubclt.PullRequest, ageDays int, reason string) *slack.WebhookMessage {
	fallback := fmt.Sprintf(":rotating_light: Stale PR Detected: <%s|#%d> by @%s", pr.URL, pr.Number, pr.Author)

	text := fmt.Sprintf(
		"*:rotating_light: Stale PR Detected*\n*PR:* <%s|#%d>\n*Creator:* @%s\n*Age:* %d days",
		pr.URL, pr.Number, pr.Author, ageDays,
	)
	if reason != "" {
		text += "\n*Reason:* " + reason
	}

	return SectionMessageWithFallback(fallback, text)
}

// MetadataReminderText returns the reminder to release metadata fields for
// a pull request carrying label.
func MetadataReminderText(mention string, pr *githubclt.PullRequest, label string) string {
	return fmt.Sprintf(
		"%s, your PR *<%s|%s>* has the *'%s'* label! Don't forget to release fields in metadata.",
		mention, pr.URL, pr.Title, label,
	)
}
