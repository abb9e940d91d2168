// Package ghevent reads the payload of the GitHub event that triggered a
// GitHub Actions workflow run.
package ghevent

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v59/github"
	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/logfields"
)

type pushEventRepoGetter interface {
	GetRepo() *github.PushEventRepository
}

type repoGetter interface {
	GetRepo() *github.Repository
}

type refGetter interface {
	GetRef() string
}

type pullRequestGetter interface {
	GetPullRequest() *github.PullRequest
}

// Event is a GitHub webhook event payload.
type Event struct {
	// JSON is the raw payload.
	JSON []byte
	// Type is the webhook event name, e.g. "pull_request".
	Type string
	// Payload is the parsed go-github event, it is nil for event types
	// that go-github does not support, like "schedule".
	Payload any

	// Fields extracted from the payload, if the value is not available
	// they are empty.
	RepositoryOwner string
	Repository      string
	BaseBranch      string
	CommitID        string
	Branch          string
	// PullRequestNr is 0 if it's not available
	PullRequestNr int
	PullRequest   *githubclt.PullRequest

	LogFields []zap.Field
}

func (e *Event) String() string {
	if e.PullRequestNr != 0 {
		return fmt.Sprintf("%s (%s/%s#%d)", e.Type, e.RepositoryOwner, e.Repository, e.PullRequestNr)
	}

	return e.Type
}

// Load reads the event payload file at path.
func Load(path, eventType string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ev, err := Parse(eventType, data)
	if err != nil {
		return nil, fmt.Errorf("parsing event file %s failed: %w", path, err)
	}

	return ev, nil
}

// Parse converts a webhook payload of type eventType.
func Parse(eventType string, data []byte) (*Event, error) {
	if !json.Valid(data) {
		return nil, errors.New("payload is not valid json")
	}

	result := Event{
		JSON: data,
		Type: eventType,
	}

	payload, err := github.ParseWebHook(eventType, data)
	if err != nil {
		// event types without a go-github representation are still
		// usable via their JSON
		zap.L().Named("ghevent").Debug(
			"event type not supported by parser, only raw payload is available",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	} else {
		result.Payload = payload
		extractEventInfo(payload, &result)
	}

	result.LogFields = logFields(&result)

	return &result, nil
}

func extractEventInfo(ghEvent any, result *Event) {
	if v, ok := ghEvent.(pushEventRepoGetter); ok {
		if repo := v.GetRepo(); repo != nil {
			result.Repository = repo.GetName()
			result.RepositoryOwner = repo.GetOwner().GetLogin()
		}
	} else if v, ok := ghEvent.(repoGetter); ok {
		if repo := v.GetRepo(); repo != nil {
			result.Repository = repo.GetName()
			result.RepositoryOwner = repo.GetOwner().GetLogin()
		}
	}

	if v, ok := ghEvent.(refGetter); ok {
		ref := v.GetRef()
		if strings.HasPrefix(ref, "refs/heads/") {
			result.Branch = strings.TrimPrefix(ref, "refs/heads/")
		}
	}

	if v, ok := ghEvent.(pullRequestGetter); ok {
		if pr := v.GetPullRequest(); pr != nil {
			result.PullRequestNr = pr.GetNumber()
			result.PullRequest = githubclt.PullRequestFromEvent(pr)

			if head := pr.GetHead(); head != nil {
				result.CommitID = head.GetSHA()
				// ref in PullRequestEvent contains **only**
				// the branch name without 'refs/heads/ prefix
				result.Branch = head.GetRef()
			}

			result.BaseBranch = pr.GetBase().GetRef()
		}
	}
}

func logFields(ev *Event) []zap.Field {
	result := []zap.Field{zap.String("github.event_type", ev.Type)}

	if ev.Repository != "" {
		result = append(result, logfields.Repository(ev.Repository))
	}

	if ev.RepositoryOwner != "" {
		result = append(result, logfields.RepositoryOwner(ev.RepositoryOwner))
	}

	if ev.CommitID != "" {
		result = append(result, logfields.Commit(ev.CommitID))
	}

	if ev.Branch != "" {
		result = append(result, logfields.Branch(ev.Branch))
	}

	if ev.PullRequestNr != 0 {
		result = append(result, logfields.PullRequest(ev.PullRequestNr))
	}

	return result
}
