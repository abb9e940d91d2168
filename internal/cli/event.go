package cli

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/eventfilter"
	"github.com/simplesurance/prkeeper/internal/ghevent"
	"github.com/simplesurance/prkeeper/internal/logfields"
)

// MustEvent loads the payload of the event that triggered the workflow run.
func (a *App) MustEvent() *ghevent.Event {
	if a.Config.EventPath == "" {
		a.Logger.Error("GITHUB_EVENT_PATH is not set", logfields.Event("event_load_failed"))
		a.exit(1)
	}

	ev, err := ghevent.Load(a.Config.EventPath, a.Config.EventName)
	if err != nil {
		a.Logger.Error(
			"loading event payload failed",
			logfields.Event("event_load_failed"),
			zap.String("event_path", a.Config.EventPath),
			zap.Error(err),
		)
		a.exit(1)
	}

	a.Logger.Debug("loaded event payload", append(ev.LogFields, logfields.Event("event_loaded"))...)

	return ev
}

// MustPullRequestNumber returns the configured pull request number.
// If PR_NUMBER is not set, the number is read from the event payload.
func (a *App) MustPullRequestNumber() int {
	nr, err := a.pullRequestNumber()
	if err != nil {
		a.Logger.Error("pull request number is unknown", logfields.Event("cfg_invalid"), zap.Error(err))
		a.exit(1)
	}

	return nr
}

func (a *App) pullRequestNumber() (int, error) {
	if a.Config.PullRequest > 0 {
		return a.Config.PullRequest, nil
	}

	if a.Config.EventPath == "" {
		return 0, errors.New("PR_NUMBER and GITHUB_EVENT_PATH are not set")
	}

	ev, err := ghevent.Load(a.Config.EventPath, a.Config.EventName)
	if err != nil {
		return 0, err
	}

	if ev.PullRequestNr == 0 {
		return 0, errors.New("PR_NUMBER is not set and the event payload does not reference a pull request")
	}

	return ev.PullRequestNr, nil
}

// MustMatchEvent evaluates the jq condition jqQuery against the event
// payload. It returns false if the run should be skipped.
func (a *App) MustMatchEvent(ctx context.Context, ev *ghevent.Event, jqQuery string) bool {
	filter, err := eventfilter.New(jqQuery)
	if err != nil {
		a.Logger.Error("parsing event filter failed", logfields.Event("cfg_invalid"), zap.Error(err))
		a.exit(1)
	}

	match, err := filter.Match(ctx, ev.JSON)
	if err != nil {
		a.Logger.Error(
			"evaluating event filter failed",
			logfields.Event("event_filter_failed"),
			zap.Stringer("filter", filter),
			zap.Error(err),
		)
		a.exit(1)
	}

	if !match {
		a.Logger.Info(
			"event does not match filter, skipping run",
			append(ev.LogFields,
				logfields.Event("event_filtered"),
				zap.Stringer("filter", filter),
			)...,
		)
	}

	return match
}
