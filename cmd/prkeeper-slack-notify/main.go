package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/simplesurance/prkeeper/internal/cfg"
	"github.com/simplesurance/prkeeper/internal/checkwait"
	"github.com/simplesurance/prkeeper/internal/cli"
	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/prnotify"
)

func main() {
	app := cli.New(
		"prkeeper-slack-notify",
		"Announce a pull request in Slack after its required workflows succeeded.",
		"",
	)
	defer app.PanicHandler()

	ctx := app.MustInit(
		cfg.SettingGithubAuth,
		cfg.SettingRepository,
		cfg.SettingSlackWebhook,
		cfg.SettingEventPath,
	)

	ev := app.MustEvent()
	if !app.MustMatchEvent(ctx, ev, app.Config.Notify.EventFilter) {
		app.Run(func(context.Context) error { return nil })
	}

	app.Run(func(ctx context.Context) error {
		mapping, err := cfg.LoadSlackMapping(app.Config.Files.SlackMapping)
		if err != nil {
			return err
		}

		required, err := cfg.LoadRequiredWorkflows(app.Config.Files.Workflows)
		if err != nil {
			return err
		}

		clt := app.MustGithubClient()

		pr, err := pullRequest(ctx, clt, app, ev.PullRequest)
		if err != nil {
			return err
		}

		poller := checkwait.NewPoller(
			checkwait.WithInterval(time.Duration(app.Config.Notify.CheckPollIntervalSecond)*time.Second),
			checkwait.WithMaxAttempts(app.Config.Notify.CheckPollMaxAttempts),
			checkwait.WithMetrics(app.Metrics),
		)

		n := prnotify.New(
			clt,
			app.MustSlackPoster(),
			checkwait.NewWaiter(clt, poller, required),
			&prnotify.Config{
				Owner:          app.Owner,
				Repository:     app.Repository,
				UseCodeOwners:  app.Config.Notify.UseCodeOwners,
				CodeOwnersPath: app.Config.Files.CodeOwners,
				UserMapping:    mapping,
				Metrics:        app.Metrics,
			},
		)

		return n.Run(ctx, pr)
	})
}

// pullRequest returns the pull request from the event payload, if the
// payload does not contain one it is retrieved via PR_NUMBER.
func pullRequest(ctx context.Context, clt githubclt.API, app *cli.App, fromEvent *githubclt.PullRequest) (*githubclt.PullRequest, error) {
	if fromEvent != nil {
		return fromEvent, nil
	}

	if app.Config.PullRequest <= 0 {
		return nil, errors.New("event payload does not contain a pull request and PR_NUMBER is not set")
	}

	pr, err := clt.PullRequest(ctx, app.Owner, app.Repository, app.Config.PullRequest)
	if err != nil {
		return nil, fmt.Errorf("retrieving pull request failed: %w", err)
	}

	return pr, nil
}
