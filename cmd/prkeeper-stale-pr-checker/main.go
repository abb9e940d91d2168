package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/simplesurance/prkeeper/internal/cfg"
	"github.com/simplesurance/prkeeper/internal/cli"
	"github.com/simplesurance/prkeeper/internal/notify"
	"github.com/simplesurance/prkeeper/internal/stale"
)

func main() {
	app := cli.New(
		"prkeeper-stale-pr-checker",
		"Comment on and label pull requests that are open for too long.",
		"",
	)
	defer app.PanicHandler()

	mode := pflag.String(
		"mode",
		"",
		"scheduled: check all open pull requests, pull-request: check only the pull request of the event (default: STALE_MODE)",
	)
	withReason := pflag.Bool(
		"with-reason",
		false,
		"attach the reason why the pull request is not merged (default: STALE_ATTACH_REASON)",
	)

	ctx := app.MustInit(cfg.SettingGithubAuth, cfg.SettingRepository)

	if *mode != "" {
		app.Config.Stale.Mode = *mode
	}

	if *withReason {
		app.Config.Stale.AttachReason = true
	}

	m, err := stale.ParseMode(app.Config.Stale.Mode)
	if err != nil {
		app.Run(func(context.Context) error { return err })
	}

	var prNumber int
	if m == stale.ModePullRequest {
		if app.Config.EventPath != "" {
			ev := app.MustEvent()
			if !app.MustMatchEvent(ctx, ev, app.Config.Stale.EventFilter) {
				app.Run(func(context.Context) error { return nil })
			}
		}

		prNumber = app.MustPullRequestNumber()
	}

	app.Run(func(ctx context.Context) error {
		var poster notify.Poster
		if app.Config.SlackWebhookURL != "" {
			poster = app.MustSlackPoster()
		}

		checker := stale.NewChecker(app.MustGithubClient(), poster, &stale.Config{
			Owner:         app.Owner,
			Repository:    app.Repository,
			Days:          app.Config.Stale.Days,
			NotifiedLabel: app.Config.Stale.Label,
			SkipLabels:    app.Config.Stale.SkipLabels,
			AttachReason:  app.Config.Stale.AttachReason,
			Metrics:       app.Metrics,
		})

		if m == stale.ModePullRequest {
			return checker.CheckPullRequest(ctx, prNumber)
		}

		return checker.CheckAll(ctx)
	})
}
