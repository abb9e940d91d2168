package main

import (
	"context"

	"github.com/simplesurance/prkeeper/internal/cfg"
	"github.com/simplesurance/prkeeper/internal/cli"
	"github.com/simplesurance/prkeeper/internal/metadatanotify"
)

func main() {
	app := cli.New(
		"prkeeper-check-metadata",
		"Remind the author of a pull request with the database label to release metadata fields.",
		"",
	)
	defer app.PanicHandler()

	app.MustInit(cfg.SettingGithubAuth, cfg.SettingRepository, cfg.SettingSlackWebhook)

	prNumber := app.MustPullRequestNumber()

	app.Run(func(ctx context.Context) error {
		mapping, err := cfg.LoadSlackMapping(app.Config.Files.SlackMapping)
		if err != nil {
			return err
		}

		n := metadatanotify.New(app.MustGithubClient(), app.MustSlackPoster(), &metadatanotify.Config{
			Owner:       app.Owner,
			Repository:  app.Repository,
			Label:       app.Config.Metadata.Label,
			UserMapping: mapping,
			Metrics:     app.Metrics,
		})

		_, err = n.Run(ctx, prNumber, app.Config.PullRequestAuthor)
		return err
	})
}
