package main

import (
	"context"

	"github.com/simplesurance/prkeeper/internal/cfg"
	"github.com/simplesurance/prkeeper/internal/cli"
	"github.com/simplesurance/prkeeper/internal/labeler"
)

func main() {
	app := cli.New(
		"prkeeper-assign-labels",
		"Label a pull request by its changed files and assign the code owners.",
		"",
	)
	defer app.PanicHandler()

	app.MustInit(cfg.SettingGithubAuth, cfg.SettingRepository)

	prNumber := app.MustPullRequestNumber()

	app.Run(func(ctx context.Context) error {
		patterns, err := cfg.LoadLabelFilters(app.Config.Files.LabelFilters)
		if err != nil {
			return err
		}

		filters, err := labeler.NewFilters(patterns)
		if err != nil {
			return err
		}

		l := labeler.New(app.MustGithubClient(), &labeler.Config{
			Owner:          app.Owner,
			Repository:     app.Repository,
			Filters:        filters,
			CodeOwnersPath: app.Config.Files.CodeOwners,
			LabelColor:     app.Config.Labeler.DefaultColor,
			LabelDesc:      app.Config.Labeler.DefaultDescription,
			Metrics:        app.Metrics,
		})

		return l.Run(ctx, prNumber)
	})
}
