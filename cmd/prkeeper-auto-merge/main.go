package main

import (
	"context"

	"github.com/simplesurance/prkeeper/internal/automerge"
	"github.com/simplesurance/prkeeper/internal/cfg"
	"github.com/simplesurance/prkeeper/internal/cli"
)

func main() {
	app := cli.New(
		"prkeeper-auto-merge",
		"Merge a pull request when it is approved and not blocked by a label.",
		"",
	)
	defer app.PanicHandler()

	app.MustInit(cfg.SettingGithubAuth, cfg.SettingRepository)

	prNumber := app.MustPullRequestNumber()

	app.Run(func(ctx context.Context) error {
		merger, err := automerge.New(app.MustGithubClient(), &automerge.Config{
			Owner:       app.Owner,
			Repository:  app.Repository,
			BlockLabel:  app.Config.AutoMerge.BlockLabel,
			MergeMethod: app.Config.AutoMerge.MergeMethod,
			Metrics:     app.Metrics,
		})
		if err != nil {
			return err
		}

		_, err = merger.Run(ctx, prNumber)
		return err
	})
}
