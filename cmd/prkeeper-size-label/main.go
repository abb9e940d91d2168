package main

import (
	"context"

	"github.com/simplesurance/prkeeper/internal/cfg"
	"github.com/simplesurance/prkeeper/internal/cli"
	"github.com/simplesurance/prkeeper/internal/sizelabel"
)

func main() {
	app := cli.New(
		"prkeeper-size-label",
		"Label a pull request with the size of its diff.",
		"",
	)
	defer app.PanicHandler()

	app.MustInit(cfg.SettingGithubAuth, cfg.SettingRepository)

	prNumber := app.MustPullRequestNumber()

	app.Run(func(ctx context.Context) error {
		l, err := sizelabel.New(
			app.MustGithubClient(),
			app.Owner,
			app.Repository,
			sizelabel.DefaultTable,
			app.Metrics,
		)
		if err != nil {
			return err
		}

		return l.Run(ctx, prNumber)
	})
}
