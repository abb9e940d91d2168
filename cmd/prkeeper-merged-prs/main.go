package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/simplesurance/prkeeper/internal/cfg"
	"github.com/simplesurance/prkeeper/internal/cli"
	"github.com/simplesurance/prkeeper/internal/mergedprs"
)

func main() {
	app := cli.New(
		"prkeeper-merged-prs",
		"Write a report of the pull requests merged between START (default: yesterday)\nand END (default: today), dates are in the format YYYY-MM-DD.",
		"[START] [END]",
	)
	defer app.PanicHandler()

	output := pflag.StringP(
		"output",
		"o",
		"",
		"path of the report file (default: MERGED_PRS_OUTPUT_FILE)",
	)

	app.MustInit(cfg.SettingGithubAuth, cfg.SettingRepository)

	if *output != "" {
		app.Config.MergedPRs.OutputFile = *output
	}

	since, until, err := mergedprs.ParseRange(app.Args(), time.Now())
	if err != nil {
		app.Run(func(context.Context) error { return err })
	}

	app.Run(func(ctx context.Context) error {
		prs, err := mergedprs.NewReporter(app.MustGithubClient(), app.Owner, app.Repository).
			MergedBetween(ctx, since, until)
		if err != nil {
			return err
		}

		f, err := os.Create(app.Config.MergedPRs.OutputFile)
		if err != nil {
			return err
		}

		if err := mergedprs.WriteReport(f, since, until, prs); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing %s failed: %w", app.Config.MergedPRs.OutputFile, err)
		}

		return f.Close()
	})
}
