// Package cli contains the process setup that is shared by the prkeeper
// commands: command-line parsing, configuration loading, logger
// initialization, client construction and termination handling.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/thecodeteam/goodbye"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/simplesurance/prkeeper/internal/cfg"
	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/logfields"
	"github.com/simplesurance/prkeeper/internal/metrics"
	"github.com/simplesurance/prkeeper/internal/notify"
)

// Version is set via a ldflag on compilation
var Version = "unknown"

const shutdownTimeout = time.Minute

type arguments struct {
	Verbose     *bool
	ConfigFile  *string
	EnvFile     *string
	DryRun      *bool
	ShowVersion *bool
}

// App is a prkeeper command.
type App struct {
	Name        string
	Description string

	Config  *cfg.Config
	Logger  *zap.Logger
	Metrics *metrics.Collector

	// Owner and Repository are set when GITHUB_REPOSITORY is configured.
	Owner      string
	Repository string
	RunID      string

	args     arguments
	usage    string
	ctx      context.Context
	cancelFn context.CancelFunc
}

// New creates an App and registers the command-line flags that all
// commands share. Command specific flags can be registered via pflag
// before calling MustInit.
// usageArgs is appended to the usage line, e.g. "[START] [END]".
func New(name, description, usageArgs string) *App {
	app := App{
		Name:        name,
		Description: description,
		usage:       usageArgs,
		args: arguments{
			Verbose: pflag.BoolP(
				"verbose",
				"v",
				false,
				"enable verbose logging",
			),
			ConfigFile: pflag.StringP(
				"cfg-file",
				"c",
				"",
				"path to an optional TOML configuration file",
			),
			EnvFile: pflag.String(
				"env-file",
				"",
				"path to an optional dotenv file, variables that are already set take precedence",
			),
			DryRun: pflag.Bool(
				"dry-run",
				false,
				"only log changes instead of doing them on GitHub and Slack",
			),
			ShowVersion: pflag.Bool(
				"version",
				false,
				"print the version and exit",
			),
		},
	}

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTION]... %s\n%s\n", app.Name, app.usage, app.Description)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		pflag.PrintDefaults()
	}

	return &app
}

func exitOnErr(msg string, err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "ERROR:", msg+", error:", err.Error())
	os.Exit(1)
}

// PanicHandler recovers a panic, logs it and terminates the process after
// running the registered termination handlers.
// It must be called via defer.
func (a *App) PanicHandler() {
	if r := recover(); r != nil {
		logger := a.Logger
		if logger == nil {
			logger = zap.L()
		}

		logger.Info(
			"panic caught , terminating gracefully",
			zap.String("panic", fmt.Sprintf("%v", r)),
			zap.StackSkip("stacktrace", 1),
		)

		ctx, cancelFn := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelFn()

		goodbye.Exit(ctx, 1)
	}
}

// MustInit parses the command-line, loads the configuration and
// initializes the logger and metrics.
// If one of the settings is not configured or loading fails, the process
// terminates.
// The returned context is cancelled when the process receives a
// termination signal.
func (a *App) MustInit(required ...cfg.Setting) context.Context {
	goodbye.Notify(context.Background())

	pflag.Parse()

	if *a.args.ShowVersion {
		fmt.Printf("%s %s\n", a.Name, Version)
		os.Exit(0)
	}

	// we use exitOnErr in this function instead of logger.Fatal() until
	// the logger is initialized

	config, err := cfg.FromSources(*a.args.ConfigFile, *a.args.EnvFile)
	exitOnErr("could not load configuration", err)

	a.Config = config

	a.RunID = uuid.New().String()
	a.mustInitLogger()

	if err := config.Require(required...); err != nil {
		a.Logger.Error("invalid configuration", logfields.Event("cfg_invalid"), zap.Error(err))
		a.exit(1)
	}

	if config.Repository != "" {
		// validated by Require
		a.Owner, a.Repository, _ = config.RepositoryOwnerAndName()
	}

	a.Metrics = metrics.New(a.Name, config.Repository)

	a.ctx, a.cancelFn = context.WithCancel(context.Background())
	goodbye.Register(func(_ context.Context, sig os.Signal) {
		if sig != nil {
			a.Logger.Info(fmt.Sprintf("terminating, received signal %s", sig.String()))
		}
		a.cancelFn()
	})

	if config.Metrics.PushgatewayURL != "" {
		goodbye.Register(func(ctx context.Context, _ os.Signal) {
			if err := a.Metrics.Push(ctx, config.Metrics.PushgatewayURL); err != nil {
				a.Logger.Warn(
					"pushing metrics failed",
					logfields.Event("metrics_push_failed"),
					zap.Error(err),
				)
			}
		})
	}

	a.logConfig()

	return a.ctx
}

func (a *App) logConfig() {
	config := a.Config

	a.Logger.Debug(
		"loaded configuration",
		logfields.Event("cfg_loaded"),
		zap.String("cfg_file", *a.args.ConfigFile),
		zap.String("env_file", *a.args.EnvFile),
		zap.Bool("dry_run", *a.args.DryRun),
		zap.String("github_api_token", hide(config.GithubAPIToken)),
		zap.String("github_api_url", config.GithubAPIURL),
		zap.String("github_graphql_url", config.GithubGraphQLURL),
		zap.Int64("github_app_id", config.GithubApp.AppID),
		zap.String("repository", config.Repository),
		zap.Int("pull_request", config.PullRequest),
		zap.String("event_name", config.EventName),
		zap.String("event_path", config.EventPath),
		zap.String("slack_webhook_url", hide(config.SlackWebhookURL)),
		zap.String("log_format", config.LogFormat),
		zap.String("log_level", config.LogLevel),
		zap.String("pushgateway_url", config.Metrics.PushgatewayURL),
	)
}

// DryRun returns true if the --dry-run flag was passed.
func (a *App) DryRun() bool {
	return *a.args.DryRun
}

// Args returns the positional command-line arguments.
func (a *App) Args() []string {
	return pflag.Args()
}

// MustGithubClient returns a GitHub client that authenticates as GitHub App
// installation or with the API token.
// In dry-run mode all modifying operations are only logged.
func (a *App) MustGithubClient() githubclt.API {
	clt, err := newGithubClient(a.Config)
	if err != nil {
		a.Logger.Error("creating github client failed", logfields.Event("github_client_init_failed"), zap.Error(err))
		a.exit(1)
	}

	if a.DryRun() {
		return githubclt.NewDryClient(clt)
	}

	return clt
}

func newGithubClient(config *cfg.Config) (*githubclt.Client, error) {
	var opts []githubclt.Option

	if config.GithubAPIURL != "" || config.GithubGraphQLURL != "" {
		opts = append(opts, githubclt.WithAPIURL(config.GithubAPIURL, config.GithubGraphQLURL))
	}

	if config.UsesGithubApp() {
		key, err := os.ReadFile(config.GithubApp.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading github app private key failed: %w", err)
		}

		ts, err := githubclt.NewAppTokenSource(
			config.GithubApp.AppID,
			config.GithubApp.InstallationID,
			key,
			config.GithubAPIURL,
		)
		if err != nil {
			return nil, err
		}

		opts = append(opts, githubclt.WithTokenSource(oauth2.ReuseTokenSource(nil, ts)))
	}

	return githubclt.New(config.GithubAPIToken, opts...)
}

// MustSlackPoster returns a client for the configured Slack webhook.
// In dry-run mode messages are only logged.
func (a *App) MustSlackPoster() notify.Poster {
	if a.DryRun() {
		return notify.NewDryPoster()
	}

	clt, err := notify.New(a.Config.SlackWebhookURL)
	if err != nil {
		a.Logger.Error("creating slack client failed", logfields.Event("slack_client_init_failed"), zap.Error(err))
		a.exit(1)
	}

	return clt
}

// Run executes fn, records the result in the metrics and terminates the
// process. The exit code is 1 if fn returned an error, otherwise 0.
func (a *App) Run(fn func(context.Context) error) {
	start := time.Now()

	a.Logger.Info("starting", logfields.Event("run_started"))

	err := fn(a.ctx)
	a.Metrics.Finish(err == nil)

	if err != nil {
		if errors.Is(err, context.Canceled) {
			a.Logger.Warn("run was cancelled", logfields.Event("run_cancelled"), zap.Error(err))
		} else {
			a.Logger.Error(
				"run failed",
				logfields.Event("run_failed"),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
		}

		a.exit(1)
	}

	a.Logger.Info(
		"run finished",
		logfields.Event("run_finished"),
		zap.Duration("duration", time.Since(start)),
	)

	a.exit(0)
}

func (a *App) exit(code int) {
	ctx, cancelFn := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelFn()

	goodbye.Exit(ctx, code)
}

func hide(in string) string {
	if in == "" {
		return in
	}

	return "**hidden**"
}
