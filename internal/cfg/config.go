// Package cfg loads the configuration of the prkeeper tools.
//
// Settings are read from, in increasing precedence, built-in defaults, an
// optional TOML file, an optional dotenv file and environment variables.
package cfg

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
)

type Config struct {
	GithubAPIToken    string    `toml:"github_api_token" env:"GITHUB_TOKEN"`
	GithubAPIURL      string    `toml:"github_api_url" env:"GITHUB_API_URL"`
	GithubGraphQLURL  string    `toml:"github_graphql_url" env:"GITHUB_GRAPHQL_URL"`
	GithubApp         GithubApp `toml:"github_app"`
	Repository        string    `toml:"repository" env:"GITHUB_REPOSITORY"`
	PullRequest       int       `toml:"pull_request" env:"PR_NUMBER"`
	PullRequestAuthor string    `toml:"pull_request_author" env:"PR_USER"`
	EventPath         string    `toml:"event_path" env:"GITHUB_EVENT_PATH"`
	EventName         string    `toml:"event_name" env:"GITHUB_EVENT_NAME"`
	SlackWebhookURL   string    `toml:"slack_webhook_url" env:"SLACK_WEBHOOK_URL"`
	LogFormat         string    `toml:"log_format" env:"LOG_FORMAT"`
	LogTimeKey        string    `toml:"log_time_key" env:"LOG_TIME_KEY"`
	LogLevel          string    `toml:"log_level" env:"LOG_LEVEL"`
	Files             Files     `toml:"files"`
	Labeler           Labeler   `toml:"labeler"`
	Stale             Stale     `toml:"stale"`
	Notify            Notify    `toml:"notify"`
	AutoMerge         AutoMerge `toml:"auto_merge"`
	Metadata          Metadata  `toml:"metadata"`
	MergedPRs         MergedPRs `toml:"merged_prs"`
	Metrics           Metrics   `toml:"metrics"`
}

// GithubApp configures authentication as GitHub App installation.
// It is used instead of GithubAPIToken when AppID is set.
type GithubApp struct {
	AppID          int64  `toml:"app_id" env:"GITHUB_APP_ID"`
	InstallationID int64  `toml:"installation_id" env:"GITHUB_APP_INSTALLATION_ID"`
	PrivateKeyFile string `toml:"private_key_file" env:"GITHUB_APP_PRIVATE_KEY_FILE"`
}

// Files are the paths of the data files.
// CodeOwners is a path in the GitHub repository, the others are local paths.
type Files struct {
	CodeOwners   string `toml:"codeowners" env:"CODEOWNERS_PATH"`
	LabelFilters string `toml:"label_filters" env:"FILTERS_PATH"`
	SlackMapping string `toml:"slack_mapping" env:"SLACK_MAPPING_PATH"`
	Workflows    string `toml:"workflows" env:"WORKFLOWS_PATH"`
}

type Labeler struct {
	DefaultColor       string `toml:"default_color" env:"DEFAULT_LABEL_COLOR"`
	DefaultDescription string `toml:"default_description" env:"DEFAULT_LABEL_DESCRIPTION"`
}

type Stale struct {
	Days         int      `toml:"days" env:"STALE_DAYS"`
	Label        string   `toml:"label" env:"STALE_LABEL"`
	SkipLabels   []string `toml:"skip_labels" env:"STALE_SKIP_LABELS"`
	Mode         string   `toml:"mode" env:"STALE_MODE"`
	AttachReason bool     `toml:"attach_reason" env:"STALE_ATTACH_REASON"`
	EventFilter  string   `toml:"event_filter" env:"STALE_EVENT_FILTER"`
}

type Notify struct {
	UseCodeOwners           bool   `toml:"use_codeowners" env:"USE_CODEOWNERS"`
	CheckPollIntervalSecond int    `toml:"check_poll_interval_seconds" env:"CHECK_POLL_INTERVAL_SECONDS"`
	CheckPollMaxAttempts    int    `toml:"check_poll_max_attempts" env:"CHECK_POLL_MAX_ATTEMPTS"`
	EventFilter             string `toml:"event_filter" env:"NOTIFY_EVENT_FILTER"`
}

type AutoMerge struct {
	BlockLabel  string `toml:"block_label" env:"AUTO_MERGE_BLOCK_LABEL"`
	MergeMethod string `toml:"merge_method" env:"AUTO_MERGE_METHOD"`
}

type Metadata struct {
	Label string `toml:"label" env:"METADATA_LABEL"`
}

type MergedPRs struct {
	OutputFile string `toml:"output_file" env:"MERGED_PRS_OUTPUT_FILE"`
}

type Metrics struct {
	PushgatewayURL string `toml:"pushgateway_url" env:"PUSHGATEWAY_URL"`
}

// Default returns the configuration that is used when a setting is not
// defined in any source.
func Default() *Config {
	return &Config{
		LogFormat:  "logfmt",
		LogTimeKey: "time",
		LogLevel:   "info",
		Files: Files{
			CodeOwners:   "CODEOWNERS",
			LabelFilters: ".github/filters.yml",
			SlackMapping: ".github/slack-mapping.json",
			Workflows:    ".github/workflows.json",
		},
		Labeler: Labeler{
			DefaultColor:       "CCCCCC",
			DefaultDescription: "Auto-generated from directory structure",
		},
		Stale: Stale{
			Days:        3,
			Label:       "Notified",
			SkipLabels:  []string{"stale"},
			Mode:        "scheduled",
			EventFilter: "true",
		},
		Notify: Notify{
			CheckPollIntervalSecond: 30,
			CheckPollMaxAttempts:    120,
			EventFilter:             "true",
		},
		AutoMerge: AutoMerge{
			BlockLabel:  "no-auto-merge",
			MergeMethod: "merge",
		},
		Metadata: Metadata{
			Label: "database",
		},
		MergedPRs: MergedPRs{
			OutputFile: "merged_prs.log",
		},
	}
}

// Load reads a TOML configuration from reader. Settings missing in the
// file keep the values of Default().
func Load(reader io.Reader) (*Config, error) {
	result := Default()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, result); err != nil {
		return nil, err
	}

	return result, nil
}

// FromSources builds the configuration from all sources.
// cfgFile and dotEnvFile are optional and ignored when empty.
func FromSources(cfgFile, dotEnvFile string) (*Config, error) {
	config := Default()

	if cfgFile != "" {
		f, err := os.Open(cfgFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		config, err = Load(f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s failed: %w", cfgFile, err)
		}
	}

	if dotEnvFile != "" {
		// godotenv.Load does not override variables that are already set
		if err := godotenv.Load(dotEnvFile); err != nil {
			return nil, fmt.Errorf("loading %s failed: %w", dotEnvFile, err)
		}
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyEnv overrides settings with the values of the environment variables
// that are set.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parsing environment variables failed: %w", err)
	}

	return nil
}

// RepositoryOwnerAndName splits the Repository setting into owner and
// repository name.
func (c *Config) RepositoryOwnerAndName() (owner, name string, err error) {
	owner, name, found := strings.Cut(c.Repository, "/")
	if !found || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("repository %q is not in the format <owner>/<name>", c.Repository)
	}

	return owner, name, nil
}

// UsesGithubApp returns true if GitHub App authentication is configured.
func (c *Config) UsesGithubApp() bool {
	return c.GithubApp.AppID != 0
}

// Setting is the name of a required setting, as it is shown to users.
type Setting string

const (
	SettingGithubAuth        Setting = "GITHUB_TOKEN or GITHUB_APP_ID"
	SettingRepository        Setting = "GITHUB_REPOSITORY"
	SettingPullRequest       Setting = "PR_NUMBER"
	SettingPullRequestAuthor Setting = "PR_USER"
	SettingSlackWebhook      Setting = "SLACK_WEBHOOK_URL"
	SettingEventPath         Setting = "GITHUB_EVENT_PATH"
)

// MissingSettingsError is returned when required settings are not set.
type MissingSettingsError struct {
	Settings []Setting
}

func (e *MissingSettingsError) Error() string {
	names := make([]string, 0, len(e.Settings))
	for _, s := range e.Settings {
		names = append(names, string(s))
	}

	return "missing required settings: " + strings.Join(names, ", ")
}

// Require returns a *MissingSettingsError if one of the settings is not
// set. An invalid repository setting is also reported as error.
func (c *Config) Require(settings ...Setting) error {
	var missing []Setting

	for _, s := range settings {
		var isSet bool

		switch s {
		case SettingGithubAuth:
			isSet = c.GithubAPIToken != "" || c.UsesGithubApp()
		case SettingRepository:
			isSet = c.Repository != ""
		case SettingPullRequest:
			isSet = c.PullRequest > 0
		case SettingPullRequestAuthor:
			isSet = c.PullRequestAuthor != ""
		case SettingSlackWebhook:
			isSet = c.SlackWebhookURL != ""
		case SettingEventPath:
			isSet = c.EventPath != ""
		default:
			return fmt.Errorf("unsupported setting: %q", s)
		}

		if !isSet {
			missing = append(missing, s)
		}
	}

	if len(missing) > 0 {
		return &MissingSettingsError{Settings: missing}
	}

	if c.Repository != "" {
		if _, _, err := c.RepositoryOwnerAndName(); err != nil {
			return err
		}
	}

	if c.UsesGithubApp() && c.GithubApp.PrivateKeyFile == "" {
		return errors.New("GITHUB_APP_ID is set but GITHUB_APP_PRIVATE_KEY_FILE is not")
	}

	return nil
}
