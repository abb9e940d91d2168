package cfg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeepsDefaultsForUnsetSettings(t *testing.T) {
	config, err := Load(strings.NewReader(`
repository = "simplesurance/prkeeper"

[stale]
days = 5
skip_labels = ["stale", "wip"]
`))
	require.NoError(t, err)

	assert.Equal(t, "simplesurance/prkeeper", config.Repository)
	assert.Equal(t, 5, config.Stale.Days)
	assert.Equal(t, []string{"stale", "wip"}, config.Stale.SkipLabels)
	assert.Equal(t, "Notified", config.Stale.Label)
	assert.Equal(t, "no-auto-merge", config.AutoMerge.BlockLabel)
	assert.Equal(t, 120, config.Notify.CheckPollMaxAttempts)
}

func TestLoadInvalidToml(t *testing.T) {
	_, err := Load(strings.NewReader("repository = "))
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("STALE_DAYS", "7")
	t.Setenv("GITHUB_REPOSITORY", "a/b")
	t.Setenv("STALE_SKIP_LABELS", "x,y")

	config, err := Load(strings.NewReader(`
repository = "c/d"

[stale]
days = 5
`))
	require.NoError(t, err)
	require.NoError(t, config.ApplyEnv())

	assert.Equal(t, 7, config.Stale.Days)
	assert.Equal(t, "a/b", config.Repository)
	assert.Equal(t, []string{"x", "y"}, config.Stale.SkipLabels)
}

func TestRepositoryOwnerAndName(t *testing.T) {
	config := Default()

	config.Repository = "simplesurance/prkeeper"
	owner, name, err := config.RepositoryOwnerAndName()
	require.NoError(t, err)
	assert.Equal(t, "simplesurance", owner)
	assert.Equal(t, "prkeeper", name)

	for _, invalid := range []string{"", "simplesurance", "/prkeeper", "simplesurance/", "a/b/c"} {
		config.Repository = invalid
		_, _, err := config.RepositoryOwnerAndName()
		assert.Error(t, err, invalid)
	}
}

func TestRequireReportsAllMissingSettings(t *testing.T) {
	config := Default()

	err := config.Require(SettingGithubAuth, SettingRepository, SettingPullRequest)
	require.Error(t, err)

	var missingErr *MissingSettingsError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t,
		[]Setting{SettingGithubAuth, SettingRepository, SettingPullRequest},
		missingErr.Settings,
	)
}

func TestRequire(t *testing.T) {
	config := Default()
	config.GithubAPIToken = "token"
	config.Repository = "o/r"
	config.PullRequest = 3

	assert.NoError(t, config.Require(SettingGithubAuth, SettingRepository, SettingPullRequest))

	config.Repository = "invalid"
	assert.Error(t, config.Require(SettingRepository))
}

func TestRequireGithubAppKeyFile(t *testing.T) {
	config := Default()
	config.GithubApp.AppID = 12

	assert.Error(t, config.Require(SettingGithubAuth))

	config.GithubApp.PrivateKeyFile = "key.pem"
	assert.NoError(t, config.Require(SettingGithubAuth))
}
