package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/simplesurance/prkeeper/internal/cfg"
)

func TestHide(t *testing.T) {
	assert.Equal(t, "", hide(""))
	assert.Equal(t, "**hidden**", hide("ghp_secret"))
}

func TestNewLoggerRejectsInvalidSettings(t *testing.T) {
	config := cfg.Default()
	config.LogFormat = "xml"

	_, err := newLogger(config, false)
	assert.Error(t, err)

	config = cfg.Default()
	config.LogLevel = "loud"

	_, err = newLogger(config, false)
	assert.Error(t, err)

	// verbose overrides the configured level
	_, err = newLogger(config, true)
	assert.NoError(t, err)
}

func TestLogFmtLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := newLogFmtLogger(cfg.Default(), zapcore.InfoLevel, &buf)
	logger.Debug("not shown")
	logger.Info("hello")
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Contains(t, out, "loglevel=info")
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "time=")
	assert.NotContains(t, out, "not shown")
}

func TestNewGithubClientAppKeyMissing(t *testing.T) {
	config := cfg.Default()
	config.GithubApp.AppID = 1
	config.GithubApp.InstallationID = 2
	config.GithubApp.PrivateKeyFile = filepath.Join(t.TempDir(), "missing.pem")

	_, err := newGithubClient(config)
	assert.Error(t, err)
}

func TestNewGithubClientWithToken(t *testing.T) {
	config := cfg.Default()
	config.GithubAPIToken = "secret"
	config.GithubAPIURL = "https://github.example.com/api/v3"
	config.GithubGraphQLURL = "https://github.example.com/api/graphql"

	clt, err := newGithubClient(config)
	require.NoError(t, err)
	assert.NotNil(t, clt)
}
