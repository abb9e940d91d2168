package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector

	c.ActionInc(ActionMerged)
	c.PullRequestInc(PRResultFailed)
	c.PollAttemptInc()
	c.Finish(true)

	assert.NoError(t, c.Push(context.Background(), "http://127.0.0.1:1"))
}

func TestCounters(t *testing.T) {
	c := New("stale-pr-checker", "o/r")

	c.ActionInc(ActionCommentCreated)
	c.ActionInc(ActionCommentCreated)
	c.ActionInc(ActionLabelAdded)
	c.PullRequestInc(PRResultSkipped)
	c.PollAttemptInc()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.actions.WithLabelValues("o/r", string(ActionCommentCreated))))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.actions.WithLabelValues("o/r", string(ActionLabelAdded))))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.pullRequests.WithLabelValues("o/r", string(PRResultSkipped))))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.pollAttempts))

	c.Finish(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.lastRunSuccess))

	c.Finish(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.lastRunSuccess))
}

func TestPush(t *testing.T) {
	var path, body string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path

		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		body = string(data)

		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := New("auto-merge", "o/r")
	c.ActionInc(ActionMerged)
	c.Finish(true)

	require.NoError(t, c.Push(context.Background(), srv.URL))

	assert.True(t, strings.HasPrefix(path, "/metrics/job/auto-merge/repository"), path)
	assert.NotEmpty(t, body)
}
