// Package metrics records per-run metrics of the prkeeper tools and pushes
// them to a Prometheus Pushgateway when the run finishes.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/logfields"
)

const metricNamespace = "prkeeper"

const (
	actionsMetricName        = "github_actions_total"
	pullRequestsMetricName   = "processed_pull_requests_total"
	pollAttemptsMetricName   = "check_poll_attempts_total"
	runDurationMetricName    = "run_duration_seconds"
	lastRunSuccessMetricName = "last_run_success"
)

const (
	repositoryLabel = "repository"
	actionLabel     = "action"
	resultLabel     = "result"
)

// Action is a change the tools did on GitHub or Slack.
type Action string

const (
	ActionLabelAdded     Action = "label_added"
	ActionLabelRemoved   Action = "label_removed"
	ActionLabelCreated   Action = "label_created"
	ActionAssigneesAdded Action = "assignees_added"
	ActionCommentCreated Action = "comment_created"
	ActionMerged         Action = "merged"
	ActionSlackMessage   Action = "slack_message"
)

// PRResult is the outcome of processing a single pull request.
type PRResult string

const (
	PRResultProcessed PRResult = "processed"
	PRResultSkipped   PRResult = "skipped"
	PRResultFailed    PRResult = "failed"
)

// Collector holds the metrics of one tool run.
// All methods can be called on a nil Collector, they do nothing then.
type Collector struct {
	logger     *zap.Logger
	job        string
	repository string
	registry   *prometheus.Registry
	startTime  time.Time

	actions        *prometheus.CounterVec
	pullRequests   *prometheus.CounterVec
	pollAttempts   prometheus.Counter
	runDuration    prometheus.Gauge
	lastRunSuccess prometheus.Gauge
}

// New creates a Collector for a run of job, operating on repository.
// The metrics are registered in a registry owned by the Collector.
func New(job, repository string) *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		logger:     zap.L().Named("metrics"),
		job:        job,
		repository: repository,
		registry:   reg,
		startTime:  time.Now(),
		actions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      actionsMetricName,
				Help:      "count of changes done on GitHub and Slack",
			},
			[]string{repositoryLabel, actionLabel},
		),
		pullRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      pullRequestsMetricName,
				Help:      "count of pull requests that were evaluated",
			},
			[]string{repositoryLabel, resultLabel},
		),
		pollAttempts: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      pollAttemptsMetricName,
				Help:      "count of check run status queries while waiting for required checks",
			},
		),
		runDuration: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricNamespace,
				Name:      runDurationMetricName,
				Help:      "duration of the run",
			},
		),
		lastRunSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricNamespace,
				Name:      lastRunSuccessMetricName,
				Help:      "1 if the run succeeded, 0 otherwise",
			},
		),
	}
}

// Registry returns the registry containing the metrics of the run.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) logGetMetricFailed(metricName string, err error) {
	c.logger.Warn(
		"could not record metric",
		zap.String("metric", metricName),
		logfields.Event("recording_metric_failed"),
		zap.Error(err),
	)
}

func (c *Collector) ActionInc(action Action) {
	if c == nil {
		return
	}

	cnt, err := c.actions.GetMetricWith(prometheus.Labels{
		repositoryLabel: c.repository,
		actionLabel:     string(action),
	})
	if err != nil {
		c.logGetMetricFailed(actionsMetricName, err)
		return
	}

	cnt.Inc()
}

func (c *Collector) PullRequestInc(result PRResult) {
	if c == nil {
		return
	}

	cnt, err := c.pullRequests.GetMetricWith(prometheus.Labels{
		repositoryLabel: c.repository,
		resultLabel:     string(result),
	})
	if err != nil {
		c.logGetMetricFailed(pullRequestsMetricName, err)
		return
	}

	cnt.Inc()
}

func (c *Collector) PollAttemptInc() {
	if c == nil {
		return
	}

	c.pollAttempts.Inc()
}

// Finish records the duration and the result of the run.
func (c *Collector) Finish(success bool) {
	if c == nil {
		return
	}

	c.runDuration.Set(time.Since(c.startTime).Seconds())

	if success {
		c.lastRunSuccess.Set(1)
	} else {
		c.lastRunSuccess.Set(0)
	}
}

// Push sends the metrics to the Pushgateway at url.
// The metrics are grouped by job and repository.
func (c *Collector) Push(ctx context.Context, url string) error {
	if c == nil {
		return nil
	}

	return push.New(url, c.job).
		Gatherer(c.registry).
		Grouping(repositoryLabel, c.repository).
		PushContext(ctx)
}
