package githubclt

import (
	"context"

	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/logfields"
)

// DryClient is a github-client that does not do any changes on github.
// All operations that could cause a change are simulated and always succeed.
// All other operations are forwarded to a wrapped client.
type DryClient struct {
	API
	logger *zap.Logger
}

func NewDryClient(clt API) *DryClient {
	return &DryClient{
		API:    clt,
		logger: zap.L().Named(loggerName).Named("dry"),
	}
}

func (c *DryClient) logSimulated(msg string, fields ...zap.Field) {
	c.logger.Info(msg, append(fields, logfields.DryRun(true))...)
}

func (c *DryClient) CreateLabel(_ context.Context, owner, repo, name, color, _ string) error {
	c.logSimulated(
		"simulated creating github label",
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.Label(name),
		zap.String("color", color),
	)
	return nil
}

func (c *DryClient) UpdateLabelColor(_ context.Context, owner, repo, name, color string) error {
	c.logSimulated(
		"simulated changing github label color",
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.Label(name),
		zap.String("color", color),
	)
	return nil
}

func (c *DryClient) AddLabels(_ context.Context, owner, repo string, pullRequestOrIssueNumber int, labels []string) error {
	c.logSimulated(
		"simulated adding labels",
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.PullRequest(pullRequestOrIssueNumber),
		logfields.Labels(labels),
	)
	return nil
}

func (c *DryClient) RemoveLabel(_ context.Context, owner, repo string, pullRequestOrIssueNumber int, label string) error {
	c.logSimulated(
		"simulated removing label",
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.PullRequest(pullRequestOrIssueNumber),
		logfields.Label(label),
	)
	return nil
}

func (c *DryClient) AddAssignees(_ context.Context, owner, repo string, pullRequestOrIssueNumber int, assignees []string) error {
	c.logSimulated(
		"simulated assigning users",
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.PullRequest(pullRequestOrIssueNumber),
		logfields.Assignees(assignees),
	)
	return nil
}

func (c *DryClient) CreateIssueComment(_ context.Context, owner, repo string, issueOrPRNr int, comment string) error {
	c.logSimulated(
		"simulated creating of github issue comment, no comment created on github",
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.PullRequest(issueOrPRNr),
		zap.String("comment", comment),
	)
	return nil
}

func (c *DryClient) MergePullRequest(_ context.Context, owner, repo string, pullRequestNumber int, method string) error {
	c.logSimulated(
		"simulated merging pull request",
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.PullRequest(pullRequestNumber),
		zap.String("merge_method", method),
	)
	return nil
}
