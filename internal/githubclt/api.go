package githubclt

import "context"

//go:generate mockgen -destination=mocks/api.go -package=mocks . API

// API is the set of GitHub operations used by the prkeeper tools.
// It is implemented by Client and DryClient.
type API interface {
	PullRequest(ctx context.Context, owner, repo string, pullRequestNumber int) (*PullRequest, error)
	ListPullRequests(ctx context.Context, owner, repo, state, sort, sortDirection string) PRIterator
	ChangedFiles(ctx context.Context, owner, repo string, pullRequestNumber int) ([]*ChangedFile, error)
	FileContent(ctx context.Context, owner, repo, path, ref string) ([]byte, error)
	IssueLabels(ctx context.Context, owner, repo string, pullRequestOrIssueNumber int) ([]string, error)
	RepositoryLabels(ctx context.Context, owner, repo string) ([]*Label, error)
	PullRequestIsApproved(ctx context.Context, owner, repo string, pullRequestNumber int) (bool, error)
	CheckRuns(ctx context.Context, owner, repo, ref string) ([]*CheckRun, error)
	AvatarURL(ctx context.Context, login string) (string, error)
	ReviewStatus(ctx context.Context, owner, repo string, prNumber int) (*ReviewStatus, error)

	CreateLabel(ctx context.Context, owner, repo, name, color, description string) error
	UpdateLabelColor(ctx context.Context, owner, repo, name, color string) error
	AddLabels(ctx context.Context, owner, repo string, pullRequestOrIssueNumber int, labels []string) error
	RemoveLabel(ctx context.Context, owner, repo string, pullRequestOrIssueNumber int, label string) error
	AddAssignees(ctx context.Context, owner, repo string, pullRequestOrIssueNumber int, assignees []string) error
	CreateIssueComment(ctx context.Context, owner, repo string, issueOrPRNr int, comment string) error
	MergePullRequest(ctx context.Context, owner, repo string, pullRequestNumber int, method string) error
}

var (
	_ API = (*Client)(nil)
	_ API = (*DryClient)(nil)
)
