package githubclt

import (
	"time"

	"github.com/google/go-github/v59/github"
)

// PullRequest is the subset of a GitHub pull request the prkeeper tools
// operate on.
type PullRequest struct {
	Number             int
	Title              string
	Author             string
	URL                string
	HeadRef            string
	HeadSHA            string
	State              string
	Draft              bool
	CreatedAt          time.Time
	MergedAt           time.Time
	Labels             []string
	Assignees          []string
	RequestedReviewers []string
}

// HasLabel returns true if the pull request carries the label name.
func (pr *PullRequest) HasLabel(name string) bool {
	for _, l := range pr.Labels {
		if l == name {
			return true
		}
	}

	return false
}

// IsMerged returns true if the pull request has a merge time.
func (pr *PullRequest) IsMerged() bool {
	return !pr.MergedAt.IsZero()
}

// ChangedFile is a file modified by a pull request.
type ChangedFile struct {
	Name      string
	Additions int
	Deletions int
}

// CheckRun is the state of a CI job reported for a commit.
type CheckRun struct {
	Name       string
	Status     string
	Conclusion string
}

// Label is a repository label.
type Label struct {
	Name  string
	Color string
}

func toPullRequest(pr *github.PullRequest) *PullRequest {
	result := PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Author:    pr.GetUser().GetLogin(),
		URL:       pr.GetHTMLURL(),
		HeadRef:   pr.GetHead().GetRef(),
		HeadSHA:   pr.GetHead().GetSHA(),
		State:     pr.GetState(),
		Draft:     pr.GetDraft(),
		CreatedAt: pr.GetCreatedAt().Time,
		MergedAt:  pr.GetMergedAt().Time,
	}

	for _, l := range pr.Labels {
		result.Labels = append(result.Labels, l.GetName())
	}

	for _, u := range pr.Assignees {
		result.Assignees = append(result.Assignees, u.GetLogin())
	}

	for _, u := range pr.RequestedReviewers {
		result.RequestedReviewers = append(result.RequestedReviewers, u.GetLogin())
	}

	return &result
}

// PullRequestFromEvent converts a pull request contained in a webhook
// payload.
func PullRequestFromEvent(pr *github.PullRequest) *PullRequest {
	if pr == nil {
		return nil
	}

	return toPullRequest(pr)
}
