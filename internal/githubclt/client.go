// Package githubclt provides a github API client.
package githubclt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v59/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/simplesurance/prkeeper/internal/keepererr"
	"github.com/simplesurance/prkeeper/internal/logfields"
)

const DefaultHTTPClientTimeout = time.Minute

const loggerName = "github_client"

const perPage = 100

var (
	ErrPullRequestIsClosed = errors.New("pull request is closed")
	ErrNotFound            = errors.New("not found")
)

type options struct {
	restURL     string
	graphQLURL  string
	tokenSource oauth2.TokenSource
}

type Option func(*options)

// WithAPIURL sets the endpoints of a GitHub Enterprise server.
// restURL is e.g. https://github.example.com/api/v3/, graphQLURL
// https://github.example.com/api/graphql.
func WithAPIURL(restURL, graphQLURL string) Option {
	return func(o *options) {
		o.restURL = restURL
		o.graphQLURL = graphQLURL
	}
}

// WithTokenSource authenticates requests with tokens from ts instead of a
// static API token.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(o *options) {
		o.tokenSource = ts
	}
}

// New returns a new github api client.
func New(oauthAPItoken string, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ts := o.tokenSource
	if ts == nil && oauthAPItoken != "" {
		ts = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: oauthAPItoken})
	}

	httpClient := newHTTPClient(ts)

	restClt := github.NewClient(httpClient)
	if o.restURL != "" {
		u, err := parseBaseURL(o.restURL)
		if err != nil {
			return nil, err
		}

		restClt.BaseURL = u
	}

	graphQLClt := githubv4.NewClient(httpClient)
	if o.graphQLURL != "" {
		graphQLClt = githubv4.NewEnterpriseClient(o.graphQLURL, httpClient)
	}

	return &Client{
		restClt:    restClt,
		graphQLClt: graphQLClt,
		logger:     zap.L().Named(loggerName),
	}, nil
}

func parseBaseURL(in string) (*url.URL, error) {
	u, err := url.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("parsing github api url failed: %w", err)
	}

	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return u, nil
}

func newHTTPClient(ts oauth2.TokenSource) *http.Client {
	if ts == nil {
		return &http.Client{
			Timeout: DefaultHTTPClientTimeout,
		}
	}

	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = DefaultHTTPClientTimeout

	return tc
}

// Client is an github API client.
// All methods return a keepererr.RetryableError when an operation can be retried.
// This can be e.g. the case when the API ratelimit is exceeded.
type Client struct {
	restClt    *github.Client
	graphQLClt *githubv4.Client
	logger     *zap.Logger
}

// PullRequest returns the pull request with the given number.
func (clt *Client) PullRequest(ctx context.Context, owner, repo string, pullRequestNumber int) (*PullRequest, error) {
	pr, _, err := clt.restClt.PullRequests.Get(ctx, owner, repo, pullRequestNumber)
	if err != nil {
		return nil, clt.wrapRetryableErrors(err)
	}

	return toPullRequest(pr), nil
}

// ChangedFiles returns all files that are modified by a pull request.
func (clt *Client) ChangedFiles(ctx context.Context, owner, repo string, pullRequestNumber int) ([]*ChangedFile, error) {
	var result []*ChangedFile

	opts := github.ListOptions{PerPage: perPage}
	for {
		files, resp, err := clt.restClt.PullRequests.ListFiles(ctx, owner, repo, pullRequestNumber, &opts)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		for _, f := range files {
			result = append(result, &ChangedFile{
				Name:      f.GetFilename(),
				Additions: f.GetAdditions(),
				Deletions: f.GetDeletions(),
			})
		}

		if resp.NextPage == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// FileContent returns the content of a file in the repository.
// If ref is empty, the file is read from the default branch.
// If the file does not exist ErrNotFound is returned.
func (clt *Client) FileContent(ctx context.Context, owner, repo, path, ref string) ([]byte, error) {
	var opts *github.RepositoryContentGetOptions
	if ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref}
	}

	file, _, _, err := clt.restClt.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}

		return nil, clt.wrapRetryableErrors(err)
	}

	if file == nil {
		return nil, fmt.Errorf("%s is a directory, expected a file", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding content of %s failed: %w", path, err)
	}

	return []byte(content), nil
}

// IssueLabels returns the names of the labels of a pull request or issue.
func (clt *Client) IssueLabels(ctx context.Context, owner, repo string, pullRequestOrIssueNumber int) ([]string, error) {
	var result []string

	opts := github.ListOptions{PerPage: perPage}
	for {
		labels, resp, err := clt.restClt.Issues.ListLabelsByIssue(ctx, owner, repo, pullRequestOrIssueNumber, &opts)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		for _, l := range labels {
			result = append(result, l.GetName())
		}

		if resp.NextPage == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// RepositoryLabels returns all labels that exist in a repository.
func (clt *Client) RepositoryLabels(ctx context.Context, owner, repo string) ([]*Label, error) {
	var result []*Label

	opts := github.ListOptions{PerPage: perPage}
	for {
		labels, resp, err := clt.restClt.Issues.ListLabels(ctx, owner, repo, &opts)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		for _, l := range labels {
			result = append(result, &Label{Name: l.GetName(), Color: l.GetColor()})
		}

		if resp.NextPage == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// CreateLabel creates a label in the repository.
func (clt *Client) CreateLabel(ctx context.Context, owner, repo, name, color, description string) error {
	label := github.Label{
		Name:  &name,
		Color: &color,
	}
	if description != "" {
		label.Description = &description
	}

	_, _, err := clt.restClt.Issues.CreateLabel(ctx, owner, repo, &label)
	return clt.wrapRetryableErrors(err)
}

// UpdateLabelColor changes the color of an existing repository label.
func (clt *Client) UpdateLabelColor(ctx context.Context, owner, repo, name, color string) error {
	_, _, err := clt.restClt.Issues.EditLabel(ctx, owner, repo, name, &github.Label{
		Name:  &name,
		Color: &color,
	})
	return clt.wrapRetryableErrors(err)
}

// CreateIssueComment creates a comment in a issue or pull request
func (clt *Client) CreateIssueComment(ctx context.Context, owner, repo string, issueOrPRNr int, comment string) error {
	_, _, err := clt.restClt.Issues.CreateComment(ctx, owner, repo, issueOrPRNr, &github.IssueComment{Body: &comment})
	return clt.wrapRetryableErrors(err)
}

// AddLabels adds labels to a Pull-Request or Issue.
// Labels that are already set on the pull request are kept.
func (clt *Client) AddLabels(ctx context.Context, owner, repo string, pullRequestOrIssueNumber int, labels []string) error {
	if len(labels) == 0 {
		return errors.New("no labels provided")
	}

	for _, l := range labels {
		if l == "" {
			// github removes all labels when an empty one is
			// passed, as safe guard fail if because of a bug an
			// empty label value is passed:
			return errors.New("provided label is empty")
		}
	}

	_, _, err := clt.restClt.Issues.AddLabelsToIssue(ctx, owner, repo, pullRequestOrIssueNumber, labels)
	return clt.wrapRetryableErrors(err)
}

// RemoveLabel removes a label from a Pull-Request or issue.
// If the issue or PR does not have the label, the operation succeeds.
func (clt *Client) RemoveLabel(ctx context.Context, owner, repo string, pullRequestOrIssueNumber int, label string) error {
	_, err := clt.restClt.Issues.RemoveLabelForIssue(
		ctx,
		owner,
		repo,
		pullRequestOrIssueNumber,
		label,
	)
	if err != nil {
		if isNotFound(err) {
			clt.logger.Debug("removing label returned a not found response, interpreting it as success",
				logfields.RepositoryOwner(owner),
				logfields.Repository(repo),
				logfields.PullRequest(pullRequestOrIssueNumber),
				logfields.Label(label),
				logfields.Event("github_remove_label_returned_not_found"),
				zap.Error(err),
			)

			return nil
		}

		return clt.wrapRetryableErrors(err)
	}

	return nil
}

// AddAssignees assigns users to a pull request or issue.
func (clt *Client) AddAssignees(ctx context.Context, owner, repo string, pullRequestOrIssueNumber int, assignees []string) error {
	_, _, err := clt.restClt.Issues.AddAssignees(ctx, owner, repo, pullRequestOrIssueNumber, assignees)
	return clt.wrapRetryableErrors(err)
}

// PullRequestIsApproved returns true if at least one review of the pull
// request is in the APPROVED state.
func (clt *Client) PullRequestIsApproved(ctx context.Context, owner, repo string, pullRequestNumber int) (bool, error) {
	opts := github.ListOptions{PerPage: perPage}
	for {
		reviews, resp, err := clt.restClt.PullRequests.ListReviews(ctx, owner, repo, pullRequestNumber, &opts)
		if err != nil {
			return false, clt.wrapRetryableErrors(err)
		}

		for _, r := range reviews {
			if r.GetState() == "APPROVED" {
				return true, nil
			}
		}

		if resp.NextPage == 0 {
			return false, nil
		}

		opts.Page = resp.NextPage
	}
}

// MergePullRequest merges a pull request with the given merge method
// (merge, squash or rebase).
func (clt *Client) MergePullRequest(ctx context.Context, owner, repo string, pullRequestNumber int, method string) error {
	res, _, err := clt.restClt.PullRequests.Merge(ctx, owner, repo, pullRequestNumber, "", &github.PullRequestOptions{
		MergeMethod: method,
	})
	if err != nil {
		return clt.wrapRetryableErrors(err)
	}

	if !res.GetMerged() {
		return fmt.Errorf("pull request was not merged: %s", res.GetMessage())
	}

	return nil
}

// CheckRuns returns all check runs that were reported for a commit.
func (clt *Client) CheckRuns(ctx context.Context, owner, repo, ref string) ([]*CheckRun, error) {
	var result []*CheckRun

	opts := github.ListCheckRunsOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	for {
		runs, resp, err := clt.restClt.Checks.ListCheckRunsForRef(ctx, owner, repo, ref, &opts)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		for _, r := range runs.CheckRuns {
			result = append(result, &CheckRun{
				Name:       r.GetName(),
				Status:     r.GetStatus(),
				Conclusion: r.GetConclusion(),
			})
		}

		if resp.NextPage == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// AvatarURL returns the URL of the avatar image of a GitHub user.
func (clt *Client) AvatarURL(ctx context.Context, login string) (string, error) {
	user, _, err := clt.restClt.Users.Get(ctx, login)
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("user %s: %w", login, ErrNotFound)
		}

		return "", clt.wrapRetryableErrors(err)
	}

	return user.GetAvatarURL(), nil
}

type PRIterator interface {
	Next() (*PullRequest, error)
}

type PRIter struct {
	clt *Client

	ctx   context.Context
	owner string
	repo  string

	state         string
	sort          string
	sortDirection string

	unseen []*github.PullRequest

	nextPage int
	finished bool
}

// Next returns the next pullRequest.
// When the last result was returned a nil PullRequest is returned.
func (it *PRIter) Next() (*PullRequest, error) {
	if len(it.unseen) > 0 {
		result := it.unseen[0]
		it.unseen = it.unseen[1:]

		return toPullRequest(result), nil
	}

	if it.finished {
		return nil, nil
	}

	prs, resp, err := it.clt.restClt.PullRequests.List(it.ctx, it.owner, it.repo, &github.PullRequestListOptions{
		State:     it.state,
		Sort:      it.sort,
		Direction: it.sortDirection,
		ListOptions: github.ListOptions{
			Page:    it.nextPage,
			PerPage: perPage,
		},
	})
	if err != nil {
		return nil, it.clt.wrapRetryableErrors(err)
	}

	if resp.NextPage == 0 || len(prs) == 0 {
		it.finished = true
	} else {
		it.nextPage = resp.NextPage
	}

	if len(prs) == 0 {
		return nil, nil
	}

	it.unseen = prs

	return it.Next()
}

// ListPullRequests returns an iterator for receiving all pull requests.
// The parameters state, sort, sortDirection expect the same values then their pendants in the struct github.PullRequestListOptions.
func (clt *Client) ListPullRequests(ctx context.Context, owner, repo, state, sort, sortDirection string) PRIterator { // interface is returned to make the method mockable
	return &PRIter{
		clt:           clt,
		ctx:           ctx,
		owner:         owner,
		repo:          repo,
		state:         state,
		sort:          sort,
		sortDirection: sortDirection,
		nextPage:      1,
	}
}

func isNotFound(err error) bool {
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode == http.StatusNotFound
	}

	return false
}

func (clt *Client) wrapRetryableErrors(err error) error {
	switch v := err.(type) {
	case *github.RateLimitError:
		clt.logger.Info(
			"rate limit exceeded",
			logfields.Event("github_api_rate_limit_exceeded"),
			zap.Int("github_api_rate_limit", v.Rate.Limit),
			zap.Time("github_api_rate_limit_reset_time", v.Rate.Reset.Time),
		)

		return keepererr.NewRetryableError(err, v.Rate.Reset.Time)

	case *github.AbuseRateLimitError:
		if v.RetryAfter != nil {
			return keepererr.NewRetryableError(err, time.Now().Add(*v.RetryAfter))
		}

		return keepererr.NewRetryableAnytimeError(err)

	case *github.ErrorResponse:
		if v.Response != nil && v.Response.StatusCode >= 500 && v.Response.StatusCode < 600 {
			return keepererr.NewRetryableAnytimeError(err)
		}
	}

	return err
}

var graphQlHTTPStatusErrRe = regexp.MustCompile(`^non-200 OK status code: ([0-9]+) .*`)

func (clt *Client) wrapGraphQLRetryableErrors(err error) error {
	matches := graphQlHTTPStatusErrRe.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return err
	}

	errcode, atoiErr := strconv.Atoi(matches[1])
	if atoiErr != nil {
		clt.logger.Info(
			"parsing http code from error string failed",
			zap.Error(atoiErr),
			zap.String("error_string", err.Error()),
			zap.String("http_errcode", matches[1]),
		)
		return err
	}

	if errcode >= 500 && errcode < 600 {
		return keepererr.NewRetryableAnytimeError(err)
	}

	return err
}
