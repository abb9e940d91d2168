package githubclt

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/prkeeper/internal/keepererr"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	clt, err := New("secret", WithAPIURL(srv.URL+"/", srv.URL+"/graphql"))
	require.NoError(t, err)

	return clt
}

func TestWrapRetryableErrorsGraphql(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	// is the same then in vendor/github.com/shurcooL/graphql/graphql.go do()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(503)
	}))

	t.Cleanup(srv.Close)

	clt := Client{
		logger:     zap.L(),
		graphQLClt: githubv4.NewEnterpriseClient(srv.URL, srv.Client()),
	}

	s, err := clt.ReviewStatus(context.Background(), "test", "test", 123)
	require.Error(t, err)
	assert.Nil(t, s)

	var retryableErr *keepererr.RetryableError
	assert.ErrorAs(t, err, &retryableErr)
}

func TestWrapRetryableErrorsGraphqlWithNonStatusErr(t *testing.T) {
	err := errors.New("error")
	wrappedErr := (&Client{}).wrapGraphQLRetryableErrors(err)
	assert.Equal(t, err, wrappedErr)
}

func TestServerErrorsAreRetryable(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/commits/abc/check-runs", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	clt := newTestClient(t, mux)

	_, err := clt.CheckRuns(context.Background(), "o", "r", "abc")
	require.Error(t, err)
	assert.True(t, keepererr.IsRetryable(err))
}

func TestClientErrorsAreNotRetryable(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/pulls/5", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	})

	clt := newTestClient(t, mux)

	_, err := clt.PullRequest(context.Background(), "o", "r", 5)
	require.Error(t, err)
	assert.False(t, keepererr.IsRetryable(err))
}

func TestChangedFilesFollowsPagination(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/pulls/1/files", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"filename": "b.go", "additions": 3, "deletions": 4}]`)
			return
		}

		w.Header().Set("Link", fmt.Sprintf(`<http://%s/repos/o/r/pulls/1/files?page=2>; rel="next"`, r.Host))
		fmt.Fprint(w, `[{"filename": "a.go", "additions": 1, "deletions": 2}]`)
	})

	clt := newTestClient(t, mux)

	files, err := clt.ChangedFiles(context.Background(), "o", "r", 1)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, &ChangedFile{Name: "a.go", Additions: 1, Deletions: 2}, files[0])
	assert.Equal(t, &ChangedFile{Name: "b.go", Additions: 3, Deletions: 4}, files[1])
}

func TestFileContent(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	const content = "docs/ @alice\n"

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/contents/CODEOWNERS", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "feature", r.URL.Query().Get("ref"))

		fmt.Fprintf(w,
			`{"type": "file", "encoding": "base64", "name": "CODEOWNERS", "path": "CODEOWNERS", "content": %q}`,
			base64.StdEncoding.EncodeToString([]byte(content)),
		)
	})

	clt := newTestClient(t, mux)

	data, err := clt.FileContent(context.Background(), "o", "r", "CODEOWNERS", "feature")
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestFileContentNotFound(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	clt := newTestClient(t, http.NewServeMux())

	_, err := clt.FileContent(context.Background(), "o", "r", "CODEOWNERS", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveLabelNotFoundIsSuccess(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	clt := newTestClient(t, http.NewServeMux())

	err := clt.RemoveLabel(context.Background(), "o", "r", 1, "XS")
	assert.NoError(t, err)
}

func TestAddLabelsRejectsEmptyLabels(t *testing.T) {
	clt := Client{}

	assert.Error(t, clt.AddLabels(context.Background(), "o", "r", 1, nil))
	assert.Error(t, clt.AddLabels(context.Background(), "o", "r", 1, []string{"ok", ""}))
}

func TestPullRequestIsApproved(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/pulls/1/reviews", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"state": "COMMENTED"}, {"state": "APPROVED"}]`)
	})
	mux.HandleFunc("/repos/o/r/pulls/2/reviews", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"state": "CHANGES_REQUESTED"}]`)
	})

	clt := newTestClient(t, mux)

	approved, err := clt.PullRequestIsApproved(context.Background(), "o", "r", 1)
	require.NoError(t, err)
	assert.True(t, approved)

	approved, err = clt.PullRequestIsApproved(context.Background(), "o", "r", 2)
	require.NoError(t, err)
	assert.False(t, approved)
}

func TestListPullRequests(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "closed", r.URL.Query().Get("state"))

		fmt.Fprint(w, `[
			{"number": 1, "title": "one", "user": {"login": "alice"}, "created_at": "2024-01-01T10:00:00Z", "labels": [{"name": "XS"}]},
			{"number": 2, "title": "two", "user": {"login": "bob"}, "merged_at": "2024-01-03T08:30:00Z"}
		]`)
	})

	clt := newTestClient(t, mux)

	it := clt.ListPullRequests(context.Background(), "o", "r", "closed", "created", "asc")

	var prs []*PullRequest
	for {
		pr, err := it.Next()
		require.NoError(t, err)

		if pr == nil {
			break
		}

		prs = append(prs, pr)
	}

	require.Len(t, prs, 2)
	assert.Equal(t, "alice", prs[0].Author)
	assert.True(t, prs[0].HasLabel("XS"))
	assert.False(t, prs[0].IsMerged())
	assert.True(t, prs[1].IsMerged())
}
