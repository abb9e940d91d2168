package labeler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/prkeeper/internal/cfg"
	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/githubclt/mocks"
)

const (
	repoOwner = "testman"
	repo      = "repo"
	prNumber  = 12
)

const testCodeOwners = `
services/api @alice @bob
services/web @bob
`

func newTestLabeler(t *testing.T, clt githubclt.API, filters *Filters) *Labeler {
	t.Helper()

	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	return New(clt, &Config{
		Owner:          repoOwner,
		Repository:     repo,
		Filters:        filters,
		CodeOwnersPath: "CODEOWNERS",
		LabelColor:     "CCCCCC",
		LabelDesc:      "Auto-generated from directory structure",
	})
}

func mockPullRequest(clt *mocks.MockAPI, files ...string) {
	clt.EXPECT().
		PullRequest(gomock.Any(), repoOwner, repo, prNumber).
		Return(&githubclt.PullRequest{Number: prNumber, HeadRef: "feature"}, nil)

	var changed []*githubclt.ChangedFile
	for _, f := range files {
		changed = append(changed, &githubclt.ChangedFile{Name: f, Additions: 1})
	}

	clt.EXPECT().
		ChangedFiles(gomock.Any(), repoOwner, repo, prNumber).
		Return(changed, nil)
}

func TestRunAddsLabelsAndAssignees(t *testing.T) {
	mockctrl := gomock.NewController(t)
	clt := mocks.NewMockAPI(mockctrl)

	mockPullRequest(clt, "services/api/main.go", "services/web/index.html")

	clt.EXPECT().
		FileContent(gomock.Any(), repoOwner, repo, "CODEOWNERS", "feature").
		Return([]byte(testCodeOwners), nil)

	clt.EXPECT().
		RepositoryLabels(gomock.Any(), repoOwner, repo).
		Return([]*githubclt.Label{{Name: "services/api"}}, nil)

	clt.EXPECT().
		CreateLabel(gomock.Any(), repoOwner, repo, "services/web", "CCCCCC", "Auto-generated from directory structure").
		Return(nil)

	clt.EXPECT().
		AddLabels(gomock.Any(), repoOwner, repo, prNumber, []string{"services/api", "services/web"}).
		Return(nil)

	clt.EXPECT().
		AddAssignees(gomock.Any(), repoOwner, repo, prNumber, []string{"bob"}).
		Return(nil)

	l := newTestLabeler(t, clt, nil)
	require.NoError(t, l.Run(context.Background(), prNumber))
}

func TestRunWithoutCodeOwnersFile(t *testing.T) {
	mockctrl := gomock.NewController(t)
	clt := mocks.NewMockAPI(mockctrl)

	mockPullRequest(clt, "README.md")

	clt.EXPECT().
		FileContent(gomock.Any(), repoOwner, repo, "CODEOWNERS", "feature").
		Return(nil, fmt.Errorf("CODEOWNERS: %w", githubclt.ErrNotFound))

	l := newTestLabeler(t, clt, nil)
	require.NoError(t, l.Run(context.Background(), prNumber))
}

func TestRunLabelCreationAndAssignmentFailuresAreIgnored(t *testing.T) {
	mockctrl := gomock.NewController(t)
	clt := mocks.NewMockAPI(mockctrl)

	mockPullRequest(clt, "migrations/001.sql")

	clt.EXPECT().
		FileContent(gomock.Any(), repoOwner, repo, "CODEOWNERS", "feature").
		Return([]byte("* @dba\n"), nil)

	clt.EXPECT().
		RepositoryLabels(gomock.Any(), repoOwner, repo).
		Return(nil, nil)

	clt.EXPECT().
		CreateLabel(gomock.Any(), repoOwner, repo, "database", gomock.Any(), gomock.Any()).
		Return(errors.New("forbidden"))

	clt.EXPECT().
		AddLabels(gomock.Any(), repoOwner, repo, prNumber, []string{"database"}).
		Return(nil)

	clt.EXPECT().
		AddAssignees(gomock.Any(), repoOwner, repo, prNumber, []string{"dba"}).
		Return(errors.New("user can not be assigned"))

	filters := mustFilters(t, &cfg.LabelPatterns{Label: "database", Patterns: []string{"migrations/*"}})

	l := newTestLabeler(t, clt, filters)
	require.NoError(t, l.Run(context.Background(), prNumber))
}

func TestRunFailsWhenAddingLabelsFails(t *testing.T) {
	mockctrl := gomock.NewController(t)
	clt := mocks.NewMockAPI(mockctrl)

	mockPullRequest(clt, "services/web/index.html")

	clt.EXPECT().
		FileContent(gomock.Any(), repoOwner, repo, "CODEOWNERS", "feature").
		Return([]byte(testCodeOwners), nil)

	clt.EXPECT().
		RepositoryLabels(gomock.Any(), repoOwner, repo).
		Return([]*githubclt.Label{{Name: "services/web"}}, nil)

	clt.EXPECT().
		AddLabels(gomock.Any(), repoOwner, repo, prNumber, gomock.Any()).
		Return(errors.New("error"))

	l := newTestLabeler(t, clt, nil)
	assert.Error(t, l.Run(context.Background(), prNumber))
}
