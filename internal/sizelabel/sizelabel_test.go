package sizelabel

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/prkeeper/internal/githubclt"
	"github.com/simplesurance/prkeeper/internal/githubclt/mocks"
)

const (
	repoOwner = "testman"
	repo      = "repo"
	prNumber  = 3
)

func newTestLabeler(t *testing.T, clt githubclt.API) *Labeler {
	t.Helper()

	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	l, err := New(clt, repoOwner, repo, DefaultTable, nil)
	require.NoError(t, err)

	return l
}

func mockChangedLines(clt *mocks.MockAPI, additions, deletions int) {
	clt.EXPECT().
		ChangedFiles(gomock.Any(), repoOwner, repo, prNumber).
		Return([]*githubclt.ChangedFile{
			{Name: "a.go", Additions: additions},
			{Name: "b.go", Deletions: deletions},
		}, nil)
}

func TestRunReplacesOutdatedSizeLabel(t *testing.T) {
	mockctrl := gomock.NewController(t)
	clt := mocks.NewMockAPI(mockctrl)

	mockChangedLines(clt, 15, 10)

	clt.EXPECT().
		IssueLabels(gomock.Any(), repoOwner, repo, prNumber).
		Return([]string{"bug", "XS"}, nil)

	clt.EXPECT().
		RemoveLabel(gomock.Any(), repoOwner, repo, prNumber, "XS").
		Return(nil)

	clt.EXPECT().
		RepositoryLabels(gomock.Any(), repoOwner, repo).
		Return([]*githubclt.Label{{Name: "S", Color: "4caf50"}, {Name: "XS", Color: "388E3C"}}, nil)

	clt.EXPECT().
		AddLabels(gomock.Any(), repoOwner, repo, prNumber, []string{"S"}).
		Return(nil)

	l := newTestLabeler(t, clt)
	require.NoError(t, l.Run(context.Background(), prNumber))
}

func TestRunLabelAlreadyAssigned(t *testing.T) {
	mockctrl := gomock.NewController(t)
	clt := mocks.NewMockAPI(mockctrl)

	mockChangedLines(clt, 1000, 0)

	clt.EXPECT().
		IssueLabels(gomock.Any(), repoOwner, repo, prNumber).
		Return([]string{"XXL"}, nil)

	l := newTestLabeler(t, clt)
	require.NoError(t, l.Run(context.Background(), prNumber))
}

func TestRunCreatesMissingLabel(t *testing.T) {
	mockctrl := gomock.NewController(t)
	clt := mocks.NewMockAPI(mockctrl)

	mockChangedLines(clt, 40, 20)

	clt.EXPECT().
		IssueLabels(gomock.Any(), repoOwner, repo, prNumber).
		Return(nil, nil)

	clt.EXPECT().
		RepositoryLabels(gomock.Any(), repoOwner, repo).
		Return(nil, nil)

	clt.EXPECT().
		CreateLabel(gomock.Any(), repoOwner, repo, "M", "FFEB3B", "").
		Return(nil)

	clt.EXPECT().
		AddLabels(gomock.Any(), repoOwner, repo, prNumber, []string{"M"}).
		Return(nil)

	l := newTestLabeler(t, clt)
	require.NoError(t, l.Run(context.Background(), prNumber))
}

func TestRunFixesLabelColor(t *testing.T) {
	mockctrl := gomock.NewController(t)
	clt := mocks.NewMockAPI(mockctrl)

	mockChangedLines(clt, 100, 0)

	clt.EXPECT().
		IssueLabels(gomock.Any(), repoOwner, repo, prNumber).
		Return(nil, nil)

	clt.EXPECT().
		RepositoryLabels(gomock.Any(), repoOwner, repo).
		Return([]*githubclt.Label{{Name: "L", Color: "000000"}}, nil)

	clt.EXPECT().
		UpdateLabelColor(gomock.Any(), repoOwner, repo, "L", "FF9800").
		Return(nil)

	clt.EXPECT().
		AddLabels(gomock.Any(), repoOwner, repo, prNumber, []string{"L"}).
		Return(nil)

	l := newTestLabeler(t, clt)
	require.NoError(t, l.Run(context.Background(), prNumber))
}
