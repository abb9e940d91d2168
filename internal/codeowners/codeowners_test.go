package codeowners

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFile = `
# global owners
*                 @lead

/services/api/    @alice @bob
services/web      @carol
docs              @bob   @dave
invalid-line-without-owner
`

func parse(t *testing.T, content string) *Owners {
	t.Helper()

	o, err := Parse(strings.NewReader(content))
	require.NoError(t, err)

	return o
}

func TestParse(t *testing.T) {
	o := parse(t, testFile)

	assert.Equal(t, []string{"*", "services/api", "services/web", "docs"}, o.Paths())
	assert.Equal(t, []string{"alice", "bob"}, o.Of("services/api"))
	assert.Equal(t, []string{"bob", "dave"}, o.Of("docs"))
	assert.False(t, o.Has("invalid-line-without-owner"))
}

func TestAssigneesFor(t *testing.T) {
	o := parse(t, testFile)

	assert.Equal(t, []string{"alice", "bob"}, o.AssigneesFor("services/api/main.go"))
	assert.Equal(t, []string{"alice", "bob"}, o.AssigneesFor("services/api/v1/handler/x.go"))
	assert.Equal(t, []string{"carol"}, o.AssigneesFor("services/web"))
	assert.Equal(t, []string{"lead"}, o.AssigneesFor("Makefile"))
}

func TestAssigneesForWithoutWildcardEntry(t *testing.T) {
	o := parse(t, "docs @bob\n")

	assert.Empty(t, o.AssigneesFor("Makefile"))
}

func TestCommonAssigneesIntersection(t *testing.T) {
	o := parse(t, "a @A @B\nb @B @C\n")

	assert.Equal(t, []string{"B"}, o.CommonAssignees([]string{"a/x.go", "b/y.go"}))
}

func TestCommonAssigneesWithoutOverlapReturnsAll(t *testing.T) {
	o := parse(t, "a @A\nb @C\n")

	assert.Equal(t, []string{"A", "C"}, o.CommonAssignees([]string{"a/x.go", "b/y.go"}))
}

func TestCommonAssigneesWithoutFiles(t *testing.T) {
	o := parse(t, testFile)

	assert.Empty(t, o.CommonAssignees(nil))
}

func TestOwnersOfPrefixes(t *testing.T) {
	o := parse(t, testFile)

	owners := o.OwnersOfPrefixes([]string{"services/api/main.go", "docs/index.md"})
	assert.Equal(t, []string{"alice", "bob", "dave"}, owners)

	assert.Empty(t, o.OwnersOfPrefixes([]string{"Makefile"}))
}

func TestEmpty(t *testing.T) {
	o := Empty()

	assert.Empty(t, o.Paths())
	assert.Empty(t, o.AssigneesFor("a/b"))
	assert.Empty(t, o.CommonAssignees([]string{"a/b"}))
}
