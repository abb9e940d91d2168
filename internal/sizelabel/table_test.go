package sizelabel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableIsValid(t *testing.T) {
	assert.NoError(t, DefaultTable.Validate())
}

func TestFor(t *testing.T) {
	tcs := []struct {
		changedLines int
		label        string
	}{
		{0, "XS"},
		{19, "XS"},
		{20, "S"},
		{49, "S"},
		{50, "M"},
		{99, "M"},
		{100, "L"},
		{499, "L"},
		{500, "XL"},
		{999, "XL"},
		{1000, "XXL"},
		{250000, "XXL"},
	}

	for _, tc := range tcs {
		size, found := DefaultTable.For(tc.changedLines)
		require.True(t, found, tc.changedLines)
		assert.Equal(t, tc.label, size.Label, tc.changedLines)
	}
}

func TestForNegative(t *testing.T) {
	_, found := DefaultTable.For(-1)
	assert.False(t, found)
}

func TestValidate(t *testing.T) {
	assert.Error(t, Table{}.Validate())

	assert.Error(t, Table{{Label: "A", Min: 1, Max: 5}}.Validate())

	assert.Error(t, Table{
		{Label: "A", Min: 0, Max: 5},
		{Label: "B", Min: 6, Max: 10},
	}.Validate(), "gap")

	assert.Error(t, Table{
		{Label: "A", Min: 0, Max: 5},
		{Label: "B", Min: 4, Max: 10},
	}.Validate(), "overlap")

	assert.Error(t, Table{
		{Label: "A", Min: 0, Max: 5},
		{Label: "A", Min: 5, Max: 10},
	}.Validate(), "duplicate")

	assert.Error(t, Table{{Label: "A", Min: 0, Max: 0}}.Validate(), "empty")
}

func TestIsSizeLabel(t *testing.T) {
	assert.True(t, DefaultTable.IsSizeLabel("XXL"))
	assert.False(t, DefaultTable.IsSizeLabel("xxl"))
	assert.False(t, DefaultTable.IsSizeLabel("bug"))
}
