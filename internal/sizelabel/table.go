// Package sizelabel labels pull requests by the number of changed lines.
package sizelabel

import (
	"errors"
	"fmt"
	"math"
)

// Size is a size label with the range [Min, Max) of changed lines it is
// assigned for.
type Size struct {
	Label string
	Min   int
	Max   int
	Color string
}

// Table is a list of sizes, ordered by their ranges.
type Table []Size

// DefaultTable contains the size labels XS to XXL.
var DefaultTable = Table{
	{Label: "XS", Min: 0, Max: 20, Color: "388E3C"},
	{Label: "S", Min: 20, Max: 50, Color: "4CAF50"},
	{Label: "M", Min: 50, Max: 100, Color: "FFEB3B"},
	{Label: "L", Min: 100, Max: 500, Color: "FF9800"},
	{Label: "XL", Min: 500, Max: 1000, Color: "F44336"},
	{Label: "XXL", Min: 1000, Max: math.MaxInt, Color: "B71C1C"},
}

// Validate returns an error if the ranges of the table are not contiguous,
// start at 0 or overlap.
func (t Table) Validate() error {
	if len(t) == 0 {
		return errors.New("table is empty")
	}

	if t[0].Min != 0 {
		return fmt.Errorf("range of %q must start at 0", t[0].Label)
	}

	labels := make(map[string]struct{}, len(t))

	for i, s := range t {
		if s.Min >= s.Max {
			return fmt.Errorf("range of %q is empty", s.Label)
		}

		if _, exists := labels[s.Label]; exists {
			return fmt.Errorf("label %q is defined multiple times", s.Label)
		}
		labels[s.Label] = struct{}{}

		if i > 0 && t[i-1].Max != s.Min {
			return fmt.Errorf("ranges of %q and %q are not contiguous", t[i-1].Label, s.Label)
		}
	}

	return nil
}

// For returns the size for changedLines.
func (t Table) For(changedLines int) (*Size, bool) {
	for i := range t {
		if changedLines >= t[i].Min && changedLines < t[i].Max {
			return &t[i], true
		}
	}

	return nil, false
}

// IsSizeLabel returns true if label is one of the labels of the table.
func (t Table) IsSizeLabel(label string) bool {
	for _, s := range t {
		if s.Label == label {
			return true
		}
	}

	return false
}
