// Package labeler assigns labels and owners to pull requests based on the
// changed files.
package labeler

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/simplesurance/prkeeper/internal/cfg"
	"github.com/simplesurance/prkeeper/internal/codeowners"
)

type filter struct {
	label    string
	patterns []glob.Glob
}

// Filters is an ordered list of labels with the glob patterns of the file
// paths that cause the label to be assigned.
// "*" in a pattern also matches "/".
type Filters struct {
	filters []*filter
}

// NewFilters compiles the patterns of the label filters.
func NewFilters(labelPatterns []*cfg.LabelPatterns) (*Filters, error) {
	result := Filters{filters: make([]*filter, 0, len(labelPatterns))}

	for _, lp := range labelPatterns {
		f := filter{label: lp.Label}

		for _, p := range lp.Patterns {
			g, err := glob.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("label %q: compiling pattern %q failed: %w", lp.Label, p, err)
			}

			f.patterns = append(f.patterns, g)
		}

		result.filters = append(result.filters, &f)
	}

	return &result, nil
}

// Match returns the first label that has a pattern matching path.
func (f *Filters) Match(path string) (string, bool) {
	if f == nil {
		return "", false
	}

	for _, flt := range f.filters {
		for _, g := range flt.patterns {
			if g.Match(path) {
				return flt.label, true
			}
		}
	}

	return "", false
}

// Resolve returns the labels for the changed files.
//
// When a file matches a filter pattern, only the label of that filter is
// returned. Otherwise every file contributes the longest parent path, or the
// path itself, that is an entry in the CODEOWNERS file.
// The returned labels are unique and have the order of their first
// occurrence.
func Resolve(files []string, filters *Filters, owners *codeowners.Owners) []string {
	var result []string
	seen := map[string]struct{}{}

	for _, file := range files {
		if label, ok := filters.Match(file); ok {
			return []string{label}
		}

		label, ok := ownedPrefix(file, owners)
		if !ok {
			continue
		}

		if _, exists := seen[label]; exists {
			continue
		}

		seen[label] = struct{}{}
		result = append(result, label)
	}

	return result
}

func ownedPrefix(file string, owners *codeowners.Owners) (string, bool) {
	segments := strings.Split(file, "/")

	for i := len(segments); i > 0; i-- {
		p := strings.Join(segments[:i], "/")
		if owners.Has(p) {
			return p, true
		}
	}

	return "", false
}
