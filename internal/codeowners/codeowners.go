// Package codeowners parses CODEOWNERS files and resolves the owners of
// changed files.
package codeowners

import (
	"bufio"
	"io"
	"regexp"
	"sort"
	"strings"
)

var lineRe = regexp.MustCompile(`^(\S+)\s+(@[\w-]+(?:\s+@[\w-]+)*)`)

// Owners maps paths to the handles of their owners.
// Paths have no leading and trailing slashes, handles no leading "@".
// The order of the entries is the order of the CODEOWNERS file.
type Owners struct {
	paths  []string
	owners map[string][]string
}

// Parse reads a CODEOWNERS file.
// Empty lines, comments and lines without an owner are ignored.
// If a path is listed multiple times, the last entry wins.
func Parse(r io.Reader) (*Owners, error) {
	result := Owners{owners: map[string][]string{}}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		path := normalizePath(m[1])
		if path == "" {
			continue
		}

		var handles []string
		for _, h := range strings.Fields(m[2]) {
			handles = append(handles, strings.TrimPrefix(h, "@"))
		}

		if _, exists := result.owners[path]; !exists {
			result.paths = append(result.paths, path)
		}

		result.owners[path] = handles
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return &result, nil
}

// Empty returns an Owners without entries.
func Empty() *Owners {
	return &Owners{owners: map[string][]string{}}
}

func normalizePath(p string) string {
	p = strings.TrimPrefix(p, "/")
	p = strings.TrimSuffix(p, "/")
	return p
}

// Paths returns the paths in the order of the CODEOWNERS file.
func (o *Owners) Paths() []string {
	return append([]string(nil), o.paths...)
}

// Has returns true if path is an entry of the CODEOWNERS file.
func (o *Owners) Has(path string) bool {
	_, exists := o.owners[path]
	return exists
}

// Of returns the owners of an exact path entry.
func (o *Owners) Of(path string) []string {
	return o.owners[path]
}

// AssigneesFor returns the owners of path.
// An exact entry is preferred, then the entry of the longest parent
// directory and then the "*" entry.
func (o *Owners) AssigneesFor(path string) []string {
	path = normalizePath(path)

	for p := path; p != ""; p = parentDir(p) {
		if owners, exists := o.owners[p]; exists {
			return owners
		}
	}

	return o.owners["*"]
}

// parentDir returns p without its last path segment, "" if p has only one
// segment.
func parentDir(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx == -1 {
		return ""
	}

	return p[:idx]
}

// CommonAssignees returns the sorted owners that own all files.
// If no owner owns all files, all handles of the CODEOWNERS file are
// returned.
func (o *Owners) CommonAssignees(files []string) []string {
	if len(files) == 0 {
		return nil
	}

	var common map[string]struct{}

	for _, f := range files {
		owners := toSet(o.AssigneesFor(f))

		if common == nil {
			common = owners
			continue
		}

		for h := range common {
			if _, exists := owners[h]; !exists {
				delete(common, h)
			}
		}
	}

	if len(common) > 0 {
		return sortedKeys(common)
	}

	return o.allHandles()
}

// OwnersOfPrefixes returns the sorted owners of all paths that are a prefix
// of one of the files.
func (o *Owners) OwnersOfPrefixes(files []string) []string {
	result := map[string]struct{}{}

	for _, p := range o.paths {
		for _, f := range files {
			if strings.HasPrefix(f, p) {
				for _, h := range o.owners[p] {
					result[h] = struct{}{}
				}
				break
			}
		}
	}

	return sortedKeys(result)
}

func (o *Owners) allHandles() []string {
	result := map[string]struct{}{}
	for _, handles := range o.owners {
		for _, h := range handles {
			result[h] = struct{}{}
		}
	}

	return sortedKeys(result)
}

func toSet(sl []string) map[string]struct{} {
	result := make(map[string]struct{}, len(sl))
	for _, s := range sl {
		result[s] = struct{}{}
	}

	return result
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}

	result := make([]string, 0, len(m))
	for k := range m {
		result = append(result, k)
	}

	sort.Strings(result)

	return result
}
