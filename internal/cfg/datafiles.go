package cfg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LabelPatterns are the glob patterns that cause Label to be assigned.
type LabelPatterns struct {
	Label    string
	Patterns []string
}

type slackMappingFile struct {
	Mappings map[string]string `json:"mappings"`
}

type workflowsFile struct {
	RequiredWorkflows []string `json:"required_workflows"`
}

// readOptionalFile returns the content of path.
// If the file does not exist a warning is logged and nil is returned.
func readOptionalFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			zap.L().Named("cfg").Warn(
				"data file does not exist, continuing with empty value",
				zap.String("path", path),
			)
			return nil, nil
		}

		return nil, err
	}

	return data, nil
}

// LoadSlackMapping reads the GitHub login to Slack member ID mapping from a
// JSON file in the format {"mappings": {"<login>": "<slack-id>"}}.
func LoadSlackMapping(path string) (map[string]string, error) {
	data, err := readOptionalFile(path)
	if err != nil {
		return nil, err
	}

	result := map[string]string{}
	if data == nil {
		return result, nil
	}

	var f slackMappingFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s failed: %w", path, err)
	}

	for k, v := range f.Mappings {
		result[k] = v
	}

	return result, nil
}

// LoadRequiredWorkflows reads the names of the check runs that must succeed
// from a JSON file in the format {"required_workflows": ["<name>", ...]}.
func LoadRequiredWorkflows(path string) ([]string, error) {
	data, err := readOptionalFile(path)
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, nil
	}

	var f workflowsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s failed: %w", path, err)
	}

	return f.RequiredWorkflows, nil
}

// LoadLabelFilters reads the label filters from a YAML file.
// Each key is a label, its value a glob pattern or a list of glob patterns.
// The returned slice has the order of the document.
func LoadLabelFilters(path string) ([]*LabelPatterns, error) {
	data, err := readOptionalFile(path)
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, nil
	}

	result, err := ParseLabelFilters(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s failed: %w", path, err)
	}

	return result, nil
}

// ParseLabelFilters parses the YAML label filter document in data.
func ParseLabelFilters(data []byte) ([]*LabelPatterns, error) {
	var doc yaml.Node

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("expected a yaml document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of labels to patterns", root.Line)
	}

	result := make([]*LabelPatterns, 0, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		val := root.Content[i+1]

		lp := LabelPatterns{Label: key.Value}
		if lp.Label == "" {
			return nil, fmt.Errorf("line %d: label is empty", key.Line)
		}

		switch val.Kind {
		case yaml.ScalarNode:
			lp.Patterns = []string{val.Value}

		case yaml.SequenceNode:
			if err := val.Decode(&lp.Patterns); err != nil {
				return nil, fmt.Errorf("line %d: patterns of label %q: %w", val.Line, lp.Label, err)
			}

		default:
			return nil, fmt.Errorf("line %d: patterns of label %q must be a string or a list of strings", val.Line, lp.Label)
		}

		result = append(result, &lp)
	}

	return result, nil
}
