package registry

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/opensource-hub/phpbb-core/internal/config"
	"github.com/opensource-hub/phpbb-core/internal/core"
)

// ConfigUpdater persists the enabled-state lists of the configuration file.
type ConfigUpdater interface {
	// SetList replaces the top-level string list named key in the config at
	// path with ids.
	SetList(path, key string, ids []string) error
}

// DefaultYAMLMarshaler marshals YAML with 2-space indentation for both maps
// and sequences.
type DefaultYAMLMarshaler struct{}

// Marshal marshals v with consistent indentation.
func (m *DefaultYAMLMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
}

// DefaultConfigUpdater implements ConfigUpdater with surgical YAML section
// replacement so comments and formatting elsewhere in the file survive.
type DefaultConfigUpdater struct {
	marshaler core.Marshaler
}

// NewDefaultConfigUpdater creates a DefaultConfigUpdater with the default
// marshaler.
func NewDefaultConfigUpdater() *DefaultConfigUpdater {
	return &DefaultConfigUpdater{marshaler: &DefaultYAMLMarshaler{}}
}

// SetList replaces the named top-level list in the YAML config at path.
// An empty list is written as "key: []" so the key remains visible.
func (u *DefaultConfigUpdater) SetList(path, key string, ids []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %q: %w", path, err)
	}

	var replacement string
	if len(ids) == 0 {
		replacement = key + ": []"
	} else {
		sectionBytes, err := u.marshaler.Marshal(map[string][]string{key: ids})
		if err != nil {
			return fmt.Errorf("failed to marshal %s section: %w", key, err)
		}
		replacement = strings.TrimRight(string(sectionBytes), "\n")
	}

	result, replaced := replaceYAMLSection(string(data), key, replacement)
	if !replaced {
		// Key not found; append the new section at the end.
		original := strings.TrimRight(string(data), "\n")
		result = original + "\n" + replacement + "\n"
	}

	if err := os.WriteFile(path, []byte(result), config.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config %q: %w", path, err)
	}
	return nil
}

// replaceYAMLSection replaces a top-level YAML key and its indented block in
// content with the given replacement text. It returns the updated content and
// true if the key was found and replaced, or the original content and false
// if the key was not present.
func replaceYAMLSection(content, key, replacement string) (string, bool) {
	lines := strings.Split(content, "\n")
	prefix := key + ":"

	startIdx := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		// Match only top-level keys (no leading whitespace) that start with
		// the key name followed by a colon.
		if len(line) > 0 && line[0] != ' ' && line[0] != '\t' &&
			(trimmed == prefix || strings.HasPrefix(trimmed, prefix+" ") || strings.HasPrefix(trimmed, prefix+"\n")) {
			startIdx = i
			break
		}
	}

	if startIdx == -1 {
		return content, false
	}

	// Determine the end of the section: all subsequent lines that are indented
	// or blank belong to this section. A non-indented, non-blank line marks
	// the start of the next section.
	endIdx := startIdx + 1
	for endIdx < len(lines) {
		line := lines[endIdx]
		if line == "" || strings.TrimSpace(line) == "" {
			// Blank lines might be part of the section or a separator.
			// Look ahead to see if the next non-blank line is still indented.
			ahead := endIdx + 1
			for ahead < len(lines) && strings.TrimSpace(lines[ahead]) == "" {
				ahead++
			}
			if ahead < len(lines) && len(lines[ahead]) > 0 && (lines[ahead][0] == ' ' || lines[ahead][0] == '\t') {
				// Still inside the section.
				endIdx = ahead + 1
				continue
			}
			// Blank line(s) followed by a top-level key or EOF: section ends here.
			break
		}
		if line[0] != ' ' && line[0] != '\t' {
			// Next top-level key: section ends before this line.
			break
		}
		endIdx++
	}

	// Build the result: lines before the section + replacement + lines after.
	var result strings.Builder
	for i := 0; i < startIdx; i++ {
		result.WriteString(lines[i])
		result.WriteString("\n")
	}
	result.WriteString(replacement)
	result.WriteString("\n")
	for i := endIdx; i < len(lines); i++ {
		result.WriteString(lines[i])
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}

	return result.String(), true
}
