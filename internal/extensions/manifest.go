// Package extensions defines the extension manifest model and its loader.
// An extension directory declares itself through one of composer.json,
// extension.yaml or extension.toml.
package extensions

import (
	"fmt"
	"strings"
)

// DefaultType is the manifest type identifying a board extension.
const DefaultType = "phpbb-extension"

// ManifestNotFoundError indicates that no manifest file exists in a directory.
type ManifestNotFoundError struct {
	Dir   string
	Tried []string
}

func (e *ManifestNotFoundError) Error() string {
	return fmt.Sprintf("extension manifest not found in %s", e.Dir)
}

// Suggestion returns a helpful message with a manifest template.
func (e *ManifestNotFoundError) Suggestion() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "No extension manifest found in: %s\n", e.Dir)
	if len(e.Tried) > 0 {
		fmt.Fprintf(&sb, "Looked for: %s\n", strings.Join(e.Tried, ", "))
	}
	sb.WriteString("\nA manifest is required. The composer.json form:\n\n")
	sb.WriteString("  {\n")
	sb.WriteString("    \"name\": \"vendor/name\",\n")
	sb.WriteString("    \"type\": \"phpbb-extension\",\n")
	sb.WriteString("    \"version\": \"1.0.0\",\n")
	sb.WriteString("    \"description\": \"What this extension does\"\n")
	sb.WriteString("  }\n")

	return sb.String()
}

// ManifestParseError indicates that a manifest file has invalid syntax or structure.
type ManifestParseError struct {
	Path string
	Err  error
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("failed to parse manifest at %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ManifestParseError) Unwrap() error {
	return e.Err
}

// ManifestValidationError indicates that required fields are missing or wrong.
type ManifestValidationError struct {
	Path          string
	MissingFields []string
}

func (e *ManifestValidationError) Error() string {
	return fmt.Sprintf("invalid manifest at %s: missing required fields: %s",
		e.Path, strings.Join(e.MissingFields, ", "))
}

// Suggestion returns guidance on fixing validation errors.
func (e *ManifestValidationError) Suggestion() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Manifest validation failed: %s\n\n", e.Path)
	sb.WriteString("Missing required fields:\n")
	for _, field := range e.MissingFields {
		fmt.Fprintf(&sb, "  - %s\n", field)
	}
	sb.WriteString("\nEvery extension manifest must include:\n")
	sb.WriteString("  - name: the vendor/name extension identifier\n")
	sb.WriteString("  - version: the extension version (e.g. 1.0.0)\n")

	return sb.String()
}

// Manifest describes one extension. The same fields are accepted from
// composer.json, extension.yaml and extension.toml.
type Manifest struct {
	// Name is the vendor/name identifier and must match the directory the
	// extension lives in.
	Name        string `json:"name" yaml:"name" toml:"name"`
	Type        string `json:"type" yaml:"type" toml:"type"`
	Version     string `json:"version" yaml:"version" toml:"version"`
	Description string `json:"description" yaml:"description" toml:"description"`
	License     string `json:"license" yaml:"license" toml:"license"`
}

// Validate ensures all required fields are present.
// Returns an error listing all missing fields if validation fails.
func (m *Manifest) Validate() error {
	var missingFields []string

	if m.Name == "" {
		missingFields = append(missingFields, "name")
	}
	if m.Version == "" {
		missingFields = append(missingFields, "version")
	}

	if len(missingFields) > 0 {
		return &ManifestValidationError{
			MissingFields: missingFields,
		}
	}

	return nil
}
