package extensions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// manifestFiles lists the recognized manifest file names in lookup order.
// composer.json is the canonical form; the yaml and toml variants exist for
// extensions maintained outside a composer workflow.
var manifestFiles = []string{"composer.json", "extension.yaml", "extension.toml"}

// LoadManifestFn loads a manifest from an extension directory. Package-level
// variable so tests can substitute failures.
var LoadManifestFn = loadManifest

// loadManifest loads and validates the first recognized manifest file in dir.
// Returns context-aware errors for common failure scenarios.
func loadManifest(dir string) (*Manifest, error) {
	for _, name := range manifestFiles {
		path := filepath.Join(dir, name)

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read manifest at %q: %w", path, err)
		}

		manifest, err := decodeManifest(name, data)
		if err != nil {
			return nil, &ManifestParseError{Path: path, Err: err}
		}

		if manifest.Type == "" {
			manifest.Type = DefaultType
		}

		if err := manifest.Validate(); err != nil {
			// If it's already our custom error type, add the path
			var valErr *ManifestValidationError
			if errors.As(err, &valErr) {
				valErr.Path = path
				return nil, valErr
			}
			return nil, fmt.Errorf("invalid manifest at %q: %w", path, err)
		}

		return manifest, nil
	}

	return nil, &ManifestNotFoundError{Dir: dir, Tried: manifestFiles}
}

// decodeManifest decodes manifest data according to the file name extension.
func decodeManifest(name string, data []byte) (*Manifest, error) {
	var manifest Manifest

	switch filepath.Ext(name) {
	case ".json":
		if err := json.Unmarshal(data, &manifest); err != nil {
			return nil, err
		}
	case ".yaml":
		decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := decoder.Decode(&manifest); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &manifest); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", name)
	}

	return &manifest, nil
}
