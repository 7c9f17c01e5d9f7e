package composer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/opensource-hub/phpbb-core/internal/core"
	"github.com/tidwall/sjson"
)

// emptyManifest is the baseline content for a board without managed
// extensions yet.
const emptyManifest = "{\n  \"require\": {},\n  \"installed\": {}\n}\n"

// Store maintains the managed-packages manifest: the require constraints and
// installed versions of every extension owned by the installer. Edits go
// through sjson so hand-made formatting in the manifest survives.
type Store struct {
	path string
	data []byte

	require   map[string]string
	installed map[string]string
}

// manifestShape mirrors the JSON layout for decoding.
type manifestShape struct {
	Require   map[string]string `json:"require"`
	Installed map[string]string `json:"installed"`
}

// LoadStore reads the managed-packages manifest at path. A missing file
// yields an empty store that will create the manifest on first save.
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte(emptyManifest)
		} else {
			return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
		}
	}

	var shape manifestShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}
	if shape.Require == nil {
		shape.Require = map[string]string{}
	}
	if shape.Installed == nil {
		shape.Installed = map[string]string{}
	}

	return &Store{
		path:      path,
		data:      data,
		require:   shape.Require,
		installed: shape.Installed,
	}, nil
}

// IsManaged reports whether the extension is recorded in the manifest.
func (s *Store) IsManaged(id string) bool {
	_, ok := s.require[id]
	return ok
}

// Managed returns the identifiers of all managed extensions.
func (s *Store) Managed() []string {
	ids := make([]string, 0, len(s.require))
	for id := range s.require {
		ids = append(ids, id)
	}
	return ids
}

// InstalledVersion returns the recorded installed version of the extension,
// or the empty string if it is not managed.
func (s *Store) InstalledVersion(id string) string {
	return s.installed[id]
}

// SetPackage records the constraint and installed version of an extension
// and persists the manifest.
func (s *Store) SetPackage(id, constraint, version string) error {
	data, err := sjson.SetBytes(s.data, "require."+id, constraint)
	if err != nil {
		return fmt.Errorf("failed to record requirement for %q: %w", id, err)
	}
	data, err = sjson.SetBytes(data, "installed."+id, version)
	if err != nil {
		return fmt.Errorf("failed to record installed version for %q: %w", id, err)
	}

	if err := s.write(data); err != nil {
		return err
	}
	s.require[id] = constraint
	s.installed[id] = version
	return nil
}

// RemovePackage drops an extension from the manifest and persists it.
func (s *Store) RemovePackage(id string) error {
	data, err := sjson.DeleteBytes(s.data, "require."+id)
	if err != nil {
		return fmt.Errorf("failed to drop requirement for %q: %w", id, err)
	}
	data, err = sjson.DeleteBytes(data, "installed."+id)
	if err != nil {
		return fmt.Errorf("failed to drop installed version for %q: %w", id, err)
	}

	if err := s.write(data); err != nil {
		return err
	}
	delete(s.require, id)
	delete(s.installed, id)
	return nil
}

func (s *Store) write(data []byte) error {
	if err := os.WriteFile(s.path, data, core.PermFileDefault); err != nil {
		return fmt.Errorf("failed to write manifest %q: %w", s.path, err)
	}
	s.data = data
	return nil
}
