// Package registry reports which extensions exist on disk and tracks their
// enabled state in the phpbb-ext configuration file.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/opensource-hub/phpbb-core/internal/config"
	"github.com/opensource-hub/phpbb-core/internal/core"
	"github.com/opensource-hub/phpbb-core/internal/extensions"
)

// OperationError is the domain error raised by enable/disable operations.
// It carries structured parameters (operation, extension) that callers log
// alongside the message.
type OperationError struct {
	Op   string // "enable" or "disable"
	Name string
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("cannot %s extension %q: %v", e.Op, e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// Params returns the structured parameters for sink logging.
func (e *OperationError) Params() []any {
	return []any{"op", e.Op, "extension", e.Name}
}

// Registry exposes the availability and enabled state of the extensions of
// one board installation.
type Registry struct {
	cfg        *config.Config
	configPath string
	updater    ConfigUpdater
}

// New creates a Registry over the given configuration. The updater persists
// enabled-state changes; pass nil for the default YAML updater.
func New(cfg *config.Config, configPath string, updater ConfigUpdater) *Registry {
	if updater == nil {
		updater = NewDefaultConfigUpdater()
	}
	return &Registry{cfg: cfg, configPath: configPath, updater: updater}
}

// AllAvailable returns the manifest of every extension present on disk,
// keyed by vendor/name identifier. Directories without a loadable manifest
// and migration backup directories are skipped.
func (r *Registry) AllAvailable() (map[string]*extensions.Manifest, error) {
	extPath := r.cfg.ExtPath()

	vendors, err := os.ReadDir(extPath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*extensions.Manifest{}, nil
		}
		return nil, fmt.Errorf("failed to read extensions directory %q: %w", extPath, err)
	}

	available := make(map[string]*extensions.Manifest)
	for _, vendor := range vendors {
		if !vendor.IsDir() {
			continue
		}
		names, err := os.ReadDir(filepath.Join(extPath, vendor.Name()))
		if err != nil {
			continue
		}
		for _, name := range names {
			if !name.IsDir() || strings.HasSuffix(name.Name(), core.BackupSuffix) {
				continue
			}
			id := vendor.Name() + "/" + name.Name()
			manifest, err := extensions.LoadManifestFn(filepath.Join(extPath, vendor.Name(), name.Name()))
			if err != nil {
				continue
			}
			available[id] = manifest
		}
	}
	return available, nil
}

// IsAvailable reports whether the extension exists on disk with a loadable
// manifest.
func (r *Registry) IsAvailable(id string) bool {
	path, err := r.ExtensionPath(id, true)
	if err != nil {
		return false
	}
	_, err = extensions.LoadManifestFn(path)
	return err == nil
}

// IsEnabled reports whether the extension is currently enabled.
func (r *Registry) IsEnabled(id string) bool {
	return slices.Contains(r.cfg.Enabled, id)
}

// Enabling reports whether an enable for the extension is in progress
// (recorded but never completed, e.g. after an interrupted run).
func (r *Registry) Enabling(id string) bool {
	return slices.Contains(r.cfg.Enabling, id)
}

// Enable marks the extension enabled. The identifier is first written to the
// enabling list, then moved to the enabled list, so an interruption between
// the two writes is observable via Enabling.
func (r *Registry) Enable(id string) error {
	if !r.IsAvailable(id) {
		return &OperationError{Op: "enable", Name: id, Err: fmt.Errorf("extension is not available")}
	}
	if r.IsEnabled(id) {
		return nil
	}

	enabling := appendUnique(r.cfg.Enabling, id)
	if err := r.updater.SetList(r.configPath, "enabling", enabling); err != nil {
		return &OperationError{Op: "enable", Name: id, Err: err}
	}
	r.cfg.Enabling = enabling

	enabled := appendUnique(r.cfg.Enabled, id)
	if err := r.updater.SetList(r.configPath, "enabled", enabled); err != nil {
		return &OperationError{Op: "enable", Name: id, Err: err}
	}
	r.cfg.Enabled = enabled

	enabling = remove(r.cfg.Enabling, id)
	if err := r.updater.SetList(r.configPath, "enabling", enabling); err != nil {
		return &OperationError{Op: "enable", Name: id, Err: err}
	}
	r.cfg.Enabling = enabling

	return nil
}

// Disable removes the extension from the enabled list. Disabling an already
// disabled extension is a no-op.
func (r *Registry) Disable(id string) error {
	if !r.IsEnabled(id) && !r.Enabling(id) {
		return nil
	}

	enabled := remove(r.cfg.Enabled, id)
	if err := r.updater.SetList(r.configPath, "enabled", enabled); err != nil {
		return &OperationError{Op: "disable", Name: id, Err: err}
	}
	r.cfg.Enabled = enabled

	if r.Enabling(id) {
		enabling := remove(r.cfg.Enabling, id)
		if err := r.updater.SetList(r.configPath, "enabling", enabling); err != nil {
			return &OperationError{Op: "disable", Name: id, Err: err}
		}
		r.cfg.Enabling = enabling
	}

	return nil
}

// ExtensionPath resolves the on-disk directory of the extension. With
// mustExist set, a missing directory is an error.
func (r *Registry) ExtensionPath(id string, mustExist bool) (string, error) {
	if !config.ValidID(id) {
		return "", fmt.Errorf("invalid extension identifier %q", id)
	}

	path := filepath.Join(r.cfg.ExtPath(), filepath.FromSlash(id))
	if mustExist {
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("extension %q has no directory at %q: %w", id, path, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("extension path %q is not a directory", path)
		}
	}
	return path, nil
}

func appendUnique(list []string, id string) []string {
	if slices.Contains(list, id) {
		return list
	}
	out := make([]string, len(list), len(list)+1)
	copy(out, list)
	return append(out, id)
}

func remove(list []string, id string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
