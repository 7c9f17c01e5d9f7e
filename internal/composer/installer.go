package composer

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/opensource-hub/phpbb-core/internal/config"
	"github.com/opensource-hub/phpbb-core/internal/core"
	"github.com/opensource-hub/phpbb-core/internal/extensions"
	"github.com/opensource-hub/phpbb-core/internal/iosink"
	"github.com/opensource-hub/phpbb-core/internal/semver"
)

// InstallError reports a failure while materializing a single package.
type InstallError struct {
	Name string
	Err  error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("failed to install %q: %v", e.Name, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// PackageMissingError reports that a package has no copy in the local
// package mirror to install from.
type PackageMissingError struct {
	Name string
	Dir  string
}

func (e *PackageMissingError) Error() string {
	return fmt.Sprintf("package %q not found in %q", e.Name, e.Dir)
}

func (e *PackageMissingError) Suggestion() string {
	return fmt.Sprintf("Place a copy of %q under the package mirror before installing.", e.Name)
}

// Installer materializes extensions from the local package mirror into the
// extensions directory and keeps the managed-packages manifest in sync.
// Package sets map extension identifiers to version constraints.
type Installer struct {
	cfg    *config.Config
	copier core.FileCopier
	prefix string

	loadStore func(path string) (*Store, error)
}

// NewInstaller returns an Installer over the given configuration. A nil
// copier falls back to the OS implementation.
func NewInstaller(cfg *config.Config, copier core.FileCopier) *Installer {
	if copier == nil {
		copier = NewOSFileCopier()
	}
	return &Installer{
		cfg:       cfg,
		copier:    copier,
		prefix:    "extensions",
		loadStore: LoadStore,
	}
}

// MessagePrefix identifies this installer in aggregated error messages.
func (i *Installer) MessagePrefix() string { return i.prefix }

// IsManaged reports whether the extension is recorded in the
// managed-packages manifest.
func (i *Installer) IsManaged(id string) bool {
	store, err := i.loadStore(i.cfg.ManifestPath())
	if err != nil {
		return false
	}
	return store.IsManaged(id)
}

// Managed returns the identifiers of every extension the installer owns.
func (i *Installer) Managed() ([]string, error) {
	store, err := i.loadStore(i.cfg.ManifestPath())
	if err != nil {
		return nil, err
	}
	return store.Managed(), nil
}

// NormalizeVersion validates and canonicalizes the version constraints of a
// package set. The input map is not modified.
func (i *Installer) NormalizeVersion(packages map[string]string) (map[string]string, error) {
	normalized := make(map[string]string, len(packages))
	for id, constraint := range packages {
		c, err := semver.NormalizeConstraint(constraint)
		if err != nil {
			return nil, fmt.Errorf("invalid constraint for %q: %w", id, err)
		}
		normalized[id] = c
	}
	return normalized, nil
}

// Install copies each package from the local mirror into the extensions
// directory and records it in the manifest. Packages are processed in
// identifier order; the first failure aborts the run.
func (i *Installer) Install(packages map[string]string, sink iosink.Sink) error {
	store, err := i.loadStore(i.cfg.ManifestPath())
	if err != nil {
		return err
	}

	for _, id := range slices.Sorted(maps.Keys(packages)) {
		if err := i.installOne(store, id, packages[id], sink); err != nil {
			return &InstallError{Name: id, Err: err}
		}
	}
	return nil
}

// Update reinstalls each package from the mirror, replacing the copy in the
// extensions directory.
func (i *Installer) Update(packages map[string]string, sink iosink.Sink) error {
	store, err := i.loadStore(i.cfg.ManifestPath())
	if err != nil {
		return err
	}

	for _, id := range slices.Sorted(maps.Keys(packages)) {
		target := filepath.Join(i.cfg.ExtPath(), filepath.FromSlash(id))
		if err := os.RemoveAll(target); err != nil {
			return &InstallError{Name: id, Err: err}
		}
		if err := i.installOne(store, id, packages[id], sink); err != nil {
			return &InstallError{Name: id, Err: err}
		}
		sink.Notice(iosink.LevelInfo, "updated extension", "extension", id)
	}
	return nil
}

// Remove deletes each extension from the extensions directory and drops it
// from the manifest.
func (i *Installer) Remove(ids []string, sink iosink.Sink) error {
	store, err := i.loadStore(i.cfg.ManifestPath())
	if err != nil {
		return err
	}

	for _, id := range ids {
		target := filepath.Join(i.cfg.ExtPath(), filepath.FromSlash(id))
		if err := os.RemoveAll(target); err != nil {
			return &InstallError{Name: id, Err: err}
		}
		if err := store.RemovePackage(id); err != nil {
			return &InstallError{Name: id, Err: err}
		}
		sink.Notice(iosink.LevelInfo, "removed extension", "extension", id)
	}
	return nil
}

func (i *Installer) installOne(store *Store, id, constraint string, sink iosink.Sink) error {
	source := filepath.Join(i.cfg.PackagesPath(), filepath.FromSlash(id))
	if info, err := os.Stat(source); err != nil || !info.IsDir() {
		return &PackageMissingError{Name: id, Dir: i.cfg.PackagesPath()}
	}

	target := filepath.Join(i.cfg.ExtPath(), filepath.FromSlash(id))
	if err := os.MkdirAll(filepath.Dir(target), core.PermDirDefault); err != nil {
		return err
	}
	if err := i.copier.CopyDir(source, target); err != nil {
		return err
	}

	version := i.installedVersion(target)
	if err := store.SetPackage(id, constraint, version); err != nil {
		return err
	}
	sink.Notice(iosink.LevelInfo, "installed extension",
		"extension", id, "version", version)
	return nil
}

// installedVersion reads the version from the extension manifest, falling
// back to the wildcard when the manifest carries none.
func (i *Installer) installedVersion(dir string) string {
	manifest, err := extensions.LoadManifestFn(dir)
	if err != nil || manifest.Version == "" {
		return semver.AnyVersion
	}
	return manifest.Version
}
