// Package extmgr orchestrates managed extension lifecycle operations:
// enable/disable bracketing around bulk install/update/remove, and the
// guarded migration of a manually-installed extension into managed state
// with backup and rollback.
package extmgr

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/opensource-hub/phpbb-core/internal/core"
	"github.com/opensource-hub/phpbb-core/internal/fsops"
	"github.com/opensource-hub/phpbb-core/internal/iosink"
	"github.com/opensource-hub/phpbb-core/internal/operations"
)

// UpdateBracket carries the state of one update cycle between PreUpdate and
// PostUpdate: the extensions that were enabled before the update began and
// must be re-enabled after, plus any non-fatal per-extension failures
// collected along the way. Each cycle gets a fresh bracket; brackets are
// never reused.
type UpdateBracket struct {
	Reenable []string
	Failures []ItemFailure
}

// Manager coordinates the installer, the registry and the filesystem for
// bulk and migration operations. Calls are synchronous and must be
// serialized by the caller.
type Manager struct {
	installer Installer
	registry  Registry
	fs        Operator
	sink      iosink.Sink
}

// New returns a Manager over the given collaborators. A nil fs falls back to
// the OS operator; a nil sink drops all notices.
func New(installer Installer, registry Registry, fs Operator, sink iosink.Sink) *Manager {
	if fs == nil {
		fs = fsops.NewOSOperator()
	}
	if sink == nil {
		sink = iosink.Discard{}
	}
	return &Manager{
		installer: installer,
		registry:  registry,
		fs:        fs,
		sink:      sink,
	}
}

// prefixed namespaces an error under the installer's message prefix.
func (m *Manager) prefixed(err error) error {
	return fmt.Errorf("%s: %w", m.installer.MessagePrefix(), err)
}

// PreInstall rejects install requests that would clobber a manually-placed
// extension directory. An extension already on disk but not owned by the
// installer is considered manually installed.
func (m *Manager) PreInstall(packages map[string]string) error {
	available, err := m.registry.AllAvailable()
	if err != nil {
		return m.prefixed(err)
	}

	var offending []string
	for id := range packages {
		if _, ok := available[id]; ok && !m.installer.IsManaged(id) {
			offending = append(offending, id)
		}
	}
	if len(offending) > 0 {
		slices.Sort(offending)
		return m.prefixed(&AlreadyInstalledManuallyError{Names: offending})
	}
	return nil
}

// PreUpdate disables every requested extension that is currently enabled and
// returns a fresh bracket recording which ones to re-enable afterwards.
// Disable failures are logged and collected, never fatal: each extension is
// independently recoverable later.
func (m *Manager) PreUpdate(packages map[string]string) *UpdateBracket {
	m.sink.Notice(iosink.LevelInfo, "disabling extensions before update")

	bracket := &UpdateBracket{}
	for _, id := range slices.Sorted(maps.Keys(packages)) {
		if !m.registry.IsEnabled(id) {
			continue
		}
		bracket.Reenable = append(bracket.Reenable, id)
		if err := m.registry.Disable(id); err != nil {
			m.noteFailure(err)
			bracket.Failures = append(bracket.Failures, ItemFailure{Name: id, Err: err})
		}
	}
	return bracket
}

// PostUpdate re-enables the extensions recorded in the bracket and returns
// the per-extension failures. Same non-fatal policy as PreUpdate: one
// extension failing to re-enable must not block restoring the rest.
func (m *Manager) PostUpdate(bracket *UpdateBracket) []ItemFailure {
	m.sink.Notice(iosink.LevelInfo, "re-enabling extensions after update")

	var failures []ItemFailure
	for _, id := range bracket.Reenable {
		if err := m.registry.Enable(id); err != nil {
			m.noteFailure(err)
			failures = append(failures, ItemFailure{Name: id, Err: err})
		}
	}
	return failures
}

// PreRemove disables every requested extension that is currently enabled.
// Removal needs no re-enable bookkeeping, so there is no bracket; failures
// are logged and collected, never fatal.
func (m *Manager) PreRemove(packages map[string]string) []ItemFailure {
	var failures []ItemFailure
	for _, id := range slices.Sorted(maps.Keys(packages)) {
		if !m.registry.IsEnabled(id) {
			continue
		}
		if err := m.registry.Disable(id); err != nil {
			m.noteFailure(err)
			failures = append(failures, ItemFailure{Name: id, Err: err})
		}
	}
	return failures
}

// Install validates the request against the availability set and delegates
// to the installer. If any requested extension is already present as a
// manually-installed directory, nothing is installed.
func (m *Manager) Install(packages map[string]string) error {
	normalized, err := m.installer.NormalizeVersion(packages)
	if err != nil {
		return m.prefixed(err)
	}

	return operations.Run(sortedIDs(normalized), operations.Hooks{
		Before: func([]string) error { return m.PreInstall(normalized) },
	}, func([]string) error {
		if err := m.installer.Install(normalized, m.sink); err != nil {
			return m.prefixed(err)
		}
		return nil
	})
}

// Update disables the requested extensions, delegates the update, and
// re-enables whatever was enabled before, even when the update itself fails.
// The returned bracket carries the re-enabled set and any per-extension
// failures from both passes.
func (m *Manager) Update(packages map[string]string) (*UpdateBracket, error) {
	normalized, err := m.installer.NormalizeVersion(packages)
	if err != nil {
		return nil, m.prefixed(err)
	}

	var bracket *UpdateBracket
	err = operations.Run(sortedIDs(normalized), operations.Hooks{
		Before: func([]string) error {
			bracket = m.PreUpdate(normalized)
			return nil
		},
		After: func([]string) {
			bracket.Failures = append(bracket.Failures, m.PostUpdate(bracket)...)
		},
	}, func([]string) error {
		if err := m.installer.Update(normalized, m.sink); err != nil {
			return m.prefixed(err)
		}
		return nil
	})
	return bracket, err
}

// Remove validates that every requested extension exists, disables the
// enabled ones, and delegates the removal. A request naming an unknown
// extension fails before any side effect.
func (m *Manager) Remove(packages map[string]string) error {
	normalized, err := m.installer.NormalizeVersion(packages)
	if err != nil {
		return m.prefixed(err)
	}

	return operations.Run(sortedIDs(normalized), operations.Hooks{
		Before: func(ids []string) error {
			available, err := m.registry.AllAvailable()
			if err != nil {
				return m.prefixed(err)
			}
			var missing []string
			for _, id := range ids {
				if _, ok := available[id]; !ok {
					missing = append(missing, id)
				}
			}
			if len(missing) > 0 {
				return m.prefixed(&NotInstalledError{Names: missing})
			}
			m.PreRemove(normalized)
			return nil
		},
	}, func(ids []string) error {
		if err := m.installer.Remove(ids, m.sink); err != nil {
			return m.prefixed(err)
		}
		return nil
	})
}

// StartManaging migrates one already-present, unmanaged extension into
// managed installation. The original files are moved aside before the
// install and restored if it fails, so the extension is never lost: on full
// failure it is exactly where it was, and the two partial-success outcomes
// (stale backup, not re-enabled) are surfaced as distinct error kinds.
func (m *Manager) StartManaging(id string) error {
	available, err := m.registry.AllAvailable()
	if err != nil {
		return m.prefixed(err)
	}
	manifest, ok := available[id]
	if !ok {
		return m.prefixed(&NotInstalledError{Names: []string{id}})
	}
	if m.installer.IsManaged(id) {
		return m.prefixed(&AlreadyManagedError{Name: id})
	}

	// An interrupted enable counts as enabled: the caller asked for it on.
	wasEnabled := m.registry.IsEnabled(id) || m.registry.Enabling(id)
	if wasEnabled {
		m.sink.Notice(iosink.LevelInfo, "disabling extension before migration", "extension", id)
		// A half-disabled extension is unsafe to migrate past, so unlike
		// the bulk brackets this failure propagates.
		if err := m.registry.Disable(id); err != nil {
			return m.prefixed(err)
		}
	}

	path, err := m.registry.ExtensionPath(id, true)
	if err != nil {
		return m.prefixed(err)
	}
	backupPath := strings.TrimRight(path, string(os.PathSeparator)) + core.BackupSuffix
	if m.fs.Exists(backupPath) {
		return m.prefixed(&ManageBackupError{
			Name: id,
			Err:  fmt.Errorf("backup path %q already exists", backupPath),
		})
	}
	if err := m.fs.Rename(path, backupPath); err != nil {
		return m.prefixed(&ManageBackupError{Name: id, Err: err})
	}

	constraint := manifest.Version
	if constraint == "" {
		constraint = "*"
	}
	if err := m.installer.Install(map[string]string{id: constraint}, m.sink); err != nil {
		// Roll back: the backup goes back where it came from, leaving the
		// extension exactly as it was before the migration began, enabled
		// state included.
		rolledBack := true
		if renameErr := m.fs.Rename(backupPath, path); renameErr != nil {
			rolledBack = false
			err = errors.Join(err, renameErr)
		} else if wasEnabled {
			if enableErr := m.registry.Enable(id); enableErr != nil {
				m.noteFailure(enableErr)
			}
		}
		return m.prefixed(&ManageInstallError{Name: id, RolledBack: rolledBack, Err: err})
	}
	if err := m.fs.Remove(backupPath); err != nil {
		// The install succeeded, so this is not rolled back: the extension
		// is managed and the stale backup is left for manual cleanup.
		return m.prefixed(&ManagedWithCleanError{Name: id, BackupPath: backupPath, Err: err})
	}

	if wasEnabled {
		if err := m.registry.Enable(id); err != nil {
			return m.prefixed(&ManagedWithEnableError{Name: id, Err: err})
		}
		m.sink.Notice(iosink.LevelInfo, "re-enabled extension after migration", "extension", id)
	}
	return nil
}

// noteFailure logs a non-fatal per-extension failure. Domain errors carry
// structured parameters; anything else is logged message-only.
func (m *Manager) noteFailure(err error) {
	var withParams interface{ Params() []any }
	if errors.As(err, &withParams) {
		m.sink.Notice(iosink.LevelWarning, err.Error(), withParams.Params()...)
		return
	}
	m.sink.Notice(iosink.LevelWarning, err.Error())
}

func sortedIDs(packages map[string]string) []string {
	return slices.Sorted(maps.Keys(packages))
}
