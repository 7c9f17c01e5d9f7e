package extmgr

import (
	"fmt"
	"strings"
)

// AlreadyInstalledManuallyError is raised when an install request names
// extensions that are already present on disk without being managed.
// Installing over them would clobber a manually-placed directory.
type AlreadyInstalledManuallyError struct {
	Names []string
}

func (e *AlreadyInstalledManuallyError) Error() string {
	return fmt.Sprintf("already installed manually: %s", strings.Join(e.Names, " | "))
}

func (e *AlreadyInstalledManuallyError) Suggestion() string {
	return "Run \"phpbb-ext manage <vendor/name>\" to migrate a manually-installed extension, or remove its directory first."
}

// NotInstalledError is raised when an operation names extensions that are
// not present on disk.
type NotInstalledError struct {
	Names []string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("not installed: %s", strings.Join(e.Names, " | "))
}

// AlreadyManagedError is raised when a migration targets an extension the
// installer already owns.
type AlreadyManagedError struct {
	Name string
}

func (e *AlreadyManagedError) Error() string {
	return fmt.Sprintf("extension %q is already managed", e.Name)
}

// ManageBackupError reports that migration could not move the extension
// aside. Nothing has been moved; the extension is untouched.
type ManageBackupError struct {
	Name string
	Err  error
}

func (e *ManageBackupError) Error() string {
	return fmt.Sprintf("cannot manage %q: backup failed: %v", e.Name, e.Err)
}

func (e *ManageBackupError) Unwrap() error { return e.Err }

// ManageInstallError reports that the managed install failed after the
// backup was taken. RolledBack says whether the backup was renamed back
// into place; when false the original files are still at the backup path.
type ManageInstallError struct {
	Name       string
	RolledBack bool
	Err        error
}

func (e *ManageInstallError) Error() string {
	if !e.RolledBack {
		return fmt.Sprintf("cannot manage %q: install failed and restoring the original files failed too: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("cannot manage %q: install failed, original files restored: %v", e.Name, e.Err)
}

func (e *ManageInstallError) Unwrap() error { return e.Err }

// ManagedWithCleanError reports that the migration installed the extension
// but could not remove the backup directory. The extension IS managed; the
// backup at BackupPath remains on disk and needs manual cleanup.
type ManagedWithCleanError struct {
	Name       string
	BackupPath string
	Err        error
}

func (e *ManagedWithCleanError) Error() string {
	return fmt.Sprintf("extension %q is now managed, but removing the backup at %q failed: %v",
		e.Name, e.BackupPath, e.Err)
}

func (e *ManagedWithCleanError) Unwrap() error { return e.Err }

func (e *ManagedWithCleanError) Suggestion() string {
	return fmt.Sprintf("Delete %q by hand; the extension itself is installed correctly.", e.BackupPath)
}

// ManagedWithEnableError reports that the migration installed the extension
// but could not re-enable it. The extension IS managed, just disabled.
type ManagedWithEnableError struct {
	Name string
	Err  error
}

func (e *ManagedWithEnableError) Error() string {
	return fmt.Sprintf("extension %q is now managed but could not be re-enabled: %v", e.Name, e.Err)
}

func (e *ManagedWithEnableError) Unwrap() error { return e.Err }

func (e *ManagedWithEnableError) Suggestion() string {
	return fmt.Sprintf("Run \"phpbb-ext enable %s\" to finish.", e.Name)
}

// ItemFailure records a non-fatal per-extension failure collected during a
// bracket pass.
type ItemFailure struct {
	Name string
	Err  error
}
