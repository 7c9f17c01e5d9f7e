package extmgr

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/opensource-hub/phpbb-core/internal/composer"
	"github.com/opensource-hub/phpbb-core/internal/config"
	"github.com/opensource-hub/phpbb-core/internal/core"
	"github.com/opensource-hub/phpbb-core/internal/fsops"
	"github.com/opensource-hub/phpbb-core/internal/iosink"
	"github.com/opensource-hub/phpbb-core/internal/registry"
)

// newManagedBoard builds a board root with a manually-installed extension,
// optionally enabled, and a package mirror copy to install from. It returns
// a Manager wired with the real installer, registry and filesystem operator.
func newManagedBoard(t *testing.T, id string, enabled, mirrored bool) (*Manager, *config.Config, string) {
	t.Helper()
	root := t.TempDir()

	manifest := `{"name": "` + id + `", "type": "phpbb-extension", "version": "2.1.0"}`
	extDir := filepath.Join(root, "ext", filepath.FromSlash(id))
	if err := os.MkdirAll(extDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(extDir, "composer.json"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if mirrored {
		pkgDir := filepath.Join(root, "packages", filepath.FromSlash(id))
		if err := os.MkdirAll(pkgDir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(pkgDir, "composer.json"), []byte(manifest), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.Default()
	cfg.Root = root
	configPath := filepath.Join(root, "ext.yaml")
	content := "root: " + root + "\n"
	if enabled {
		cfg.Enabled = []string{id}
		content += "enabled:\n  - " + id + "\n"
	}
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	reg := registry.New(cfg, configPath, nil)
	inst := composer.NewInstaller(cfg, nil)
	m := New(inst, reg, fsops.NewOSOperator(), iosink.Discard{})
	return m, cfg, configPath
}

func TestMigrationEndToEnd(t *testing.T) {
	m, cfg, _ := newManagedBoard(t, "acme/demo", true, true)

	if err := m.StartManaging("acme/demo"); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	extDir := filepath.Join(cfg.ExtPath(), "acme", "demo")
	if _, err := os.Stat(filepath.Join(extDir, "composer.json")); err != nil {
		t.Errorf("expected extension installed at its path: %v", err)
	}
	if _, err := os.Stat(extDir + core.BackupSuffix); !os.IsNotExist(err) {
		t.Error("expected no backup directory after a successful migration")
	}

	store, err := composer.LoadStore(cfg.ManifestPath())
	if err != nil {
		t.Fatal(err)
	}
	if !store.IsManaged("acme/demo") {
		t.Error("expected the extension to be managed")
	}
	if got := store.InstalledVersion("acme/demo"); got != "2.1.0" {
		t.Errorf("expected installed version 2.1.0, got %q", got)
	}
	if !m.registry.IsEnabled("acme/demo") {
		t.Error("expected the extension to be enabled again")
	}
}

func TestMigrationIsNotRepeatable(t *testing.T) {
	m, _, _ := newManagedBoard(t, "acme/demo", false, true)

	if err := m.StartManaging("acme/demo"); err != nil {
		t.Fatalf("first migration failed: %v", err)
	}

	err := m.StartManaging("acme/demo")
	var already *AlreadyManagedError
	if !errors.As(err, &already) {
		t.Fatalf("expected AlreadyManagedError on the second run, got %v", err)
	}
}

func TestMigrationRollbackRestoresOriginal(t *testing.T) {
	// No mirror copy: the install delegation fails and the migration must
	// put everything back.
	m, cfg, _ := newManagedBoard(t, "acme/demo", true, false)

	err := m.StartManaging("acme/demo")
	var installErr *ManageInstallError
	if !errors.As(err, &installErr) {
		t.Fatalf("expected ManageInstallError, got %v", err)
	}
	if !installErr.RolledBack {
		t.Error("expected the error to report a completed rollback")
	}

	extDir := filepath.Join(cfg.ExtPath(), "acme", "demo")
	if _, err := os.Stat(filepath.Join(extDir, "composer.json")); err != nil {
		t.Errorf("expected original files restored: %v", err)
	}
	if _, err := os.Stat(extDir + core.BackupSuffix); !os.IsNotExist(err) {
		t.Error("expected no backup artifact after rollback")
	}

	store, err := composer.LoadStore(cfg.ManifestPath())
	if err != nil {
		t.Fatal(err)
	}
	if store.IsManaged("acme/demo") {
		t.Error("expected the extension to stay unmanaged after rollback")
	}
	if !m.registry.IsEnabled("acme/demo") {
		t.Error("expected the original enabled state after rollback")
	}
}

// stickyBackupOperator fails backup removal but performs everything else for
// real, reproducing a locked backup directory.
type stickyBackupOperator struct {
	Operator
}

func (o stickyBackupOperator) Remove(path string) error {
	return &fsops.Error{Op: "remove", Path: path, Err: errors.New("device busy")}
}

func TestMigrationSurvivingBackupOnCleanFailure(t *testing.T) {
	m, cfg, _ := newManagedBoard(t, "acme/demo", false, true)
	m.fs = stickyBackupOperator{Operator: m.fs}

	err := m.StartManaging("acme/demo")
	var cleanErr *ManagedWithCleanError
	if !errors.As(err, &cleanErr) {
		t.Fatalf("expected ManagedWithCleanError, got %v", err)
	}

	// The backup must still exist on disk, not be silently deleted.
	if _, statErr := os.Stat(cleanErr.BackupPath); statErr != nil {
		t.Errorf("expected the backup to survive at %q: %v", cleanErr.BackupPath, statErr)
	}

	store, err := composer.LoadStore(cfg.ManifestPath())
	if err != nil {
		t.Fatal(err)
	}
	if !store.IsManaged("acme/demo") {
		t.Error("expected the extension to be managed despite the dirty backup")
	}
}

func TestMigrationRefusesStaleBackup(t *testing.T) {
	m, cfg, _ := newManagedBoard(t, "acme/demo", false, true)

	stale := filepath.Join(cfg.ExtPath(), "acme", "demo"+core.BackupSuffix)
	if err := os.MkdirAll(stale, 0o755); err != nil {
		t.Fatal(err)
	}

	err := m.StartManaging("acme/demo")
	var backupErr *ManageBackupError
	if !errors.As(err, &backupErr) {
		t.Fatalf("expected ManageBackupError for the stale backup, got %v", err)
	}
	// Untouched: the extension is still at its original path.
	if _, err := os.Stat(filepath.Join(cfg.ExtPath(), "acme", "demo", "composer.json")); err != nil {
		t.Errorf("expected original files untouched: %v", err)
	}
}
