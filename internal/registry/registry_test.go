package registry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opensource-hub/phpbb-core/internal/config"
	"github.com/opensource-hub/phpbb-core/internal/core"
)

// newBoard builds a board root with the given extensions on disk and returns
// the config plus the config file path.
func newBoard(t *testing.T, exts []string, enabled []string) (*config.Config, string) {
	t.Helper()
	root := t.TempDir()

	for _, id := range exts {
		dir := filepath.Join(root, "ext", filepath.FromSlash(id))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		manifest := `{"name": "` + id + `", "type": "phpbb-extension", "version": "1.0.0"}`
		if err := os.WriteFile(filepath.Join(dir, "composer.json"), []byte(manifest), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.Default()
	cfg.Root = root
	cfg.Enabled = enabled

	configPath := filepath.Join(root, "ext.yaml")
	content := "root: " + root + "\n"
	if len(enabled) > 0 {
		content += "enabled:\n"
		for _, id := range enabled {
			content += "  - " + id + "\n"
		}
	}
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return cfg, configPath
}

func TestAllAvailable(t *testing.T) {
	cfg, configPath := newBoard(t, []string{"acme/demo", "acme/other", "vendor/thing"}, nil)
	r := New(cfg, configPath, nil)

	available, err := r.AllAvailable()
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if len(available) != 3 {
		t.Fatalf("expected 3 available extensions, got %d", len(available))
	}
	if available["acme/demo"].Version != "1.0.0" {
		t.Errorf("unexpected manifest for acme/demo: %+v", available["acme/demo"])
	}
}

func TestAllAvailable_SkipsBackupsAndManifestless(t *testing.T) {
	cfg, configPath := newBoard(t, []string{"acme/demo"}, nil)

	// A stale migration backup and a junk directory must not be reported.
	for _, dir := range []string{"acme/demo" + core.BackupSuffix, "acme/empty"} {
		if err := os.MkdirAll(filepath.Join(cfg.ExtPath(), dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	r := New(cfg, configPath, nil)
	available, err := r.AllAvailable()
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if len(available) != 1 {
		t.Errorf("expected only acme/demo, got %v", available)
	}
}

func TestAllAvailable_MissingExtDir(t *testing.T) {
	cfg := config.Default()
	cfg.Root = filepath.Join(t.TempDir(), "nowhere")

	r := New(cfg, "ext.yaml", nil)
	available, err := r.AllAvailable()
	if err != nil {
		t.Fatalf("missing ext dir should yield empty set, got: %v", err)
	}
	if len(available) != 0 {
		t.Errorf("expected empty set, got %v", available)
	}
}

func TestIsAvailable(t *testing.T) {
	cfg, configPath := newBoard(t, []string{"acme/demo"}, nil)
	r := New(cfg, configPath, nil)

	if !r.IsAvailable("acme/demo") {
		t.Error("acme/demo should be available")
	}
	if r.IsAvailable("acme/ghost") {
		t.Error("acme/ghost should not be available")
	}
	if r.IsAvailable("not-an-id") {
		t.Error("malformed identifier should not be available")
	}
}

func TestEnableDisable_RoundTrip(t *testing.T) {
	cfg, configPath := newBoard(t, []string{"acme/demo"}, nil)
	r := New(cfg, configPath, nil)

	if r.IsEnabled("acme/demo") {
		t.Fatal("should start disabled")
	}

	if err := r.Enable("acme/demo"); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	if !r.IsEnabled("acme/demo") {
		t.Error("should be enabled after Enable")
	}
	if r.Enabling("acme/demo") {
		t.Error("enabling marker should be cleared after a completed enable")
	}

	// Persisted state survives a reload.
	reloaded, err := config.LoadConfigFrom(configPath)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded.Enabled) != 1 || reloaded.Enabled[0] != "acme/demo" {
		t.Errorf("persisted enabled list = %v", reloaded.Enabled)
	}

	if err := r.Disable("acme/demo"); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if r.IsEnabled("acme/demo") {
		t.Error("should be disabled after Disable")
	}

	reloaded, err = config.LoadConfigFrom(configPath)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded.Enabled) != 0 {
		t.Errorf("persisted enabled list should be empty, got %v", reloaded.Enabled)
	}
}

func TestEnable_NotAvailable(t *testing.T) {
	cfg, configPath := newBoard(t, nil, nil)
	r := New(cfg, configPath, nil)

	err := r.Enable("acme/ghost")
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %T: %v", err, err)
	}
	if opErr.Op != "enable" || opErr.Name != "acme/ghost" {
		t.Errorf("unexpected error fields: %+v", opErr)
	}
}

func TestEnable_AlreadyEnabledIsNoop(t *testing.T) {
	cfg, configPath := newBoard(t, []string{"acme/demo"}, []string{"acme/demo"})
	updater := &MockConfigUpdater{}
	r := New(cfg, configPath, updater)

	if err := r.Enable("acme/demo"); err != nil {
		t.Fatalf("expected noop, got: %v", err)
	}
	if len(updater.Calls) != 0 {
		t.Errorf("no writes expected for an already enabled extension, got %d", len(updater.Calls))
	}
}

func TestEnable_PersistFailure(t *testing.T) {
	cfg, configPath := newBoard(t, []string{"acme/demo"}, nil)
	updater := &MockConfigUpdater{
		SetListFunc: func(string, string, []string) error { return ErrMockUpdater },
	}
	r := New(cfg, configPath, updater)

	err := r.Enable("acme/demo")
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %T: %v", err, err)
	}
	if r.IsEnabled("acme/demo") {
		t.Error("in-memory state must not flip when persistence fails")
	}
}

func TestDisable_ClearsStuckEnabling(t *testing.T) {
	cfg, configPath := newBoard(t, []string{"acme/demo"}, nil)
	cfg.Enabling = []string{"acme/demo"}
	r := New(cfg, configPath, nil)

	if !r.Enabling("acme/demo") {
		t.Fatal("fixture should report mid-enabling")
	}
	if err := r.Disable("acme/demo"); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if r.Enabling("acme/demo") {
		t.Error("disable should clear the enabling marker")
	}
}

func TestExtensionPath(t *testing.T) {
	cfg, configPath := newBoard(t, []string{"acme/demo"}, nil)
	r := New(cfg, configPath, nil)

	t.Run("existing extension", func(t *testing.T) {
		path, err := r.ExtensionPath("acme/demo", true)
		if err != nil {
			t.Fatalf("expected success, got: %v", err)
		}
		want := filepath.Join(cfg.ExtPath(), "acme", "demo")
		if path != want {
			t.Errorf("path = %q, want %q", path, want)
		}
	})

	t.Run("must exist fails for missing", func(t *testing.T) {
		if _, err := r.ExtensionPath("acme/ghost", true); err == nil {
			t.Error("expected error for missing extension")
		}
	})

	t.Run("missing allowed without mustExist", func(t *testing.T) {
		if _, err := r.ExtensionPath("acme/ghost", false); err != nil {
			t.Errorf("expected success, got: %v", err)
		}
	})

	t.Run("rejects malformed identifier", func(t *testing.T) {
		if _, err := r.ExtensionPath("../../etc", false); err == nil {
			t.Error("expected rejection of traversal identifier")
		}
	})
}

func TestSetList_PreservesComments(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ext.yaml")

	initial := `# board configuration
root: /srv/board

enabled:
  - acme/old

# trailing comment
ext_dir: ext
`
	if err := os.WriteFile(configPath, []byte(initial), 0o600); err != nil {
		t.Fatal(err)
	}

	updater := NewDefaultConfigUpdater()
	if err := updater.SetList(configPath, "enabled", []string{"acme/demo", "acme/other"}); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.Contains(content, "# board configuration") {
		t.Error("leading comment was lost")
	}
	if !strings.Contains(content, "# trailing comment") {
		t.Error("trailing comment was lost")
	}
	if !strings.Contains(content, "acme/demo") || !strings.Contains(content, "acme/other") {
		t.Errorf("new entries missing:\n%s", content)
	}
	if strings.Contains(content, "acme/old") {
		t.Errorf("replaced entry still present:\n%s", content)
	}
}

func TestSetList_EmptyWritesEmptyList(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ext.yaml")

	if err := os.WriteFile(configPath, []byte("enabled:\n  - acme/demo\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	updater := NewDefaultConfigUpdater()
	if err := updater.SetList(configPath, "enabled", nil); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "enabled: []") {
		t.Errorf("expected empty list marker, got:\n%s", data)
	}
}

func TestSetList_AppendsMissingKey(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ext.yaml")

	if err := os.WriteFile(configPath, []byte("root: /srv/board\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	updater := NewDefaultConfigUpdater()
	if err := updater.SetList(configPath, "enabling", []string{"acme/demo"}); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "root: /srv/board") {
		t.Error("existing content was lost")
	}
	if !strings.Contains(content, "enabling:") {
		t.Errorf("new section not appended:\n%s", content)
	}
}
