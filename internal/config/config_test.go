package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigFrom_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ext.yaml")

	if err := os.WriteFile(configPath, []byte("root: "+tmpDir+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(configPath)
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}
	if cfg.ExtDir != "ext" {
		t.Errorf("expected default ext_dir %q, got %q", "ext", cfg.ExtDir)
	}
	if cfg.PackagesDir != "packages" {
		t.Errorf("expected default packages_dir %q, got %q", "packages", cfg.PackagesDir)
	}
	if cfg.Manifest != "composer-ext.json" {
		t.Errorf("expected default manifest %q, got %q", "composer-ext.json", cfg.Manifest)
	}
	if got := cfg.ExtPath(); got != filepath.Join(tmpDir, "ext") {
		t.Errorf("ExtPath() = %q, want %q", got, filepath.Join(tmpDir, "ext"))
	}
}

func TestLoadConfigFrom_FullConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ext.yaml")

	content := `root: /srv/board
ext_dir: extensions
packages_dir: mirror
manifest: managed.json
enabled:
  - acme/demo
  - acme/other
enabling:
  - acme/stuck
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(configPath)
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if len(cfg.Enabled) != 2 || cfg.Enabled[0] != "acme/demo" {
		t.Errorf("unexpected enabled list: %v", cfg.Enabled)
	}
	if len(cfg.Enabling) != 1 || cfg.Enabling[0] != "acme/stuck" {
		t.Errorf("unexpected enabling list: %v", cfg.Enabling)
	}
	if got := cfg.ManifestPath(); got != filepath.Join("/srv/board", "managed.json") {
		t.Errorf("ManifestPath() = %q", got)
	}
}

func TestLoadConfigFrom_MissingFile(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error, got: %v", err)
	}
	if cfg != nil {
		t.Fatalf("expected nil config for missing file, got %+v", cfg)
	}
}

func TestLoadConfigFrom_StrictDecoding(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ext.yaml")

	// unknown_key must be rejected by the strict decoder
	if err := os.WriteFile(configPath, []byte("unknown_key: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfigFrom(configPath); err == nil {
		t.Fatal("expected strict decoding error for unknown key, got nil")
	}
}

func TestConfigPath_EnvOverride(t *testing.T) {
	t.Setenv("PHPBB_EXT_CONFIG", "/srv/board/ext.yaml")

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if path != "/srv/board/ext.yaml" {
		t.Errorf("ConfigPath() = %q, want %q", path, "/srv/board/ext.yaml")
	}
}

func TestConfigPath_RejectsTraversal(t *testing.T) {
	t.Setenv("PHPBB_EXT_CONFIG", "../outside/ext.yaml")

	if _, err := ConfigPath(); err == nil {
		t.Fatal("expected traversal rejection, got nil error")
	}
}

func TestConfigSaver_SaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ext.yaml")

	cfg := Default()
	cfg.Enabled = []string{"acme/demo"}

	saver := NewConfigSaver(nil, nil, nil)
	if err := saver.SaveTo(cfg, configPath); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "acme/demo") {
		t.Errorf("saved config missing enabled entry:\n%s", data)
	}

	reloaded, err := LoadConfigFrom(configPath)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded.Enabled) != 1 || reloaded.Enabled[0] != "acme/demo" {
		t.Errorf("round-trip lost enabled list: %v", reloaded.Enabled)
	}
}

func TestConfigSaver_MarshalError(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ext.yaml")

	saver := NewConfigSaver(&failingMarshaler{}, nil, nil)
	err := saver.SaveTo(Default(), configPath)
	if err == nil {
		t.Fatal("expected marshal error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to marshal config") {
		t.Errorf("unexpected error: %v", err)
	}
}

type failingMarshaler struct{}

func (failingMarshaler) Marshal(any) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"acme/demo", true},
		{"Acme_1/demo_ext", true},
		{"acme", false},
		{"acme/demo/extra", false},
		{"acme/", false},
		{"/demo", false},
		{"acme demo/x", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := ValidID(tt.id); got != tt.want {
				t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestValidator(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "ext"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "packages"), 0o755); err != nil {
		t.Fatal(err)
	}

	t.Run("valid config passes", func(t *testing.T) {
		cfg := Default()
		cfg.Root = tmpDir
		cfg.Enabled = []string{"acme/demo"}

		results := NewValidator(cfg, "ext.yaml").Validate()
		if !Passed(results) {
			t.Errorf("expected pass, got: %+v", results)
		}
	})

	t.Run("bad identifier fails", func(t *testing.T) {
		cfg := Default()
		cfg.Root = tmpDir
		cfg.Enabled = []string{"not-an-id"}

		results := NewValidator(cfg, "ext.yaml").Validate()
		if Passed(results) {
			t.Error("expected failure for malformed identifier")
		}
	})

	t.Run("duplicate enabled entry fails", func(t *testing.T) {
		cfg := Default()
		cfg.Root = tmpDir
		cfg.Enabled = []string{"acme/demo", "acme/demo"}

		results := NewValidator(cfg, "ext.yaml").Validate()
		if Passed(results) {
			t.Error("expected failure for duplicate enabled entry")
		}
	})

	t.Run("missing mirror is only a warning", func(t *testing.T) {
		cfg := Default()
		cfg.Root = tmpDir
		cfg.PackagesDir = "missing-mirror"

		results := NewValidator(cfg, "ext.yaml").Validate()
		if !Passed(results) {
			t.Errorf("missing mirror should warn, not fail: %+v", results)
		}
	})

	t.Run("missing ext dir fails", func(t *testing.T) {
		cfg := Default()
		cfg.Root = filepath.Join(tmpDir, "nonexistent")

		results := NewValidator(cfg, "ext.yaml").Validate()
		if Passed(results) {
			t.Error("expected failure for missing extensions directory")
		}
	})
}
