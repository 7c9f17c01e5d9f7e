// Package config loads and persists the phpbb-ext configuration file, which
// records where the board keeps its extensions and which of them are enabled.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/opensource-hub/phpbb-core/internal/core"
)

// DefaultConfigFile is the configuration file name looked up in the working
// directory when PHPBB_EXT_CONFIG is not set.
const DefaultConfigFile = "ext.yaml"

// Config is the main configuration structure for phpbb-ext.
type Config struct {
	// Root is the board installation root. Relative paths below are resolved
	// against it.
	Root string `yaml:"root"`

	// ExtDir is the directory holding extensions (one per vendor/name pair).
	ExtDir string `yaml:"ext_dir"`

	// PackagesDir is the local package mirror the installer copies from.
	PackagesDir string `yaml:"packages_dir"`

	// Manifest is the managed-packages manifest maintained by the installer.
	Manifest string `yaml:"manifest"`

	// Enabled lists the identifiers of currently enabled extensions.
	Enabled []string `yaml:"enabled,omitempty"`

	// Enabling lists extensions with an enable in progress. A non-empty list
	// after a run means an enable was interrupted.
	Enabling []string `yaml:"enabling,omitempty"`
}

// ExtPath returns the extensions directory resolved against the root.
func (c *Config) ExtPath() string {
	return filepath.Join(c.Root, c.ExtDir)
}

// PackagesPath returns the package mirror directory resolved against the root.
func (c *Config) PackagesPath() string {
	return filepath.Join(c.Root, c.PackagesDir)
}

// ManifestPath returns the managed-packages manifest path resolved against
// the root.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.Root, c.Manifest)
}

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// ConfigSaver handles configuration saving with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

// osFileOpener is the production implementation of FileOpener.
type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// osFileWriter is the production implementation of FileWriter.
type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

// yamlMarshaler is the production implementation of core.Marshaler using YAML.
type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
}

// NewConfigSaver creates a ConfigSaver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{
		marshaler:  marshaler,
		fileOpener: opener,
		fileWriter: writer,
	}
}

// Save saves the configuration to the default config file.
func (s *ConfigSaver) Save(cfg *Config) error {
	return s.SaveTo(cfg, DefaultConfigFile)
}

// SaveTo saves the configuration to the specified file path.
func (s *ConfigSaver) SaveTo(cfg *Config, configFile string) error {
	file, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}

// defaultConfigSaver is the default ConfigSaver instance.
var defaultConfigSaver = NewConfigSaver(nil, nil, nil)

// LoadConfigFn and SaveConfigFn are package-level variables so tests and
// callers can substitute their own implementations.
var (
	LoadConfigFn = loadConfig
	SaveConfigFn = func(cfg *Config) error {
		return defaultConfigSaver.Save(cfg)
	}
)

// ConfigPath returns the configuration file path, honoring the
// PHPBB_EXT_CONFIG environment variable.
func ConfigPath() (string, error) {
	if envPath := os.Getenv("PHPBB_EXT_CONFIG"); envPath != "" {
		cleanPath := filepath.Clean(envPath)
		// Reject relative paths with traversal (use absolute paths instead)
		if strings.Contains(cleanPath, "..") {
			return "", fmt.Errorf("invalid PHPBB_EXT_CONFIG: path traversal not allowed, use absolute path instead")
		}
		return cleanPath, nil
	}
	return DefaultConfigFile, nil
}

func loadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(path)
}

// LoadConfigFrom reads and strictly decodes the configuration at path,
// applying defaults for unset fields. A missing file yields a nil config so
// callers can fall back to defaults.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // fallback to default
		}
		return nil, err
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if c.ExtDir == "" {
		c.ExtDir = "ext"
	}
	if c.PackagesDir == "" {
		c.PackagesDir = "packages"
	}
	if c.Manifest == "" {
		c.Manifest = "composer-ext.json"
	}
}

// ConfigFilePerm defines secure file permissions for config files (owner read/write only).
// References core.PermOwnerRW for consistency across the codebase.
const ConfigFilePerm = core.PermOwnerRW
