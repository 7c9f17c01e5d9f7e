package extmgr

import (
	"github.com/opensource-hub/phpbb-core/internal/extensions"
	"github.com/opensource-hub/phpbb-core/internal/iosink"
)

// Registry reports which extensions exist on disk and controls their enabled
// state.
type Registry interface {
	AllAvailable() (map[string]*extensions.Manifest, error)
	IsEnabled(id string) bool
	Enabling(id string) bool
	Enable(id string) error
	Disable(id string) error
	ExtensionPath(id string, mustExist bool) (string, error)
}

// Installer performs the actual package operations the manager brackets.
// Package sets map extension identifiers to version constraints.
type Installer interface {
	Install(packages map[string]string, sink iosink.Sink) error
	Update(packages map[string]string, sink iosink.Sink) error
	Remove(ids []string, sink iosink.Sink) error
	IsManaged(id string) bool
	NormalizeVersion(packages map[string]string) (map[string]string, error)
	MessagePrefix() string
}

// Operator performs the filesystem moves backing migration backup and
// rollback.
type Operator interface {
	Rename(src, dst string) error
	Remove(path string) error
	Exists(path string) bool
}
