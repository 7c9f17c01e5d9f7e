package extmgr

import (
	"github.com/opensource-hub/phpbb-core/internal/extensions"
	"github.com/opensource-hub/phpbb-core/internal/iosink"
)

// MockRegistry is a mock implementation of Registry for testing.
type MockRegistry struct {
	AllAvailableFunc  func() (map[string]*extensions.Manifest, error)
	IsEnabledFunc     func(id string) bool
	EnablingFunc      func(id string) bool
	EnableFunc        func(id string) error
	DisableFunc       func(id string) error
	ExtensionPathFunc func(id string, mustExist bool) (string, error)

	Enabled  []string
	Disabled []string
}

func (m *MockRegistry) AllAvailable() (map[string]*extensions.Manifest, error) {
	if m.AllAvailableFunc != nil {
		return m.AllAvailableFunc()
	}
	return map[string]*extensions.Manifest{}, nil
}

func (m *MockRegistry) IsEnabled(id string) bool {
	if m.IsEnabledFunc != nil {
		return m.IsEnabledFunc(id)
	}
	return false
}

func (m *MockRegistry) Enabling(id string) bool {
	if m.EnablingFunc != nil {
		return m.EnablingFunc(id)
	}
	return false
}

func (m *MockRegistry) Enable(id string) error {
	m.Enabled = append(m.Enabled, id)
	if m.EnableFunc != nil {
		return m.EnableFunc(id)
	}
	return nil
}

func (m *MockRegistry) Disable(id string) error {
	m.Disabled = append(m.Disabled, id)
	if m.DisableFunc != nil {
		return m.DisableFunc(id)
	}
	return nil
}

func (m *MockRegistry) ExtensionPath(id string, mustExist bool) (string, error) {
	if m.ExtensionPathFunc != nil {
		return m.ExtensionPathFunc(id, mustExist)
	}
	return "/ext/" + id, nil
}

// MockInstaller is a mock implementation of Installer for testing.
type MockInstaller struct {
	InstallFunc          func(packages map[string]string, sink iosink.Sink) error
	UpdateFunc           func(packages map[string]string, sink iosink.Sink) error
	RemoveFunc           func(ids []string, sink iosink.Sink) error
	IsManagedFunc        func(id string) bool
	NormalizeVersionFunc func(packages map[string]string) (map[string]string, error)
	Prefix               string

	InstallCalls []map[string]string
	UpdateCalls  []map[string]string
	RemoveCalls  [][]string
}

func (m *MockInstaller) Install(packages map[string]string, sink iosink.Sink) error {
	m.InstallCalls = append(m.InstallCalls, packages)
	if m.InstallFunc != nil {
		return m.InstallFunc(packages, sink)
	}
	return nil
}

func (m *MockInstaller) Update(packages map[string]string, sink iosink.Sink) error {
	m.UpdateCalls = append(m.UpdateCalls, packages)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(packages, sink)
	}
	return nil
}

func (m *MockInstaller) Remove(ids []string, sink iosink.Sink) error {
	m.RemoveCalls = append(m.RemoveCalls, ids)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ids, sink)
	}
	return nil
}

func (m *MockInstaller) IsManaged(id string) bool {
	if m.IsManagedFunc != nil {
		return m.IsManagedFunc(id)
	}
	return false
}

func (m *MockInstaller) NormalizeVersion(packages map[string]string) (map[string]string, error) {
	if m.NormalizeVersionFunc != nil {
		return m.NormalizeVersionFunc(packages)
	}
	return packages, nil
}

func (m *MockInstaller) MessagePrefix() string {
	if m.Prefix != "" {
		return m.Prefix
	}
	return "extensions"
}

// MockOperator is a mock implementation of Operator for testing.
type MockOperator struct {
	RenameFunc func(src, dst string) error
	RemoveFunc func(path string) error
	ExistsFunc func(path string) bool

	Renames [][2]string
	Removed []string
}

func (m *MockOperator) Rename(src, dst string) error {
	m.Renames = append(m.Renames, [2]string{src, dst})
	if m.RenameFunc != nil {
		return m.RenameFunc(src, dst)
	}
	return nil
}

func (m *MockOperator) Remove(path string) error {
	m.Removed = append(m.Removed, path)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(path)
	}
	return nil
}

func (m *MockOperator) Exists(path string) bool {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(path)
	}
	return false
}
