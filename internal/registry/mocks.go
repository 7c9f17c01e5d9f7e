package registry

import "errors"

// MockConfigUpdater is a mock implementation of ConfigUpdater for testing.
type MockConfigUpdater struct {
	SetListFunc func(path, key string, ids []string) error
	Calls       []MockSetListCall
}

// MockSetListCall records one SetList invocation.
type MockSetListCall struct {
	Path string
	Key  string
	IDs  []string
}

func (m *MockConfigUpdater) SetList(path, key string, ids []string) error {
	m.Calls = append(m.Calls, MockSetListCall{Path: path, Key: key, IDs: ids})
	if m.SetListFunc != nil {
		return m.SetListFunc(path, key, ids)
	}
	return nil
}

// ErrMockUpdater is returned by failing mock updaters in tests.
var ErrMockUpdater = errors.New("updater not implemented")
