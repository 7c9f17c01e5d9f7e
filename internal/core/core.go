// Package core holds small shared contracts and constants used across the
// phpbb-ext packages.
package core

import "os"

// File permission constants used when writing configuration and state files.
const (
	// PermOwnerRW restricts a file to owner read/write (0600).
	PermOwnerRW os.FileMode = 0o600

	// PermFileDefault is the default mode for world-readable files the tool
	// writes, such as the managed-packages manifest.
	PermFileDefault os.FileMode = 0o644

	// PermDirDefault is the default mode for directories created by the tool.
	PermDirDefault os.FileMode = 0o755
)

// BackupSuffix marks the transient backup directory created while migrating
// a manually-installed extension into managed state.
const BackupSuffix = "__backup__"

// Marshaler abstracts serialization for testability.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

// FileCopier abstracts recursive directory and single file copies so they can
// be mocked in tests.
type FileCopier interface {
	CopyDir(src, dst string) error
	CopyFile(src, dst string, perm os.FileMode) error
}
