// Package fsops wraps the directory rename and remove operations the
// extension manager relies on. Failures surface as *Error so callers can
// distinguish filesystem faults from other failures.
package fsops

import (
	"fmt"
	"os"
)

// Error is the filesystem error kind raised by an Operator.
type Error struct {
	Op   string // "rename" or "remove"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("filesystem %s failed for %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Operator performs the filesystem transitions used during extension
// migration and removal.
type Operator interface {
	// Rename moves src to dst. dst must not exist.
	Rename(src, dst string) error

	// Remove deletes path and everything below it.
	Remove(path string) error

	// Exists reports whether path exists.
	Exists(path string) bool
}

// OSOperator implements Operator on the real filesystem.
type OSOperator struct {
	renameFn func(oldpath, newpath string) error
	removeFn func(path string) error
	statFn   func(name string) (os.FileInfo, error)
}

// NewOSOperator creates an OSOperator with default OS implementations.
func NewOSOperator() *OSOperator {
	return &OSOperator{
		renameFn: os.Rename,
		removeFn: os.RemoveAll,
		statFn:   os.Stat,
	}
}

// Verify OSOperator implements Operator.
var _ Operator = (*OSOperator)(nil)

// Rename moves src to dst, wrapping failures as *Error.
func (o *OSOperator) Rename(src, dst string) error {
	if err := o.renameFn(src, dst); err != nil {
		return &Error{Op: "rename", Path: src, Err: err}
	}
	return nil
}

// Remove deletes path recursively, wrapping failures as *Error.
func (o *OSOperator) Remove(path string) error {
	if err := o.removeFn(path); err != nil {
		return &Error{Op: "remove", Path: path, Err: err}
	}
	return nil
}

// Exists reports whether path exists.
func (o *OSOperator) Exists(path string) bool {
	_, err := o.statFn(path)
	return err == nil
}
