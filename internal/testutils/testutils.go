// Package testutils provides helpers for command tests: building a root CLI
// around the command under test, running it, and capturing its output.
package testutils

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/urfave/cli/v3"
)

// BuildCLIForTests wraps the given commands in a root command mirroring the
// production CLI layout.
func BuildCLIForTests(commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:     "phpbb-ext",
		Usage:    "test harness",
		Commands: commands,
	}
}

// RunCLITest runs the CLI with the given args from dir and fails the test on
// error.
func RunCLITest(t *testing.T, app *cli.Command, args []string, dir string) {
	t.Helper()
	if dir != "" {
		t.Chdir(dir)
	}
	if err := app.Run(context.Background(), args); err != nil {
		t.Fatalf("CLI run failed: %v", err)
	}
}

// CaptureStdout runs fn and returns everything it wrote to stdout.
func CaptureStdout(fn func()) (string, error) {
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}
