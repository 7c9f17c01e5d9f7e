// Package iosink provides the status notice sink consumed by the installer and
// the extension manager. Notices are human-readable progress and non-fatal
// error messages; they never drive control flow.
package iosink

import (
	"fmt"
	"strings"

	"github.com/opensource-hub/phpbb-core/internal/printer"
)

// Level represents the verbosity of a notice.
type Level int

const (
	// LevelDebug is emitted only in verbose runs.
	LevelDebug Level = iota
	// LevelInfo is a regular progress notice.
	LevelInfo
	// LevelWarning signals a non-fatal, swallowed failure.
	LevelWarning
	// LevelError signals a fatal condition being reported before returning.
	LevelError
)

// String returns a human-readable representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Sink receives status notices. Params are alternating key/value pairs
// carrying structured context (extension name, operation, cause).
type Sink interface {
	Notice(level Level, msg string, params ...any)
}

// formatParams renders alternating key/value pairs as "k=v" fragments.
// A trailing key without a value is rendered as-is.
func formatParams(params []any) string {
	if len(params) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < len(params); i += 2 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		if i+1 < len(params) {
			fmt.Fprintf(&sb, "%v=%v", params[i], params[i+1])
		} else {
			fmt.Fprintf(&sb, "%v", params[i])
		}
	}
	return sb.String()
}

// PrinterSink writes notices to the console through the printer package.
type PrinterSink struct {
	// Verbose enables debug-level notices.
	Verbose bool
}

// Notice prints the message styled by level, appending structured params.
func (s *PrinterSink) Notice(level Level, msg string, params ...any) {
	if level == LevelDebug && !s.Verbose {
		return
	}
	line := msg
	if p := formatParams(params); p != "" {
		line = msg + " (" + p + ")"
	}
	switch level {
	case LevelDebug:
		printer.PrintFaint(line)
	case LevelWarning:
		printer.PrintWarning(line)
	case LevelError:
		printer.PrintError(line)
	default:
		printer.PrintInfo(line)
	}
}

// Entry is a single notice captured by a Recorder.
type Entry struct {
	Level  Level
	Msg    string
	Params []any
}

// Recorder is a Sink that captures notices for test assertions.
type Recorder struct {
	Entries []Entry
}

// Notice records the notice.
func (r *Recorder) Notice(level Level, msg string, params ...any) {
	r.Entries = append(r.Entries, Entry{Level: level, Msg: msg, Params: params})
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	msgs := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		msgs[i] = e.Msg
	}
	return msgs
}

// Discard is a Sink that drops every notice.
type Discard struct{}

// Notice does nothing.
func (Discard) Notice(Level, string, ...any) {}
