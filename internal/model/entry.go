package model

import "fmt"

// Severity is the canonical log importance level.
type Severity int

const (
	Error Severity = iota
	Warn
	Info
	Debug
	Trace
)

// String returns the upper-case level label.
func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warn:
		return "WARN"
	case Debug:
		return "DEBUG"
	case Trace:
		return "TRACE"
	default:
		return "INFO"
	}
}

// Tag returns the label padded to the fixed 5-character header width.
func (s Severity) Tag() string {
	return fmt.Sprintf("%-5s", s.String())
}

// Entry is a single normalized log line ready for rendering.
type Entry struct {
	Severity  Severity `json:"severity"`
	Timestamp string   `json:"timestamp"`          // canonical "2006-01-02 15:04:05.000", local time
	Location  string   `json:"location,omitempty"` // source "path:line" token, verbatim
	Message   string   `json:"message"`
	Extras    []Field  `json:"extras,omitempty"` // structured-record fields, fixed order
}

// Field is one auxiliary key-value pair from a structured record.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// StructuredRecord is the bunyan-style JSON wire shape consumed on the
// fast path. Pointer fields distinguish absent from zero so the schema
// check can tell a missing required field from a legitimate 0.
type StructuredRecord struct {
	V        *int    `json:"v"`
	Level    *int    `json:"level"`
	Pid      *int    `json:"pid"`
	Hostname *string `json:"hostname"`
	Time     *int64  `json:"time"` // epoch milliseconds
	Msg      *string `json:"msg"`
	Type     *string `json:"type"`
	Stack    *string `json:"stack"`
	Errno    *string `json:"errno"`
	Syscall  *string `json:"syscall"`
	Address  *string `json:"address"`
	Port     *uint16 `json:"port"`
	Secret   *string `json:"secret"`
}
