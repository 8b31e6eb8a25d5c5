// Package sderr provides coded, structured errors for sdelite.
// Every error carries a stable code, key/value context and an optional cause.
package sderr

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Code is a stable, machine-readable error code of the form E{category}{number}.
type Code string

const (
	// Schema errors (E1xxx)
	ErrSchemaInvalid      Code = "E1001" // Table catalog is malformed
	ErrUnknownTable       Code = "E1002" // Table name is not in the registry
	ErrDuplicateTable     Code = "E1003" // Table registered twice
	ErrCircularDependency Code = "E1004" // FK graph contains a cycle
	ErrConflictingFilters Code = "E1005" // Include and exclude given together

	// Parse errors (E2xxx)
	ErrMalformedJSON     Code = "E2001" // Line is not a JSON object
	ErrMissingIdentifier Code = "E2002" // Required _key / blueprintTypeID absent or null
	ErrInvalidIdentifier Code = "E2003" // Identifier present with the wrong JSON type

	// Storage errors (E3xxx)
	ErrCreateTable        Code = "E3001" // DDL statement failed
	ErrInsert             Code = "E3002" // Batch insert failed
	ErrTransaction        Code = "E3003" // Begin / commit failed
	ErrConnection         Code = "E3004" // Could not open or configure the database
	ErrUnsupportedDialect Code = "E3005" // Unknown storage dialect
	ErrReadSource         Code = "E3006" // Reading a source file failed

	// Source errors (E4xxx)
	ErrFetch   Code = "E4001" // HTTP request failed
	ErrExtract Code = "E4002" // Archive extraction failed
	ErrCache   Code = "E4003" // Cache directory unusable

	// Config errors (E5xxx)
	ErrConfig Code = "E5001" // Invalid configuration

	// Internal errors (E9xxx)
	ErrInternal Code = "E9001"
)

// Error is the structured error type returned across sdelite packages.
type Error struct {
	code    Code
	message string
	context map[string]any
	cause   error
	stack   string
}

// Error formats the error as:
//
//	[E1002] unknown table
//	  table: typez
//	  cause: ...
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.code, e.message)

	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			if k == "helps" || k == "notes" {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "\n  %s: %v", k, e.context[k])
		}
	}

	if e.cause != nil {
		fmt.Fprintf(&b, "\n  cause: %v", e.cause)
	}
	return b.String()
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.code == t.code
	}
	return false
}

// Code returns the error code.
func (e *Error) Code() Code { return e.code }

// Message returns the message without context.
func (e *Error) Message() string { return e.message }

// Context returns the context map.
func (e *Error) Context() map[string]any { return e.context }

// Cause returns the wrapped error, if any.
func (e *Error) Cause() error { return e.cause }

// Stack returns the stack captured at construction.
func (e *Error) Stack() string { return e.stack }

// With adds a context key. Returns the receiver for chaining.
func (e *Error) With(key string, value any) *Error {
	if e.context == nil {
		e.context = make(map[string]any)
	}
	e.context[key] = value
	return e
}

// WithTable records the table the error relates to.
func (e *Error) WithTable(table string) *Error {
	return e.With("table", table)
}

// WithSQL records the failing statement.
func (e *Error) WithSQL(sql string) *Error {
	return e.With("sql", sql)
}

// WithFile records a source file and 1-based line number.
func (e *Error) WithFile(path string, line int) *Error {
	e.With("file", path)
	if line > 0 {
		e.With("line", line)
	}
	return e
}

// WithHelp appends a help hint, shown as "help: ..." by the CLI.
func (e *Error) WithHelp(help string) *Error {
	helps, _ := e.context["helps"].([]string)
	return e.With("helps", append(helps, help))
}

// WithNote appends a note, shown as "note: ..." by the CLI.
func (e *Error) WithNote(note string) *Error {
	notes, _ := e.context["notes"].([]string)
	return e.With("notes", append(notes, note))
}

// Helps returns the attached help hints.
func (e *Error) Helps() []string {
	helps, _ := e.context["helps"].([]string)
	return helps
}

// Notes returns the attached notes.
func (e *Error) Notes() []string {
	notes, _ := e.context["notes"].([]string)
	return notes
}

func captureStack(skip int) string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return b.String()
}

// New creates an error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Newf is New with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		code:    code,
		message: fmt.Sprintf(format, args...),
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Wrap creates an error around cause. A nil cause behaves like New.
func Wrap(code Code, cause error, msg string) *Error {
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		cause:   cause,
		stack:   captureStack(3),
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		code:    code,
		message: fmt.Sprintf(format, args...),
		context: make(map[string]any),
		cause:   cause,
		stack:   captureStack(3),
	}
}

// GetCode returns the code of the outermost *Error in the chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// WrapSQL wraps a database error raised while performing op on table.
func WrapSQL(code Code, err error, op, table string) *Error {
	e := Wrap(code, err, "failed to "+op)
	if table != "" {
		e.WithTable(table)
	}
	return e
}
