package sderr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// Constructor Tests
// -----------------------------------------------------------------------------

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    Code
		message string
	}{
		{"schema error", ErrUnknownTable, "unknown table"},
		{"parse error", ErrMalformedJSON, "malformed JSON"},
		{"storage error", ErrInsert, "insert failed"},
		{"source error", ErrFetch, "download failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message)
			if err.Code() != tt.code {
				t.Errorf("Code() = %v, want %v", err.Code(), tt.code)
			}
			if err.Message() != tt.message {
				t.Errorf("Message() = %v, want %v", err.Message(), tt.message)
			}
			if err.Cause() != nil {
				t.Error("expected nil cause for New()")
			}
			if err.Stack() == "" {
				t.Error("expected stack trace to be captured")
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrInsert, cause, "failed to insert batch")

	if err.Cause() != cause {
		t.Error("Cause() should return the wrapped error")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}

	wrapped := fmt.Errorf("import: %w", err)
	if GetCode(wrapped) != ErrInsert {
		t.Errorf("GetCode() = %v, want %v", GetCode(wrapped), ErrInsert)
	}
	if !Is(wrapped, ErrInsert) {
		t.Error("Is() should match through fmt wrapping")
	}
	if Is(wrapped, ErrFetch) {
		t.Error("Is() matched the wrong code")
	}
}

func TestWrap_NilCause(t *testing.T) {
	err := Wrap(ErrCache, nil, "cache missing")
	if err.Cause() != nil {
		t.Error("expected nil cause")
	}
	if strings.Contains(err.Error(), "cause:") {
		t.Errorf("Error() = %q, should not print a cause", err.Error())
	}
}

func TestError_Format(t *testing.T) {
	err := New(ErrMalformedJSON, "malformed JSON").
		WithTable("types").
		WithFile("types.jsonl", 42).
		WithHelp("check the file encoding")

	want := "[E2001] malformed JSON\n  file: types.jsonl\n  line: 42\n  table: types"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if len(err.Helps()) != 1 {
		t.Errorf("Helps() = %v, want one entry", err.Helps())
	}
}

func TestError_IsSameCode(t *testing.T) {
	a := New(ErrUnknownTable, "unknown table").With("table", "a")
	b := New(ErrUnknownTable, "unknown table").With("table", "b")
	c := New(ErrSchemaInvalid, "invalid")

	if !errors.Is(a, b) {
		t.Error("errors with the same code should match")
	}
	if errors.Is(a, c) {
		t.Error("errors with different codes should not match")
	}
}

func TestWrapSQL(t *testing.T) {
	err := WrapSQL(ErrCreateTable, errors.New("syntax error"), "create table", "types")
	if err.Message() != "failed to create table" {
		t.Errorf("Message() = %q", err.Message())
	}
	if err.Context()["table"] != "types" {
		t.Errorf("table context = %v, want types", err.Context()["table"])
	}
}
