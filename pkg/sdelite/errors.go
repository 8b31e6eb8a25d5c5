package sdelite

import (
	"github.com/hlop3z/sdelite/internal/sderr"
)

// Error is the structured error returned by every Client method. Use
// ErrorCode or IsCode to branch on its stable code.
type Error = sderr.Error

// Error codes callers commonly branch on.
const (
	CodeUnknownTable       = string(sderr.ErrUnknownTable)
	CodeConflictingFilters = string(sderr.ErrConflictingFilters)
	CodeMalformedJSON      = string(sderr.ErrMalformedJSON)
	CodeMissingIdentifier  = string(sderr.ErrMissingIdentifier)
	CodeInvalidIdentifier  = string(sderr.ErrInvalidIdentifier)
	CodeInsert             = string(sderr.ErrInsert)
	CodeConnection         = string(sderr.ErrConnection)
	CodeUnsupportedDialect = string(sderr.ErrUnsupportedDialect)
	CodeFetch              = string(sderr.ErrFetch)
	CodeConfig             = string(sderr.ErrConfig)
)

// ErrorCode returns the code of the first *Error in err's chain, or "".
func ErrorCode(err error) string {
	return string(sderr.GetCode(err))
}

// IsCode reports whether err carries code.
func IsCode(err error, code string) bool {
	return sderr.Is(err, sderr.Code(code))
}
