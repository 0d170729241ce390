// Package apperr defines the coded errors returned at the command boundary.
//
// Every error aborts only the command that produced it. Callers match on
// the code with errors.Is against the Err* sentinels:
//
//	if errors.Is(err, apperr.ErrInsufficientBudget) { ... }
package apperr

import "errors"

// Code is a machine-readable error kind.
type Code string

const (
	CodeNotFound             Code = "NOT_FOUND"
	CodeInsufficientBudget   Code = "INSUFFICIENT_BUDGET"
	CodePositionLimitReached Code = "POSITION_LIMIT_REACHED"
	CodeInvalidIndex         Code = "INVALID_INDEX"
	CodeIncompleteRoster     Code = "INCOMPLETE_ROSTER"
	CodeSeasonComplete       Code = "SEASON_COMPLETE"
	CodeCatalogLoad          Code = "CATALOG_LOAD"
)

// Sentinels for errors.Is. They carry no message.
var (
	ErrNotFound             = &Error{Code: CodeNotFound}
	ErrInsufficientBudget   = &Error{Code: CodeInsufficientBudget}
	ErrPositionLimitReached = &Error{Code: CodePositionLimitReached}
	ErrInvalidIndex         = &Error{Code: CodeInvalidIndex}
	ErrIncompleteRoster     = &Error{Code: CodeIncompleteRoster}
	ErrSeasonComplete       = &Error{Code: CodeSeasonComplete}
	ErrCatalogLoad          = &Error{Code: CodeCatalogLoad}
)

// Error is a domain error with a code.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
