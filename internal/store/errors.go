package store

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies a data or query failure.
type Code int

const (
	// NoSuchTable means a relation the query needs does not exist (usually: nothing loaded yet).
	NoSuchTable Code = iota
	// NoSuchColumn means a predicate named a column the view does not have.
	NoSuchColumn
	// UnknownError is any other backend failure.
	UnknownError
	// MissingData means a CSV data file could not be found.
	MissingData
	// MissingSchema means the schema file could not be found.
	MissingSchema
)

func (c Code) String() string {
	switch c {
	case NoSuchTable:
		return "NO_SUCH_TABLE"
	case NoSuchColumn:
		return "NO_SUCH_COLUMN"
	case UnknownError:
		return "UNKNOWN_ERROR"
	case MissingData:
		return "MISSING_DATA"
	case MissingSchema:
		return "MISSING_SCHEMA"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Error is the classified failure returned by the executor and loader.
// Err keeps the backend cause for logging; callers should branch on Code.
type Error struct {
	Code Code
	Path string // file involved, for load failures
	Err  error
}

func (e *Error) Error() string {
	var msg string
	switch e.Code {
	case NoSuchTable:
		msg = "data table does not exist"
	case NoSuchColumn:
		msg = "data column does not exist"
	case MissingData:
		msg = "missing data file"
	case MissingSchema:
		msg = "missing table schema"
	default:
		msg = "database error"
	}
	if e.Path != "" {
		msg += ": " + e.Path
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code, so errors.Is(err, ErrNoSuchColumn) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrNoSuchTable   = &Error{Code: NoSuchTable}
	ErrNoSuchColumn  = &Error{Code: NoSuchColumn}
	ErrUnknown       = &Error{Code: UnknownError}
	ErrMissingData   = &Error{Code: MissingData}
	ErrMissingSchema = &Error{Code: MissingSchema}
)

// Classify maps a backend query failure to a Code by its message: anything
// mentioning "table" is NoSuchTable, then "column" is NoSuchColumn, and the
// rest are UnknownError. A nil error classifies to nil.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var already *Error
	if errors.As(err, &already) {
		return already
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "table"):
		return &Error{Code: NoSuchTable, Err: err}
	case strings.Contains(msg, "column"):
		return &Error{Code: NoSuchColumn, Err: err}
	default:
		return &Error{Code: UnknownError, Err: err}
	}
}
