package cli

import (
	"errors"

	"github.com/aidanlsb/winereview/internal/query"
	"github.com/aidanlsb/winereview/internal/store"
)

// Error codes for structured error responses that are not query or store
// codes. Parse and store failures report their own codes (EMPTY_STRING,
// NO_SUCH_COLUMN, ...).
const (
	ErrInvalidKeyword = "INVALID_KEYWORD"
	ErrInternal       = "INTERNAL_ERROR"
)

// errorCode returns the stable code reported for err in JSON output.
func errorCode(err error) string {
	var perr *query.ParseError
	if errors.As(err, &perr) {
		return perr.Code.String()
	}
	var serr *store.Error
	if errors.As(err, &serr) {
		return serr.Code.String()
	}
	if errors.Is(err, query.ErrUnknownView) {
		return ErrInvalidKeyword
	}
	return ErrInternal
}
