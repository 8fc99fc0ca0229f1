package shell

import (
	"errors"
	"fmt"

	"github.com/aidanlsb/winereview/internal/query"
	"github.com/aidanlsb/winereview/internal/store"
)

const (
	msgInvalidKeyword  = "Invalid keyword. Type help or ? to see valid keywords."
	msgInvalidArgument = "Invalid argument(s)"
	msgQuitting        = "Quitting..."
	msgNoLastQuery     = "No previous query with results. Run a query first."
)

// ErrorMessage maps a failure to the fixed line shown to the user.
func ErrorMessage(err error) string {
	var perr *query.ParseError
	if errors.As(err, &perr) {
		switch perr.Code {
		case query.EmptyString:
			return "ERROR: Empty input."
		case query.KeyValuePair:
			return "ERROR: Invalid key-value pair."
		case query.IncompleteWrap:
			return "ERROR: Unclosed quote."
		case query.InvalidOperator:
			return "ERROR: Invalid operator."
		}
	}

	var serr *store.Error
	if errors.As(err, &serr) {
		switch serr.Code {
		case store.NoSuchTable:
			return "ERROR: Data table does not exist."
		case store.NoSuchColumn:
			return "ERROR: Data column does not exist."
		case store.UnknownError:
			return "ERROR: Database error."
		case store.MissingData:
			return "ERROR: Missing data files."
		case store.MissingSchema:
			return "ERROR: Missing table schema."
		}
	}

	if errors.Is(err, query.ErrUnknownView) {
		return msgInvalidKeyword
	}
	return "ERROR: Database error."
}

// ErrorHint suggests a next step for err, or returns "".
func ErrorHint(err error) string {
	var serr *store.Error
	if !errors.As(err, &serr) {
		return ""
	}
	switch serr.Code {
	case store.NoSuchTable:
		return "Run load to create the tables."
	case store.NoSuchColumn:
		return "Type help <keyword> to list its columns."
	case store.MissingData:
		return fmt.Sprintf("Could not read %s. Check --data-dir.", serr.Path)
	case store.MissingSchema:
		return fmt.Sprintf("Could not read %s. Check --schema-path.", serr.Path)
	}
	return ""
}
