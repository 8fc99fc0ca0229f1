package format

import (
	"encoding/json"
	"io"
)

// Response is the JSON envelope for every machine-readable result.
type Response struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorInfo  `json:"error,omitempty"`
	Meta  *Meta       `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count       int   `json:"count"`
	Page        int   `json:"page,omitempty"`
	PageSize    int   `json:"page_size,omitempty"`
	QueryTimeMs int64 `json:"query_time_ms,omitempty"`
}

// WriteJSON writes resp as indented JSON.
func WriteJSON(w io.Writer, resp Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// WriteJSONError writes a failed response.
func WriteJSONError(w io.Writer, code, message, suggestion string) error {
	return WriteJSON(w, Response{
		OK: false,
		Error: &ErrorInfo{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
		},
	})
}
