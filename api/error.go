package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Error is a structured failure returned by the API. The server uses
// three shapes interchangeably: {"error": "msg"}, {"error": ["msg", ...]}
// and {"errors": {"field": ["msg", ...]}}; all are folded into one value
// so callers can pattern-match instead of probing optional fields.
type Error struct {
	Status      int
	Messages    []string
	FieldErrors map[string][]string
}

func (e *Error) Error() string {
	if len(e.Messages) > 0 {
		return strings.Join(e.Messages, "; ")
	}
	if len(e.FieldErrors) > 0 {
		parts := make([]string, 0, len(e.FieldErrors))
		for field, msgs := range e.FieldErrors {
			parts = append(parts, field+" "+strings.Join(msgs, ", "))
		}
		return strings.Join(parts, "; ")
	}
	return http.StatusText(e.Status)
}

// IsValidation reports whether the failure carries per-field messages.
func (e *Error) IsValidation() bool {
	return len(e.FieldErrors) > 0
}

// errorBody covers every failure shape the API emits.
type errorBody struct {
	Error   json.RawMessage     `json:"error"`
	Errors  map[string][]string `json:"errors"`
	Message string              `json:"message"`
}

// ParseError builds an *Error from a non-success response body. A body
// that is not JSON, or carries none of the known failure fields, still
// yields a usable Error with just the status.
func ParseError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiErr
	}

	if len(parsed.Error) > 0 {
		var single string
		var multiple []string
		if err := json.Unmarshal(parsed.Error, &single); err == nil && single != "" {
			apiErr.Messages = []string{single}
		} else if err := json.Unmarshal(parsed.Error, &multiple); err == nil {
			apiErr.Messages = multiple
		}
	}
	if len(parsed.Errors) > 0 {
		apiErr.FieldErrors = parsed.Errors
	}
	if len(apiErr.Messages) == 0 && parsed.Message != "" {
		apiErr.Messages = []string{parsed.Message}
	}
	return apiErr
}
