package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is the only error shape callers of this package see. Transport
// failures, validation rejections and server errors are all normalized here.
type APIError struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Status  int    `json:"status,omitempty"`
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return e.Message
}

// APIMessage returns the normalized user-facing message. UI layers prefer it
// over Error(), which carries the status prefix.
func (e *APIError) APIMessage() string { return e.Message }

// IsNotFound reports whether err is an APIError with HTTP 404. Profile flows
// use this to distinguish "no profile yet" from real failures.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsForbidden reports whether err is an APIError with HTTP 403.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden
}

// validationEntry matches one element of a FastAPI-style 422 body:
// {"loc": ["body", "name"], "msg": "field required", ...}
type validationEntry struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// errorBody covers the backend error shapes: {"detail": "..."} and
// {"detail": [{"loc": ..., "msg": ...}, ...]}.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// normalizeError converts a non-2xx response body into an APIError.
func normalizeError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Status:  status,
		Message: http.StatusText(status),
	}

	// Bare validation-error array (422 convention without the detail wrapper).
	var entries []validationEntry
	if err := json.Unmarshal(body, &entries); err == nil && len(entries) > 0 {
		msg := flattenValidation(entries)
		apiErr.Message = msg
		apiErr.Detail = msg
		return apiErr
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return apiErr
	}

	var detailStr string
	if err := json.Unmarshal(eb.Detail, &detailStr); err == nil {
		apiErr.Message = detailStr
		apiErr.Detail = detailStr
		return apiErr
	}

	if err := json.Unmarshal(eb.Detail, &entries); err == nil && len(entries) > 0 {
		msg := flattenValidation(entries)
		apiErr.Message = msg
		apiErr.Detail = msg
	}
	return apiErr
}

// flattenValidation joins "<field>: <msg>" entries with ". ". The field name
// is the last loc element, skipping the leading "body"/"query" segment.
func flattenValidation(entries []validationEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		field := ""
		if len(e.Loc) > 0 {
			field = fmt.Sprintf("%v", e.Loc[len(e.Loc)-1])
		}
		if field != "" {
			parts = append(parts, field+": "+e.Msg)
		} else {
			parts = append(parts, e.Msg)
		}
	}
	return strings.Join(parts, ". ")
}
