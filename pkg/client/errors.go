package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// maxRawErrorLen is the longest non-JSON error body used verbatim as a message.
const maxRawErrorLen = 200

// RequestError is the single failure kind returned by the gateway. It covers
// transport failures (StatusCode 0) and every non-2xx response alike.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsStatus returns true if err (or any wrapped error) is a RequestError with the given status code.
func IsStatus(err error, code int) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == code
	}
	return false
}

// Message returns the user-facing message carried by err: the gateway's
// normalized message when err wraps a RequestError, else err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return err.Error()
}

// errorMessage extracts a human-readable message from a failing response body.
// Order: JSON "message", JSON "title", short raw text, status text.
func errorMessage(code int, body []byte) string {
	var fields map[string]any
	if json.Unmarshal(body, &fields) == nil {
		if s, ok := fields["message"].(string); ok && s != "" {
			return s
		}
		if s, ok := fields["title"].(string); ok && s != "" {
			return s
		}
	}
	raw := strings.TrimSpace(string(body))
	if raw != "" && utf8.RuneCountInString(raw) < maxRawErrorLen {
		return raw
	}
	return statusText(code)
}

func statusText(code int) string {
	if s := http.StatusText(code); s != "" {
		return s
	}
	return fmt.Sprintf("HTTP %d", code)
}
