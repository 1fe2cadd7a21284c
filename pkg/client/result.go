package client

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrUnexpectedText is returned when a typed call expected JSON but the
// backend answered with plain text.
var ErrUnexpectedText = errors.New("unexpected text response")

// ResultKind says which shape a successful response had.
type ResultKind int

const (
	ResultEmpty ResultKind = iota // 204 No Content
	ResultJSON
	ResultText
)

func (k ResultKind) String() string {
	switch k {
	case ResultJSON:
		return "json"
	case ResultText:
		return "text"
	default:
		return "empty"
	}
}

// Result is a successful gateway response: empty, JSON or plain text.
type Result struct {
	kind ResultKind
	json json.RawMessage
	text string
}

// JSONResult wraps raw JSON as a Result. Useful for fakes in tests.
func JSONResult(raw json.RawMessage) Result {
	return Result{kind: ResultJSON, json: raw}
}

// TextResult wraps plain text as a Result.
func TextResult(s string) Result {
	return Result{kind: ResultText, text: s}
}

func parseResult(body []byte) Result {
	if json.Valid(body) {
		return Result{kind: ResultJSON, json: json.RawMessage(body)}
	}
	return Result{kind: ResultText, text: string(body)}
}

func (r Result) Kind() ResultKind      { return r.kind }
func (r Result) IsEmpty() bool         { return r.kind == ResultEmpty }
func (r Result) JSON() json.RawMessage { return r.json }
func (r Result) Text() string          { return r.text }

// Decode unmarshals a JSON result into out. An empty result, or a text
// result that is only whitespace, leaves out untouched; any other text
// result fails with ErrUnexpectedText.
func (r Result) Decode(out any) error {
	switch r.kind {
	case ResultEmpty:
		return nil
	case ResultText:
		if strings.TrimSpace(r.text) == "" {
			return nil
		}
		return ErrUnexpectedText
	}
	return json.Unmarshal(r.json, out)
}

// Value returns the result as an untyped Go value: the decoded JSON
// (map[string]any, []any, float64, ...), the text string, or nil when empty.
func (r Result) Value() (any, error) {
	switch r.kind {
	case ResultEmpty:
		return nil, nil
	case ResultText:
		return r.text, nil
	}
	var v any
	if err := json.Unmarshal(r.json, &v); err != nil {
		return nil, err
	}
	return v, nil
}
