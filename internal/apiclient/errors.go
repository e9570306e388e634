package apiclient

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FieldError is one key of a validation-error body with its messages flattened to strings.
type FieldError struct {
	Field    string
	Messages []string
	// Set is false for null, "", 0 and false. Empty lists and objects are set.
	Set bool
}

// ErrorBody is an error response read as a field-keyed mapping. Fields keep the order in which
// the server wrote the keys.
type ErrorBody struct {
	Fields []FieldError
}

// ParseErrorBody never fails: anything that is not a JSON object yields an empty body.
func ParseErrorBody(data json.RawMessage) ErrorBody {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return ErrorBody{}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrorBody{}
	}

	var body ErrorBody
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return body
		}
		key, ok := keyTok.(string)
		if !ok {
			return body
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return body
		}
		body.Fields = append(body.Fields, FieldError{Field: key, Messages: messagesOf(raw), Set: isSet(raw)})
	}
	return body
}

func messagesOf(raw json.RawMessage) []string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil || s == "" {
			return nil
		}
		return []string{s}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil
		}
		var out []string
		for _, it := range items {
			out = append(out, messagesOf(it)...)
		}
		return out
	case '{':
		var out []string
		for _, f := range ParseErrorBody(trimmed).Fields {
			out = append(out, f.Messages...)
		}
		return out
	case 'n':
		return nil
	default:
		return []string{strings.TrimSpace(string(trimmed))}
	}
}

// First returns the first field, in server order, that carries at least one message.
func (b ErrorBody) First() (FieldError, bool) {
	for _, f := range b.Fields {
		if len(f.Messages) > 0 {
			return f, true
		}
	}
	return FieldError{}, false
}

func isSet(raw json.RawMessage) bool {
	switch s := string(bytes.TrimSpace(raw)); s {
	case "", "null", "false", `""`:
		return false
	default:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n != 0
		}
		return true
	}
}

// Present reports whether field is in the body with a set value, even one without messages.
func (b ErrorBody) Present(field string) bool {
	for _, f := range b.Fields {
		if f.Field == field && f.Set {
			return true
		}
	}
	return false
}

func (b ErrorBody) Has(field string) bool {
	_, ok := b.Message(field)
	return ok
}

// Message returns the first message of field.
func (b ErrorBody) Message(field string) (string, bool) {
	for _, f := range b.Fields {
		if f.Field == field && len(f.Messages) > 0 {
			return f.Messages[0], true
		}
	}
	return "", false
}
