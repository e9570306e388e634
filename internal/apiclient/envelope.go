package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnexpectedShape = errors.New("apiclient: body is neither a list nor a results envelope")

type envelope[T any] struct {
	Results *[]T `json:"results"`
}

// DecodeList normalizes the two success shapes of list endpoints, a bare array and a paginated
// {"results": [...]} envelope, into one slice. The returned slice is never nil on success.
func DecodeList[T any](data json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrUnexpectedShape)
	}

	var items []T
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
	case '{':
		var env envelope[T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		if env.Results == nil {
			return nil, fmt.Errorf("%w: object without results", ErrUnexpectedShape)
		}
		items = *env.Results
	default:
		return nil, ErrUnexpectedShape
	}

	if items == nil {
		items = []T{}
	}
	return items, nil
}
