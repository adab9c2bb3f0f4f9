package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParsePayload accepts a bare array of items, {"items": [...]} or
// {"item": {...}} and returns the raw entries in input order. Entries are
// not decoded here so a bad entry can be reported against its index.
func ParsePayload(body []byte) ([]json.RawMessage, error) {
	var probe any
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	trimmed := bytes.TrimSpace(body)
	switch trimmed[0] {
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return entries, nil
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		if raw, ok := envelope["items"]; ok && isArray(raw) {
			var entries []json.RawMessage
			if err := json.Unmarshal(raw, &entries); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
			}
			return entries, nil
		}
		if raw, ok := envelope["item"]; ok && isObject(raw) {
			return []json.RawMessage{raw}, nil
		}
	}

	return nil, fmt.Errorf("%w: expected an array of items, {\"items\": [...]} or {\"item\": {...}}", ErrInvalidPayload)
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
