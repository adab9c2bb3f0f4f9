// Package inventory implements the catalog document: open-schema items keyed
// by a normalized id, the upsert-merge pipeline and the public draft filter.
package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	FieldID     = "id"
	FieldMake   = "make"
	FieldModel  = "model"
	FieldYear   = "year"
	FieldStatus = "status"
)

// Item is an inventory record. Fields keep their JSON encoding and their
// order so unknown fields pass through a merge untouched.
type Item struct {
	fields *orderedmap.OrderedMap[string, json.RawMessage]
}

func NewItem() *Item {
	return &Item{fields: orderedmap.New[string, json.RawMessage]()}
}

// ParseItem decodes a single JSON object.
func ParseItem(data []byte) (*Item, error) {
	item := NewItem()
	if err := item.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return item, nil
}

func (it *Item) MarshalJSON() ([]byte, error) {
	if it == nil || it.fields == nil || it.fields.Len() == 0 {
		return []byte("{}"), nil
	}
	return it.fields.MarshalJSON()
}

func (it *Item) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("item must be a JSON object")
	}

	fields := orderedmap.New[string, json.RawMessage]()
	if err := fields.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	it.fields = fields
	return nil
}

// Keys returns the field names in order.
func (it *Item) Keys() []string {
	keys := make([]string, 0, it.fields.Len())
	for pair := it.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (it *Item) Get(key string) (json.RawMessage, bool) {
	return it.fields.Get(key)
}

// Present reports whether key is set to something other than null.
func (it *Item) Present(key string) bool {
	raw, ok := it.fields.Get(key)
	return ok && !isNull(raw)
}

// String returns the field as a Go string when it holds a JSON string.
func (it *Item) String(key string) (string, bool) {
	raw, ok := it.fields.Get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Set stores value under key, keeping the position of an existing key.
func (it *Item) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	it.fields.Set(key, raw)
	return nil
}

func (it *Item) ID() string {
	id, _ := it.String(FieldID)
	return id
}

func (it *Item) Status() string {
	s, _ := it.String(FieldStatus)
	return s
}

func (it *Item) IsDraft() bool {
	return it.Status() == StatusDraft
}

func (it *Item) Clone() *Item {
	c := NewItem()
	for pair := it.fields.Oldest(); pair != nil; pair = pair.Next() {
		c.fields.Set(pair.Key, append(json.RawMessage(nil), pair.Value...))
	}
	return c
}

// Merge returns a copy of it with every field of patch written over it.
// Fields only present in it are kept; new fields are appended in patch
// order.
func (it *Item) Merge(patch *Item) *Item {
	merged := it.Clone()
	for pair := patch.fields.Oldest(); pair != nil; pair = pair.Next() {
		merged.fields.Set(pair.Key, append(json.RawMessage(nil), pair.Value...))
	}
	return merged
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// scalarText renders a JSON string or number as text. Anything else yields
// false.
func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", false
		}
		return n.String(), true
	default:
		return "", false
	}
}
