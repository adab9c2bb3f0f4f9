// Package storage holds the document stores backing the service. A store is
// an opaque text key-value capability: Get returns the stored text or
// ErrNotFound, Set replaces the whole value under a key.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrMalformed = errors.New("malformed document")
)

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ReadJSON loads the document under key and decodes it into v. It returns
// ErrNotFound when nothing is stored and wraps ErrMalformed when the stored
// text is not valid JSON for v.
func ReadJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return nil
}

// WriteJSON encodes v pretty-printed and replaces the document under key.
func WriteJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}
