// Package uploads records where uploaded files ended up: a single document
// mapping file name to URL.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dimitrije/inventory-api/internal/logging"
	"github.com/dimitrije/inventory-api/internal/storage"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	ErrMissingFields = errors.New("filename and url are required")
	ErrStorageWrite  = errors.New("failed to write uploads")
)

type Service struct {
	store  storage.Store
	key    string
	logger logging.Logger
}

func NewService(store storage.Store, key string, logger logging.Logger) *Service {
	return &Service{store: store, key: key, logger: logger}
}

// Record stores url under filename, replacing any earlier url for the same
// name.
func (s *Service) Record(ctx context.Context, filename, url string) error {
	filename = strings.TrimSpace(filename)
	url = strings.TrimSpace(url)
	if filename == "" || url == "" {
		return ErrMissingFields
	}

	mapping := orderedmap.New[string, string]()
	if err := storage.ReadJSON(ctx, s.store, s.key, mapping); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn(ctx, "starting from an empty uploads document", "key", s.key, "error", err)
		}
		mapping = orderedmap.New[string, string]()
	}

	mapping.Set(filename, url)

	if err := storage.WriteJSON(ctx, s.store, s.key, mapping); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	s.logger.Info(ctx, "upload recorded", "filename", filename)
	return nil
}
