package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/inventory-api/internal/logging"
	"github.com/dimitrije/inventory-api/internal/storage"
)

// Service reads and rewrites the inventory document. Every call re-reads
// the document; concurrent upserts race and the last write wins.
type Service struct {
	store  storage.Store
	key    string
	logger logging.Logger
}

func NewService(store storage.Store, key string, logger logging.Logger) *Service {
	return &Service{store: store, key: key, logger: logger}
}

// List returns the stored items. Drafts are left out unless includeDrafts
// is set. A missing document is an empty inventory.
func (s *Service) List(ctx context.Context, includeDrafts bool) ([]*Item, error) {
	items, err := s.load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []*Item{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}

	visible := make([]*Item, 0, len(items))
	for _, item := range items {
		if !includeDrafts && item.IsDraft() {
			continue
		}
		visible = append(visible, item)
	}
	return visible, nil
}

// Upsert merges the items in body into the stored inventory and writes the
// whole document back. The batch is applied entirely or not at all.
//
// Each incoming item is merged field by field over the stored item with the
// same normalized id and validated as it would be stored, so a partial
// update such as {"id": "a-1", "status": "Sold"} is valid for an existing
// a-1. Existing items keep their positions; new ids are appended in input
// order.
func (s *Service) Upsert(ctx context.Context, body []byte) ([]*Item, error) {
	entries, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}

	existing, err := s.load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn(ctx, "starting from an empty inventory", "key", s.key, "error", err)
		}
		existing = nil
	}

	records := make([]*Item, 0, len(existing)+len(entries))
	index := make(map[string]int, len(existing))
	for _, item := range existing {
		records = append(records, item)
		if id := Normalize(item.ID()); id != "" {
			if _, dup := index[id]; !dup {
				index[id] = len(records) - 1
			}
		}
	}

	var details []string
	for i, raw := range entries {
		incoming, err := ParseItem(raw)
		if err != nil {
			details = append(details, fmt.Sprintf("items[%d]: item must be an object", i))
			continue
		}
		AssignID(incoming)

		id := incoming.ID()
		pos, found := index[id]
		candidate := incoming
		if found {
			candidate = records[pos].Merge(incoming)
		}

		if problems := Validate(candidate); len(problems) > 0 {
			for _, p := range problems {
				details = append(details, fmt.Sprintf("items[%d]: %s", i, p))
			}
			continue
		}

		if found {
			records[pos] = candidate
		} else {
			records = append(records, candidate)
			index[id] = len(records) - 1
		}
	}

	if len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	if err := storage.WriteJSON(ctx, s.store, s.key, records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	s.logger.Info(ctx, "inventory saved", "key", s.key, "incoming", len(entries), "total", len(records))
	return records, nil
}

func (s *Service) load(ctx context.Context) ([]*Item, error) {
	var stored []*Item
	if err := storage.ReadJSON(ctx, s.store, s.key, &stored); err != nil {
		return nil, err
	}

	items := stored[:0]
	for _, item := range stored {
		if item != nil {
			items = append(items, item)
		}
	}
	return items, nil
}
