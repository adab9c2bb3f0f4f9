package handlers

import (
	"context"

	"github.com/dimitrije/inventory-api/internal/auth"
	"github.com/dimitrije/inventory-api/internal/inventory"
)

const (
	ScopeRead  = "inventory:read"
	ScopeWrite = "inventory:write"
)

// InventoryServiceInterface defines the methods used by handlers from inventory.Service
type InventoryServiceInterface interface {
	List(ctx context.Context, includeDrafts bool) ([]*inventory.Item, error)
	Upsert(ctx context.Context, body []byte) ([]*inventory.Item, error)
}

// UploadServiceInterface defines the methods used by handlers from uploads.Service
type UploadServiceInterface interface {
	Record(ctx context.Context, filename, url string) error
}

// VerifierInterface defines the methods used by handlers from auth.Verifier
type VerifierInterface interface {
	Verify(ctx context.Context, header, scope string) (*auth.Claims, error)
}
