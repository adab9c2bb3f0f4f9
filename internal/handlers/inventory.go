package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/dimitrije/inventory-api/internal/inventory"
	"github.com/dimitrije/inventory-api/internal/logging"
	"github.com/dimitrije/inventory-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type InventoryHandler struct {
	inventory InventoryServiceInterface
	verifier  VerifierInterface
	logger    logging.Logger
}

func NewInventoryHandler(inventory InventoryServiceInterface, verifier VerifierInterface, logger logging.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		verifier:  verifier,
		logger:    logger,
	}
}

// List returns the public inventory. With includeDrafts=1 and a token
// granting inventory:read it returns drafts as well; a token that fails
// verification only falls back to the public view.
func (h *InventoryHandler) List(c *drift.Context) {
	ctx := c.Request.Context()

	includeDrafts := false
	if c.QueryParam("includeDrafts") == "1" {
		if _, err := h.verifier.Verify(ctx, c.GetHeader("Authorization"), ScopeRead); err != nil {
			h.logger.Debug(ctx, "draft view refused", "error", err)
		} else {
			includeDrafts = true
		}
	}

	items, err := h.inventory.List(ctx, includeDrafts)
	if err != nil {
		h.logger.Error(ctx, "failed to load inventory", "error", err)
		writeError(c, http.StatusInternalServerError, "Failed to load inventory", err)
		return
	}

	_ = c.JSON(http.StatusOK, items)
}

// Upsert merges the posted items into the inventory. Authorization runs
// before this handler.
func (h *InventoryHandler) Upsert(c *drift.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, http.StatusBadRequest, "Invalid JSON", err)
		return
	}

	items, err := h.inventory.Upsert(ctx, body)
	if err != nil {
		var verr *inventory.ValidationError
		switch {
		case errors.As(err, &verr):
			c.ErrorWithData(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Validation failed",
				Details: verr.Details,
			})
		case errors.Is(err, inventory.ErrInvalidJSON):
			writeError(c, http.StatusBadRequest, "Invalid JSON", err)
		case errors.Is(err, inventory.ErrInvalidPayload):
			writeError(c, http.StatusBadRequest, "Invalid payload", err)
		default:
			h.logger.Error(ctx, "failed to save inventory", "error", err)
			writeError(c, http.StatusInternalServerError, "Failed to save inventory", err)
		}
		return
	}

	_ = c.JSON(http.StatusOK, items)
}
