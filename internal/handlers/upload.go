package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dimitrije/inventory-api/internal/logging"
	"github.com/dimitrije/inventory-api/internal/uploads"
	"github.com/dimitrije/inventory-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type UploadHandler struct {
	uploads UploadServiceInterface
	logger  logging.Logger
}

func NewUploadHandler(uploads UploadServiceInterface, logger logging.Logger) *UploadHandler {
	return &UploadHandler{
		uploads: uploads,
		logger:  logger,
	}
}

func (h *UploadHandler) Record(c *drift.Context) {
	ctx := c.Request.Context()

	var req dto.UploadRequest
	if err := c.BindJSON(&req); err != nil {
		// a well-formed body with a non-string field is a missing field
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			writeError(c, http.StatusBadRequest, uploads.ErrMissingFields.Error(), nil)
			return
		}
		writeError(c, http.StatusBadRequest, "Invalid JSON", err)
		return
	}

	if err := h.uploads.Record(ctx, req.Filename, req.URL); err != nil {
		if errors.Is(err, uploads.ErrMissingFields) {
			writeError(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		h.logger.Error(ctx, "failed to record upload", "filename", req.Filename, "error", err)
		writeError(c, http.StatusInternalServerError, "Failed to save uploads", err)
		return
	}

	_ = c.JSON(http.StatusOK, dto.UploadResponse{OK: true, URL: strings.TrimSpace(req.URL)})
}
