package handlers

import (
	"net/http"

	"github.com/dimitrije/inventory-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

func Health(c *drift.Context) {
	_ = c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
