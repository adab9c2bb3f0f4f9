package handlers

import (
	"github.com/dimitrije/inventory-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

func writeError(c *drift.Context, status int, message string, err error) {
	body := dto.ErrorResponse{Error: message}
	if err != nil {
		body.Detail = err.Error()
	}
	c.ErrorWithData(status, body)
}
