package middleware

import (
	"context"
	"net/http"

	"github.com/dimitrije/inventory-api/internal/auth"
	"github.com/dimitrije/inventory-api/internal/logging"
	"github.com/dimitrije/inventory-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const ClaimsKey = "claims"

// Verifier checks an Authorization header and, when scope is not empty,
// that the token grants it.
type Verifier interface {
	Verify(ctx context.Context, header, scope string) (*auth.Claims, error)
}

// Authorize rejects the request unless the bearer token verifies and carries
// scope. The failure status comes from auth.StatusCode.
func Authorize(verifier Verifier, scope string, logger logging.Logger) drift.HandlerFunc {
	return func(c *drift.Context) {
		ctx := c.Request.Context()

		claims, err := verifier.Verify(ctx, c.GetHeader("Authorization"), scope)
		if err != nil {
			status := auth.StatusCode(err)
			if status >= http.StatusInternalServerError {
				logger.Error(ctx, "authorization unavailable", "path", c.Path(), "error", err)
			} else {
				logger.Debug(ctx, "request rejected", "path", c.Path(), "status", status, "error", err)
			}
			c.ErrorWithData(status, dto.ErrorResponse{
				Error:  http.StatusText(status),
				Detail: err.Error(),
			})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func GetClaims(c *drift.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
