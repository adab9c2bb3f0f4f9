package middleware

import (
	"net/http"
	"strings"

	"github.com/dimitrije/inventory-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type CORSConfig struct {
	AllowOrigin  string
	AllowMethods []string
	AllowHeaders []string
}

func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigin:  "*",
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}
}

// CORS sets the CORS headers on every response, whether or not the request
// carries an Origin, and answers preflight requests with 200 and no body.
func CORS(config CORSConfig) drift.HandlerFunc {
	allowMethods := strings.Join(config.AllowMethods, ",")
	allowHeaders := strings.Join(config.AllowHeaders, ",")

	return func(c *drift.Context) {
		c.Header("Access-Control-Allow-Origin", config.AllowOrigin)
		c.Header("Access-Control-Allow-Methods", allowMethods)
		c.Header("Access-Control-Allow-Headers", allowHeaders)

		if c.Method() == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// MethodNotAllowed answers methods a known path does not serve.
func MethodNotAllowed(c *drift.Context) {
	c.ErrorWithData(http.StatusMethodNotAllowed, dto.ErrorResponse{Error: "Method not allowed"})
}
