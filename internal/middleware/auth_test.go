package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dimitrije/inventory-api/internal/auth"
	"github.com/dimitrije/inventory-api/internal/logging"
	"github.com/dimitrije/inventory-api/internal/testutil"
	"github.com/dimitrije/inventory-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthorizeApp(t *testing.T, verifier Verifier) (*drift.Engine, *bool) {
	t.Helper()
	called := false
	app := drift.New()
	app.SetMode(drift.ReleaseMode)
	app.Use(Authorize(verifier, "inventory:write", logging.Nop()))
	app.Post("/protected", func(c *drift.Context) {
		called = true
		claims := GetClaims(c)
		_ = c.JSON(http.StatusOK, map[string]string{"sub": claims.Subject})
	})
	return app, &called
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthorize_Success(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)
	app, called := setupAuthorizeApp(t, issuer.Verifier())

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", testutil.Bearer(issuer.Token(t, "inventory:write")))
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
	assert.Contains(t, rec.Body.String(), "auth0|admin")
}

func TestAuthorize_MissingAuthorizationHeader(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)
	app, called := setupAuthorizeApp(t, issuer.Verifier())

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
	body := decodeError(t, rec)
	assert.Equal(t, "Unauthorized", body.Error)
	assert.Contains(t, body.Detail, "missing authorization header")
}

func TestAuthorize_InvalidToken(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)
	app, called := setupAuthorizeApp(t, issuer.Verifier())

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthorize_MissingScope(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)
	app, called := setupAuthorizeApp(t, issuer.Verifier())

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", testutil.Bearer(issuer.Token(t, "inventory:read")))
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
	assert.Equal(t, "Forbidden", decodeError(t, rec).Error)
}

func TestAuthorize_NotConfigured(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)
	app, called := setupAuthorizeApp(t, auth.NewVerifier(auth.Config{}, nil))

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", testutil.Bearer(issuer.Token(t, "inventory:write")))
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, *called)
	assert.Contains(t, decodeError(t, rec).Detail, "not configured")
}

func TestGetClaims_Absent(t *testing.T) {
	app := drift.New()
	app.SetMode(drift.ReleaseMode)
	var got *auth.Claims
	app.Get("/open", func(c *drift.Context) {
		got = GetClaims(c)
		_ = c.JSON(http.StatusOK, nil)
	})

	app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/open", nil))

	assert.Nil(t, got)
}
