package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dimitrije/inventory-api/internal/auth"
	"github.com/dimitrije/inventory-api/internal/logging"
	"github.com/dimitrije/inventory-api/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsFor(scope string, mutate func(*auth.Claims)) auth.Claims {
	now := time.Now()
	c := auth.Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testutil.TestIssuer,
			Audience:  jwt.ClaimStrings{testutil.TestAudience},
			Subject:   "auth0|admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	}
	if mutate != nil {
		mutate(&c)
	}
	return c
}

func TestVerify_Success(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)
	v := issuer.Verifier()

	token := issuer.Token(t, "inventory:read inventory:write")
	claims, err := v.Verify(context.Background(), testutil.Bearer(token), "inventory:write")

	require.NoError(t, err)
	assert.Equal(t, "auth0|admin", claims.Subject)
	assert.True(t, claims.HasScope("inventory:read"))
	assert.False(t, claims.HasScope("inventory"))
}

func TestVerify_NoScopeRequired(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)

	claims, err := issuer.Verifier().Verify(context.Background(), testutil.Bearer(issuer.Token(t, "")), "")
	require.NoError(t, err)
	assert.Empty(t, claims.Scopes())
}

func TestVerify_NotConfigured(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)
	token := testutil.Bearer(issuer.Token(t, "inventory:write"))

	tests := []struct {
		name string
		cfg  auth.Config
		keys auth.KeySet
	}{
		{"missing issuer", auth.Config{Audience: testutil.TestAudience}, issuer.KeySet()},
		{"missing audience", auth.Config{Issuer: testutil.TestIssuer}, issuer.KeySet()},
		{"blank audience", auth.Config{Issuer: testutil.TestIssuer, Audience: "  "}, issuer.KeySet()},
		{"missing keys", auth.Config{Issuer: testutil.TestIssuer, Audience: testutil.TestAudience}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := auth.NewVerifier(tt.cfg, tt.keys)
			_, err := v.Verify(context.Background(), token, "inventory:write")
			assert.ErrorIs(t, err, auth.ErrNotConfigured)
			assert.Equal(t, http.StatusInternalServerError, auth.StatusCode(err))
		})
	}
}

func TestVerify_Unauthorized(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)
	other := testutil.NewTokenIssuer(t)
	v := issuer.Verifier()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token " + issuer.Token(t, "inventory:write")},
		{"bearer only", "Bearer"},
		{"bearer blank", "Bearer   "},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong key", testutil.Bearer(other.Token(t, "inventory:write"))},
		{"wrong issuer", testutil.Bearer(issuer.Sign(t, claimsFor("inventory:write", func(c *auth.Claims) {
			c.Issuer = "https://evil.example.com/"
		})))},
		{"wrong audience", testutil.Bearer(issuer.Sign(t, claimsFor("inventory:write", func(c *auth.Claims) {
			c.Audience = jwt.ClaimStrings{"https://other-api"}
		})))},
		{"expired", testutil.Bearer(issuer.Sign(t, claimsFor("inventory:write", func(c *auth.Claims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		})))},
		{"no expiry", testutil.Bearer(issuer.Sign(t, claimsFor("inventory:write", func(c *auth.Claims) {
			c.ExpiresAt = nil
		})))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.header, "inventory:write")
			assert.ErrorIs(t, err, auth.ErrUnauthorized)
			assert.Equal(t, http.StatusUnauthorized, auth.StatusCode(err))
		})
	}
}

func TestVerify_RejectsUnexpectedAlgorithm(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)
	secret := []byte("shared-secret")
	v := auth.NewVerifier(auth.Config{Issuer: testutil.TestIssuer, Audience: testutil.TestAudience},
		auth.StaticKeySet{Key: secret})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsFor("inventory:write", nil)).SignedString(secret)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), testutil.Bearer(token), "inventory:write")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	// the same verifier still accepts RS256 when the key matches
	v = issuer.Verifier()
	_, err = v.Verify(context.Background(), testutil.Bearer(issuer.Token(t, "inventory:write")), "inventory:write")
	assert.NoError(t, err)
}

func TestVerify_Forbidden(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)
	v := issuer.Verifier()

	for _, scope := range []string{"", "inventory:read", "inventory:writer openid"} {
		_, err := v.Verify(context.Background(), testutil.Bearer(issuer.Token(t, scope)), "inventory:write")
		assert.ErrorIs(t, err, auth.ErrForbidden, scope)
		assert.Equal(t, http.StatusForbidden, auth.StatusCode(err))
	}
}

func TestVerify_SchemeIsCaseInsensitive(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)

	_, err := issuer.Verifier().Verify(context.Background(), "bearer "+issuer.Token(t, "inventory:write"), "inventory:write")
	assert.NoError(t, err)
}

func TestVerify_BareDomainIssuer(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)
	v := auth.NewVerifier(auth.Config{Issuer: "tenant.example.com", Audience: testutil.TestAudience}, issuer.KeySet())

	_, err := v.Verify(context.Background(), testutil.Bearer(issuer.Token(t, "inventory:write")), "inventory:write")
	assert.NoError(t, err)
}

func TestNormalizeIssuer(t *testing.T) {
	assert.Equal(t, "https://tenant.auth0.com/", auth.NormalizeIssuer("tenant.auth0.com"))
	assert.Equal(t, "https://tenant.auth0.com/", auth.NormalizeIssuer(" tenant.auth0.com/ "))
	assert.Equal(t, "https://idp.example.com/realms/x", auth.NormalizeIssuer("https://idp.example.com/realms/x"))
	assert.Equal(t, "", auth.NormalizeIssuer(""))
}

func TestJWKSURL(t *testing.T) {
	assert.Equal(t, "https://tenant.auth0.com/.well-known/jwks.json", auth.JWKSURL("https://tenant.auth0.com/"))
	assert.Equal(t, "https://idp.example.com/realms/x/.well-known/jwks.json", auth.JWKSURL("https://idp.example.com/realms/x"))
}

func TestStatusCode_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, auth.StatusCode(assert.AnError))
}

func TestRemoteKeySet_VerifiesAgainstJWKS(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)
	jwks := issuer.JWKS(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(jwks)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keys, err := auth.NewRemoteKeySet(ctx, srv.URL, auth.RemoteKeySetOptions{
		HTTPTimeout: 5 * time.Second,
		Logger:      logging.Nop(),
	})
	require.NoError(t, err)

	v := auth.NewVerifier(auth.Config{Issuer: testutil.TestIssuer, Audience: testutil.TestAudience}, keys)
	claims, err := v.Verify(ctx, testutil.Bearer(issuer.Token(t, "inventory:write")), "inventory:write")
	require.NoError(t, err)
	assert.Equal(t, "auth0|admin", claims.Subject)
}

func TestRemoteKeySet_FetchFailureIsUnauthorized(t *testing.T) {
	issuer := testutil.NewTokenIssuer(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keys, err := auth.NewRemoteKeySet(ctx, srv.URL, auth.RemoteKeySetOptions{
		HTTPTimeout:      time.Second,
		RateLimitWaitMax: 100 * time.Millisecond,
		Logger:           logging.Nop(),
	})
	require.NoError(t, err)

	v := auth.NewVerifier(auth.Config{Issuer: testutil.TestIssuer, Audience: testutil.TestAudience}, keys)
	_, err = v.Verify(ctx, testutil.Bearer(issuer.Token(t, "inventory:write")), "inventory:write")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}
