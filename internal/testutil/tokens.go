package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/dimitrije/inventory-api/internal/auth"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TestIssuer   = "https://tenant.example.com/"
	TestAudience = "https://inventory.example.com"
	TestKeyID    = "test-key"
)

// TokenIssuer signs RS256 tokens with a throwaway key.
type TokenIssuer struct {
	Key *rsa.PrivateKey
}

func NewTokenIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate rsa key: %v", err)
	}
	return &TokenIssuer{Key: key}
}

// KeySet verifies tokens signed by this issuer.
func (i *TokenIssuer) KeySet() auth.KeySet {
	return auth.StaticKeySet{Key: &i.Key.PublicKey}
}

// Verifier is configured with TestIssuer and TestAudience.
func (i *TokenIssuer) Verifier() *auth.Verifier {
	return auth.NewVerifier(auth.Config{Issuer: TestIssuer, Audience: TestAudience}, i.KeySet())
}

// Token returns a valid token for TestIssuer/TestAudience with the given
// space-delimited scope.
func (i *TokenIssuer) Token(t *testing.T, scope string) string {
	t.Helper()
	now := time.Now()
	return i.Sign(t, auth.Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TestIssuer,
			Audience:  jwt.ClaimStrings{TestAudience},
			Subject:   "auth0|admin",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
	})
}

func (i *TokenIssuer) Sign(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = TestKeyID
	s, err := token.SignedString(i.Key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

// Bearer formats a token as an Authorization header value.
func Bearer(token string) string {
	return "Bearer " + token
}

// JWKS renders the public key as a JSON Web Key Set.
func (i *TokenIssuer) JWKS(t *testing.T) []byte {
	t.Helper()
	pub := i.Key.PublicKey
	doc := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": TestKeyID,
			"use": "sig",
			"alg": "RS256",
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to encode jwks: %v", err)
	}
	return data
}
