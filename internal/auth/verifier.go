// Package auth verifies bearer tokens issued by an external identity
// provider and enforces scope-based authorization.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// Scopes returns the space-delimited scope claim as a set.
func (c *Claims) Scopes() map[string]struct{} {
	set := make(map[string]struct{})
	for _, s := range strings.Fields(c.Scope) {
		set[s] = struct{}{}
	}
	return set
}

func (c *Claims) HasScope(scope string) bool {
	_, ok := c.Scopes()[scope]
	return ok
}

type Config struct {
	Issuer     string
	Audience   string
	Algorithms []string
}

type Verifier struct {
	issuer     string
	audience   string
	algorithms []string
	keys       KeySet
}

func NewVerifier(cfg Config, keys KeySet) *Verifier {
	algs := cfg.Algorithms
	if len(algs) == 0 {
		algs = []string{jwt.SigningMethodRS256.Alg()}
	}
	return &Verifier{
		issuer:     NormalizeIssuer(cfg.Issuer),
		audience:   strings.TrimSpace(cfg.Audience),
		algorithms: algs,
		keys:       keys,
	}
}

// Verify checks the Authorization header value and, when requiredScope is
// not empty, that the verified token grants it.
func (v *Verifier) Verify(ctx context.Context, header, requiredScope string) (*Claims, error) {
	if v.issuer == "" || v.audience == "" || v.keys == nil {
		return nil, ErrNotConfigured
	}

	tokenString, err := BearerToken(header)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, v.keys.KeyfuncCtx(ctx),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithValidMethods(v.algorithms),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	if requiredScope != "" && !claims.HasScope(requiredScope) {
		return nil, fmt.Errorf("%w: missing scope %s", ErrForbidden, requiredScope)
	}

	return claims, nil
}

// BearerToken extracts the token from a "Bearer <token>" header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", ErrUnauthorized)
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("%w: invalid authorization header format", ErrUnauthorized)
	}

	return strings.TrimSpace(parts[1]), nil
}
