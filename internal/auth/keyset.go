package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/dimitrije/inventory-api/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// KeySet resolves the key that verifies a token's signature.
// keyfunc.Keyfunc satisfies it.
type KeySet interface {
	KeyfuncCtx(ctx context.Context) jwt.Keyfunc
}

type RemoteKeySetOptions struct {
	RefreshInterval time.Duration
	HTTPTimeout     time.Duration
	// RateLimitWaitMax bounds how long a lookup for an unknown kid waits
	// for the refresh rate limiter before failing.
	RateLimitWaitMax time.Duration
	Logger           logging.Logger
}

// NewRemoteKeySet returns a KeySet backed by the JWKS document at jwksURL.
// Keys are fetched in the background and cached; fetch failures are logged
// and show up as verification failures, never as construction errors.
func NewRemoteKeySet(ctx context.Context, jwksURL string, opts RemoteKeySetOptions) (KeySet, error) {
	if opts.RateLimitWaitMax == 0 {
		opts.RateLimitWaitMax = time.Second
	}

	override := keyfunc.Override{
		RefreshInterval:  opts.RefreshInterval,
		HTTPTimeout:      opts.HTTPTimeout,
		RateLimitWaitMax: opts.RateLimitWaitMax,
	}
	if opts.Logger != nil {
		override.RefreshErrorHandlerFunc = func(u string) func(ctx context.Context, err error) {
			return func(ctx context.Context, err error) {
				opts.Logger.Warn(ctx, "failed to refresh signing keys", "url", u, "error", err)
			}
		}
	}

	kf, err := keyfunc.NewDefaultOverrideCtx(ctx, []string{jwksURL}, override)
	if err != nil {
		return nil, fmt.Errorf("create jwks client: %w", err)
	}
	return kf, nil
}

// StaticKeySet verifies every token with one fixed key.
type StaticKeySet struct {
	Key any
}

func (s StaticKeySet) KeyfuncCtx(context.Context) jwt.Keyfunc {
	return func(*jwt.Token) (any, error) {
		return s.Key, nil
	}
}

// NormalizeIssuer turns a bare domain such as "tenant.auth0.com" into the
// issuer URL "https://tenant.auth0.com/". Values that already carry a scheme
// are returned trimmed but otherwise untouched.
func NormalizeIssuer(issuer string) string {
	issuer = strings.TrimSpace(issuer)
	if issuer == "" {
		return ""
	}
	if strings.Contains(issuer, "://") {
		return issuer
	}
	return "https://" + strings.TrimSuffix(issuer, "/") + "/"
}

// JWKSURL is the well-known key set location for an issuer URL.
func JWKSURL(issuer string) string {
	return strings.TrimSuffix(issuer, "/") + "/.well-known/jwks.json"
}
