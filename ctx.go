package onsocial

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// ContextKey is the request local session claims live under when no
// context_key is configured.
const ContextKey = "user"

var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(r context.Context, claims AuthClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// SetFiberClaims stashes the AuthClaims in the request locals under
// the configured context key.
func SetFiberClaims(c *fiber.Ctx, key string, claims AuthClaims) {
	if key == "" {
		key = ContextKey
	}
	c.Locals(key, claims)
}

// GetFiberClaims extracts the AuthClaims from the fiber request locals
func GetFiberClaims(c *fiber.Ctx, key string) (AuthClaims, bool) {
	if key == "" {
		key = ContextKey
	}
	raw := c.Locals(key)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}
