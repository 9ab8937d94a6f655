package onsocial

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims is the verified-session view the guard works with. The
// claims are the source of truth for the current request; there is no
// per-request re-fetch of the account row.
type AuthClaims interface {
	Subject() string
	UserID() string
	Scope() string
	Authorities() []string
	HasAuthority(authority string) bool
	IsAdmin() bool
	Expires() time.Time
	IssuedAt() time.Time
}

// AccessClaims is the concrete claims payload carried by session
// tokens: subject is the account alias, scope is the space-joined
// authority list (the raw role string, no prefix transformation), uid
// is the stable account id.
type AccessClaims struct {
	jwt.RegisteredClaims
	UID        string `json:"uid,omitempty"`
	ScopeClaim string `json:"scope,omitempty"`
}

var _ AuthClaims = (*AccessClaims)(nil)

// Subject returns the subject claim (the account alias)
func (c *AccessClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the stable account id, falling back to the subject
func (c *AccessClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Scope returns the raw scope string
func (c *AccessClaims) Scope() string {
	return c.ScopeClaim
}

// Authorities splits the scope claim on whitespace into the set of
// authority tokens.
func (c *AccessClaims) Authorities() []string {
	return strings.Fields(c.ScopeClaim)
}

// HasAuthority checks for an exact authority match
func (c *AccessClaims) HasAuthority(authority string) bool {
	for _, a := range c.Authorities() {
		if a == authority {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the ADMIN authority is in scope
func (c *AccessClaims) IsAdmin() bool {
	return c.HasAuthority(RoleAdmin)
}

// Expires returns the expiration time
func (c *AccessClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *AccessClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
