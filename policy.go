package onsocial

import (
	"context"
)

// Guard makes per-request authorization decisions from a route
// classification, validated claims, and the ownership oracle.
type Guard struct {
	resolvers map[string]OwnerResolver
	logger    Logger
}

// NewGuard creates a Guard with no registered resolvers.
func NewGuard() *Guard {
	return &Guard{
		resolvers: map[string]OwnerResolver{},
		logger:    defLogger{},
	}
}

func (g *Guard) WithLogger(l Logger) *Guard {
	if l != nil {
		g.logger = l
	}
	return g
}

// RegisterResolver binds an ownership resolver to a resource kind.
func (g *Guard) RegisterResolver(resource string, resolver OwnerResolver) *Guard {
	g.resolvers[resource] = resolver
	return g
}

// Authorize decides whether the request may proceed. claims is nil for
// anonymous requests. resourceID is the addressed resource for
// owner-gated routes; empty otherwise.
func (g *Guard) Authorize(ctx context.Context, claims AuthClaims, c Classification, resourceID string) error {
	switch c.Policy {
	case PolicyPublic:
		return nil

	case PolicyAuthenticated:
		if claims == nil {
			return ErrUnauthenticated
		}
		return nil

	case PolicyOwnerOrAdmin:
		if claims == nil {
			return ErrUnauthenticated
		}

		if claims.IsAdmin() {
			return nil
		}

		resolver, ok := g.resolvers[c.Resource]
		if !ok {
			g.logger.Warn("no ownership resolver registered", "resource", c.Resource)
			return ErrForbidden
		}

		owner, err := resolver.IsOwner(ctx, resourceID, claims)
		if err != nil {
			return err
		}
		if !owner {
			return ErrForbidden
		}
		return nil
	}

	return ErrUnauthenticated
}
