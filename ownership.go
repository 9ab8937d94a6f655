package onsocial

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// Resource kinds the ownership oracle knows about.
const (
	ResourcePosts = "posts"
	ResourceUsers = "users"
)

// OwnerResolver answers "does this identity own this resource". A
// missing resource is simply not owned; existence questions belong to
// the business layer, not the policy layer.
type OwnerResolver interface {
	IsOwner(ctx context.Context, resourceID string, identity AuthClaims) (bool, error)
}

// OwnerResolverFunc adapts a function into an OwnerResolver.
type OwnerResolverFunc func(ctx context.Context, resourceID string, identity AuthClaims) (bool, error)

// IsOwner satisfies the OwnerResolver interface.
func (f OwnerResolverFunc) IsOwner(ctx context.Context, resourceID string, identity AuthClaims) (bool, error) {
	return f(ctx, resourceID, identity)
}

// postOwnerLookup is the single column read the posts resolver needs.
type postOwnerLookup interface {
	OwnerID(ctx context.Context, postID string) (string, error)
}

// PostOwnership resolves post ownership through one FK lookup.
type PostOwnership struct {
	store postOwnerLookup
}

// NewPostOwnership creates the ownership resolver for posts.
func NewPostOwnership(store postOwnerLookup) *PostOwnership {
	return &PostOwnership{store: store}
}

// IsOwner satisfies the OwnerResolver interface.
func (o *PostOwnership) IsOwner(ctx context.Context, resourceID string, identity AuthClaims) (bool, error) {
	if identity == nil || resourceID == "" {
		return false, nil
	}

	ownerID, err := o.store.OwnerID(ctx, resourceID)
	if err != nil {
		if errors.IsNotFound(err) || repository.IsRecordNotFound(err) {
			return false, nil
		}
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to resolve post owner")
	}

	return ownerID == identity.UserID(), nil
}

// UserOwnership resolves user ownership: the owner of a user record is
// that user. No store read needed.
type UserOwnership struct{}

// NewUserOwnership creates the ownership resolver for users.
func NewUserOwnership() *UserOwnership {
	return &UserOwnership{}
}

// IsOwner satisfies the OwnerResolver interface.
func (o *UserOwnership) IsOwner(ctx context.Context, resourceID string, identity AuthClaims) (bool, error) {
	if identity == nil || resourceID == "" {
		return false, nil
	}
	return resourceID == identity.UserID(), nil
}

var (
	_ OwnerResolver = &PostOwnership{}
	_ OwnerResolver = &UserOwnership{}
)
