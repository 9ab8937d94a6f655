package onsocial_test

import (
	"context"
	"testing"

	"github.com/onsocialhq/onsocial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsFor(id, role string) onsocial.AuthClaims {
	return &onsocial.AccessClaims{
		UID:        id,
		ScopeClaim: role,
	}
}

func TestGuardAuthorize(t *testing.T) {
	ctx := context.Background()

	ownerLookup := &MockOwnerLookup{}
	ownerLookup.On("OwnerID", ctx, "post-1").Return("user-1", nil)

	guard := onsocial.NewGuard().
		RegisterResolver(onsocial.ResourcePosts, onsocial.NewPostOwnership(ownerLookup)).
		RegisterResolver(onsocial.ResourceUsers, onsocial.NewUserOwnership())

	public := onsocial.Classification{Policy: onsocial.PolicyPublic}
	authed := onsocial.Classification{Policy: onsocial.PolicyAuthenticated}
	ownerPosts := onsocial.Classification{Policy: onsocial.PolicyOwnerOrAdmin, Resource: onsocial.ResourcePosts}
	ownerUsers := onsocial.Classification{Policy: onsocial.PolicyOwnerOrAdmin, Resource: onsocial.ResourceUsers}

	t.Run("public allows anonymous", func(t *testing.T) {
		assert.NoError(t, guard.Authorize(ctx, nil, public, ""))
	})

	t.Run("authenticated rejects anonymous", func(t *testing.T) {
		err := guard.Authorize(ctx, nil, authed, "")
		require.Error(t, err)
		assert.True(t, onsocial.HasTextCode(err, onsocial.TextCodeUnauthenticated))
	})

	t.Run("authenticated allows any session", func(t *testing.T) {
		assert.NoError(t, guard.Authorize(ctx, claimsFor("user-9", "USER"), authed, ""))
	})

	t.Run("owner gate rejects anonymous", func(t *testing.T) {
		err := guard.Authorize(ctx, nil, ownerPosts, "post-1")
		require.Error(t, err)
		assert.True(t, onsocial.HasTextCode(err, onsocial.TextCodeUnauthenticated))
	})

	t.Run("owner passes", func(t *testing.T) {
		assert.NoError(t, guard.Authorize(ctx, claimsFor("user-1", "USER"), ownerPosts, "post-1"))
	})

	t.Run("non owner is forbidden", func(t *testing.T) {
		err := guard.Authorize(ctx, claimsFor("user-2", "USER"), ownerPosts, "post-1")
		require.Error(t, err)
		assert.True(t, onsocial.HasTextCode(err, onsocial.TextCodeForbidden))
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		// no OwnerID expectation needed: the lookup must not even run
		assert.NoError(t, guard.Authorize(ctx, claimsFor("user-2", "ADMIN"), ownerPosts, "post-other"))
	})

	t.Run("user resource owner is the user itself", func(t *testing.T) {
		assert.NoError(t, guard.Authorize(ctx, claimsFor("user-5", "USER"), ownerUsers, "user-5"))

		err := guard.Authorize(ctx, claimsFor("user-5", "USER"), ownerUsers, "user-6")
		require.Error(t, err)
		assert.True(t, onsocial.HasTextCode(err, onsocial.TextCodeForbidden))
	})

	t.Run("unregistered resource is forbidden", func(t *testing.T) {
		err := guard.Authorize(ctx, claimsFor("user-1", "USER"), onsocial.Classification{
			Policy:   onsocial.PolicyOwnerOrAdmin,
			Resource: "comments",
		}, "c-1")
		require.Error(t, err)
		assert.True(t, onsocial.HasTextCode(err, onsocial.TextCodeForbidden))
	})
}
