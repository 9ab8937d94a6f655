package onsocial_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/onsocialhq/onsocial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedUser(t *testing.T, alias, email, password string) *onsocial.User {
	t.Helper()
	hash, err := onsocial.HashPassword(password)
	require.NoError(t, err)
	return &onsocial.User{
		ID:           uuid.New(),
		Alias:        alias,
		Email:        email,
		PasswordHash: hash,
		Role:         onsocial.RoleUser,
	}
}

func TestVerifyIdentityByAlias(t *testing.T) {
	ctx := context.Background()
	user := storedUser(t, "simeon", "simeon@example.com", "Sup3rsecret")

	store := &MockUserStore{}
	store.On("GetByAlias", ctx, "simeon").Return(user, nil)

	identity, err := onsocial.NewUserProvider(store).VerifyIdentity(ctx, "simeon", "Sup3rsecret")
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), identity.ID())
	assert.Equal(t, "simeon", identity.Alias())
	assert.Equal(t, "simeon@example.com", identity.Email())
	assert.Equal(t, "USER", identity.Role())
}

func TestVerifyIdentityFallsBackToEmail(t *testing.T) {
	ctx := context.Background()
	user := storedUser(t, "simeon", "simeon@example.com", "Sup3rsecret")

	store := &MockUserStore{}
	store.On("GetByAlias", ctx, "simeon@example.com").Return(nil, repository.NewRecordNotFound())
	store.On("GetByEmail", ctx, "simeon@example.com").Return(user, nil)

	identity, err := onsocial.NewUserProvider(store).VerifyIdentity(ctx, "simeon@example.com", "Sup3rsecret")
	require.NoError(t, err)

	// both identifier paths resolve to the same principal
	assert.Equal(t, user.ID.String(), identity.ID())
	store.AssertExpectations(t)
}

func TestVerifyIdentityEmptyIdentifier(t *testing.T) {
	provider := onsocial.NewUserProvider(&MockUserStore{})

	for _, identifier := range []string{"", "   "} {
		_, err := provider.VerifyIdentity(context.Background(), identifier, "whatever")
		require.Error(t, err)
		assert.True(t, onsocial.HasTextCode(err, onsocial.TextCodeMissingIdentifier))
	}
}

func TestVerifyIdentityUnknownIdentifier(t *testing.T) {
	ctx := context.Background()

	t.Run("alias wording", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetByAlias", ctx, "ghost").Return(nil, repository.NewRecordNotFound())
		store.On("GetByEmail", ctx, "ghost").Return(nil, repository.NewRecordNotFound())

		_, err := onsocial.NewUserProvider(store).VerifyIdentity(ctx, "ghost", "whatever")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no user found with alias ghost")
	})

	t.Run("email wording", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetByAlias", ctx, "ghost@example.com").Return(nil, repository.NewRecordNotFound())
		store.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.NewRecordNotFound())

		_, err := onsocial.NewUserProvider(store).VerifyIdentity(ctx, "ghost@example.com", "whatever")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no user found with email ghost@example.com")
	})
}

func TestVerifyIdentityWrongPassword(t *testing.T) {
	ctx := context.Background()
	user := storedUser(t, "simeon", "simeon@example.com", "Sup3rsecret")

	store := &MockUserStore{}
	store.On("GetByAlias", ctx, "simeon").Return(user, nil)

	_, err := onsocial.NewUserProvider(store).VerifyIdentity(ctx, "simeon", "wrong-password")
	require.Error(t, err)
	assert.True(t, onsocial.HasTextCode(err, onsocial.TextCodeBadCredentials))

	// the message must not reveal which part failed
	assert.NotContains(t, err.Error(), "password")
	assert.NotContains(t, err.Error(), "simeon")
}

func TestAliasAndEmailAvailability(t *testing.T) {
	ctx := context.Background()

	store := &MockUserStore{}
	store.On("ExistsByAlias", ctx, "taken").Return(true, nil)
	store.On("ExistsByAlias", ctx, "free").Return(false, nil)
	store.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil)
	store.On("ExistsByEmail", ctx, "free@example.com").Return(false, nil)

	provider := onsocial.NewUserProvider(store)

	available, err := provider.AliasAvailable(ctx, "taken")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = provider.AliasAvailable(ctx, "free")
	require.NoError(t, err)
	assert.True(t, available)

	available, err = provider.EmailAvailable(ctx, "taken@example.com")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = provider.EmailAvailable(ctx, "free@example.com")
	require.NoError(t, err)
	assert.True(t, available)
}
