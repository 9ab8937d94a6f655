package onsocial_test

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsocialhq/onsocial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeys(t *testing.T) *onsocial.KeyPair {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return onsocial.NewKeyPair(key)
}

func TestTokenServiceRoundTrip(t *testing.T) {
	keys := newTestKeys(t)
	service := onsocial.NewTokenService(keys, 1, "self", nil)

	identity := testIdentity{
		id:    "0195277b-9f98-7000-8000-000000000001",
		alias: "simeon",
		email: "simeon@example.com",
		role:  "USER",
	}

	token, err := service.Generate(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "simeon", claims.Subject())
	assert.Equal(t, identity.id, claims.UserID())
	assert.Equal(t, "USER", claims.Scope())
	assert.Equal(t, []string{"USER"}, claims.Authorities())
	assert.False(t, claims.IsAdmin())

	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expires(), 5*time.Second)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt(), 5*time.Second)
}

func TestTokenServiceScopeCarriesAuthorities(t *testing.T) {
	keys := newTestKeys(t)
	service := onsocial.NewTokenService(keys, 1, "self", nil)

	token, err := service.Generate(testIdentity{id: "id-1", alias: "root", role: "ADMIN"})
	require.NoError(t, err)

	claims, err := service.Validate(token)
	require.NoError(t, err)

	assert.True(t, claims.HasAuthority("ADMIN"))
	assert.True(t, claims.IsAdmin())
	assert.False(t, claims.HasAuthority("USER"))
}

func TestTokenServiceExpiredToken(t *testing.T) {
	keys := newTestKeys(t)

	// negative expiration puts exp in the past
	service := onsocial.NewTokenService(keys, -1, "self", nil)

	token, err := service.Generate(testIdentity{id: "id-1", alias: "simeon", role: "USER"})
	require.NoError(t, err)

	verifier := onsocial.NewTokenService(keys, 1, "self", nil)
	_, err = verifier.Validate(token)
	require.Error(t, err)
	assert.True(t, onsocial.IsTokenExpiredError(err))
}

func TestTokenServiceWrongKey(t *testing.T) {
	signer := onsocial.NewTokenService(newTestKeys(t), 1, "self", nil)
	verifier := onsocial.NewTokenService(newTestKeys(t), 1, "self", nil)

	token, err := signer.Generate(testIdentity{id: "id-1", alias: "simeon", role: "USER"})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.Error(t, err)
	assert.True(t, onsocial.HasTextCode(err, onsocial.TextCodeTokenSignature))
}

func TestTokenServiceTamperedToken(t *testing.T) {
	keys := newTestKeys(t)
	service := onsocial.NewTokenService(keys, 1, "self", nil)

	token, err := service.Generate(testIdentity{id: "id-1", alias: "simeon", role: "USER"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// flip bytes in the payload so the signature no longer matches
	tampered := parts[0] + "." + parts[1][:len(parts[1])-2] + "xx" + "." + parts[2]
	_, err = service.Validate(tampered)
	require.Error(t, err)
}

func TestTokenServiceRejectsNonRSATokens(t *testing.T) {
	keys := newTestKeys(t)
	service := onsocial.NewTokenService(keys, 1, "self", nil)

	hsToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  "self",
		Subject: "simeon",
	})
	raw, err := hsToken.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	_, err = service.Validate(raw)
	require.Error(t, err)
}

func TestTokenServiceGarbageInput(t *testing.T) {
	service := onsocial.NewTokenService(newTestKeys(t), 1, "self", nil)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := service.Validate(raw)
		assert.Error(t, err, raw)
	}
}
