package onsocial_test

import (
	"testing"

	"github.com/onsocialhq/onsocial"
	"github.com/stretchr/testify/assert"
)

func TestAccessClaimsAuthorities(t *testing.T) {
	tests := []struct {
		name  string
		scope string
		want  []string
	}{
		{"single role", "USER", []string{"USER"}},
		{"space joined", "USER ADMIN", []string{"USER", "ADMIN"}},
		{"extra whitespace", "  USER   ADMIN  ", []string{"USER", "ADMIN"}},
		{"empty scope", "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			claims := &onsocial.AccessClaims{ScopeClaim: tc.scope}
			if tc.want == nil {
				assert.Empty(t, claims.Authorities())
			} else {
				assert.Equal(t, tc.want, claims.Authorities())
			}
		})
	}
}

func TestAccessClaimsHasAuthority(t *testing.T) {
	claims := &onsocial.AccessClaims{ScopeClaim: "USER ADMIN"}

	assert.True(t, claims.HasAuthority("USER"))
	assert.True(t, claims.HasAuthority("ADMIN"))
	assert.False(t, claims.HasAuthority("ROLE_USER"))
	assert.False(t, claims.HasAuthority("user"))
	assert.False(t, claims.HasAuthority(""))
}

func TestAccessClaimsIsAdmin(t *testing.T) {
	assert.True(t, (&onsocial.AccessClaims{ScopeClaim: "ADMIN"}).IsAdmin())
	assert.False(t, (&onsocial.AccessClaims{ScopeClaim: "USER"}).IsAdmin())
	assert.False(t, (&onsocial.AccessClaims{}).IsAdmin())
}

func TestAccessClaimsUserIDFallsBackToSubject(t *testing.T) {
	claims := &onsocial.AccessClaims{UID: "id-1"}
	claims.RegisteredClaims.Subject = "simeon"
	assert.Equal(t, "id-1", claims.UserID())

	claims.UID = ""
	assert.Equal(t, "simeon", claims.UserID())
}
