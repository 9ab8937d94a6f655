package onsocial_test

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/onsocialhq/onsocial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() onsocial.RegisterUserMessage {
	return onsocial.RegisterUserMessage{
		Alias:     "simeon",
		Email:     "simeon@example.com",
		FirstName: "Simeon",
		LastName:  "Mitev",
		Password:  "Sup3rsecret",
	}
}

func TestRegisterUserMessageValidate(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		assert.NoError(t, validRegistration().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*onsocial.RegisterUserMessage)
		field  string
	}{
		{"alias too short", func(m *onsocial.RegisterUserMessage) { m.Alias = "ab" }, "alias"},
		{"alias missing", func(m *onsocial.RegisterUserMessage) { m.Alias = "" }, "alias"},
		{"bad email", func(m *onsocial.RegisterUserMessage) { m.Email = "not-an-email" }, "email"},
		{"first name too short", func(m *onsocial.RegisterUserMessage) { m.FirstName = "S" }, "first_name"},
		{"last name missing", func(m *onsocial.RegisterUserMessage) { m.LastName = "" }, "last_name"},
		{"password too short", func(m *onsocial.RegisterUserMessage) { m.Password = "Ab1" }, "password"},
		{"password too long", func(m *onsocial.RegisterUserMessage) { m.Password = "Aa1aaaaaaaaaaaaaaaaaaaa" }, "password"},
		{"password no upper case", func(m *onsocial.RegisterUserMessage) { m.Password = "sup3rsecret" }, "password"},
		{"password no digit", func(m *onsocial.RegisterUserMessage) { m.Password = "Supersecret" }, "password"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := validRegistration()
			tc.mutate(&msg)

			err := msg.Validate()
			require.Error(t, err)

			// validation.Errors is keyed by the json tag, not the Go
			// field name
			verrs, ok := err.(validation.Errors)
			require.True(t, ok)
			assert.Contains(t, verrs, tc.field)
		})
	}
}

func TestRegisterUserMessageType(t *testing.T) {
	assert.Equal(t, "user.register", onsocial.RegisterUserMessage{}.Type())
}
