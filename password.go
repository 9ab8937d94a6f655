package onsocial

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor applied to every stored hash.
const PasswordCost = 14

// HashPassword hashes a cleartext password for storage. Empty input is
// rejected before it reaches bcrypt.
func HashPassword(password string) (string, error) {
	return passwordHasher{}.HashPassword(password)
}

// ComparePasswordAndHash reports whether the cleartext password
// produced the stored hash.
func ComparePasswordAndHash(password, hash string) error {
	return passwordHasher{}.ComparePasswordAndHash(password, hash)
}

// passwordHasher backs the package level helpers and satisfies
// PasswordAuthenticator for callers that want the dependency explicit.
type passwordHasher struct{}

// NewPasswordHasher returns the bcrypt backed PasswordAuthenticator.
func NewPasswordHasher() PasswordAuthenticator {
	return passwordHasher{}
}

func (passwordHasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (passwordHasher) ComparePasswordAndHash(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatchedHashAndPassword
	}
	return err
}

var _ PasswordAuthenticator = passwordHasher{}
