package onsocial

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeMissingIdentifier = "auth_missing_identifier"
	TextCodeIdentityNotFound  = "auth_identity_not_found"
	TextCodeBadCredentials    = "auth_bad_credentials"
	TextCodeTokenExpired      = "token_expired"
	TextCodeTokenSignature    = "token_invalid_signature"
	TextCodeTokenMalformed    = "token_malformed"
	TextCodeUnauthenticated   = "auth_required"
	TextCodeForbidden         = "auth_forbidden"
	TextCodeAliasTaken        = "alias_taken"
	TextCodeEmailTaken        = "email_taken"
)

// ErrMissingIdentifier is returned when a login request carries neither
// an alias nor an email.
var ErrMissingIdentifier = errors.New("please enter alias or valid email", errors.CategoryBadInput).
	WithTextCode(TextCodeMissingIdentifier).
	WithCode(errors.CodeBadRequest)

// ErrIdentityNotFound is the error we return for non found identities
// when no identifier is available for a specific message.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryAuth).
	WithTextCode(TextCodeIdentityNotFound).
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is returned on password mismatch. The
// message is deliberately generic so callers cannot tell which field
// was wrong.
var ErrMismatchedHashAndPassword = errors.New("invalid credentials, please try again", errors.CategoryAuth).
	WithTextCode(TextCodeBadCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString is returned when hashing an empty password.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrTokenExpired is returned when a token's expiry lies in the past.
var ErrTokenExpired = errors.New("session token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenInvalidSignature is returned when a token's signature does
// not verify against the known public key.
var ErrTokenInvalidSignature = errors.New("invalid token signature", errors.CategoryAuth).
	WithTextCode(TextCodeTokenSignature).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that cannot be parsed.
var ErrTokenMalformed = errors.New("missing or malformed token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthenticated is returned when a protected route is hit without
// a valid principal.
var ErrUnauthenticated = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is returned when an authenticated caller is neither the
// resource owner nor an admin.
var ErrForbidden = errors.New("insufficient permissions", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrAliasTaken is returned when registering with an alias that exists.
var ErrAliasTaken = errors.New("alias already exists", errors.CategoryConflict).
	WithTextCode(TextCodeAliasTaken).
	WithCode(errors.CodeConflict)

// ErrEmailTaken is returned when registering with an email that exists.
var ErrEmailTaken = errors.New("e-mail already exists", errors.CategoryConflict).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeConflict)

// NewIdentityNotFound builds the lookup-miss error. The message names
// the field the identifier was matched against (email when it contains
// "@", alias otherwise) but never whether the other field would have
// matched.
func NewIdentityNotFound(identifier string) *errors.Error {
	field := "alias"
	if strings.Contains(identifier, "@") {
		field = "email"
	}
	return errors.New("no user found with "+field+" "+identifier, errors.CategoryAuth).
		WithTextCode(TextCodeIdentityNotFound).
		WithCode(errors.CodeUnauthorized)
}

// NewPostNotFound builds a not-found error for a missing post.
func NewPostNotFound(id string) *errors.Error {
	return errors.New("post not found", errors.CategoryNotFound).
		WithTextCode("post_not_found").
		WithCode(errors.CodeNotFound).
		WithMetadata(map[string]any{"id": id})
}

// NewUserNotFound builds a not-found error for a missing user.
func NewUserNotFound(id string) *errors.Error {
	return errors.New("user not found", errors.CategoryNotFound).
		WithTextCode("user_not_found").
		WithCode(errors.CodeNotFound).
		WithMetadata(map[string]any{"id": id})
}

// HasTextCode reports whether err carries the given text code.
func HasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.TextCode == code
	}
	return false
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	return HasTextCode(err, TextCodeTokenExpired)
}

// IsMalformedError will check for unparseable tokens
func IsMalformedError(err error) bool {
	return HasTextCode(err, TextCodeTokenMalformed)
}
