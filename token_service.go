package onsocial

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenService issues and validates session tokens.
type TokenService interface {
	Generate(identity Identity) (string, error)
	SignClaims(claims *AccessClaims) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// DefaultKeyID names the active signing key in token headers and the
// published JWK Set.
const DefaultKeyID = "onsocial-1"

// TokenServiceImpl implements the TokenService interface using the
// process RSA key pair. Signing and validation are pure computations
// over immutable key material and safe for concurrent use.
type TokenServiceImpl struct {
	keys            *KeyPair
	tokenExpiration time.Duration
	issuer          string
	keyID           string
	logger          Logger
}

// NewTokenService creates a new TokenService instance. Expiration is
// expressed in hours; sessions last one hour in the default config.
func NewTokenService(keys *KeyPair, tokenExpirationHours int, issuer string, logger Logger) *TokenServiceImpl {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		keys:            keys,
		tokenExpiration: time.Duration(tokenExpirationHours) * time.Hour,
		issuer:          issuer,
		keyID:           DefaultKeyID,
		logger:          logger,
	}
}

// WithKeyID overrides the key id stamped into token headers.
func (ts *TokenServiceImpl) WithKeyID(keyID string) *TokenServiceImpl {
	if keyID != "" {
		ts.keyID = keyID
	}
	return ts
}

// Generate creates a signed session token for a verified identity.
// A single clock read feeds both iat and exp.
func (ts *TokenServiceImpl) Generate(identity Identity) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   identity.Alias(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.tokenExpiration)),
		},
		UID:        identity.ID(),
		ScopeClaim: identity.Role(),
	}

	ensureTokenID(&claims.RegisteredClaims)

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary access claims with the private key.
func (ts *TokenServiceImpl) SignClaims(claims *AccessClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = ts.keyID

	signedString, err := token.SignedString(ts.keys.Private())
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign session token")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured
// claims. It fails closed: expired, tampered, or foreign-key tokens
// all come back as auth errors.
func (ts *TokenServiceImpl) Validate(tokenString string) (AuthClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 1)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			ts.logger.Error("token validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.keys.Public(), nil
	}, parserOptions...)

	if err != nil {
		return nil, normalizeTokenError(err)
	}

	if claims, ok := token.Claims.(*AccessClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("token validate could not decode or validate claims")
	return nil, ErrTokenMalformed
}

func normalizeTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenInvalidSignature
	default:
		return errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode).
			WithCode(errors.CodeUnauthorized)
	}
}
