package onsocial

import (
	"encoding/json"
	"fmt"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// JWKSValidator validates session tokens against a JWK Set instead of
// an in-process key pair, for consumers that only see the published
// verification keys.
type JWKSValidator struct {
	jwks   *keyfunc.JWKS
	issuer string
}

// NewJWKSValidator builds a validator from a raw JWK Set document,
// e.g. the output of KeyPair.JWKS.
func NewJWKSValidator(rawJWKS json.RawMessage, issuer string) (*JWKSValidator, error) {
	jwks, err := keyfunc.NewJSON(rawJWKS)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to parse JWK set")
	}
	return &JWKSValidator{jwks: jwks, issuer: issuer}, nil
}

// NewRemoteJWKSValidator builds a validator that fetches and refreshes
// the JWK Set from a URL (the /.well-known/jwks.json of the issuer).
func NewRemoteJWKSValidator(jwksURL, issuer string, options keyfunc.Options) (*JWKSValidator, error) {
	jwks, err := keyfunc.Get(jwksURL, options)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to fetch JWK set")
	}
	return &JWKSValidator{jwks: jwks, issuer: issuer}, nil
}

// Validate satisfies the TokenValidator interface.
func (v *JWKSValidator) Validate(tokenString string) (AuthClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 1)
	if v.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.jwks.Keyfunc(t)
	}, parserOptions...)

	if err != nil {
		return nil, normalizeTokenError(err)
	}

	if claims, ok := token.Claims.(*AccessClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenMalformed
}
