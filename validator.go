package onsocial

// TokenValidator turns a raw bearer token into session claims. The
// local RS256 service and the JWKS validator both satisfy it, which is
// what lets the authenticator swap one for the other.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// TokenValidatorFunc adapts a bare function into a TokenValidator.
type TokenValidatorFunc func(tokenString string) (AuthClaims, error)

func (f TokenValidatorFunc) Validate(tokenString string) (AuthClaims, error) {
	if f == nil {
		return nil, ErrTokenMalformed
	}
	return f(tokenString)
}

// MultiTokenValidator runs a chain of validators against a token, in
// registration order. A malformed result moves to the next link; any
// other failure is terminal, so an expired or badly signed token is
// never retried against a different key set. When every link reports
// malformed, the last such error comes back.
type MultiTokenValidator struct {
	chain []TokenValidator
}

func NewMultiTokenValidator(validators ...TokenValidator) *MultiTokenValidator {
	chain := make([]TokenValidator, 0, len(validators))
	for _, v := range validators {
		if v == nil {
			continue
		}
		chain = append(chain, v)
	}
	return &MultiTokenValidator{chain: chain}
}

func (m *MultiTokenValidator) Validate(tokenString string) (AuthClaims, error) {
	err := error(ErrTokenMalformed)
	for _, v := range m.chain {
		claims, verr := v.Validate(tokenString)
		if verr == nil {
			return claims, nil
		}
		if !IsMalformedError(verr) {
			return nil, verr
		}
		err = verr
	}
	return nil, err
}
