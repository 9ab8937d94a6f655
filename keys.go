package onsocial

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"math/big"

	"github.com/goliatone/go-errors"
)

// KeyPair holds the process-wide RSA keys: the private key signs
// session tokens, the public key verifies them. It is loaded once at
// startup and never mutated afterwards.
type KeyPair struct {
	private *rsa.PrivateKey
	public  *rsa.PublicKey
}

// LoadKeyPair decodes a base64 PKCS8 private key and a base64 X.509
// (PKIX) public key. Malformed key material is a startup failure, not
// something to degrade around.
func LoadKeyPair(privateB64, publicB64 string) (*KeyPair, error) {
	privateDER, err := base64.StdEncoding.DecodeString(privateB64)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "private key is not valid base64")
	}

	publicDER, err := base64.StdEncoding.DecodeString(publicB64)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "public key is not valid base64")
	}

	parsedPrivate, err := x509.ParsePKCS8PrivateKey(privateDER)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to parse PKCS8 private key")
	}

	private, ok := parsedPrivate.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not an RSA key", errors.CategoryInternal)
	}

	parsedPublic, err := x509.ParsePKIXPublicKey(publicDER)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to parse X.509 public key")
	}

	public, ok := parsedPublic.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key", errors.CategoryInternal)
	}

	return &KeyPair{private: private, public: public}, nil
}

// NewKeyPair wraps an in-memory RSA key, mostly for tests and key
// generation tooling.
func NewKeyPair(private *rsa.PrivateKey) *KeyPair {
	return &KeyPair{private: private, public: &private.PublicKey}
}

func (k *KeyPair) Private() *rsa.PrivateKey { return k.private }
func (k *KeyPair) Public() *rsa.PublicKey   { return k.public }

type jwk struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

// JWKS renders the verification key as a JWK Set document so other
// services can validate our tokens without sharing key files.
func (k *KeyPair) JWKS(keyID string) ([]byte, error) {
	if k.public == nil {
		return nil, errors.New("no public key loaded", errors.CategoryInternal)
	}

	set := jwkSet{
		Keys: []jwk{{
			Kty: "RSA",
			Use: "sig",
			Alg: "RS256",
			Kid: keyID,
			N:   base64.RawURLEncoding.EncodeToString(k.public.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(k.public.E)).Bytes()),
		}},
	}

	out, err := json.Marshal(set)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to marshal JWK set")
	}

	return out, nil
}
