package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the process configuration, loaded from an optional YAML
// file with environment overrides on top.
type Config struct {
	HTTPAddr        string `yaml:"http_addr"`
	DBDSN           string `yaml:"db_dsn"`
	Issuer          string `yaml:"issuer"`
	TokenExpiration int    `yaml:"token_expiration_hours"`
	AuthScheme      string `yaml:"auth_scheme"`
	ContextKey      string `yaml:"context_key"`
	PrivateKey      string `yaml:"private_key"`
	PublicKey       string `yaml:"public_key"`
	Debug           bool   `yaml:"debug"`
}

// Load reads the YAML file at path when it exists, then applies
// environment overrides and defaults. Key material is only accepted
// through ONSOCIAL_PRIVATE_KEY / ONSOCIAL_PUBLIC_KEY or the file.
func Load(path string) (Config, error) {
	cfg := Config{
		HTTPAddr:        ":8080",
		DBDSN:           "file:onsocial.db",
		Issuer:          "self",
		TokenExpiration: 1,
		AuthScheme:      "Bearer",
		ContextKey:      "user",
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.HTTPAddr = getenv("ONSOCIAL_HTTP_ADDR", cfg.HTTPAddr)
	cfg.DBDSN = getenv("ONSOCIAL_DB_DSN", cfg.DBDSN)
	cfg.Issuer = getenv("ONSOCIAL_ISSUER", cfg.Issuer)
	cfg.AuthScheme = getenv("ONSOCIAL_AUTH_SCHEME", cfg.AuthScheme)
	cfg.ContextKey = getenv("ONSOCIAL_CONTEXT_KEY", cfg.ContextKey)
	cfg.PrivateKey = getenv("ONSOCIAL_PRIVATE_KEY", cfg.PrivateKey)
	cfg.PublicKey = getenv("ONSOCIAL_PUBLIC_KEY", cfg.PublicKey)

	if v := os.Getenv("ONSOCIAL_TOKEN_EXPIRATION_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("config: ONSOCIAL_TOKEN_EXPIRATION_HOURS: %w", err)
		}
		cfg.TokenExpiration = hours
	}

	if v := os.Getenv("ONSOCIAL_DEBUG"); v != "" {
		cfg.Debug = v == "1" || v == "true"
	}

	if cfg.TokenExpiration <= 0 {
		cfg.TokenExpiration = 1
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c Config) GetSigningPrivateKey() string { return c.PrivateKey }
func (c Config) GetSigningPublicKey() string  { return c.PublicKey }
func (c Config) GetIssuer() string            { return c.Issuer }
func (c Config) GetTokenExpiration() int      { return c.TokenExpiration }
func (c Config) GetAuthScheme() string        { return c.AuthScheme }
func (c Config) GetContextKey() string        { return c.ContextKey }
