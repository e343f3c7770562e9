package config

import (
	"errors"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/lixumin/vocabvid-gateway/internal/credstore"
)

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Auth    AuthConfig    `koanf:"auth"`
	Gemini  GeminiConfig  `koanf:"gemini"`
	Storage StorageConfig `koanf:"storage"`
	Users   []UserConfig  `koanf:"users"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
	// RequestTimeout bounds ordinary requests; StreamTimeout bounds the
	// generation route, which holds the connection open while relaying.
	RequestTimeout time.Duration `koanf:"request_timeout"`
	StreamTimeout  time.Duration `koanf:"stream_timeout"`
}

type AuthConfig struct {
	Secret   string        `koanf:"secret"`
	TokenTTL time.Duration `koanf:"token_ttl"`
}

type GeminiConfig struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
	Model   string `koanf:"model"`
}

type StorageConfig struct {
	Type   string       `koanf:"type"` // memory, sqlite
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

type UserConfig struct {
	Username     string `koanf:"username"`
	Email        string `koanf:"email"`
	PasswordHash string `koanf:"password_hash"`
	Disabled     bool   `koanf:"disabled"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load from config.yaml file first
	if err := k.Load(file.Provider("config.yaml"), yaml.Parser()); err != nil {
		// File not found is OK, we'll use env vars
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// Load environment variables (can override file config)
	if err := k.Load(env.Provider("VOCAB_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "VOCAB_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("server.port") {
		k.Set("server.port", 20050)
	}
	if !k.Exists("server.request_timeout") {
		k.Set("server.request_timeout", "30s")
	}
	if !k.Exists("server.stream_timeout") {
		k.Set("server.stream_timeout", "5m")
	}
	if !k.Exists("auth.token_ttl") {
		k.Set("auth.token_ttl", "168h")
	}
	if !k.Exists("gemini.model") {
		k.Set("gemini.model", "gemini-2.0-flash")
	}
	if !k.Exists("storage.type") {
		k.Set("storage.type", "memory")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	// Substitute environment variables in secret material so config.yaml can
	// reference ${JWT_SECRET_KEY} and ${GOOGLE_API_KEY} without embedding them
	cfg.Auth.Secret = substituteEnvVars(cfg.Auth.Secret)
	cfg.Gemini.APIKey = substituteEnvVars(cfg.Gemini.APIKey)

	return &cfg, nil
}

// Validate checks fatal misconfigurations. A missing signing secret must stop
// the process at startup rather than fail every login.
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return errors.New("auth.secret is required (set VOCAB_AUTH__SECRET or auth.secret in config.yaml)")
	}
	if c.Storage.Type != "memory" && c.Storage.Type != "sqlite" {
		return errors.New(`storage.type must be "memory" or "sqlite"`)
	}
	if c.Storage.Type == "sqlite" && c.Storage.SQLite.Path == "" {
		return errors.New(`storage.sqlite.path is required when storage.type is "sqlite"`)
	}
	return nil
}

// SeedUsers converts configured user entries into credential records.
func (c *Config) SeedUsers() []credstore.User {
	users := make([]credstore.User, 0, len(c.Users))
	for _, u := range c.Users {
		users = append(users, credstore.User{
			Username:     u.Username,
			Email:        u.Email,
			Disabled:     u.Disabled,
			PasswordHash: u.PasswordHash,
		})
	}
	return users
}

func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
