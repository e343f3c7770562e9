package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Save original env vars
	origPort := os.Getenv("VOCAB_SERVER__PORT")
	defer func() {
		if origPort != "" {
			os.Setenv("VOCAB_SERVER__PORT", origPort)
		} else {
			os.Unsetenv("VOCAB_SERVER__PORT")
		}
	}()

	t.Run("defaults", func(t *testing.T) {
		os.Unsetenv("VOCAB_SERVER__PORT")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Server.Port != 20050 {
			t.Errorf("Load() port = %v, want 20050", cfg.Server.Port)
		}
		if cfg.Auth.TokenTTL != 168*time.Hour {
			t.Errorf("Load() token ttl = %v, want 168h", cfg.Auth.TokenTTL)
		}
		if cfg.Gemini.Model != "gemini-2.0-flash" {
			t.Errorf("Load() model = %v, want gemini-2.0-flash", cfg.Gemini.Model)
		}
		if cfg.Storage.Type != "memory" {
			t.Errorf("Load() storage type = %v, want memory", cfg.Storage.Type)
		}
		if cfg.Server.StreamTimeout != 5*time.Minute {
			t.Errorf("Load() stream timeout = %v, want 5m", cfg.Server.StreamTimeout)
		}
	})

	t.Run("env var overrides", func(t *testing.T) {
		os.Setenv("VOCAB_SERVER__PORT", "9000")
		os.Setenv("VOCAB_AUTH__SECRET", "s3cret")
		defer os.Unsetenv("VOCAB_AUTH__SECRET")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Server.Port != 9000 {
			t.Errorf("Load() port = %v, want 9000", cfg.Server.Port)
		}
		if cfg.Auth.Secret != "s3cret" {
			t.Errorf("Load() secret = %q, want s3cret", cfg.Auth.Secret)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid memory config",
			cfg: Config{
				Auth:    AuthConfig{Secret: "secret"},
				Storage: StorageConfig{Type: "memory"},
			},
		},
		{
			name: "missing secret",
			cfg: Config{
				Storage: StorageConfig{Type: "memory"},
			},
			wantErr: true,
		},
		{
			name: "unknown storage type",
			cfg: Config{
				Auth:    AuthConfig{Secret: "secret"},
				Storage: StorageConfig{Type: "postgres"},
			},
			wantErr: true,
		},
		{
			name: "sqlite without path",
			cfg: Config{
				Auth:    AuthConfig{Secret: "secret"},
				Storage: StorageConfig{Type: "sqlite"},
			},
			wantErr: true,
		},
		{
			name: "sqlite with path",
			cfg: Config{
				Auth:    AuthConfig{Secret: "secret"},
				Storage: StorageConfig{Type: "sqlite", SQLite: SQLiteConfig{Path: "users.db"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubstituteEnvVars(t *testing.T) {
	// Set test env var
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple substitution",
			input: "${TEST_VAR}",
			want:  "test-value",
		},
		{
			name:  "substitution in string",
			input: "prefix-${TEST_VAR}-suffix",
			want:  "prefix-test-value-suffix",
		},
		{
			name:  "no substitution",
			input: "plain-string",
			want:  "plain-string",
		},
		{
			name:  "undefined var",
			input: "${UNDEFINED_VAR}",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := substituteEnvVars(tt.input)
			if got != tt.want {
				t.Errorf("substituteEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSeedUsers(t *testing.T) {
	cfg := Config{
		Users: []UserConfig{
			{Username: "testuser", Email: "testuser@example.com", PasswordHash: "digest"},
			{Username: "frozen", Disabled: true, PasswordHash: "digest"},
		},
	}

	users := cfg.SeedUsers()
	if len(users) != 2 {
		t.Fatalf("SeedUsers() len = %d, want 2", len(users))
	}
	if users[0].Username != "testuser" || users[0].Email != "testuser@example.com" {
		t.Errorf("SeedUsers()[0] = %+v", users[0])
	}
	if !users[1].Disabled {
		t.Error("SeedUsers()[1].Disabled = false, want true")
	}
}
