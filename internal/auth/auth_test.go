package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lixumin/vocabvid-gateway/internal/credstore"
)

var testSecret = []byte("test-secret-key")

func newTestStore(t *testing.T) credstore.Store {
	t.Helper()
	digest, err := HashPassword("testpassword")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	return credstore.NewMemoryStore([]User{
		{Username: "testuser", Email: "testuser@example.com", PasswordHash: digest},
		{Username: "frozen", PasswordHash: digest, Disabled: true},
	})
}

// User aliases credstore.User for test table brevity.
type User = credstore.User

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	for _, username := range []string{"testuser", "alice", "用户"} {
		t.Run(username, func(t *testing.T) {
			token, err := svc.Issue(username)
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}

			got, err := svc.Validate(token)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if got != username {
				t.Errorf("Validate() = %q, want %q", got, username)
			}
		})
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService(testSecret, -time.Minute)

	token, err := svc.Issue("testuser")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_Tampered(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	token, err := svc.Issue("testuser")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Flip a byte in the signature segment
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Validate(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := NewTokenService([]byte("other-secret"), time.Hour).Issue("testuser")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	svc := NewTokenService(testSecret, time.Hour)
	if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate(%q) error = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestVerifyPassword(t *testing.T) {
	digest, err := HashPassword("testpassword")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !VerifyPassword("testpassword", digest) {
		t.Error("VerifyPassword() = false for correct password")
	}
	if VerifyPassword("wrong", digest) {
		t.Error("VerifyPassword() = true for wrong password")
	}
}

func TestAuthenticator_Login(t *testing.T) {
	store := newTestStore(t)
	svc := NewTokenService(testSecret, time.Hour)
	a := NewAuthenticator(store, svc)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := a.Login(context.Background(), "testuser", "testpassword")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		username, err := svc.Validate(token)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if username != "testuser" {
			t.Errorf("token subject = %q, want testuser", username)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := a.Login(context.Background(), "testuser", "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := a.Login(context.Background(), "ghost", "testpassword"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestAuthenticator_Authenticate(t *testing.T) {
	store := newTestStore(t)
	svc := NewTokenService(testSecret, time.Hour)
	a := NewAuthenticator(store, svc)

	t.Run("valid token", func(t *testing.T) {
		token, _ := svc.Issue("testuser")
		user, err := a.Authenticate(context.Background(), token)
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if user.Username != "testuser" || user.Email != "testuser@example.com" {
			t.Errorf("Authenticate() user = %+v", user)
		}
	})

	t.Run("subject not in store", func(t *testing.T) {
		token, _ := svc.Issue("ghost")
		if _, err := a.Authenticate(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Authenticate() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("disabled user", func(t *testing.T) {
		token, _ := svc.Issue("frozen")
		if _, err := a.Authenticate(context.Background(), token); !errors.Is(err, ErrUserDisabled) {
			t.Errorf("Authenticate() error = %v, want ErrUserDisabled", err)
		}
	})
}
