package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/lixumin/vocabvid-gateway/internal/credstore"
)

var (
	// ErrInvalidCredentials is returned by Login for a bad username or
	// password, deliberately without distinguishing which.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrUserDisabled is returned when the token is valid but the resolved
	// user record is disabled.
	ErrUserDisabled = errors.New("user is disabled")
)

// Authenticator ties the credential store and token service together: it
// exchanges passwords for tokens and tokens for user records.
type Authenticator struct {
	store  credstore.Store
	tokens *TokenService
}

// NewAuthenticator creates an Authenticator over the given store and token
// service.
func NewAuthenticator(store credstore.Store, tokens *TokenService) *Authenticator {
	return &Authenticator{store: store, tokens: tokens}
}

// Login verifies the username/password pair and returns a freshly issued
// bearer token.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	user, err := a.store.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, credstore.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return a.tokens.Issue(user.Username)
}

// Authenticate validates a bearer token and resolves it to a user record.
// Unknown subjects fail with ErrInvalidToken; disabled users fail with
// ErrUserDisabled.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*credstore.User, error) {
	username, err := a.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	user, err := a.store.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, credstore.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if user.Disabled {
		return nil, ErrUserDisabled
	}
	return user, nil
}

// ExtractBearer extracts the bearer token from the Authorization header.
func ExtractBearer(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("missing Authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", errors.New("invalid Authorization header format")
	}
	if !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("unsupported authorization scheme")
	}

	return parts[1], nil
}
