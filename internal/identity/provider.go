package identity

import (
	"context"
	"errors"
)

// ErrProvider is the single failure kind surfaced by identity providers.
// Duplicate usernames, rejected passwords, bad credentials, throttling and
// transport failures all collapse into it; the provider's reason is carried
// in the wrapped message. Callers branch with errors.Is.
var ErrProvider = errors.New("identity provider error")

// Tokens is the credential set returned by a successful sign-in.
type Tokens struct {
	ID      string `json:"idToken"`
	Access  string `json:"accessToken"`
	Refresh string `json:"refreshToken"`
}

// UserInfo is the identity resolved from an access token.
type UserInfo struct {
	Username   string            `json:"username"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Provider wraps the remote identity service. Implementations keep no local
// state; every call is a synchronous remote round trip.
type Provider interface {
	// SignUp creates a pending account and returns the provider-assigned
	// user handle.
	SignUp(ctx context.Context, username, password, email string) (string, error)

	// ConfirmSignUp finalizes a pending account with the emailed code.
	ConfirmSignUp(ctx context.Context, username, code string) error

	// SignIn exchanges credentials for tokens.
	SignIn(ctx context.Context, username, password string) (Tokens, error)

	// VerifyToken resolves an access token to the user it belongs to.
	VerifyToken(ctx context.Context, accessToken string) (UserInfo, error)
}
