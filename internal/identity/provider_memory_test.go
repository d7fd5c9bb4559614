package identity

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryProviderFullFlow(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()

	sub, err := p.SignUp(ctx, "alice", "hunter22", "alice@example.com")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if sub == "" {
		t.Fatal("expected non-empty user sub")
	}

	// Sign-in before confirmation must fail.
	if _, err := p.SignIn(ctx, "alice", "hunter22"); !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider for unconfirmed account, got %v", err)
	}

	if err := p.ConfirmSignUp(ctx, "alice", "wrong"); !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider for bad code, got %v", err)
	}
	if err := p.ConfirmSignUp(ctx, "alice", MemoryConfirmationCode); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := p.ConfirmSignUp(ctx, "alice", MemoryConfirmationCode); !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider for double confirm, got %v", err)
	}

	tokens, err := p.SignIn(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if tokens.Access == "" {
		t.Fatal("expected access token")
	}

	info, err := p.VerifyToken(ctx, tokens.Access)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if info.Username != "alice" {
		t.Fatalf("expected username alice, got %q", info.Username)
	}
	if info.Attributes["email"] != "alice@example.com" {
		t.Fatalf("expected email attribute, got %v", info.Attributes)
	}
}

func TestMemoryProviderRejections(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()

	if _, err := p.SignUp(ctx, "bob", "pw", "bob@example.com"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, err := p.SignUp(ctx, "bob", "other", "bob2@example.com"); !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider for duplicate username, got %v", err)
	}

	if err := p.ConfirmSignUp(ctx, "bob", MemoryConfirmationCode); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := p.SignIn(ctx, "bob", "nope"); !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider for bad password, got %v", err)
	}
	if _, err := p.VerifyToken(ctx, "garbage"); !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider for unknown token, got %v", err)
	}
}
