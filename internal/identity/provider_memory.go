package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryConfirmationCode is the code MemoryProvider accepts for any pending
// account. Dev-only; the real provider emails a per-account code.
const MemoryConfirmationCode = "000000"

type memoryAccount struct {
	password  string
	email     string
	confirmed bool
}

// MemoryProvider is an in-memory implementation of Provider for development
// and tests.
type MemoryProvider struct {
	mu       sync.RWMutex
	accounts map[string]*memoryAccount
	tokens   map[string]string // access token -> username
}

// NewMemoryProvider constructs a MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		accounts: make(map[string]*memoryAccount),
		tokens:   make(map[string]string),
	}
}

// SignUp registers a pending account.
func (p *MemoryProvider) SignUp(ctx context.Context, username, password, email string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if username == "" || password == "" || email == "" {
		return "", fmt.Errorf("%w: username, password and email are required", ErrProvider)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.accounts[username]; exists {
		return "", fmt.Errorf("%w: username already exists", ErrProvider)
	}
	p.accounts[username] = &memoryAccount{password: password, email: email}
	return uuid.NewString(), nil
}

// ConfirmSignUp finalizes a pending account.
func (p *MemoryProvider) ConfirmSignUp(ctx context.Context, username, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	account, ok := p.accounts[username]
	if !ok {
		return fmt.Errorf("%w: unknown username", ErrProvider)
	}
	if account.confirmed {
		return fmt.Errorf("%w: account already confirmed", ErrProvider)
	}
	if code != MemoryConfirmationCode {
		return fmt.Errorf("%w: invalid confirmation code", ErrProvider)
	}
	account.confirmed = true
	return nil
}

// SignIn exchanges credentials for opaque tokens.
func (p *MemoryProvider) SignIn(ctx context.Context, username, password string) (Tokens, error) {
	if err := ctx.Err(); err != nil {
		return Tokens{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	account, ok := p.accounts[username]
	if !ok || account.password != password {
		return Tokens{}, fmt.Errorf("%w: incorrect username or password", ErrProvider)
	}
	if !account.confirmed {
		return Tokens{}, fmt.Errorf("%w: account is not confirmed", ErrProvider)
	}

	access := uuid.NewString()
	p.tokens[access] = username
	return Tokens{
		ID:      uuid.NewString(),
		Access:  access,
		Refresh: uuid.NewString(),
	}, nil
}

// VerifyToken resolves an access token issued by SignIn.
func (p *MemoryProvider) VerifyToken(ctx context.Context, accessToken string) (UserInfo, error) {
	if err := ctx.Err(); err != nil {
		return UserInfo{}, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	username, ok := p.tokens[accessToken]
	if !ok {
		return UserInfo{}, fmt.Errorf("%w: invalid or expired token", ErrProvider)
	}
	account := p.accounts[username]
	return UserInfo{
		Username:   username,
		Attributes: map[string]string{"email": account.email},
	}, nil
}

var _ Provider = (*MemoryProvider)(nil)
