package identity

import (
	"context"

	"imageshare-backend/internal/shared/server/middleware"
)

// Verifier adapts a Provider to the auth middleware's TokenVerifier.
type Verifier struct {
	Provider Provider
}

// VerifyAccessToken resolves the token through the provider with a bounded
// timeout.
func (v Verifier) VerifyAccessToken(ctx context.Context, accessToken string) (middleware.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, remoteCallTimeout)
	defer cancel()

	info, err := v.Provider.VerifyToken(ctx, accessToken)
	if err != nil {
		return middleware.Identity{}, err
	}
	return middleware.Identity{
		Username:   info.Username,
		Attributes: info.Attributes,
	}, nil
}

var _ middleware.TokenVerifier = Verifier{}
