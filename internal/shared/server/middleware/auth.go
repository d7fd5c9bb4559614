package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"imageshare-backend/internal/shared/server/respond"
)

const identityKey = "identity"

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	Username   string            `json:"username"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// TokenVerifier resolves a bearer access token to an identity. Verification
// is a remote call to the identity provider; failures of any kind are treated
// as an invalid token.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, accessToken string) (Identity, error)
}

// publicPrefixes lists route prefixes reachable without a token.
var publicPrefixes = []string{
	"/api/v1/health",
	"/api/v1/auth/",
	"/api/v1/feed",
	"/api/v1/files/",
	"/metrics",
}

// Auth validates bearer tokens against the identity provider and stores the
// resolved identity in the request context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		ident, err := verifier.VerifyAccessToken(c.Request.Context(), token)
		if err != nil || ident.Username == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(identityKey, ident)
		c.Set("username", ident.Username)
		c.Next()
	}
}

// IdentityFromContext fetches the identity set by the auth middleware.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	if c == nil {
		return Identity{}, false
	}
	val, _ := c.Get(identityKey)
	ident, ok := val.(Identity)
	return ident, ok
}

// UsernameFromContext fetches the username set by the auth middleware.
func UsernameFromContext(c *gin.Context) string {
	ident, _ := IdentityFromContext(c)
	return ident.Username
}
