package server

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"imageshare-backend/internal/identity"
	"imageshare-backend/internal/images"
	"imageshare-backend/internal/shared/config"
	"imageshare-backend/internal/shared/metrics"
	"imageshare-backend/internal/shared/server/middleware"
	"imageshare-backend/internal/shared/server/respond"
	localstore "imageshare-backend/internal/shared/storage/blob/local"
)

// Rate-limit groups. Auth endpoints take credential guesses, uploads take
// bandwidth; everything else passes through.
const (
	groupAuth   = "auth"
	groupUpload = "upload"
)

// RouterDeps carries the constructed dependencies the router wires up.
type RouterDeps struct {
	Config          config.Config
	Verifier        identity.Verifier
	IdentityHandler *identity.Handler
	ImagesHandler   *images.Handler

	// LocalBlobs is set when the local blob store is active; the router then
	// serves stored files directly instead of redirecting to a remote URL.
	LocalBlobs *localstore.Store
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Verifier),
		middleware.RateLimit(rateLimits()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.IdentityHandler.RegisterRoutes(api)
	deps.ImagesHandler.RegisterRoutes(api)
	if deps.LocalBlobs != nil {
		registerFileRoutes(api, deps.LocalBlobs)
	}

	r.GET("/metrics", metrics.Handler())

	return r
}

func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			groupAuth:   {Rate: 1, Burst: 10},
			groupUpload: {Rate: 0.5, Burst: 10},
		},
		GroupFor: func(c *gin.Context) string {
			p := c.Request.URL.Path
			switch {
			case strings.HasPrefix(p, "/api/v1/auth/"):
				return groupAuth
			case c.Request.Method == http.MethodPost && p == "/api/v1/images":
				return groupUpload
			}
			return ""
		},
	}
}

// registerFileRoutes serves blobs from the local store. The route exists for
// dev and test setups only; production traffic goes straight to object
// storage via presigned URLs.
func registerFileRoutes(rg *gin.RouterGroup, store *localstore.Store) {
	rg.GET("/files/:key", func(c *gin.Context) {
		key := c.Param("key")
		rc, err := store.Open(c.Request.Context(), key)
		if err != nil {
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}
		defer rc.Close()

		contentType := mime.TypeByExtension(path.Ext(key))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, rc); err != nil {
			// Response already started; nothing sensible left to send.
			c.Abort()
		}
	})
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
