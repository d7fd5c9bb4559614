package identity

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"imageshare-backend/internal/shared/server/middleware"
	"imageshare-backend/internal/shared/server/respond"
)

// remoteCallTimeout bounds each identity-provider round trip.
const remoteCallTimeout = 10 * time.Second

// Handler wires HTTP handlers to an identity provider.
type Handler struct {
	Provider Provider
}

// NewHandler constructs a Handler.
func NewHandler(provider Provider) *Handler {
	return &Handler{Provider: provider}
}

// RegisterRoutes attaches identity routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/confirm", h.confirm)
	rg.POST("/auth/login", h.login)
	rg.GET("/me", h.me)
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "username, password and email are required", nil)
		return
	}

	ctx, cancel := callContext(c)
	defer cancel()

	handle, err := h.Provider.SignUp(ctx, req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, ErrProvider) {
			respond.Error(c, http.StatusBadRequest, "identity_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "registration failed", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, registerResponse{
		UserHandle: handle,
		Message:    "registration successful, check your email for the confirmation code",
	})
}

func (h *Handler) confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "username and code are required", nil)
		return
	}

	ctx, cancel := callContext(c)
	defer cancel()

	if err := h.Provider.ConfirmSignUp(ctx, req.Username, req.Code); err != nil {
		if errors.Is(err, ErrProvider) {
			respond.Error(c, http.StatusBadRequest, "identity_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "confirmation failed", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"message": "account confirmed, you can now log in"})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "username and password are required", nil)
		return
	}

	ctx, cancel := callContext(c)
	defer cancel()

	tokens, err := h.Provider.SignIn(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrProvider) {
			respond.Error(c, http.StatusUnauthorized, "identity_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "login failed", nil)
		return
	}

	respond.JSON(c, http.StatusOK, tokens)
}

// me echoes the identity the auth middleware already resolved; no second
// round trip to the provider.
func (h *Handler) me(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}
	respond.JSON(c, http.StatusOK, ident)
}

func callContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), remoteCallTimeout)
}
