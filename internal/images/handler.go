package images

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"imageshare-backend/internal/shared/server/middleware"
	"imageshare-backend/internal/shared/server/respond"
	"imageshare-backend/internal/shared/storage/blob"
)

const (
	defaultFeedLimit = 12
	maxFeedLimit     = 50
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches image routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/images", h.upload)
	rg.GET("/images", h.gallery)
	rg.GET("/feed", h.feed)
	rg.DELETE("/images/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	owner := middleware.UsernameFromContext(c)
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	img, err := h.Svc.Upload(c.Request.Context(), owner, file, fileHeader.Filename, contentType)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "file type not allowed", nil)
		case errors.Is(err, blob.ErrStorage):
			respond.Error(c, http.StatusBadGateway, "storage_error", "failed to store image", nil)
		case errors.Is(err, ErrMetadata):
			respond.Error(c, http.StatusBadGateway, "metadata_error", "failed to record image", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "upload failed", nil)
		}
		return
	}

	c.Set("imageId", img.ID)
	respond.JSON(c, http.StatusCreated, toResponse(img))
}

func (h *Handler) gallery(c *gin.Context) {
	owner := middleware.UsernameFromContext(c)

	views, err := h.Svc.Gallery(c.Request.Context(), owner)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "metadata_error", "failed to list images", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"images": views})
}

func (h *Handler) feed(c *gin.Context) {
	limit := defaultFeedLimit
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	views, err := h.Svc.Recent(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "metadata_error", "failed to list images", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"images": views})
}

func (h *Handler) remove(c *gin.Context) {
	requester := middleware.UsernameFromContext(c)
	imageID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), requester, imageID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "image not found", nil)
		case errors.Is(err, ErrNotOwner):
			respond.Error(c, http.StatusForbidden, "forbidden", "you do not own this image", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "delete_failed", "delete partially failed, please retry", nil)
		}
		return
	}

	c.Set("imageId", imageID)
	respond.JSON(c, http.StatusOK, gin.H{"deleted": imageID})
}
