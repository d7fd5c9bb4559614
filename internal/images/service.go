package images

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"imageshare-backend/internal/shared/metrics"
	"imageshare-backend/internal/shared/storage/blob"
	"imageshare-backend/internal/shared/telemetry"
	"imageshare-backend/internal/shared/util"
)

// remoteCallTimeout bounds each blob-store or metadata-store round trip.
const remoteCallTimeout = 10 * time.Second

// Service orchestrates the blob store and the metadata repo.
//
// Upload is a non-atomic two-service write: blob first, record second, with a
// best-effort compensating blob delete when the record write fails. There is
// no distributed transaction; a crash between the two writes can leave an
// orphaned blob, which is an accepted limitation.
type Service struct {
	Blobs             blob.Store
	Repo              Repo
	AllowedExtensions []string
	PresignTTL        time.Duration
}

// View is the outward-facing representation of an image, URL included.
type View struct {
	ID        string `json:"imageId"`
	URL       string `json:"url"`
	Filename  string `json:"filename"`
	Owner     string `json:"owner"`
	CreatedAt string `json:"createdAt"`
}

// Upload validates the display name, stores the content, and records the
// image. Validation happens before any remote call.
func (s *Service) Upload(ctx context.Context, owner string, r io.Reader, displayName, contentType string) (Image, error) {
	sanitized, err := util.SanitizeFileName(displayName)
	if err != nil {
		return Image{}, ErrInvalidInput
	}
	if !s.extensionAllowed(sanitized) {
		return Image{}, ErrInvalidInput
	}

	metrics.IncUploadStarted()
	start := time.Now()

	putCtx, cancelPut := context.WithTimeout(ctx, remoteCallTimeout)
	defer cancelPut()
	storageKey, err := s.Blobs.Put(putCtx, r, sanitized, contentType)
	if err != nil {
		metrics.IncUploadFailed()
		return Image{}, err
	}

	img := Image{
		ID:               uuid.NewString(),
		Owner:            owner,
		OriginalFilename: sanitized,
		StorageKey:       storageKey,
		CreatedAt:        NowStamp(),
		Status:           StatusActive,
	}

	createCtx, cancelCreate := context.WithTimeout(ctx, remoteCallTimeout)
	defer cancelCreate()
	if err := s.Repo.Create(createCtx, img); err != nil {
		s.compensate(ctx, storageKey)
		metrics.IncUploadFailed()
		return Image{}, err
	}

	metrics.IncUploadCompleted()
	metrics.ObserveUploadDurationMs(float64(time.Since(start).Milliseconds()))
	return img, nil
}

// compensate issues a best-effort blob delete after a failed record write.
// Its outcome is logged but never surfaced; the metadata failure is what the
// caller sees. Runs detached from request cancellation so an aborted request
// cannot also abort the cleanup.
func (s *Service) compensate(ctx context.Context, storageKey string) {
	metrics.IncUploadCompensation()

	delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), remoteCallTimeout)
	defer cancel()
	if err := s.Blobs.Delete(delCtx, storageKey); err != nil {
		telemetry.Warn("upload.compensation_failed", map[string]any{
			"storage_key": storageKey,
			"err":         err.Error(),
		})
		return
	}
	telemetry.Info("upload.compensated", map[string]any{"storage_key": storageKey})
}

// Delete removes an image the requester owns. The blob delete and the record
// soft-delete are both attempted regardless of each other's outcome; if
// either fails the overall operation reports failure even though the other
// side may already have taken effect. The succeeded side is not rolled back.
func (s *Service) Delete(ctx context.Context, requester, imageID string) error {
	getCtx, cancelGet := context.WithTimeout(ctx, remoteCallTimeout)
	defer cancelGet()
	img, err := s.Repo.GetByID(getCtx, imageID)
	if err != nil {
		return err
	}
	if img.Owner != requester {
		return ErrNotOwner
	}

	blobCtx, cancelBlob := context.WithTimeout(ctx, remoteCallTimeout)
	defer cancelBlob()
	blobErr := s.Blobs.Delete(blobCtx, img.StorageKey)

	metaCtx, cancelMeta := context.WithTimeout(ctx, remoteCallTimeout)
	defer cancelMeta()
	metaErr := s.Repo.SoftDelete(metaCtx, imageID)

	if blobErr != nil || metaErr != nil {
		telemetry.Error("image.delete_partial_failure", map[string]any{
			"image_id":    imageID,
			"storage_key": img.StorageKey,
			"blob_err":    errString(blobErr),
			"meta_err":    errString(metaErr),
		})
		return errors.Join(blobErr, metaErr)
	}
	return nil
}

// Gallery returns the requester's active images, newest first, each with a
// fresh read URL. Records whose URL cannot be signed are skipped rather than
// failing the whole listing.
func (s *Service) Gallery(ctx context.Context, owner string) ([]View, error) {
	listCtx, cancel := context.WithTimeout(ctx, remoteCallTimeout)
	defer cancel()
	items, err := s.Repo.ListByOwner(listCtx, owner)
	if err != nil {
		return nil, err
	}
	return s.withURLs(ctx, items), nil
}

// Recent returns the most recent active images across all owners.
func (s *Service) Recent(ctx context.Context, limit int) ([]View, error) {
	listCtx, cancel := context.WithTimeout(ctx, remoteCallTimeout)
	defer cancel()
	items, err := s.Repo.ListRecent(listCtx, limit)
	if err != nil {
		return nil, err
	}
	return s.withURLs(ctx, items), nil
}

func (s *Service) withURLs(ctx context.Context, items []Image) []View {
	out := make([]View, 0, len(items))
	for _, img := range items {
		url, err := s.Blobs.PresignedURL(ctx, img.StorageKey, s.PresignTTL)
		if err != nil {
			telemetry.Warn("image.presign_failed", map[string]any{
				"image_id": img.ID,
				"err":      err.Error(),
			})
			continue
		}
		out = append(out, View{
			ID:        img.ID,
			URL:       url,
			Filename:  img.OriginalFilename,
			Owner:     img.Owner,
			CreatedAt: img.CreatedAt,
		})
	}
	return out
}

func (s *Service) extensionAllowed(name string) bool {
	ext := util.Extension(name)
	if ext == "" {
		return false
	}
	for _, allowed := range s.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
