package images

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo for development and
// tests. It mirrors the scan-then-filter access pattern of the key-value
// backends.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Image // image ID -> record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Image)}
}

// Create stores a new record.
func (r *MemoryRepo) Create(ctx context.Context, img Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[img.ID] = img
	return nil
}

// GetByID returns the record regardless of status.
func (r *MemoryRepo) GetByID(ctx context.Context, imageID string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.data[imageID]
	if !ok {
		return Image{}, ErrNotFound
	}
	return img, nil
}

// ListByOwner returns active records for owner, newest first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, owner string) ([]Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Image, 0)
	for _, img := range r.data {
		if img.Status == StatusActive && img.Owner == owner {
			out = append(out, img)
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

// ListRecent returns the limit most recent active records.
func (r *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Image, 0)
	for _, img := range r.data {
		if img.Status == StatusActive {
			out = append(out, img)
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SoftDelete flips the record's status to deleted; missing IDs are ignored.
func (r *MemoryRepo) SoftDelete(ctx context.Context, imageID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if img, ok := r.data[imageID]; ok {
		img.Status = StatusDeleted
		r.data[imageID] = img
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
