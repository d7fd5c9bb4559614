package images

import (
	"context"
	"sort"
)

// Repo defines persistence operations for image metadata.
//
// Implementations normalize backend failures to ErrMetadata; GetByID
// distinguishes a missing record (ErrNotFound) from a backend failure.
type Repo interface {
	// Create writes a new record. The caller supplies a globally-unique ID;
	// no collision check is performed.
	Create(ctx context.Context, img Image) error

	// GetByID returns the record regardless of status.
	GetByID(ctx context.Context, imageID string) (Image, error)

	// ListByOwner returns all active records for owner, newest first.
	ListByOwner(ctx context.Context, owner string) ([]Image, error)

	// ListRecent returns the limit most recent active records across all
	// owners. Truncation happens after sorting.
	ListRecent(ctx context.Context, limit int) ([]Image, error)

	// SoftDelete flips the record's status to deleted. The update is
	// unconditional: repeating it is a no-op and a missing ID is not an
	// error.
	SoftDelete(ctx context.Context, imageID string) error
}

// sortNewestFirst orders records by CreatedAt descending. The sort is stable
// so records sharing a timestamp keep a consistent relative order within one
// call.
func sortNewestFirst(items []Image) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
}
