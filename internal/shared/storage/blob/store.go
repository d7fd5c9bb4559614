package blob

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"imageshare-backend/internal/shared/util"
)

// ErrStorage is the single failure kind surfaced by blob store
// implementations. The remote provider's reason is carried in the wrapped
// message; callers branch with errors.Is, never on message text.
var ErrStorage = errors.New("storage error")

// DefaultPresignTTL bounds read-URL validity when callers pass no TTL.
const DefaultPresignTTL = time.Hour

// Store defines the contract for binary object storage.
type Store interface {
	// Put streams content to the store under a freshly generated key and
	// returns that key. The caller-supplied display name only contributes
	// its extension; the returned key never contains the name itself.
	Put(ctx context.Context, r io.Reader, displayName, contentType string) (storageKey string, err error)

	// Delete removes the object under storageKey. Deleting an absent key is
	// not an error; ErrStorage is returned only on genuine failures.
	Delete(ctx context.Context, storageKey string) error

	// PresignedURL returns a time-limited unauthenticated-read URL for
	// storageKey. The key is not checked for existence.
	PresignedURL(ctx context.Context, storageKey string, ttl time.Duration) (string, error)
}

// NewKey derives a collision-resistant storage key from a fresh random
// identifier plus the lower-cased extension of displayName, if any.
func NewKey(displayName string) string {
	id := uuid.NewString()
	if ext := util.Extension(displayName); ext != "" {
		return id + "." + ext
	}
	return id
}
