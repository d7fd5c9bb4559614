package images

import "errors"

var (
	// ErrInvalidInput flags a request rejected before any remote call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMetadata is the single failure kind surfaced by metadata repos.
	// The backend's reason is carried in the wrapped message.
	ErrMetadata = errors.New("metadata store error")

	// ErrNotFound means no record exists under the given image ID.
	ErrNotFound = errors.New("image not found")

	// ErrNotOwner means the requester does not own the record.
	ErrNotOwner = errors.New("not the image owner")
)
