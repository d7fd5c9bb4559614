package images

import "time"

// Status values for an image record. The only legal transition is
// active -> deleted; records are never physically removed by this system.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// CreatedAtLayout is a fixed-width ISO-8601 UTC layout, so lexicographic
// order of CreatedAt strings equals chronological order.
const CreatedAtLayout = "2006-01-02T15:04:05.000000000Z"

// Image is the metadata record for one uploaded image. ID and StorageKey are
// distinct: the key is generated by the blob store from a fresh random value,
// never from the user-supplied name.
type Image struct {
	ID               string `dynamodbav:"image_id"`
	Owner            string `dynamodbav:"owner"`
	OriginalFilename string `dynamodbav:"original_filename"`
	StorageKey       string `dynamodbav:"storage_key"`
	CreatedAt        string `dynamodbav:"created_at"`
	Status           string `dynamodbav:"status"`
}

// NowStamp returns the current UTC time in CreatedAtLayout.
func NowStamp() string {
	return time.Now().UTC().Format(CreatedAtLayout)
}
