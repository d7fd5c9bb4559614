package images

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Unlike the DynamoDB repo it pushes
// owner and status filtering plus ordering into indexed queries, keeping the
// same contract: newest first, truncation after ordering.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new record.
func (r *PGRepo) Create(ctx context.Context, img Image) error {
	const query = `
INSERT INTO images (image_id, owner, original_filename, storage_key, created_at, status)
VALUES ($1, $2, $3, $4, $5, $6)`

	status := img.Status
	if status == "" {
		status = StatusActive
	}

	_, err := r.DB.ExecContext(ctx, query,
		img.ID,
		img.Owner,
		img.OriginalFilename,
		img.StorageKey,
		img.CreatedAt,
		status,
	)
	if err != nil {
		return fmt.Errorf("%w: insert image: %v", ErrMetadata, err)
	}
	return nil
}

// GetByID returns the record regardless of status.
func (r *PGRepo) GetByID(ctx context.Context, imageID string) (Image, error) {
	const query = `
SELECT image_id, owner, original_filename, storage_key, created_at, status
FROM images
WHERE image_id = $1`

	var img Image
	err := r.DB.QueryRowContext(ctx, query, imageID).Scan(
		&img.ID,
		&img.Owner,
		&img.OriginalFilename,
		&img.StorageKey,
		&img.CreatedAt,
		&img.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Image{}, ErrNotFound
		}
		return Image{}, fmt.Errorf("%w: select image: %v", ErrMetadata, err)
	}
	return img, nil
}

// ListByOwner returns active records for owner, newest first.
func (r *PGRepo) ListByOwner(ctx context.Context, owner string) ([]Image, error) {
	const query = `
SELECT image_id, owner, original_filename, storage_key, created_at, status
FROM images
WHERE owner = $1 AND status = $2
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, owner, StatusActive)
	if err != nil {
		return nil, fmt.Errorf("%w: list by owner: %v", ErrMetadata, err)
	}
	defer rows.Close()

	return collectImages(rows)
}

// ListRecent returns the limit most recent active records.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Image, error) {
	if limit < 0 {
		limit = 0
	}
	const query = `
SELECT image_id, owner, original_filename, storage_key, created_at, status
FROM images
WHERE status = $1
ORDER BY created_at DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, StatusActive, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list recent: %v", ErrMetadata, err)
	}
	defer rows.Close()

	return collectImages(rows)
}

// SoftDelete flips the record's status; zero affected rows is not an error.
func (r *PGRepo) SoftDelete(ctx context.Context, imageID string) error {
	const query = `UPDATE images SET status = $1 WHERE image_id = $2`

	if _, err := r.DB.ExecContext(ctx, query, StatusDeleted, imageID); err != nil {
		return fmt.Errorf("%w: soft delete: %v", ErrMetadata, err)
	}
	return nil
}

func collectImages(rows *sql.Rows) ([]Image, error) {
	out := make([]Image, 0)
	for rows.Next() {
		var img Image
		if err := rows.Scan(
			&img.ID,
			&img.Owner,
			&img.OriginalFilename,
			&img.StorageKey,
			&img.CreatedAt,
			&img.Status,
		); err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", ErrMetadata, err)
		}
		out = append(out, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrMetadata, err)
	}
	return out, nil
}

var _ Repo = (*PGRepo)(nil)
