package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"imageshare-backend/internal/shared/storage/blob"
)

// Store implements blob.Store using Amazon S3.
type Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	prefix  string
}

// New creates a new S3-backed blob store.
func New(ctx context.Context, region, bucket, prefix string) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		prefix:  normalizePrefix(prefix),
	}, nil
}

// Put uploads the reader contents under a generated key.
func (s *Store) Put(ctx context.Context, r io.Reader, displayName, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	storageKey := blob.NewKey(displayName)
	body := io.Reader(r)

	if contentType == "" {
		var sniff [512]byte
		n, readErr := io.ReadFull(r, sniff[:])
		if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
			return "", fmt.Errorf("%w: read content: %v", blob.ErrStorage, readErr)
		}
		contentType = http.DetectContentType(sniff[:n])
		body = io.MultiReader(bytes.NewReader(sniff[:n]), r)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(applyPrefix(s.prefix, storageKey)),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put object bucket=%s key=%s: %v", blob.ErrStorage, s.bucket, storageKey, err)
	}

	return storageKey, nil
}

// Delete removes the object under storageKey.
func (s *Store) Delete(ctx context.Context, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(applyPrefix(s.prefix, storageKey)),
	})
	if err != nil {
		return fmt.Errorf("%w: delete object bucket=%s key=%s: %v", blob.ErrStorage, s.bucket, storageKey, err)
	}
	return nil
}

// PresignedURL signs a time-limited GET URL for storageKey.
func (s *Store) PresignedURL(ctx context.Context, storageKey string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = blob.DefaultPresignTTL
	}

	out, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(applyPrefix(s.prefix, storageKey)),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", fmt.Errorf("%w: presign get bucket=%s key=%s: %v", blob.ErrStorage, s.bucket, storageKey, err)
	}
	return out.URL, nil
}

func normalizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func applyPrefix(prefix, key string) string {
	cleanKey := strings.TrimLeft(key, "/")
	if prefix == "" {
		return cleanKey
	}
	return prefix + "/" + cleanKey
}

var _ blob.Store = (*Store)(nil)
