package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"imageshare-backend/internal/shared/storage/blob"
)

func TestPutGeneratesKeyDistinctFromName(t *testing.T) {
	store := New(t.TempDir(), "")
	ctx := context.Background()

	key, err := store.Put(ctx, bytes.NewReader([]byte("pixels")), "Cat.PNG", "image/png")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if key == "Cat.PNG" || key == "cat.png" {
		t.Fatalf("storage key must not be the display name, got %q", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("expected lower-cased extension suffix, got %q", key)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "pixels" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestPutWithoutExtension(t *testing.T) {
	store := New(t.TempDir(), "")

	key, err := store.Put(context.Background(), bytes.NewReader([]byte("x")), "noext", "")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if strings.Contains(key, ".") {
		t.Fatalf("expected no extension in key, got %q", key)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := New(t.TempDir(), "")
	ctx := context.Background()

	key, err := store.Put(ctx, bytes.NewReader([]byte("x")), "a.png", "")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("second delete should be a no-op, got: %v", err)
	}
}

func TestPresignedURLAndKeyValidation(t *testing.T) {
	store := New(t.TempDir(), "/api/v1/files")

	url, err := store.PresignedURL(context.Background(), "abc.png", 0)
	if err != nil {
		t.Fatalf("presigned url: %v", err)
	}
	if url != "/api/v1/files/abc.png" {
		t.Fatalf("unexpected url %q", url)
	}

	for _, bad := range []string{"../escape", "/abs/path", "a/b.png"} {
		if _, err := store.PresignedURL(context.Background(), bad, 0); !errors.Is(err, blob.ErrStorage) {
			t.Errorf("key %q: expected ErrStorage, got %v", bad, err)
		}
	}
}
