package images

import (
	"context"
	"errors"
	"testing"
)

func seedImage(t *testing.T, repo Repo, id, owner, createdAt string) {
	t.Helper()
	img := Image{
		ID:               id,
		Owner:            owner,
		OriginalFilename: id + ".png",
		StorageKey:       "key-" + id,
		CreatedAt:        createdAt,
		Status:           StatusActive,
	}
	if err := repo.Create(context.Background(), img); err != nil {
		t.Fatalf("Create %s: %v", id, err)
	}
}

func TestMemoryRepoListsNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	// Inserted oldest-last on purpose; order must come from CreatedAt, not
	// insertion order.
	seedImage(t, repo, "mid", "alice", "2026-02-01T10:00:00.000000000Z")
	seedImage(t, repo, "new", "alice", "2026-03-01T10:00:00.000000000Z")
	seedImage(t, repo, "old", "alice", "2026-01-01T10:00:00.000000000Z")

	got, err := repo.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	want := []string{"new", "mid", "old"}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestMemoryRepoListByOwnerFiltersOtherOwners(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	seedImage(t, repo, "a1", "alice", "2026-01-01T10:00:00.000000000Z")
	seedImage(t, repo, "a2", "alice", "2026-01-02T10:00:00.000000000Z")
	seedImage(t, repo, "b1", "bob", "2026-01-03T10:00:00.000000000Z")

	got, err := repo.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records for alice, got %d", len(got))
	}
	for _, img := range got {
		if img.Owner != "alice" {
			t.Fatalf("unexpected owner %s in alice's listing", img.Owner)
		}
	}
}

func TestMemoryRepoListRecentTruncatesAfterSorting(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	seedImage(t, repo, "old", "alice", "2026-01-01T10:00:00.000000000Z")
	seedImage(t, repo, "new", "bob", "2026-03-01T10:00:00.000000000Z")
	seedImage(t, repo, "mid", "carol", "2026-02-01T10:00:00.000000000Z")

	got, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	// Truncation must keep the globally newest two, not an arbitrary pair.
	if got[0].ID != "new" || got[1].ID != "mid" {
		t.Fatalf("expected [new mid], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestMemoryRepoSoftDeleteHidesFromListingsOnly(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	seedImage(t, repo, "img-1", "alice", "2026-01-01T10:00:00.000000000Z")

	if err := repo.SoftDelete(ctx, "img-1"); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	byOwner, err := repo.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(byOwner) != 0 {
		t.Fatalf("expected deleted record hidden from gallery, got %d records", len(byOwner))
	}

	recent, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected deleted record hidden from feed, got %d records", len(recent))
	}

	// The record itself survives for audit-style reads.
	img, err := repo.GetByID(ctx, "img-1")
	if err != nil {
		t.Fatalf("GetByID after soft delete: %v", err)
	}
	if img.Status != StatusDeleted {
		t.Fatalf("expected status %s, got %s", StatusDeleted, img.Status)
	}
}

func TestMemoryRepoSoftDeleteIsIdempotent(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	seedImage(t, repo, "img-1", "alice", "2026-01-01T10:00:00.000000000Z")

	if err := repo.SoftDelete(ctx, "img-1"); err != nil {
		t.Fatalf("first SoftDelete: %v", err)
	}
	if err := repo.SoftDelete(ctx, "img-1"); err != nil {
		t.Fatalf("repeated SoftDelete: %v", err)
	}
	if err := repo.SoftDelete(ctx, "never-existed"); err != nil {
		t.Fatalf("SoftDelete of missing ID: %v", err)
	}
}

func TestMemoryRepoGetByIDMissing(t *testing.T) {
	repo := NewMemoryRepo()

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
