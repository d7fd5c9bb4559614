package images

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var imageColumns = []string{"image_id", "owner", "original_filename", "storage_key", "created_at", "status"}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	img := Image{
		ID:               "img-1",
		Owner:            "alice",
		OriginalFilename: "sunset.png",
		StorageKey:       "0f8fad5b.png",
		CreatedAt:        "2026-01-01T10:00:00.000000000Z",
	}

	mock.ExpectExec("INSERT INTO images").
		WithArgs(img.ID, img.Owner, img.OriginalFilename, img.StorageKey, img.CreatedAt, StatusActive).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), img); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM images").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(imageColumns))

	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListRecentFiltersActiveAndLimits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	rows := sqlmock.NewRows(imageColumns).
		AddRow("img-2", "bob", "b.png", "key-2", "2026-02-01T10:00:00.000000000Z", StatusActive).
		AddRow("img-1", "alice", "a.png", "key-1", "2026-01-01T10:00:00.000000000Z", StatusActive)

	mock.ExpectQuery("SELECT (.+) FROM images").
		WithArgs(StatusActive, 2).
		WillReturnRows(rows)

	got, err := repo.ListRecent(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ID != "img-2" || got[1].ID != "img-1" {
		t.Fatalf("expected order [img-2 img-1], got [%s %s]", got[0].ID, got[1].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE images SET status").
		WithArgs(StatusDeleted, "img-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SoftDelete(context.Background(), "img-1"); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	// Missing IDs report success as zero affected rows, not an error.
	mock.ExpectExec("UPDATE images SET status").
		WithArgs(StatusDeleted, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SoftDelete(context.Background(), "missing"); err != nil {
		t.Fatalf("SoftDelete missing: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
