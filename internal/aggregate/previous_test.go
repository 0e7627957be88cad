package aggregate

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gradlens-engine/internal/domain"
	"gradlens-engine/internal/store"
)

func TestLoadPrevious(t *testing.T) {
	t.Parallel()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := LoadPrevious(ctx, db.Pool); err != nil || ok {
		t.Fatalf("empty store should yield nothing, got ok=%v err=%v", ok, err)
	}

	runAt := time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC)
	postings := []domain.JobPosting{
		{Company: "Acme", Role: "Software Engineer", WorkModel: "Remote"},
		{Company: "Beta", Role: "Analyst", WorkModel: "Unspecified"},
	}
	if _, err := store.SaveSnapshot(ctx, db.Pool, runAt, postings, []string{"newsletter unavailable"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	ds, ok, err := LoadPrevious(ctx, db.Pool)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatalf("expected the stored snapshot")
	}
	if len(ds.Postings) != 2 || ds.Postings[0].Company != "Acme" {
		t.Fatalf("unexpected postings: %+v", ds.Postings)
	}
	if !ds.RunAt.Equal(runAt) {
		t.Fatalf("run_at = %v, want %v", ds.RunAt, runAt)
	}
	if len(ds.Warnings) != 1 || ds.Stats.Out != 2 {
		t.Fatalf("unexpected dataset shape: %+v", ds)
	}
}
