package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"gradlens-engine/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()

	runAt := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	ds := []domain.JobPosting{
		{
			Company:          "Acme",
			Role:             "Software Engineer",
			Location:         "New York, NY",
			ApplicationLink:  "https://acme.example",
			WorkModel:        "Remote",
			DatePosted:       time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			LocationCategory: "New York, NY",
			Industry:         "Engineering",
		},
		{Company: "Beta", Role: "Analyst", WorkModel: "Unspecified"},
	}

	if _, err := SaveSnapshot(ctx, db.Pool, runAt, ds, []string{"community-a unavailable"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, run, ok, err := LoadLatest(ctx, db.Pool)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatalf("expected a stored snapshot")
	}
	if run.Records != 2 || len(run.Warnings) != 1 {
		t.Fatalf("unexpected run metadata: %+v", run)
	}
	if !run.RunAt.Equal(runAt) {
		t.Fatalf("run_at did not round-trip: %v", run.RunAt)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(got))
	}
	if got[0] != ds[0] {
		t.Fatalf("posting changed in storage:\n got %+v\nwant %+v", got[0], ds[0])
	}
	if got[1].DateKnown() {
		t.Fatalf("sentinel date should stay unknown")
	}
}

func TestLoadLatestEmpty(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	_, _, ok, err := LoadLatest(context.Background(), db.Pool)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("empty store should report no snapshot")
	}
}

func TestSnapshotPruning(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		runAt := time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.UTC)
		ds := []domain.JobPosting{{Company: fmt.Sprintf("Run %d", i), Role: "Engineer"}}
		if _, err := SaveSnapshot(ctx, db.Pool, runAt, ds, nil); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	var runs int
	if err := db.Pool.QueryRow(`SELECT COUNT(*) FROM runs;`).Scan(&runs); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if runs != 5 {
		t.Fatalf("expected 5 retained runs, got %d", runs)
	}

	ds, _, ok, err := LoadLatest(ctx, db.Pool)
	if err != nil || !ok {
		t.Fatalf("load: %v, %v", err, ok)
	}
	if ds[0].Company != "Run 6" {
		t.Fatalf("latest run should survive pruning, got %q", ds[0].Company)
	}
}
