package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gradlens-engine/internal/domain"
)

func sample() []domain.JobPosting {
	return []domain.JobPosting{
		{
			Company:          "Acme, Inc.",
			Role:             "Software Engineer",
			Location:         "New York, NY",
			ApplicationLink:  "https://acme.example",
			WorkModel:        "Remote",
			DatePosted:       time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
			LocationCategory: "New York, NY",
			Industry:         "Engineering",
		},
		{Company: "Beta", Role: "Analyst", WorkModel: "Unspecified"},
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, sample()); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "company" || rows[0][7] != "industry" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	// Commas in values survive the round trip.
	if rows[1][0] != "Acme, Inc." {
		t.Fatalf("quoting broken: %q", rows[1][0])
	}
	if rows[1][5] != "2025-01-05" {
		t.Fatalf("unexpected date cell: %q", rows[1][5])
	}
	// The unknown-date sentinel exports as empty.
	if rows[2][5] != "" {
		t.Fatalf("sentinel date should be empty, got %q", rows[2][5])
	}
}

func TestWriteCSVFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "dataset.csv")
	if err := WriteCSVFile(path, sample()); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("tmp file left behind")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(b) == 0 {
		t.Fatalf("empty export")
	}
}
