// Package export serializes the canonical dataset.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gradlens-engine/internal/domain"
)

// WriteCSV streams the dataset in canonical column order with a header row.
func WriteCSV(w io.Writer, ds []domain.JobPosting) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(domain.CanonicalFields); err != nil {
		return err
	}
	for _, p := range ds {
		row := []string{
			p.Company, p.Role, p.Location, p.ApplicationLink,
			p.WorkModel, p.DateString(), p.LocationCategory, p.Industry,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes via tmp + rename so a crash mid-export never leaves a
// truncated file behind.
func WriteCSVFile(path string, ds []domain.JobPosting) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, ds); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
