// Package ingest runs the per-source adapters that turn raw tables into
// intermediate records.
package ingest

import (
	"context"

	"gradlens-engine/internal/domain"
)

// Adapter converts one source's native table shape into intermediate records
// using the shared six-field vocabulary.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.RawRecord, error)
}
