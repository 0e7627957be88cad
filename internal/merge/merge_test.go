package merge

import (
	"testing"

	"gradlens-engine/internal/domain"
)

func TestRecordsAlignsAndConcatenates(t *testing.T) {
	t.Parallel()

	gov := []domain.RawRecord{
		{domain.FieldCompany: "Agency", domain.FieldRole: "Clerk", domain.FieldLocation: "New York, NY"},
	}
	news := []domain.RawRecord{
		{domain.FieldCompany: "Acme", domain.FieldRole: "Engineer", "industry": "Engineering"},
	}

	out := Records(gov, news)
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}

	// Adapter order is preserved.
	if out[0][domain.FieldCompany] != "Agency" || out[1][domain.FieldCompany] != "Acme" {
		t.Fatalf("adapter order not preserved: %+v", out)
	}

	// Every record carries all six fields after alignment.
	for i, r := range out {
		for _, f := range domain.IntermediateFields {
			if _, ok := r[f]; !ok {
				t.Fatalf("record %d missing field %q after alignment", i, f)
			}
		}
	}
	if out[1][domain.FieldLocation] != "" {
		t.Fatalf("absent field should align to empty, got %q", out[1][domain.FieldLocation])
	}

	// Extra adapter keys ride along.
	if out[1]["industry"] != "Engineering" {
		t.Fatalf("extra key dropped: %+v", out[1])
	}
}

func TestRecordsDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	in := []domain.RawRecord{{domain.FieldCompany: "Acme"}}
	out := Records(in)

	out[0][domain.FieldCompany] = "Changed"
	if in[0][domain.FieldCompany] != "Acme" {
		t.Fatalf("merged record aliases the adapter's map")
	}
}

func TestRecordsEmpty(t *testing.T) {
	t.Parallel()

	if out := Records(); len(out) != 0 {
		t.Fatalf("expected empty output, got %d", len(out))
	}
	if out := Records(nil, nil); len(out) != 0 {
		t.Fatalf("expected empty output for nil sets, got %d", len(out))
	}
}
