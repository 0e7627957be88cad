package domain

import (
	"testing"
	"time"
)

func TestRecordClone(t *testing.T) {
	t.Parallel()

	r := RawRecord{FieldCompany: "Acme"}
	c := r.Clone()
	c[FieldCompany] = "Changed"

	if r[FieldCompany] != "Acme" {
		t.Fatalf("clone aliases the original")
	}
}

func TestPostingRecordRoundTrip(t *testing.T) {
	t.Parallel()

	p := JobPosting{
		Company:         "Acme",
		Role:            "Engineer",
		Location:        "NY",
		ApplicationLink: "https://acme.example",
		WorkModel:       "Remote",
		DatePosted:      time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	r := p.Record()
	if r[FieldCompany] != "Acme" || r[FieldDate] != "2025-01-05" {
		t.Fatalf("unexpected record: %+v", r)
	}
	for _, f := range IntermediateFields {
		if _, ok := r[f]; !ok {
			t.Fatalf("record missing %q", f)
		}
	}
}

func TestDateSentinel(t *testing.T) {
	t.Parallel()

	var p JobPosting
	if p.DateKnown() {
		t.Fatalf("zero date should be unknown")
	}
	if p.DateString() != "" {
		t.Fatalf("sentinel should render empty, got %q", p.DateString())
	}
}
