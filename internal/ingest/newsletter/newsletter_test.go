package newsletter

import (
	"context"
	"testing"

	"gradlens-engine/internal/domain"
	"gradlens-engine/internal/ingest/source"
)

func cannedTable(rows ...[]string) source.FetcherFunc {
	return func(ctx context.Context) (source.Table, error) {
		t := source.Table{
			Header: []string{
				"Organization", "Job/Internship Title", "Role Category",
				"Link to Apply or Handshake Job ID", "Date Added to S/S",
			},
		}
		for _, r := range rows {
			cells := make([]source.Cell, len(r))
			for i, v := range r {
				cells[i] = source.Cell{Text: v}
			}
			t.Rows = append(t.Rows, cells)
		}
		return t, nil
	}
}

func TestFetchMapsSpreadsheetColumns(t *testing.T) {
	t.Parallel()

	fetcher := cannedTable(
		[]string{"Acme Labs", "Junior Data Analyst", "Data Analysis", "https://acme.example/apply", "1/5/2025"},
	)
	a := New(fetcher)

	recs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}

	r := recs[0]
	if r[domain.FieldCompany] != "Acme Labs" {
		t.Fatalf("unexpected company: %q", r[domain.FieldCompany])
	}
	if r[domain.FieldWork] != "Unspecified" {
		t.Fatalf("unexpected work model: %q", r[domain.FieldWork])
	}
	if r[domain.FieldDate] != "2025-01-05" {
		t.Fatalf("date not reformatted: %q", r[domain.FieldDate])
	}
	if r["industry"] != "Analytics" {
		t.Fatalf("unexpected industry: %q", r["industry"])
	}
	if _, ok := r[domain.FieldLocation]; ok {
		t.Fatalf("newsletter rows carry no location; the merger fills it")
	}
}

func TestFetchExcludesInternships(t *testing.T) {
	t.Parallel()

	fetcher := cannedTable(
		[]string{"Acme", "Software Engineering Intern", "Software", "", "1/5/2025"},
		[]string{"Acme", "International Sales Associate", "", "", "1/5/2025"},
		[]string{"Acme", "Software Engineer", "Software", "", "1/5/2025"},
	)
	a := New(fetcher)

	recs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	// Substring match: "International" contains "intern" and goes too.
	if len(recs) != 1 || recs[0][domain.FieldRole] != "Software Engineer" {
		t.Fatalf("expected only the full-time engineer row, got %+v", recs)
	}
}

func TestFetchDropsUnparseableDates(t *testing.T) {
	t.Parallel()

	fetcher := cannedTable(
		[]string{"Acme", "Engineer", "", "", "sometime soon"},
		[]string{"Beta", "Engineer", "", "", "2025-01-05"},
	)
	a := New(fetcher)

	recs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(recs) != 1 || recs[0][domain.FieldCompany] != "Beta" {
		t.Fatalf("expected only Beta to survive, got %+v", recs)
	}
}

func TestNormalizeCategory(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"Data Analysis", "Analytics"},
		{"Product", "Product Management"},
		{"software dev", "Software Development"},
		{"Security Ops", "Cybersecurity"},
		{"Civil Engineering", "Engineering"},
		{"", "Other"},
		{"Quantum Computing", "Quantum Computing"}, // unmatched passes through
	}
	for _, c := range cases {
		if got := normalizeCategory(c.in); got != c.want {
			t.Fatalf("normalizeCategory(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
