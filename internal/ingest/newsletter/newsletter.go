// Package newsletter adapts the newsletter-distributed spreadsheet.
package newsletter

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gradlens-engine/internal/domain"
	"gradlens-engine/internal/ingest/source"
)

// The spreadsheet's fixed header.
const (
	colOrg      = "Organization"
	colTitle    = "Job/Internship Title"
	colCategory = "Role Category"
	colLink     = "Link to Apply or Handshake Job ID"
	colAdded    = "Date Added to S/S"
)

type categoryRule struct {
	keyword  string
	category string
}

// Spreadsheet role categories are hand-typed; this folds the common spellings
// into one label each. First match wins; unmatched text passes through.
var categoryRules = []categoryRule{
	{"data", "Analytics"},
	{"product", "Product Management"},
	{"software", "Software Development"},
	{"security", "Cybersecurity"},
	{"engineering", "Engineering"},
	{"management", "Management"},
}

// Spreadsheet date cells are typed by hand too.
var dateLayouts = []string{
	"1/2/2006", "01/02/2006", "1/2/06", "2006-01-02", "Jan 2, 2006", "Jan 2 2006",
}

type Adapter struct {
	fetcher source.TableFetcher
}

func New(fetcher source.TableFetcher) *Adapter {
	return &Adapter{fetcher: fetcher}
}

func (a *Adapter) Name() string { return "newsletter" }

func (a *Adapter) Fetch(ctx context.Context) ([]domain.RawRecord, error) {
	table, err := a.fetcher.FetchTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("newsletter fetch: %w", err)
	}

	cols := map[string]int{}
	for _, name := range []string{colOrg, colTitle, colCategory, colLink, colAdded} {
		i := table.Col(name)
		if i < 0 {
			return nil, fmt.Errorf("newsletter: missing column %q", name)
		}
		cols[name] = i
	}

	var out []domain.RawRecord
	interns, badDates := 0, 0
	for _, row := range table.Rows {
		if len(row) <= cols[colAdded] {
			continue
		}

		role := strings.TrimSpace(row[cols[colTitle]].Text)
		// Internship listings are excluded from this source.
		if strings.Contains(strings.ToLower(role), "intern") {
			interns++
			continue
		}

		// Unparseable dates drop the whole row here, unlike the pipeline's
		// configurable policy: a spreadsheet row without a usable added-date
		// is noise.
		date, ok := parseAdded(row[cols[colAdded]].Text)
		if !ok {
			badDates++
			continue
		}

		rec := domain.RawRecord{
			domain.FieldCompany: strings.TrimSpace(row[cols[colOrg]].Text),
			domain.FieldRole:    role,
			domain.FieldWork:    "Unspecified",
			domain.FieldDate:    date,
			"industry":          normalizeCategory(row[cols[colCategory]].Text),
		}
		if link := strings.TrimSpace(row[cols[colLink]].Text); link != "" {
			rec[domain.FieldLink] = link
		}
		out = append(out, rec)
	}

	if interns > 0 || badDates > 0 {
		log.Printf("[newsletter] dropped %d internship rows, %d rows with unparseable dates", interns, badDates)
	}
	return out, nil
}

func normalizeCategory(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Other"
	}
	low := strings.ToLower(raw)
	for _, r := range categoryRules {
		if strings.Contains(low, r.keyword) {
			return r.category
		}
	}
	return raw
}

func parseAdded(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
