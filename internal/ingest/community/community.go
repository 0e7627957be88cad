// Package community adapts the community-maintained markdown job tables.
package community

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode"

	"gradlens-engine/internal/domain"
	"gradlens-engine/internal/ingest/source"
)

// continuationGlyph marks "same company as the row above" in these tables.
// Such rows must be dropped, never merged into the previous row.
const continuationGlyph = "↳"

// The table's date column shows month and day only.
var reMonthDay = regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec) \d{1,2}\b`)

type Adapter struct {
	name    string
	fetcher source.TableFetcher
	// year is appended to the table's month/day date text.
	year string
}

func New(name string, fetcher source.TableFetcher, year string) *Adapter {
	return &Adapter{name: name, fetcher: fetcher, year: year}
}

func (a *Adapter) Name() string { return a.name }

func (a *Adapter) Fetch(ctx context.Context) ([]domain.RawRecord, error) {
	table, err := a.fetcher.FetchTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s fetch: %w", a.name, err)
	}
	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("%s: table has no rows", a.name)
	}

	var out []domain.RawRecord
	skipped := 0
	for _, row := range table.Rows[1:] { // first row is the header
		if len(row) != 5 {
			skipped++
			continue
		}

		company := strings.TrimSpace(row[0].Text)
		role := capitalize(strings.TrimSpace(row[1].Text))
		location := strings.TrimSpace(row[2].Text)

		// Prefer the link cell's anchor; fall back to one embedded in the
		// role cell, in which case the link cell's text is the work model.
		link := ""
		work := ""
		switch {
		case row[3].Href != "":
			link = row[3].Href
		case row[1].Href != "":
			link = row[1].Href
			work = strings.TrimSpace(row[3].Text)
		}

		date := strings.TrimSpace(row[4].Text) + ", " + a.year

		if !reMonthDay.MatchString(date) || company == continuationGlyph {
			skipped++
			continue
		}

		rec := domain.RawRecord{
			domain.FieldCompany:  company,
			domain.FieldRole:     role,
			domain.FieldLocation: location,
			domain.FieldDate:     date,
		}
		if link != "" {
			rec[domain.FieldLink] = link
		}
		if work != "" {
			rec[domain.FieldWork] = work
		}
		out = append(out, rec)
	}

	if skipped > 0 {
		log.Printf("[%s] skipped %d malformed rows", a.name, skipped)
	}
	return out, nil
}

// capitalize upper-cases the first letter only; full title-casing happens in
// the pipeline, not here.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
