// Package govportal adapts the government open-data job postings table.
package govportal

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"gradlens-engine/internal/domain"
	"gradlens-engine/internal/ingest/source"
)

// The portal's fixed export columns.
const (
	colAgency   = "Agency"
	colTitle    = "Business Title"
	colApply    = "To Apply"
	colLocation = "Work Location 1"
	colPosted   = "Posting Date"
)

// The application instructions are free text; the first URL-looking match is
// the link.
var reLink = regexp.MustCompile(`(https?://[a-zA-Z0-9.-]+(?:\.[a-zA-Z]{2,})+|www\.[a-zA-Z0-9.-]+(?:\.[a-zA-Z]{2,})+)`)

var monthAbbrev = map[string]string{
	"01": "Jan", "02": "Feb", "03": "Mar", "04": "Apr", "05": "May", "06": "Jun",
	"07": "Jul", "08": "Aug", "09": "Sep", "10": "Oct", "11": "Nov", "12": "Dec",
}

type Adapter struct {
	fetcher source.TableFetcher
	// metro is the literal location for every row; the portal only covers
	// one metro area, so its free-text work-location field is discarded.
	metro string
}

func New(fetcher source.TableFetcher, metro string) *Adapter {
	return &Adapter{fetcher: fetcher, metro: metro}
}

func (a *Adapter) Name() string { return "govportal" }

func (a *Adapter) Fetch(ctx context.Context) ([]domain.RawRecord, error) {
	table, err := a.fetcher.FetchTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("govportal fetch: %w", err)
	}

	cols := map[string]int{}
	for _, name := range []string{colAgency, colTitle, colApply, colLocation, colPosted} {
		i := table.Col(name)
		if i < 0 {
			return nil, fmt.Errorf("govportal: missing column %q", name)
		}
		cols[name] = i
	}

	var out []domain.RawRecord
	skipped := 0
	for _, row := range table.Rows {
		if len(row) <= cols[colPosted] {
			skipped++
			continue
		}

		date, ok := reformatDate(row[cols[colPosted]].Text)
		if !ok {
			skipped++
			continue
		}

		rec := domain.RawRecord{
			domain.FieldCompany:  titleCase(strings.TrimSpace(row[cols[colAgency]].Text)),
			domain.FieldRole:     strings.TrimSpace(row[cols[colTitle]].Text),
			domain.FieldLocation: a.metro,
			domain.FieldDate:     date,
		}

		if link := extractLink(row[cols[colApply]].Text); link != "" {
			rec[domain.FieldLink] = link
		}

		if model, ok := workModel(row[cols[colLocation]].Text); ok {
			rec[domain.FieldWork] = model
		}

		out = append(out, rec)
	}

	if skipped > 0 {
		log.Printf("[govportal] skipped %d malformed rows", skipped)
	}
	return out, nil
}

// extractLink keeps the first URL match, coerced to https:// when the
// scheme is missing. No match means no link.
func extractLink(applyText string) string {
	m := reLink.FindString(applyText)
	if m == "" {
		return ""
	}
	if !strings.HasPrefix(m, "http://") && !strings.HasPrefix(m, "https://") {
		m = "https://" + m
	}
	return m
}

// workModel infers Remote vs On site from the portal's free-text location
// field; an absent field stays null.
func workModel(field string) (string, bool) {
	if strings.TrimSpace(field) == "" {
		return "", false
	}
	if strings.Contains(strings.ToLower(field), "remote") {
		return "Remote", true
	}
	return "On site", true
}

// reformatDate turns MM/DD/YYYY into "<Mon> <D>, <YYYY>".
func reformatDate(s string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return "", false
	}
	mon, ok := monthAbbrev[parts[0]]
	if !ok {
		return "", false
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%s %d, %s", mon, day, parts[2]), true
}

func titleCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				sb.WriteRune(unicode.ToLower(r))
			} else {
				sb.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			sb.WriteRune(r)
			prevLetter = false
		}
	}
	return sb.String()
}
