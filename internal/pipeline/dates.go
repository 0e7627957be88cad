package pipeline

import (
	"strings"
	"time"
)

// dateLayouts covers the shapes the four sources actually emit plus the
// usual suspects a hand-edited spreadsheet column grows over time.
var dateLayouts = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"2006/01/02",
	"02 Jan 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// parseDate is the permissive coercion of pass 4. Time-of-day components are
// discarded; the canonical value is a calendar date.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
