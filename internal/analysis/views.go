// Package analysis provides read-only projections over the canonical
// dataset. Nothing here mutates or stores anything; every view is a pure
// function of one immutable snapshot.
package analysis

import (
	"fmt"
	"sort"
	"time"

	"gradlens-engine/internal/domain"
)

type ViewKind string

const (
	ViewLocations ViewKind = "locations"
	ViewTimeline  ViewKind = "timeline"
	ViewRoles     ViewKind = "roles"
)

// LocationShare is one slice of the location distribution.
type LocationShare struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// LocationDistribution returns the frequency share of each location
// category as a percentage of total records, largest first.
func LocationDistribution(ds []domain.JobPosting) []LocationShare {
	if len(ds) == 0 {
		return nil
	}
	counts := map[string]int{}
	firstSeen := map[string]int{}
	for i, p := range ds {
		if _, ok := counts[p.LocationCategory]; !ok {
			firstSeen[p.LocationCategory] = i
		}
		counts[p.LocationCategory]++
	}

	out := make([]LocationShare, 0, len(counts))
	for cat, n := range counts {
		out = append(out, LocationShare{
			Category: cat,
			Count:    n,
			Percent:  100 * float64(n) / float64(len(ds)),
		})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return firstSeen[out[a].Category] < firstSeen[out[b].Category]
	})
	return out
}

type TimelineOpts struct {
	// Window > 1 applies a trailing rolling mean of that many periods along
	// each industry's date axis.
	Window int
	// IncludeOther keeps the sentinel "Other" industry; excluded by default.
	IncludeOther bool
}

// TimelinePoint is a smoothed (or raw) posting count on one date.
type TimelinePoint struct {
	Date  string  `json:"date"`
	Count float64 `json:"count"`
}

// TimelineSeries is one industry's postings over time, dates ascending.
type TimelineSeries struct {
	Industry string          `json:"industry"`
	Points   []TimelinePoint `json:"points"`
}

// Timeline counts postings by (industry, date). Postings with the unknown
// date sentinel have no position on a time axis and are left out.
func Timeline(ds []domain.JobPosting, opts TimelineOpts) []TimelineSeries {
	type key struct {
		industry string
		date     time.Time
	}
	counts := map[key]int{}
	industries := map[string]bool{}
	for _, p := range ds {
		if !p.DateKnown() {
			continue
		}
		if p.Industry == "Other" && !opts.IncludeOther {
			continue
		}
		counts[key{p.Industry, p.DatePosted}]++
		industries[p.Industry] = true
	}

	names := make([]string, 0, len(industries))
	for name := range industries {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]TimelineSeries, 0, len(names))
	for _, name := range names {
		var dates []time.Time
		for k := range counts {
			if k.industry == name {
				dates = append(dates, k.date)
			}
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		raw := make([]float64, len(dates))
		for i, d := range dates {
			raw[i] = float64(counts[key{name, d}])
		}
		smoothed := rollingMean(raw, opts.Window)

		series := TimelineSeries{Industry: name}
		for i, d := range dates {
			series.Points = append(series.Points, TimelinePoint{
				Date:  d.Format("2006-01-02"),
				Count: smoothed[i],
			})
		}
		out = append(out, series)
	}
	return out
}

// rollingMean is a trailing mean over up to window values; the first few
// points average whatever history exists.
func rollingMean(xs []float64, window int) []float64 {
	if window <= 1 {
		return xs
	}
	out := make([]float64, len(xs))
	sum := 0.0
	for i := range xs {
		sum += xs[i]
		if i >= window {
			sum -= xs[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// RoleCount is one bar of the top-roles view.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// TopRoles returns the n most frequent exact role strings, descending by
// count, ties broken by first-encountered order in the dataset.
func TopRoles(ds []domain.JobPosting, n int) []RoleCount {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	var order []string
	for i, p := range ds {
		if _, ok := counts[p.Role]; !ok {
			firstSeen[p.Role] = i
			order = append(order, p.Role)
		}
		counts[p.Role]++
	}

	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := order[a], order[b]
		if counts[ra] != counts[rb] {
			return counts[ra] > counts[rb]
		}
		return firstSeen[ra] < firstSeen[rb]
	})

	if len(order) > n {
		order = order[:n]
	}
	out := make([]RoleCount, 0, len(order))
	for _, role := range order {
		out = append(out, RoleCount{Role: role, Count: counts[role]})
	}
	return out
}

// Figure is a renderable view result; the presentation shell turns it into
// an actual chart. Exactly one of the payload fields is set per kind.
type Figure struct {
	Kind      ViewKind         `json:"kind"`
	Title     string           `json:"title"`
	Locations []LocationShare  `json:"locations,omitempty"`
	Timeline  []TimelineSeries `json:"timeline,omitempty"`
	Roles     []RoleCount      `json:"roles,omitempty"`
}

// Render builds the figure for one view over one dataset snapshot.
func Render(ds []domain.JobPosting, kind ViewKind, opts TimelineOpts) (Figure, error) {
	switch kind {
	case ViewLocations:
		return Figure{
			Kind:      kind,
			Title:     "Job Location Distribution",
			Locations: LocationDistribution(ds),
		}, nil
	case ViewTimeline:
		return Figure{
			Kind:     kind,
			Title:    "Job Postings Over Time",
			Timeline: Timeline(ds, opts),
		}, nil
	case ViewRoles:
		return Figure{
			Kind:  kind,
			Title: "Top 10 Job Roles",
			Roles: TopRoles(ds, 10),
		}, nil
	default:
		return Figure{}, fmt.Errorf("unknown view %q", kind)
	}
}
