package pipeline

import (
	"log"
	"strings"
	"time"

	"gradlens-engine/internal/config"
	"gradlens-engine/internal/domain"
)

// Options select between the divergent policies the source iterations of
// this system disagreed on. Zero values mean the defaults from config.
type Options struct {
	UnparseableDates string // config.DatesSentinel | config.DatesDrop
	IndustrySource   string // config.IndustryFromRole | config.IndustryFromAdapter
	TruncateRole     bool   // final-variant comma/colon truncation of role
}

func OptionsFrom(cfg config.Config) Options {
	return Options{
		UnparseableDates: cfg.Cleaning.UnparseableDates,
		IndustrySource:   cfg.Cleaning.IndustrySource,
		TruncateRole:     cfg.Cleaning.TruncateRole,
	}
}

type Stats struct {
	In            int `json:"in"`
	Deduplicated  int `json:"deduplicated"`
	FutureDropped int `json:"futureDropped"`
	DateSentinels int `json:"dateSentinels"`
	DateDropped   int `json:"dateDropped"`
	Out           int `json:"out"`
}

// Clean runs the whole-set cleaning passes, in fixed order, over the merged
// records and returns the canonical dataset. The dataset is rebuilt from
// scratch on every call; nothing is incremental.
func Clean(records []domain.RawRecord, now time.Time, opts Options) ([]domain.JobPosting, Stats) {
	if opts.UnparseableDates == "" {
		opts.UnparseableDates = config.DatesSentinel
	}
	if opts.IndustrySource == "" {
		opts.IndustrySource = config.IndustryFromRole
	}

	stats := Stats{In: len(records)}

	// Pass 1: header canonicalization.
	recs := canonicalizeHeaders(records)

	// Pass 2: null-fill.
	fillMissing(recs)

	// Pass 3: exact-duplicate removal.
	recs, dropped := dedupe(recs)
	stats.Deduplicated = dropped

	// Pass 4: date coercion + future-date rejection.
	postings := coerceDates(recs, now, opts, &stats)

	for i := range postings {
		p := &postings[i]

		// Pass 5: text normalization with acronym preservation. Company
		// casing is the adapter's business; only whitespace is touched here.
		p.Company = strings.TrimSpace(p.Company)
		p.Role = normalizeRole(strings.TrimSpace(p.Role))
		p.Location = titleCase(strings.TrimSpace(p.Location))
		p.WorkModel = capitalize(strings.TrimSpace(p.WorkModel))

		// Pass 6: role text scrubbing.
		p.Role = scrubRole(p.Role, opts.TruncateRole)

		// Pass 7: state-abbreviation normalization.
		p.Location = normalizeStates(p.Location)
	}

	// Pass 8: location-category derivation (needs the whole set).
	assignLocationCategories(postings)

	// Pass 9: industry inference.
	for i := range postings {
		p := &postings[i]
		if opts.IndustrySource == config.IndustryFromAdapter && p.Industry != "" {
			continue
		}
		p.Industry = inferIndustry(p.Role)
	}

	// Pass 10: emoji stripping.
	for i := range postings {
		postings[i].Role = strings.TrimSpace(stripEmoji(postings[i].Role))
		postings[i].Location = strings.TrimSpace(stripEmoji(postings[i].Location))
	}

	stats.Out = len(postings)
	log.Printf("[pipeline] in=%d dedup=%d future_dropped=%d date_sentinels=%d date_dropped=%d out=%d",
		stats.In, stats.Deduplicated, stats.FutureDropped, stats.DateSentinels, stats.DateDropped, stats.Out)
	return postings, stats
}

// canonicalizeHeaders lower-cases field names and replaces spaces with
// underscores, so adapters that emit display headers still line up.
func canonicalizeHeaders(records []domain.RawRecord) []domain.RawRecord {
	out := make([]domain.RawRecord, 0, len(records))
	for _, r := range records {
		nr := make(domain.RawRecord, len(r))
		for k, v := range r {
			key := strings.ReplaceAll(strings.ToLower(k), " ", "_")
			nr[key] = v
		}
		out = append(out, nr)
	}
	return out
}

func fillMissing(records []domain.RawRecord) {
	placeholders := map[string]string{
		domain.FieldCompany:  "Unknown",
		domain.FieldRole:     "Unknown",
		domain.FieldLocation: "Unknown",
		domain.FieldLink:     "Unknown",
		domain.FieldWork:     "Unspecified",
	}
	for _, r := range records {
		for field, ph := range placeholders {
			if v, ok := r[field]; !ok || strings.TrimSpace(v) == "" {
				r[field] = ph
			}
		}
		if _, ok := r[domain.FieldDate]; !ok {
			r[domain.FieldDate] = ""
		}
	}
}

func dedupe(records []domain.RawRecord) ([]domain.RawRecord, int) {
	seen := make(map[string]bool, len(records))
	out := records[:0]
	dropped := 0
	for _, r := range records {
		var sb strings.Builder
		for _, f := range domain.IntermediateFields {
			sb.WriteString(r[f])
			sb.WriteByte(0x1f)
		}
		// An adapter-supplied industry counts toward identity; otherwise two
		// rows equal in the six fields but pre-classified differently would
		// collapse to an arbitrary category under the adapter policy.
		sb.WriteString(r["industry"])
		key := sb.String()
		if seen[key] {
			dropped++
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out, dropped
}

func coerceDates(records []domain.RawRecord, now time.Time, opts Options, stats *Stats) []domain.JobPosting {
	today := now.Truncate(24 * time.Hour)

	out := make([]domain.JobPosting, 0, len(records))
	for _, r := range records {
		t, ok := parseDate(r[domain.FieldDate])
		if !ok {
			if opts.UnparseableDates == config.DatesDrop && strings.TrimSpace(r[domain.FieldDate]) != "" {
				stats.DateDropped++
				continue
			}
			stats.DateSentinels++
			t = time.Time{}
		}
		// A posting date after the run's date is a data error, not an
		// unknown value; the row goes away entirely.
		if !t.IsZero() && t.After(today) {
			stats.FutureDropped++
			continue
		}
		out = append(out, domain.JobPosting{
			Company:         r[domain.FieldCompany],
			Role:            r[domain.FieldRole],
			Location:        r[domain.FieldLocation],
			ApplicationLink: r[domain.FieldLink],
			WorkModel:       r[domain.FieldWork],
			DatePosted:      t,
			Industry:        r["industry"],
		})
	}
	return out
}
