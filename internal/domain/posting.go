package domain

import "time"

// JobPosting is the canonical, cleaned entry. Instances are immutable once
// the pipeline has produced them; a re-run rebuilds the whole dataset.
type JobPosting struct {
	Company          string    `json:"company"`
	Role             string    `json:"role"`
	Location         string    `json:"location"`
	ApplicationLink  string    `json:"applicationLink"`
	WorkModel        string    `json:"workModel"`
	DatePosted       time.Time `json:"datePosted"` // zero value = unknown
	LocationCategory string    `json:"locationCategory"`
	Industry         string    `json:"industry"`
}

// DateKnown reports whether DatePosted carries a real calendar date rather
// than the unknown sentinel.
func (p JobPosting) DateKnown() bool { return !p.DatePosted.IsZero() }

// DateString renders DatePosted for export; empty for the sentinel.
func (p JobPosting) DateString() string {
	if p.DatePosted.IsZero() {
		return ""
	}
	return p.DatePosted.Format("2006-01-02")
}

// Record converts a posting back to the intermediate shape. The pipeline is
// re-runnable over its own output through this.
func (p JobPosting) Record() RawRecord {
	return RawRecord{
		FieldCompany:  p.Company,
		FieldRole:     p.Role,
		FieldLocation: p.Location,
		FieldLink:     p.ApplicationLink,
		FieldWork:     p.WorkModel,
		FieldDate:     p.DateString(),
	}
}
