package domain

// RawRecord is a loosely-typed row as emitted by one source adapter. A
// missing key means the source had no value at all (distinct from "").
type RawRecord map[string]string

// Intermediate field vocabulary shared by every adapter.
const (
	FieldCompany  = "company"
	FieldRole     = "role"
	FieldLocation = "location"
	FieldLink     = "application_link"
	FieldWork     = "work_model"
	FieldDate     = "date_posted"
)

// IntermediateFields is the fixed six-field order the merger aligns to.
var IntermediateFields = []string{
	FieldCompany, FieldRole, FieldLocation, FieldLink, FieldWork, FieldDate,
}

// CanonicalFields is the export column order of the cleaned dataset.
var CanonicalFields = []string{
	FieldCompany, FieldRole, FieldLocation, FieldLink, FieldWork, FieldDate,
	"location_category", "industry",
}

// Clone returns an independent copy of the record.
func (r RawRecord) Clone() RawRecord {
	out := make(RawRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
