package pipeline

import "strings"

type industryRule struct {
	needle   string
	industry string
}

// industryRules are evaluated in order, first match wins, case-insensitive
// substring over the scrubbed role text.
var industryRules = []industryRule{
	{"engineer", "Engineering"},
	{"analyst", "Analytics"},
	{"manager", "Management"},
	{"consultant", "Consulting"},
	{"developer", "Development"},
	{"scientist", "Research"},
	{"cyber", "Cybersecurity"},
}

// OtherIndustry labels roles no rule claims.
const OtherIndustry = "Other"

func inferIndustry(role string) string {
	low := strings.ToLower(role)
	for _, r := range industryRules {
		if strings.Contains(low, r.needle) {
			return r.industry
		}
	}
	return OtherIndustry
}
