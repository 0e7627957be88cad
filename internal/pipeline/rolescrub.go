package pipeline

import (
	"regexp"
	"strings"
)

// Ordered textual rewrites over the already-cased role string. Each step is
// its own pattern so behavior stays auditable rule by rule.
var (
	reYear        = regexp.MustCompile(`\b(20[0-9]{2})\b`)
	reInlineDate  = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})`)
	reLeadingJunk = regexp.MustCompile(`^[^a-zA-Z0-9]*`)
	reColonTail   = regexp.MustCompile(`:[^a-zA-Z0-9]*`)
	reEmptyParens = regexp.MustCompile(`\(\s*\)`)
	reTrailDash   = regexp.MustCompile(`\s*-\s*$`)
	reDashSpacing = regexp.MustCompile(`\s*-\s*`)
	reMultiSpace  = regexp.MustCompile(`\s{2,}`)
)

// Recruiting boilerplate removed as whole words, case-insensitively.
var rolePhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bnew grad\b`),
	regexp.MustCompile(`(?i)\bentry level\b`),
	regexp.MustCompile(`(?i)\bearly career\b`),
	regexp.MustCompile(`(?i)\bstart\b`),
}

// scrubRole strips years, embedded dates, boilerplate phrases, decorative
// punctuation, and dash noise from a role title. With truncate set, the
// final-variant rule cuts the title at the first comma or colon and
// re-title-cases what is left.
func scrubRole(role string, truncate bool) string {
	role = reYear.ReplaceAllString(role, "")
	role = reInlineDate.ReplaceAllString(role, "")

	for _, re := range rolePhrases {
		role = re.ReplaceAllString(role, "")
	}

	role = reLeadingJunk.ReplaceAllString(role, "")
	role = reColonTail.ReplaceAllString(role, "")
	role = reEmptyParens.ReplaceAllString(role, "")
	role = reTrailDash.ReplaceAllString(role, "")
	role = reDashSpacing.ReplaceAllString(role, " - ")
	role = strings.TrimSpace(reMultiSpace.ReplaceAllString(role, " "))

	if truncate {
		if i := strings.IndexAny(role, ",:"); i >= 0 {
			role = role[:i]
		}
		role = normalizeRole(strings.TrimSpace(role))
	}
	return role
}
