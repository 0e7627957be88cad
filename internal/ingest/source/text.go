package source

import "strings"

// CleanText folds non-breaking spaces and runs of whitespace down to single
// spaces and trims.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
