package pipeline

import (
	"regexp"
	"strings"
)

// stateAbbrevs are the 50 two-letter postal codes. Replacement is whole-word
// and case-insensitive over the already-title-cased location, which is
// knowingly lossy: an ordinary two-letter word that collides with a postal
// code ("In", "Or") gets upper-cased too.
var stateAbbrevs = []string{
	"Al", "Ak", "Az", "Ar", "Ca", "Co", "Ct", "De", "Fl", "Ga",
	"Hi", "Id", "Il", "In", "Ia", "Ks", "Ky", "La", "Me", "Md",
	"Ma", "Mi", "Mn", "Ms", "Mo", "Mt", "Ne", "Nv", "Nh", "Nj",
	"Nm", "Ny", "Nc", "Nd", "Oh", "Ok", "Or", "Pa", "Ri", "Sc",
	"Sd", "Tn", "Tx", "Ut", "Vt", "Va", "Wa", "Wv", "Wi", "Wy",
}

var reState = regexp.MustCompile(`(?i)\b(` + strings.Join(stateAbbrevs, "|") + `)\b`)

func normalizeStates(location string) string {
	return reState.ReplaceAllStringFunc(location, strings.ToUpper)
}
