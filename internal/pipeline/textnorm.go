package pipeline

import (
	"strings"
	"unicode"
)

// acronyms is the allow-list of tokens exempt from title-casing. The cased
// form on the list is what ends up in the cleaned role text.
var acronyms = []string{
	"AI/ML", "PhD", "IoT", "API", "iOS", "AI&ML", "OCI", "IT",
	"DS", "MS", "BS", "BS/MS", "AI", "ML", "SQL",
}

var acronymByUpper = func() map[string]string {
	m := make(map[string]string, len(acronyms))
	for _, a := range acronyms {
		m[strings.ToUpper(a)] = a
	}
	return m
}()

// normalizeRole title-cases each whitespace token unless it matches the
// acronym allow-list, in which case the listed form is kept.
func normalizeRole(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if canon, ok := acronymByUpper[strings.ToUpper(w)]; ok {
			words[i] = canon
			continue
		}
		words[i] = titleCase(w)
	}
	return strings.Join(words, " ")
}

// titleCase upper-cases the first letter of every alphabetic run and
// lower-cases the rest, so "ai/ml intern" becomes "Ai/Ml Intern".
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

// capitalize upper-cases only the first letter; the work_model vocabulary
// ("Remote", "On site", "Unspecified") is single-capital.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
