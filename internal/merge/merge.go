// Package merge concatenates adapter outputs into one record set.
package merge

import "gradlens-engine/internal/domain"

// Records aligns every adapter's output to the fixed six-field vocabulary
// and concatenates in adapter order. Alignment is purely positional/by-name:
// fields an adapter never produced become explicit empty values, and no
// schema inference happens here. Extra keys an adapter chose to carry
// (the newsletter's pre-classified industry) ride along untouched.
func Records(sets ...[]domain.RawRecord) []domain.RawRecord {
	total := 0
	for _, set := range sets {
		total += len(set)
	}

	out := make([]domain.RawRecord, 0, total)
	for _, set := range sets {
		for _, rec := range set {
			aligned := rec.Clone()
			for _, f := range domain.IntermediateFields {
				if _, ok := aligned[f]; !ok {
					aligned[f] = ""
				}
			}
			out = append(out, aligned)
		}
	}
	return out
}
