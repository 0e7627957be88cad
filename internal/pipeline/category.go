package pipeline

import (
	"sort"

	"gradlens-engine/internal/domain"
)

// OtherCategory is the bucket for every location outside the top five.
const OtherCategory = "Others"

// assignLocationCategories derives location_category from the frequency of
// the normalized location across the whole snapshot. Derived state: any
// change to the record set requires running this again.
func assignLocationCategories(postings []domain.JobPosting) {
	top := topLocations(postings, 5)
	allowed := make(map[string]bool, len(top))
	for _, loc := range top {
		allowed[loc] = true
	}
	for i := range postings {
		if allowed[postings[i].Location] {
			postings[i].LocationCategory = postings[i].Location
		} else {
			postings[i].LocationCategory = OtherCategory
		}
	}
}

// topLocations returns the n most frequent distinct location values, ties
// broken by first encounter so the result is stable for a given snapshot.
func topLocations(postings []domain.JobPosting, n int) []string {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	var order []string
	for i, p := range postings {
		if _, ok := counts[p.Location]; !ok {
			firstSeen[p.Location] = i
			order = append(order, p.Location)
		}
		counts[p.Location]++
	}

	sort.SliceStable(order, func(a, b int) bool {
		la, lb := order[a], order[b]
		if counts[la] != counts[lb] {
			return counts[la] > counts[lb]
		}
		return firstSeen[la] < firstSeen[lb]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}
