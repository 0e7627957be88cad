package pipeline

import (
	"testing"

	"gradlens-engine/internal/domain"
)

func TestNormalizeRolePreservesAcronyms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"phd data scientist", "PhD Data Scientist"},
		{"AI/ML engineer", "AI/ML Engineer"},
		{"ios developer", "iOS Developer"},
		{"senior sql analyst", "Senior SQL Analyst"},
		{"software engineer", "Software Engineer"},
		{"", ""},
	}
	for _, c := range cases {
		if got := normalizeRole(c.in); got != c.want {
			t.Fatalf("normalizeRole(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTitleCaseLetterRuns(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"new york, ny", "New York, Ny"},
		{"ai/ml intern", "Ai/Ml Intern"},
		{"SAN FRANCISCO", "San Francisco"},
	}
	for _, c := range cases {
		if got := titleCase(c.in); got != c.want {
			t.Fatalf("titleCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestScrubRole(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       string
		truncate bool
		want     string
	}{
		{"Software Engineer 2025", false, "Software Engineer"},
		{"Software Engineer (12/01/2025)", false, "Software Engineer"},
		{":: Platform Engineer", false, "Platform Engineer"},
		{"New Grad Software Engineer", false, "Software Engineer"},
		{"Entry Level Analyst - ", false, "Analyst"},
		{"Backend   Engineer -Platform", false, "Backend Engineer - Platform"},
		{"Software Engineer, New Grad", true, "Software Engineer"},
		{"Engineer 2025 Start", true, "Engineer"},
	}
	for _, c := range cases {
		if got := scrubRole(c.in, c.truncate); got != c.want {
			t.Fatalf("scrubRole(%q, %v) = %q, want %q", c.in, c.truncate, got, c.want)
		}
	}
}

func TestNormalizeStates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"San Jose, Ca", "San Jose, CA"},
		{"Austin, Tx / Seattle, Wa", "Austin, TX / Seattle, WA"},
		{"Remote", "Remote"},
		// Known collision: ordinary words matching a postal code get
		// upper-cased too.
		{"Office In Dallas", "Office IN Dallas"},
	}
	for _, c := range cases {
		if got := normalizeStates(c.in); got != c.want {
			t.Fatalf("normalizeStates(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestInferIndustry(t *testing.T) {
	t.Parallel()

	cases := []struct {
		role, want string
	}{
		{"Software Engineer", "Engineering"},
		{"Data Analyst", "Analytics"},
		{"Product Manager", "Management"},
		{"Junior Consultant", "Consulting"},
		{"Backend Developer", "Development"},
		{"Research Scientist", "Research"},
		{"Cyber Defense Specialist", "Cybersecurity"},
		{"Accountant", OtherIndustry},
		// First match wins: "engineer" outranks "manager".
		{"Engineering Manager", "Engineering"},
	}
	for _, c := range cases {
		if got := inferIndustry(c.role); got != c.want {
			t.Fatalf("inferIndustry(%q) = %q, want %q", c.role, got, c.want)
		}
	}
}

func TestStripEmoji(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"Engineer \U0001F680", "Engineer "},
		{"\U0001F600\U0001F300 Analyst", " Analyst"},
		{"Plain text", "Plain text"},
		{"Café", "Café"}, // non-ASCII but not emoji
	}
	for _, c := range cases {
		if got := stripEmoji(c.in); got != c.want {
			t.Fatalf("stripEmoji(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseDateLayouts(t *testing.T) {
	t.Parallel()

	want := "2025-01-03"
	for _, in := range []string{
		"2025-01-03", "Jan 3, 2025", "Jan 3 2025", "January 3, 2025",
		"01/03/2025", "1/3/2025", "03 Jan 2025", "3 Jan 2025",
	} {
		got, ok := parseDate(in)
		if !ok {
			t.Fatalf("parseDate(%q) failed", in)
		}
		if got.Format("2006-01-02") != want {
			t.Fatalf("parseDate(%q) = %s, want %s", in, got.Format("2006-01-02"), want)
		}
	}

	for _, in := range []string{"", "soonish", "13/45/2025"} {
		if _, ok := parseDate(in); ok {
			t.Fatalf("parseDate(%q) should fail", in)
		}
	}
}

func TestTopLocationsOrdering(t *testing.T) {
	t.Parallel()

	var postings []domain.JobPosting
	for _, loc := range []string{"NY", "NY", "CA", "CA", "TX", "WA"} {
		postings = append(postings, domain.JobPosting{Location: loc})
	}

	top := topLocations(postings, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 locations, got %d", len(top))
	}
	// Equal counts fall back to first-encounter order: NY before CA,
	// TX before WA.
	if top[0] != "NY" || top[1] != "CA" || top[2] != "TX" {
		t.Fatalf("unexpected order: %v", top)
	}
}
