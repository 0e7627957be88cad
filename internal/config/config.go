package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Unparseable-date policies (cleaning.unparseable_dates).
const (
	DatesSentinel = "sentinel" // keep the row, zero date
	DatesDrop     = "drop"     // remove the row
)

// Industry sourcing policies (cleaning.industry_source).
const (
	IndustryFromRole    = "role"    // always re-derive from the cleaned role
	IndustryFromAdapter = "adapter" // trust a non-empty adapter value
)

type GovPortalSource struct {
	Enabled    bool   `yaml:"enabled"`
	CatalogURL string `yaml:"catalog_url"`
	// Metro is the literal location assigned to every row; the portal only
	// covers one metro area.
	Metro string `yaml:"metro"`
}

type CommunitySource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	// Year is appended to the table's month/day date text, which omits it.
	Year string `yaml:"year"`
}

type NewsletterIMAP struct {
	Host       string   `yaml:"host"`
	Port       int      `yaml:"port"`
	Username   string   `yaml:"username"`
	Mailbox    string   `yaml:"mailbox"`
	SubjectAny []string `yaml:"subject_any"`
}

type NewsletterSource struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // file | imap
	Path    string `yaml:"path"` // mode=file: local spreadsheet export
	IMAP    NewsletterIMAP `yaml:"imap"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Ingest struct {
		FailFast          bool    `yaml:"fail_fast"`
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"ingest"`

	Sources struct {
		GovPortal  GovPortalSource   `yaml:"gov_portal"`
		Community  []CommunitySource `yaml:"community"`
		Newsletter NewsletterSource  `yaml:"newsletter"`
	} `yaml:"sources"`

	Cleaning struct {
		UnparseableDates string `yaml:"unparseable_dates"` // sentinel | drop
		IndustrySource   string `yaml:"industry_source"`   // role | adapter
		TruncateRole     bool   `yaml:"truncate_role"`
	} `yaml:"cleaning"`

	Views struct {
		RollingWindow        int  `yaml:"rolling_window"`
		IncludeOtherIndustry bool `yaml:"include_other_industry"`
	} `yaml:"views"`

	Export struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"export"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
