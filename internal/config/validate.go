package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills policy defaults, trims list entries, and
// collects errors/warnings without touching the caller's copy.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Sources.Newsletter.IMAP.SubjectAny = trimList(out.Sources.Newsletter.IMAP.SubjectAny)

	// Policy defaults
	if out.Cleaning.UnparseableDates == "" {
		out.Cleaning.UnparseableDates = DatesSentinel
	}
	if out.Cleaning.IndustrySource == "" {
		out.Cleaning.IndustrySource = IndustryFromRole
	}
	if out.Ingest.TimeoutSeconds <= 0 {
		out.Ingest.TimeoutSeconds = 120
	}
	if out.Ingest.RequestsPerSecond <= 0 {
		out.Ingest.RequestsPerSecond = 2
	}
	if out.Ingest.Burst <= 0 {
		out.Ingest.Burst = 4
	}
	if out.Views.RollingWindow <= 0 {
		out.Views.RollingWindow = 7
	}

	// ---- Validation rules ----

	switch out.Cleaning.UnparseableDates {
	case DatesSentinel, DatesDrop:
	default:
		res.addErr("cleaning.unparseable_dates must be %q or %q", DatesSentinel, DatesDrop)
	}
	switch out.Cleaning.IndustrySource {
	case IndustryFromRole, IndustryFromAdapter:
	default:
		res.addErr("cleaning.industry_source must be %q or %q", IndustryFromRole, IndustryFromAdapter)
	}

	if !out.Sources.GovPortal.Enabled && len(out.Sources.Community) == 0 && !out.Sources.Newsletter.Enabled {
		res.addWarn("no sources enabled; aggregation runs will produce an empty dataset")
	}

	if out.Sources.GovPortal.Enabled {
		if strings.TrimSpace(out.Sources.GovPortal.CatalogURL) == "" {
			res.addErr("sources.gov_portal.catalog_url is required when enabled")
		}
		if strings.TrimSpace(out.Sources.GovPortal.Metro) == "" {
			res.addErr("sources.gov_portal.metro is required when enabled")
		}
	}

	for i, c := range out.Sources.Community {
		if strings.TrimSpace(c.Name) == "" {
			res.addErr("sources.community[%d].name is required", i)
		}
		if strings.TrimSpace(c.URL) == "" {
			res.addErr("sources.community[%d].url is required", i)
		}
		if strings.TrimSpace(c.Year) == "" {
			res.addWarn("sources.community[%d].year is empty; dates from this table will not parse", i)
		}
	}

	if out.Sources.Newsletter.Enabled {
		switch out.Sources.Newsletter.Mode {
		case "file":
			if strings.TrimSpace(out.Sources.Newsletter.Path) == "" {
				res.addErr("sources.newsletter.path is required when mode=file")
			}
		case "imap":
			im := out.Sources.Newsletter.IMAP
			if strings.TrimSpace(im.Host) == "" {
				res.addErr("sources.newsletter.imap.host is required when mode=imap")
			}
			if im.Port == 0 {
				res.addErr("sources.newsletter.imap.port is required when mode=imap")
			}
			if strings.TrimSpace(im.Username) == "" {
				res.addErr("sources.newsletter.imap.username is required when mode=imap")
			}
			if strings.TrimSpace(im.Mailbox) == "" {
				res.addErr("sources.newsletter.imap.mailbox is required when mode=imap")
			}
			if len(im.SubjectAny) == 0 {
				res.addWarn("sources.newsletter.imap.subject_any is empty; the spreadsheet email may not be found")
			}
		default:
			res.addErr("sources.newsletter.mode must be \"file\" or \"imap\"")
		}
	}

	if out.Export.Enabled && strings.TrimSpace(out.Export.Path) == "" {
		res.addErr("export.path is required when export.enabled=true")
	}

	return out, res
}
