// Package aggregate orchestrates one full aggregation run: adapters →
// merger → pipeline → one-shot publication.
package aggregate

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"gradlens-engine/internal/analysis"
	"gradlens-engine/internal/config"
	"gradlens-engine/internal/domain"
	"gradlens-engine/internal/events"
	"gradlens-engine/internal/export"
	"gradlens-engine/internal/handoff"
	"gradlens-engine/internal/ingest"
	"gradlens-engine/internal/ingest/community"
	"gradlens-engine/internal/ingest/govportal"
	"gradlens-engine/internal/ingest/newsletter"
	"gradlens-engine/internal/ingest/source"
	"gradlens-engine/internal/merge"
	"gradlens-engine/internal/pipeline"
	"gradlens-engine/internal/secrets"
	"gradlens-engine/internal/store"
)

// Dataset is the value delivered through the handoff slot: the canonical
// postings plus run provenance. Immutable once published.
type Dataset struct {
	Postings []domain.JobPosting `json:"postings"`
	Stats    pipeline.Stats      `json:"stats"`
	Warnings []string            `json:"warnings"`
	RunAt    time.Time           `json:"runAt"`
}

// Status mirrors the worker state for the shell's status endpoint.
type Status struct {
	Running     bool   `json:"running"`
	LastRunAt   string `json:"last_run_at"`
	LastOkAt    string `json:"last_ok_at"`
	LastError   string `json:"last_error"`
	LastRecords int    `json:"last_records"`
}

type Worker struct {
	DB     *sql.DB // nil disables snapshot persistence
	Hub    *events.Hub
	Status *atomic.Value // stores Status
}

// LoadPrevious reads the most recent persisted dataset back out of the
// snapshot store, so the shell has last run's data to show while the first
// run of this process is still in flight.
func LoadPrevious(ctx context.Context, db *sql.DB) (Dataset, bool, error) {
	postings, run, ok, err := store.LoadLatest(ctx, db)
	if err != nil || !ok {
		return Dataset{}, false, err
	}
	ds := Dataset{
		Postings: postings,
		Warnings: run.Warnings,
		RunAt:    run.RunAt,
	}
	ds.Stats.In = run.Records
	ds.Stats.Out = len(postings)
	return ds, true, nil
}

// TimelineOpts derives the timeline view options from config.
func TimelineOpts(cfg config.Config) analysis.TimelineOpts {
	return analysis.TimelineOpts{
		Window:       cfg.Views.RollingWindow,
		IncludeOther: cfg.Views.IncludeOtherIndustry,
	}
}

// Adapters builds the configured source adapters, in the fixed order that
// also determines merge concatenation order: government portal, community
// tables, newsletter.
func Adapters(cfg config.Config, client *source.Client) ([]ingest.Adapter, error) {
	var out []ingest.Adapter

	if cfg.Sources.GovPortal.Enabled {
		f := source.CatalogCSVFetcher{Client: client, CatalogURL: cfg.Sources.GovPortal.CatalogURL}
		out = append(out, govportal.New(f, cfg.Sources.GovPortal.Metro))
	}

	for _, c := range cfg.Sources.Community {
		f := source.HTMLTableFetcher{
			Client:   client,
			URL:      c.URL,
			Selector: "markdown-accessiblity-table table",
		}
		out = append(out, community.New(c.Name, f, c.Year))
	}

	if cfg.Sources.Newsletter.Enabled {
		var f source.TableFetcher
		switch cfg.Sources.Newsletter.Mode {
		case "file":
			f = source.FileCSVFetcher{Path: cfg.Sources.Newsletter.Path}
		case "imap":
			im := cfg.Sources.Newsletter.IMAP
			pw, err := secrets.GetIMAPPassword(secrets.IMAPKeyringAccount(cfg))
			if err != nil {
				return nil, fmt.Errorf("newsletter: %w", err)
			}
			f = source.IMAPCSVFetcher{
				Addr:       fmt.Sprintf("%s:%d", im.Host, im.Port),
				Username:   im.Username,
				Password:   pw,
				Mailbox:    im.Mailbox,
				SubjectAny: im.SubjectAny,
			}
		default:
			return nil, fmt.Errorf("newsletter: unknown mode %q", cfg.Sources.Newsletter.Mode)
		}
		out = append(out, newsletter.New(f))
	}

	return out, nil
}

// Start launches one aggregation run and returns the slot it will publish
// to. Each run gets a fresh slot; the dataset is always rebuilt from
// scratch.
func (w *Worker) Start(ctx context.Context, cfg config.Config) *handoff.Slot[Dataset] {
	slot := handoff.New[Dataset]()

	w.setStatus(func(st *Status) {
		st.Running = true
		st.LastRunAt = time.Now().Format(time.RFC3339)
	})
	w.Hub.Publish(events.Make(events.TypeRunStarted, nil))

	go func() {
		ds, err := w.runOnce(ctx, cfg)
		if err != nil {
			slot.Publish(handoff.Result[Dataset]{Err: err})
			w.setStatus(func(st *Status) {
				st.Running = false
				st.LastError = err.Error()
			})
			w.Hub.Publish(events.Make(events.TypeDatasetError, map[string]any{"error": err.Error()}))
			log.Printf("[aggregate] run failed: %v", err)
			return
		}

		slot.Publish(handoff.Result[Dataset]{Value: ds})
		w.setStatus(func(st *Status) {
			st.Running = false
			st.LastError = ""
			st.LastOkAt = time.Now().Format(time.RFC3339)
			st.LastRecords = len(ds.Postings)
		})
		w.Hub.Publish(events.Make(events.TypeDatasetReady, map[string]any{
			"records":  len(ds.Postings),
			"warnings": ds.Warnings,
		}))
		log.Printf("[aggregate] ok records=%d warnings=%d", len(ds.Postings), len(ds.Warnings))
	}()

	return slot
}

func (w *Worker) runOnce(ctx context.Context, cfg config.Config) (Dataset, error) {
	client := source.NewClient(cfg.Ingest.RequestsPerSecond, cfg.Ingest.Burst)
	adapters, err := Adapters(cfg, client)
	if err != nil {
		return Dataset{}, err
	}

	res, err := ingest.Run(ctx, adapters, ingest.RunOptions{
		FailFast: cfg.Ingest.FailFast,
		Timeout:  time.Duration(cfg.Ingest.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return Dataset{}, err
	}

	merged := merge.Records(res.Sets...)
	now := time.Now().UTC()
	postings, stats := pipeline.Clean(merged, now, pipeline.OptionsFrom(cfg))

	ds := Dataset{
		Postings: postings,
		Stats:    stats,
		Warnings: res.Warnings,
		RunAt:    now,
	}

	if w.DB != nil {
		if _, err := store.SaveSnapshot(ctx, w.DB, now, postings, res.Warnings); err != nil {
			log.Printf("[aggregate] snapshot save failed: %v", err)
		}
	}
	if cfg.Export.Enabled {
		if err := export.WriteCSVFile(cfg.Export.Path, postings); err != nil {
			log.Printf("[aggregate] csv export failed: %v", err)
		}
	}

	return ds, nil
}

func (w *Worker) setStatus(mut func(*Status)) {
	st := Status{}
	if v := w.Status.Load(); v != nil {
		st = v.(Status)
	}
	mut(&st)
	w.Status.Store(st)
}
