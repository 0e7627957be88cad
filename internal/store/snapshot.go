package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gradlens-engine/internal/domain"
)

// Run is one persisted aggregation run's metadata.
type Run struct {
	ID       int64     `json:"id"`
	RunAt    time.Time `json:"runAt"`
	Records  int       `json:"records"`
	Warnings []string  `json:"warnings"`
}

// SaveSnapshot persists one finished canonical dataset with its run
// metadata. Older runs are pruned so the file stays small; the engine only
// ever reads the latest one back.
func SaveSnapshot(ctx context.Context, db *sql.DB, runAt time.Time, ds []domain.JobPosting, warnings []string) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if warnings == nil {
		warnings = []string{}
	}
	wb, _ := json.Marshal(warnings)

	res, err := tx.ExecContext(ctx, `
INSERT INTO runs(run_at, records, warnings)
VALUES(?,?,?);`,
		runAt.UTC().Format(time.RFC3339), len(ds), string(wb))
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, _ := res.LastInsertId()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO postings(run_id, company, role, location, application_link, work_model, date_posted, location_category, industry)
VALUES(?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, p := range ds {
		if _, err := stmt.ExecContext(ctx,
			runID, p.Company, p.Role, p.Location, p.ApplicationLink,
			p.WorkModel, p.DateString(), p.LocationCategory, p.Industry,
		); err != nil {
			return 0, fmt.Errorf("insert posting: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
DELETE FROM runs
WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT 5);`); err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
DELETE FROM postings
WHERE run_id NOT IN (SELECT id FROM runs);`); err != nil {
		return 0, fmt.Errorf("prune postings: %w", err)
	}

	return runID, tx.Commit()
}

// LoadLatest returns the most recent persisted dataset, or ok=false when the
// store has none yet.
func LoadLatest(ctx context.Context, db *sql.DB) ([]domain.JobPosting, Run, bool, error) {
	var run Run
	var runAtStr, warningsJSON string
	err := db.QueryRowContext(ctx, `
SELECT id, run_at, records, warnings
FROM runs
ORDER BY id DESC
LIMIT 1;`).Scan(&run.ID, &runAtStr, &run.Records, &warningsJSON)
	if err == sql.ErrNoRows {
		return nil, Run{}, false, nil
	}
	if err != nil {
		return nil, Run{}, false, err
	}
	run.RunAt, _ = time.Parse(time.RFC3339, runAtStr)
	_ = json.Unmarshal([]byte(warningsJSON), &run.Warnings)

	rows, err := db.QueryContext(ctx, `
SELECT company, role, location, application_link, work_model, date_posted, location_category, industry
FROM postings
WHERE run_id = ?;`, run.ID)
	if err != nil {
		return nil, Run{}, false, err
	}
	defer rows.Close()

	var ds []domain.JobPosting
	for rows.Next() {
		var p domain.JobPosting
		var dateStr string
		if err := rows.Scan(&p.Company, &p.Role, &p.Location, &p.ApplicationLink,
			&p.WorkModel, &dateStr, &p.LocationCategory, &p.Industry); err != nil {
			return nil, Run{}, false, err
		}
		if dateStr != "" {
			p.DatePosted, _ = time.Parse("2006-01-02", dateStr)
			p.DatePosted = p.DatePosted.UTC()
		}
		ds = append(ds, p)
	}
	return ds, run, true, rows.Err()
}
