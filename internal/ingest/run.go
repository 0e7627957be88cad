package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"gradlens-engine/internal/domain"
)

type RunOptions struct {
	// FailFast aborts the whole run on the first adapter failure. Off, a
	// failing source degrades to a warning and the other sources still
	// contribute.
	FailFast bool
	Timeout  time.Duration
}

// Result holds each adapter's records in adapter order plus any warnings
// from degraded sources.
type Result struct {
	Sets     [][]domain.RawRecord
	Warnings []string
	Counts   map[string]int
}

// Run fetches all adapters concurrently. Output order is adapter order, so
// downstream concatenation stays deterministic regardless of which source
// finished first.
func Run(ctx context.Context, adapters []Adapter, opts RunOptions) (Result, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}

	sets := make([][]domain.RawRecord, len(adapters))
	errs := make([]error, len(adapters))

	var g errgroup.Group
	for i, a := range adapters {
		i, a := i, a
		g.Go(func() error {
			actx, cancel := context.WithTimeout(ctx, opts.Timeout)
			defer cancel()

			log.Printf("[%s] running...", a.Name())
			recs, err := a.Fetch(actx)
			if err != nil {
				errs[i] = err
				if opts.FailFast {
					return fmt.Errorf("%s: %w", a.Name(), err)
				}
				log.Printf("[%s] error: %v", a.Name(), err)
				return nil
			}
			sets[i] = recs
			log.Printf("[%s] records=%d", a.Name(), len(recs))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Sets: sets, Counts: make(map[string]int, len(adapters))}
	for i, a := range adapters {
		res.Counts[a.Name()] = len(sets[i])
		if errs[i] != nil {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("%s unavailable: %v", a.Name(), errs[i]))
		}
	}
	return res, nil
}
