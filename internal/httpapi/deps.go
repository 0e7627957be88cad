package httpapi

import (
	"sync"
	"sync/atomic"

	"gradlens-engine/internal/aggregate"
	"gradlens-engine/internal/config"
	"gradlens-engine/internal/events"
	"gradlens-engine/internal/handoff"
)

type Deps struct {
	Hub *events.Hub

	// Atomic stores
	CfgVal    *atomic.Value // stores config.Config
	StatusVal *atomic.Value // stores aggregate.Status
	SlotVal   *atomic.Value // stores *handoff.Slot[aggregate.Dataset]
	// PrevVal holds the last persisted dataset so the shell has something to
	// show while the first run of this process is still in flight.
	PrevVal *atomic.Value // stores aggregate.Dataset

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// StartRun kicks off a fresh aggregation run and returns its slot
	// (injected for testability).
	StartRun func(cfg config.Config) *handoff.Slot[aggregate.Dataset]

	// Serializes the running-check + StartRun pair so concurrent POSTs to
	// /aggregate/run cannot launch overlapping runs. Filled in by NewMux.
	runMu *sync.Mutex
}

func (d Deps) currentSlot() *handoff.Slot[aggregate.Dataset] {
	if v := d.SlotVal.Load(); v != nil {
		return v.(*handoff.Slot[aggregate.Dataset])
	}
	return nil
}

func (d Deps) previousDataset() (aggregate.Dataset, bool) {
	if d.PrevVal == nil {
		return aggregate.Dataset{}, false
	}
	if v := d.PrevVal.Load(); v != nil {
		return v.(aggregate.Dataset), true
	}
	return aggregate.Dataset{}, false
}
