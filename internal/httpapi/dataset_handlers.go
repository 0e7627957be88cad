package httpapi

import (
	"net/http"
	"time"

	"gradlens-engine/internal/aggregate"
	"gradlens-engine/internal/config"
)

// Dataset availability states surfaced to the shell. The shell polls
// /dataset/status on a short interval and transitions from its loading view
// exactly once, to either the dashboard or an error message.
const (
	StateLoading = "loading"
	StateReady   = "ready"
	StateError   = "error"
)

type DatasetHandler struct {
	Deps
}

// previousInfo describes the persisted snapshot available while state is
// still loading.
type previousInfo struct {
	Records int    `json:"records"`
	RunAt   string `json:"run_at"`
}

type datasetStatus struct {
	State    string           `json:"state"`
	Error    string           `json:"error,omitempty"`
	Records  int              `json:"records,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
	RunAt    string           `json:"run_at,omitempty"`
	Previous *previousInfo    `json:"previous,omitempty"`
	Worker   aggregate.Status `json:"worker"`
}

func (h DatasetHandler) status() datasetStatus {
	st := datasetStatus{State: StateLoading}
	if v := h.StatusVal.Load(); v != nil {
		st.Worker = v.(aggregate.Status)
	}

	loading := func() datasetStatus {
		if prev, ok := h.previousDataset(); ok {
			st.Previous = &previousInfo{
				Records: len(prev.Postings),
				RunAt:   prev.RunAt.Format(time.RFC3339),
			}
		}
		return st
	}

	slot := h.currentSlot()
	if slot == nil {
		return loading()
	}
	res, ok := slot.TryGet()
	if !ok {
		return loading()
	}
	if res.Err != nil {
		st.State = StateError
		st.Error = res.Err.Error()
		return st
	}
	st.State = StateReady
	st.Records = len(res.Value.Postings)
	st.Warnings = res.Value.Warnings
	st.RunAt = res.Value.RunAt.Format(time.RFC3339)
	return st
}

func (h DatasetHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.status())
}

func (h DatasetHandler) Get(w http.ResponseWriter, r *http.Request) {
	slot := h.currentSlot()
	if slot == nil {
		h.serveLoading(w, r, "no aggregation run has started")
		return
	}
	res, ok := slot.TryGet()
	if !ok {
		h.serveLoading(w, r, "aggregation still running")
		return
	}
	if res.Err != nil {
		writeError(w, r, http.StatusBadGateway, errAggregation, res.Err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res.Value)
}

// serveLoading answers a dataset request that has no finished run behind it:
// the last persisted snapshot if one exists (its RunAt betrays its age),
// otherwise 202 so the shell keeps polling.
func (h DatasetHandler) serveLoading(w http.ResponseWriter, r *http.Request, msg string) {
	if prev, ok := h.previousDataset(); ok {
		writeJSON(w, http.StatusOK, prev)
		return
	}
	writeError(w, r, http.StatusAccepted, errLoading, msg)
}

// Run starts a fresh aggregation; the dataset is rebuilt from scratch.
func (h DatasetHandler) Run(w http.ResponseWriter, r *http.Request) {
	h.runMu.Lock()
	defer h.runMu.Unlock()

	if v := h.StatusVal.Load(); v != nil && v.(aggregate.Status).Running {
		writeJSON(w, http.StatusOK, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	h.SlotVal.Store(h.StartRun(cfg))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
