package httpapi

import (
	"net/http"
	"strconv"

	"gradlens-engine/internal/aggregate"
	"gradlens-engine/internal/analysis"
	"gradlens-engine/internal/config"
)

type ViewsHandler struct {
	Deps
}

// Serve renders one aggregation view over the current dataset. Views never
// mutate anything; they are projections of the published snapshot.
func (h ViewsHandler) Serve(kind analysis.ViewKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := h.currentSlot()
		if slot == nil {
			writeError(w, r, http.StatusAccepted, errLoading, "no aggregation run has started")
			return
		}
		res, ok := slot.TryGet()
		if !ok {
			writeError(w, r, http.StatusAccepted, errLoading, "aggregation still running")
			return
		}
		if res.Err != nil {
			writeError(w, r, http.StatusBadGateway, errAggregation, res.Err.Error())
			return
		}

		cfg := h.CfgVal.Load().(config.Config)
		opts := aggregate.TimelineOpts(cfg)
		if v := r.URL.Query().Get("window"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				opts.Window = n
			}
		}

		fig, err := analysis.Render(res.Value.Postings, kind, opts)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, errBadView, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, fig)
	}
}
