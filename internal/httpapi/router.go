package httpapi

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"gradlens-engine/internal/analysis"
)

func NewMux(d Deps) *http.ServeMux {
	d.runMu = &sync.Mutex{}
	if d.PrevVal == nil {
		d.PrevVal = &atomic.Value{}
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "time": time.Now().Format(time.RFC3339)})
		},
	}))

	// Dataset
	dh := DatasetHandler{Deps: d}
	mux.HandleFunc("/dataset", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Get,
	}))
	mux.HandleFunc("/dataset/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Status,
	}))
	mux.HandleFunc("/aggregate/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Run,
	}))

	// Views
	vh := ViewsHandler{Deps: d}
	mux.HandleFunc("/views/locations", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: vh.Serve(analysis.ViewLocations),
	}))
	mux.HandleFunc("/views/timeline", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: vh.Serve(analysis.ViewTimeline),
	}))
	mux.HandleFunc("/views/roles", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: vh.Serve(analysis.ViewRoles),
	}))

	// Config
	ch := ConfigHandler{Deps: d}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets
	sh := SecretsHandler{Deps: d}
	mux.HandleFunc("/api/secrets/imap", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sh.SetIMAPPassword,
		http.MethodDelete: sh.DeleteIMAPPassword,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
