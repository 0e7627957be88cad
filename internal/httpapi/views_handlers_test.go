package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gradlens-engine/internal/analysis"
)

func TestViewsEndpoints(t *testing.T) {
	t.Parallel()

	d := testDeps()
	mux := NewMux(d)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/views/locations", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("views before first run should report loading, got %d", rec.Code)
	}

	publishDataset(d, sampleDataset())

	for path, kind := range map[string]analysis.ViewKind{
		"/views/locations": analysis.ViewLocations,
		"/views/timeline":  analysis.ViewTimeline,
		"/views/roles":     analysis.ViewRoles,
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, rec.Code)
		}
		var fig analysis.Figure
		if err := json.Unmarshal(rec.Body.Bytes(), &fig); err != nil {
			t.Fatalf("%s decode: %v", path, err)
		}
		if fig.Kind != kind {
			t.Fatalf("%s rendered %q", path, fig.Kind)
		}
	}
}

func TestTimelineWindowOverride(t *testing.T) {
	t.Parallel()

	d := testDeps()
	mux := NewMux(d)
	publishDataset(d, sampleDataset())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/views/timeline?window=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("timeline with window override returned %d", rec.Code)
	}
	var fig analysis.Figure
	if err := json.Unmarshal(rec.Body.Bytes(), &fig); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fig.Timeline) != 1 {
		t.Fatalf("expected one series, got %+v", fig.Timeline)
	}
}
