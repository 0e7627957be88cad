package httpapi

import "net/http"

// Error codes the engine API actually returns. The shell switches on these,
// so the set is closed and spelled out here rather than invented per call.
const (
	errLoading     = "loading"            // no finished dataset yet (202)
	errAggregation = "aggregation_failed" // the run itself failed (502)
	errBadView     = "bad_view"           // unknown view kind (400)
	errInternal    = "internal_error"     // recovered panic (500)
	errStream      = "stream_unsupported" // SSE on a non-flushing writer
)

type errorBody struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	body.Error.RequestID = RequestIDFrom(r.Context())
	writeJSON(w, status, body)
}
