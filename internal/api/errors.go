package api

import (
	"encoding/json"
	"net/http"

	"github.com/nerrad567/middlemile/internal/device"
	"github.com/nerrad567/middlemile/internal/schema"
)

// statusFor maps an error kind to its HTTP status code.
func statusFor(kind device.Kind) int {
	switch kind {
	case device.KindNotFound:
		return http.StatusNotFound
	case device.KindConversionFailed:
		return http.StatusBadRequest
	case device.KindSchema:
		return http.StatusUnprocessableEntity
	case device.KindDuplicateKey, device.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeSuccess writes data inside the success envelope.
func writeSuccess[T any](w http.ResponseWriter, data T) {
	writeJSON(w, http.StatusOK, schema.Success(data))
}

// writeError writes {"error": "<Kind>"} with the status for err.
// Internal errors are logged since the client only sees the kind.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := device.KindOf(err)
	if kind == device.KindInternal {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", requestID(r.Context()),
		)
	}
	writeJSON(w, statusFor(kind), schema.ErrorOut{Error: kind})
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, schema.ErrorOut{Error: device.KindInternal})
}
