package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobcatalog-engine/internal/catalog"
	"jobcatalog-engine/internal/export"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// writeErr maps catalog validation failures to 400, oversized export cells
// to 422 and anything else to 500.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		WriteError(w, r, http.StatusRequestEntityTooLarge, "payload_too_large", err.Error())
	case errors.Is(err, export.ErrCellTooLong):
		WriteError(w, r, http.StatusUnprocessableEntity, "export_failed", err.Error())
	case errors.Is(err, catalog.ErrValidation):
		WriteError(w, r, http.StatusBadRequest, "validation_failed", err.Error())
	default:
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
