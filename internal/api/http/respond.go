package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/logger"
	"traffic-fines-backend/internal/service"
)

type errorBody struct {
	Error           string `json:"error"`
	ReferenceNumber string `json:"referenceNumber,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps a service error onto a status code. Errors outside the
// known kinds are logged and reported as a bare internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var inc *domain.InconsistencyError
	switch {
	case errors.As(err, &inc):
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:           "fine and ledger are out of step, reconciliation required",
			ReferenceNumber: inc.Reference,
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	default:
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", err.Error())
	}
	return nil
}
