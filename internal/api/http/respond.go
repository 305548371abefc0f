package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"commonage-backend/internal/domain"
	"commonage-backend/internal/logger"
)

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps the domain error taxonomy to HTTP status codes. Every typed
// error keeps its specific reason; only unknown errors collapse to 500.
func writeError(w http.ResponseWriter, err error) {
	var reqErr *domain.RequirementsNotMetError
	if errors.As(err, &reqErr) {
		missing := make([]string, len(reqErr.Missing))
		for i, k := range reqErr.Missing {
			missing[i] = string(k)
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code:    "REQUIREMENTS_NOT_MET",
			Message: reqErr.Error(),
			Missing: missing,
		})
		return
	}

	var code string
	var status int
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code, status = "NOT_FOUND", http.StatusNotFound
	case errors.Is(err, domain.ErrOwnershipMismatch):
		code, status = "OWNERSHIP_MISMATCH", http.StatusForbidden
	case errors.Is(err, domain.ErrForbidden):
		code, status = "FORBIDDEN", http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidTransition):
		code, status = "INVALID_TRANSITION", http.StatusConflict
	case errors.Is(err, domain.ErrConflict):
		code, status = "CONFLICT", http.StatusConflict
	case errors.Is(err, domain.ErrApplicationsClosed):
		code, status = "APPLICATIONS_CLOSED", http.StatusConflict
	case errors.Is(err, domain.ErrCommonerNotApproved):
		code, status = "COMMONER_NOT_APPROVED", http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		code, status = "VALIDATION_ERROR", http.StatusBadRequest
	default:
		logger.Error("unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    "INTERNAL",
			Message: "internal server error",
		})
		return
	}
	writeJSON(w, status, errorResponse{Code: code, Message: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "invalid request body",
		})
		return false
	}
	return true
}
