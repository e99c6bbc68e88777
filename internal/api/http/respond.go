package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the engine's sentinel errors to HTTP statuses. Unknown
// errors become 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrRoomUnavailable):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrPendingBankAccount):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidLeaseParameters),
		errors.Is(err, domain.ErrAmountMismatch),
		errors.Is(err, domain.ErrMissingProof),
		errors.Is(err, domain.ErrMissingReason),
		errors.Is(err, domain.ErrInvalidAccount):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrNoApprovedBankAccount):
		status = http.StatusUnprocessableEntity
	default:
		logger.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
