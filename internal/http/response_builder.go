package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing left to do but log.
		log.FromContext(context.Background()).Error("encode response", log.FieldError, err)
	}
}

// validationSentinels are domain errors that mean the request was
// well-formed JSON describing an invalid record.
var validationSentinels = []error{
	core.ErrInvalidAmount,
	core.ErrInvalidPeriod,
	core.ErrInvalidCurrency,
	core.ErrEmptyOwner,
	core.ErrEmptyItem,
	core.ErrEmptyCategory,
	core.ErrEmptyName,
	core.ErrEmptyTitle,
	core.ErrZeroDate,
}

// writeError maps domain errors onto HTTP statuses. Unknown errors become an
// opaque 500 so internals never leak to clients.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "record not found"})
		return
	case isValidationError(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	log.FromContext(ctx).ErrorContext(ctx, "request failed", log.FieldError, err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func isValidationError(err error) bool {
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
