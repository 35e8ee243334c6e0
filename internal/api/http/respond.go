package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"skirent-backend/internal/logger"
	"skirent-backend/internal/service"
	"skirent-backend/internal/stock"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// caller mistakes are 400, missing identity 401, missing rows 404 and
// everything else a logged 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation   *service.ValidationError
		insufficient *stock.InsufficientError
	)
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &insufficient):
		writeError(w, http.StatusBadRequest, insufficient.Error())
	case errors.Is(err, service.ErrAlreadyAccepted),
		errors.Is(err, service.ErrAlreadyReturned):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return service.Validationf("invalid request body: %s", err)
	}
	return nil
}
