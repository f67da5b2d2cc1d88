package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/archivo-digital/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxJSONBodyBytes = 1 << 20

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the payload of endpoints that report with "message".
type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// serviceErrorStatus maps a service error to its HTTP status and the message
// the client may see. Unclassified errors become a 500 with fallback.
func serviceErrorStatus(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflict):
		return http.StatusBadRequest, services.ClientMessage(err, fallback)
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized, services.ClientMessage(err, fallback)
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, services.ClientMessage(err, fallback)
	default:
		return http.StatusInternalServerError, fallback
	}
}

// respondError writes err as {"error": ...}. Causes of 500s are logged and
// never sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, fallback string) {
	status, message := serviceErrorStatus(err, fallback)
	if status == http.StatusInternalServerError {
		logServerError(r, logger, err)
	}
	writeError(w, status, message)
}

func logServerError(r *http.Request, logger *slog.Logger, err error) {
	logger.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxJSONBodyBytes))
	return decoder.Decode(dst)
}

func parseIDParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// flexibleID accepts a JSON number or a numeric string; null and "" decode
// to zero.
type flexibleID int

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*f = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	if raw == "" {
		*f = 0
		return nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid id %q", raw)
	}
	*f = flexibleID(id)
	return nil
}
