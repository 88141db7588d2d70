package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/BrandonWrob/ExtendedManager/internal/service"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

// UsernameHeader names the customer a request acts for.
const UsernameHeader = "X-Username"

var errMissingUsername = errors.New(UsernameHeader + " header is required")

type errorResponse struct {
	Error string `json:"error"`
}

// responder carries the JSON helpers shared by every handler.
type responder struct {
	logger *logger.Logger
}

// writeJSONResponse writes JSON response with given status code and data
func (h responder) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// writeErrorResponse writes an error response with given status code and message
func (h responder) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: message}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}

// writeServiceError maps a service error onto a status code. Internal
// errors are logged and hidden from the client.
func (h responder) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	log := h.logger.ForContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "path", r.URL.Path, "error", err)
		h.writeErrorResponse(w, status, http.StatusText(status))
		return
	}
	log.Warn("Request rejected", "path", r.URL.Path, "status", status, "error", err)
	h.writeErrorResponse(w, status, err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrNotReady),
		errors.Is(err, service.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrGone):
		return http.StatusGone
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInsufficientInventory):
		return http.StatusConflict
	case errors.Is(err, service.ErrCatalogFull):
		return http.StatusInsufficientStorage
	default:
		return http.StatusInternalServerError
	}
}

// parseRequestBody parses JSON request body into the target struct
func parseRequestBody(r *http.Request, target interface{}) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func usernameFromRequest(r *http.Request) (string, error) {
	username := strings.TrimSpace(r.Header.Get(UsernameHeader))
	if username == "" {
		return "", errMissingUsername
	}
	return username, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
