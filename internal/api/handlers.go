package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lei/anc-web-api/internal/models"
)

// ErrInvalidID indicates the {id} route parameter is not an integer
var ErrInvalidID = errors.New("invalid id")

// ValuesService is the logic behind the values routes
type ValuesService interface {
	Get(id int) models.ValueResult
	GetDealStatus(id int) models.DealStatus
}

// Handlers contains HTTP handler functions
type Handlers struct {
	values ValuesService
}

// NewHandlers creates a new handlers instance
func NewHandlers(values ValuesService) *Handlers {
	return &Handlers{values: values}
}

// Health handles health check requests
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetValue handles GET /api/values/{id}
func (h *Handlers) GetValue(w http.ResponseWriter, r *http.Request) {
	logger := GetLogger(r.Context())

	id, err := parseID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if logger != nil {
		logger.Debug("getting value", "id", id)
	}

	result := h.values.Get(id)

	if logger != nil {
		logger.Info("value retrieved", "id", id)
	}

	respondJSON(w, http.StatusOK, result)
}

// GetDealStatus handles GET /api/values/{id}/dealstatus
func (h *Handlers) GetDealStatus(w http.ResponseWriter, r *http.Request) {
	logger := GetLogger(r.Context())

	id, err := parseID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if logger != nil {
		logger.Debug("getting deal status", "id", id)
	}

	status := h.values.GetDealStatus(id)

	if logger != nil {
		logger.Info("deal status retrieved", "id", id, "status", status)
	}

	respondJSON(w, http.StatusOK, models.DealStatusResponse{
		ID:     id,
		Status: status,
	})
}

// parseID reads the {id} route parameter
func parseID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		if logger := GetLogger(r.Context()); logger != nil {
			logger.Warn("invalid id", "id", raw)
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError writes a JSON error response with logging
func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logger := GetLogger(r.Context())
	requestID := GetRequestID(r.Context())

	if logger != nil {
		logger.Error("returning error response",
			"status", status,
			"message", message,
			"request_id", requestID)
	}

	respondJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message":    message,
			"code":       status,
			"request_id": requestID,
		},
	})
}

// handleError maps handler errors to HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := GetLogger(r.Context())

	if logger != nil {
		logger.Debug("handler error occurred",
			"error", err.Error(),
			"error_type", fmt.Sprintf("%T", err))
	}

	switch {
	case errors.Is(err, ErrInvalidID):
		respondError(w, r, http.StatusBadRequest, "invalid id")
	default:
		respondError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
