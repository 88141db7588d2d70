package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BrandonWrob/ExtendedManager/internal/service"
	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type HistoryHandler struct {
	responder
	historyService service.OrderHistoryServiceInterface
}

func NewHistoryHandler(historyService service.OrderHistoryServiceInterface, logger *logger.Logger) *HistoryHandler {
	return &HistoryHandler{
		responder:      responder{logger: logger.WithComponent("history_handler")},
		historyService: historyService,
	}
}

type statusUpdateResponse struct {
	Updated bool `json:"updated"`
}

// CreateHistory handles POST /api/v1/history
func (h *HistoryHandler) CreateHistory(w http.ResponseWriter, r *http.Request) {
	username, err := usernameFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var order models.Order
	if err := parseRequestBody(r, &order); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	history, err := h.historyService.MakeOrderHistory(r.Context(), username, &order)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusCreated, history)
}

// GetOrderHistory handles GET /api/v1/history
func (h *HistoryHandler) GetOrderHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.historyService.GetOrderHistory(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, history)
}

// GetHistoryByID handles GET /api/v1/history/{id}
func (h *HistoryHandler) GetHistoryByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid history ID")
		return
	}

	history, err := h.historyService.GetHistoryByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, history)
}

// UpdateHistoryStatus handles PUT /api/v1/history/{id}/status
func (h *HistoryHandler) UpdateHistoryStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid history ID")
		return
	}

	updated, err := h.historyService.UpdateOrderHistoryStatus(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, statusUpdateResponse{Updated: updated})
}

// GetUserHistory handles GET /api/v1/history/users/{username}
func (h *HistoryHandler) GetUserHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.historyService.GetUserHistory(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, history)
}
