package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BrandonWrob/ExtendedManager/internal/service"
	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type OrderHandler struct {
	responder
	orderService service.OrderServiceInterface
}

// NewOrderHandler creates a new OrderHandler with the given service and logger
func NewOrderHandler(orderService service.OrderServiceInterface, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{
		responder:    responder{logger: logger.WithComponent("order_handler")},
		orderService: orderService,
	}
}

// CreateOrder handles POST /api/v1/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	username, err := usernameFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var order models.Order
	if err := parseRequestBody(r, &order); err != nil {
		h.logger.ForContext(r.Context()).Warn("Invalid request body for create order", "error", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	placed, err := h.orderService.PlaceOrder(r.Context(), username, &order)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusCreated, placed)
}

// GetAllOrders handles GET /api/v1/orders. Only id and status are listed.
func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetAllOrders(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	summaries := make([]models.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, order.Summary())
	}
	h.writeJSONResponse(w, http.StatusOK, summaries)
}

// GetMyOrders handles GET /api/v1/orders/mine
func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	username, err := usernameFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.orderService.GetOrdersByUser(r.Context(), username)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, orders)
}

// GetOrderByID handles GET /api/v1/orders/{id}
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrderByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, order)
}

// FulfillOrder handles PUT /api/v1/orders/{id}/fulfill
func (h *OrderHandler) FulfillOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.orderService.FulfillOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, order)
}

// PickupOrder handles DELETE /api/v1/orders/{id}
func (h *OrderHandler) PickupOrder(w http.ResponseWriter, r *http.Request) {
	username, err := usernameFromRequest(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.orderService.PickupOrder(r.Context(), username, id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, order)
}
