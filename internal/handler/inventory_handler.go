package handler

import (
	"net/http"

	"github.com/BrandonWrob/ExtendedManager/internal/service"
	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type InventoryHandler struct {
	responder
	inventoryService service.InventoryServiceInterface
}

func NewInventoryHandler(inventoryService service.InventoryServiceInterface, logger *logger.Logger) *InventoryHandler {
	return &InventoryHandler{
		responder:        responder{logger: logger.WithComponent("inventory_handler")},
		inventoryService: inventoryService,
	}
}

// GetInventory handles GET /api/v1/inventory
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	inv, err := h.inventoryService.GetInventory(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, inv)
}

// RestockInventory handles PUT /api/v1/inventory. The body lists amounts
// to add to existing ingredients.
func (h *InventoryHandler) RestockInventory(w http.ResponseWriter, r *http.Request) {
	var additions []models.Ingredient
	if err := parseRequestBody(r, &additions); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inv, err := h.inventoryService.RestockInventory(r.Context(), additions)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, inv)
}

// AddIngredient handles POST /api/v1/inventory/ingredients
func (h *InventoryHandler) AddIngredient(w http.ResponseWriter, r *http.Request) {
	var ingredient models.Ingredient
	if err := parseRequestBody(r, &ingredient); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inv, err := h.inventoryService.AddIngredient(r.Context(), ingredient)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusCreated, inv)
}
