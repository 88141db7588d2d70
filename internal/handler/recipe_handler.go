package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BrandonWrob/ExtendedManager/internal/service"
	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

// RecipeParam is the path segment shared by the recipe routes. Reads treat
// it as a name, writes as an id.
const RecipeParam = "recipe"

type RecipeHandler struct {
	responder
	recipeService service.RecipeServiceInterface
}

func NewRecipeHandler(recipeService service.RecipeServiceInterface, logger *logger.Logger) *RecipeHandler {
	return &RecipeHandler{
		responder:     responder{logger: logger.WithComponent("recipe_handler")},
		recipeService: recipeService,
	}
}

// GetAllRecipes handles GET /api/v1/recipes
func (h *RecipeHandler) GetAllRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeService.GetAllRecipes(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, recipes)
}

// GetRecipe handles GET /api/v1/recipes/{name}
func (h *RecipeHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.recipeService.GetRecipeByName(r.Context(), chi.URLParam(r, RecipeParam))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, recipe)
}

// CreateRecipe handles POST /api/v1/recipes
func (h *RecipeHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var recipe models.Recipe
	if err := parseRequestBody(r, &recipe); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.recipeService.CreateRecipe(r.Context(), &recipe)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusCreated, created)
}

// UpdateRecipe handles PUT /api/v1/recipes/{id}
func (h *RecipeHandler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, RecipeParam))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	var recipe models.Recipe
	if err := parseRequestBody(r, &recipe); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.recipeService.UpdateRecipe(r.Context(), id, &recipe)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, updated)
}

// DeleteRecipe handles DELETE /api/v1/recipes/{id}
func (h *RecipeHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, RecipeParam))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	if err := h.recipeService.DeleteRecipe(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
