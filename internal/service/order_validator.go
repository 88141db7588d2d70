package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/BrandonWrob/ExtendedManager/internal/repositories"
	"github.com/BrandonWrob/ExtendedManager/models"
)

// RecipeReader is the catalog lookup the validator needs.
type RecipeReader interface {
	GetByName(ctx context.Context, name string) (*models.Recipe, error)
}

// ValidateOrder checks a submitted order line by line against the catalog
// and stops at the first mismatch. An accepted order comes back as a copy
// with every identifier cleared and fulfilled reset, ready to be inserted.
// The submitted order is not modified.
func ValidateOrder(ctx context.Context, catalog RecipeReader, order *models.Order) (*models.Order, error) {
	if order == nil || len(order.Lines) == 0 {
		return nil, &RejectError{Reason: ReasonEmptyOrder, Line: -1}
	}

	// Empty lines are rejected before any catalog lookup, wherever they sit.
	for i, line := range order.Lines {
		if line == nil {
			return nil, &RejectError{Reason: ReasonMissingLine, Line: i}
		}
	}

	for i, line := range order.Lines {
		recipe, err := catalog.GetByName(ctx, line.Name)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &RejectError{Reason: ReasonUnknownRecipe, Line: i, Recipe: line.Name}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up recipe %q: %w", line.Name, err)
		}

		if line.Price != recipe.Price {
			return nil, &RejectError{Reason: ReasonPriceMismatch, Line: i, Recipe: line.Name}
		}
		if !sameIngredients(line.Ingredients, recipe.Ingredients) {
			return nil, &RejectError{Reason: ReasonIngredientMismatch, Line: i, Recipe: line.Name}
		}
		if line.Multiplier == nil || *line.Multiplier <= 0 {
			return nil, &RejectError{Reason: ReasonInvalidMultiplier, Line: i, Recipe: line.Name}
		}
	}

	return sanitizeOrder(order), nil
}

// sameIngredients compares position by position on name and per-unit amount.
func sameIngredients(submitted, catalog []models.Ingredient) bool {
	if len(submitted) != len(catalog) {
		return false
	}
	for i := range catalog {
		if submitted[i].Name != catalog[i].Name || submitted[i].Amount != catalog[i].Amount {
			return false
		}
	}
	return true
}

func sanitizeOrder(order *models.Order) *models.Order {
	clean := order.Clone()
	clean.ID = models.UnsavedID
	clean.UserID = models.UnsavedID
	clean.Fulfilled = false
	for _, line := range clean.Lines {
		line.ID = models.UnsavedID
		for i := range line.Ingredients {
			line.Ingredients[i].ID = models.UnsavedID
		}
	}
	return clean
}
