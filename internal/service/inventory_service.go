package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/BrandonWrob/ExtendedManager/internal/repositories"
	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type InventoryServiceInterface interface {
	GetInventory(ctx context.Context) (*models.Inventory, error)
	RestockInventory(ctx context.Context, additions []models.Ingredient) (*models.Inventory, error)
	AddIngredient(ctx context.Context, ingredient models.Ingredient) (*models.Inventory, error)
}

type InventoryService struct {
	store  repositories.Store
	logger *logger.Logger
}

func NewInventoryService(store repositories.Store, logger *logger.Logger) *InventoryService {
	return &InventoryService{
		store:  store,
		logger: logger.WithComponent("inventory_service"),
	}
}

// GetInventory returns the ledger, creating an empty one on first use.
func (s *InventoryService) GetInventory(ctx context.Context) (*models.Inventory, error) {
	var inv *models.Inventory
	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		var err error
		inv, err = repos.Inventory.GetOrCreate(ctx)
		return err
	})
	if err != nil {
		s.logger.ForContext(ctx).Error("Failed to get inventory", "error", err)
		return nil, err
	}
	return inv, nil
}

// RestockInventory adds the given amounts on top of current stock. Every
// ingredient must already be in the ledger.
func (s *InventoryService) RestockInventory(ctx context.Context, additions []models.Ingredient) (*models.Inventory, error) {
	log := s.logger.ForContext(ctx)
	log.Info("Restocking inventory", "ingredients", len(additions))

	for _, add := range additions {
		if err := validateAmount(add); err != nil {
			return nil, err
		}
	}

	var inv *models.Inventory
	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		current, err := repos.Inventory.GetOrCreate(ctx)
		if err != nil {
			return err
		}
		for _, add := range additions {
			i := current.Find(add.Name)
			if i < 0 {
				return fmt.Errorf("ingredient %q: %w", add.Name, ErrNotFound)
			}
			if add.Amount > models.MaxAmount-current.Ingredients[i].Amount {
				return validationError("restocking %s by %d exceeds %d", add.Name, add.Amount, models.MaxAmount)
			}
			current.Ingredients[i].Amount += add.Amount
		}
		if err := repos.Inventory.Save(ctx, current); err != nil {
			return err
		}
		inv = current
		return nil
	})
	if err != nil {
		log.Warn("Restock failed", "error", err)
		return nil, err
	}
	return inv, nil
}

// AddIngredient puts a new ingredient into the ledger.
func (s *InventoryService) AddIngredient(ctx context.Context, ingredient models.Ingredient) (*models.Inventory, error) {
	log := s.logger.ForContext(ctx)
	ingredient.Name = strings.TrimSpace(ingredient.Name)
	ingredient.ID = models.UnsavedID

	if ingredient.Name == "" {
		return nil, validationError("ingredient name is required")
	}
	if err := validateAmount(ingredient); err != nil {
		return nil, err
	}

	var inv *models.Inventory
	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		current, err := repos.Inventory.GetOrCreate(ctx)
		if err != nil {
			return err
		}
		if current.Find(ingredient.Name) >= 0 {
			return fmt.Errorf("ingredient %q: %w", ingredient.Name, ErrConflict)
		}
		current.Ingredients = append(current.Ingredients, ingredient)
		if err := repos.Inventory.Save(ctx, current); err != nil {
			return err
		}
		inv = current
		return nil
	})
	if err != nil {
		log.Warn("Add ingredient failed", "name", ingredient.Name, "error", err)
		return nil, err
	}

	log.Info("Ingredient added", "name", ingredient.Name, "amount", ingredient.Amount)
	return inv, nil
}

func validateAmount(ing models.Ingredient) error {
	if ing.Amount < 0 {
		return validationError("amount for %s cannot be negative", ing.Name)
	}
	if ing.Amount > models.MaxAmount {
		return validationError("amount for %s cannot exceed %d", ing.Name, models.MaxAmount)
	}
	return nil
}
