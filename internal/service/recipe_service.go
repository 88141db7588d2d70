package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/BrandonWrob/ExtendedManager/internal/repositories"
	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type RecipeServiceInterface interface {
	GetAllRecipes(ctx context.Context) ([]*models.Recipe, error)
	GetRecipeByName(ctx context.Context, name string) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, recipe *models.Recipe) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) error
}

type RecipeService struct {
	store  repositories.Store
	logger *logger.Logger
}

func NewRecipeService(store repositories.Store, logger *logger.Logger) *RecipeService {
	return &RecipeService{
		store:  store,
		logger: logger.WithComponent("recipe_service"),
	}
}

func (s *RecipeService) GetAllRecipes(ctx context.Context) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	err := s.store.Read(ctx, func(repos repositories.Repositories) error {
		var err error
		recipes, err = repos.Recipes.GetAll(ctx)
		return err
	})
	if err != nil {
		s.logger.ForContext(ctx).Error("Failed to get recipes", "error", err)
		return nil, err
	}
	return recipes, nil
}

func (s *RecipeService) GetRecipeByName(ctx context.Context, name string) (*models.Recipe, error) {
	var recipe *models.Recipe
	err := s.store.Read(ctx, func(repos repositories.Repositories) error {
		var err error
		recipe, err = repos.Recipes.GetByName(ctx, name)
		return translate(err, fmt.Sprintf("recipe %q", name))
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// CreateRecipe adds a recipe to the catalog, which holds at most
// models.MaxRecipes entries.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	log := s.logger.ForContext(ctx)
	created := recipe.Clone()
	if err := validateRecipeData(created); err != nil {
		log.Warn("Create recipe failed: invalid data", "error", err)
		return nil, err
	}
	created.ID = models.UnsavedID
	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		if err := repos.Recipes.LockCatalog(ctx); err != nil {
			return err
		}
		if _, err := repos.Recipes.GetByName(ctx, created.Name); err == nil {
			return fmt.Errorf("recipe %q: %w", created.Name, ErrConflict)
		}
		count, err := repos.Recipes.Count(ctx)
		if err != nil {
			return err
		}
		if count >= models.MaxRecipes {
			return fmt.Errorf("%w: at most %d recipes", ErrCatalogFull, models.MaxRecipes)
		}
		if err := s.checkIngredientsStocked(ctx, repos, created); err != nil {
			return err
		}
		return translate(repos.Recipes.Create(ctx, created), fmt.Sprintf("recipe %q", created.Name))
	})
	if err != nil {
		log.Warn("Create recipe failed", "name", created.Name, "error", err)
		return nil, err
	}

	log.Info("Recipe created", "id", created.ID, "name", created.Name, "price", created.Price)
	return created, nil
}

// UpdateRecipe replaces price and ingredients. The name stays as stored.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id int64, recipe *models.Recipe) (*models.Recipe, error) {
	log := s.logger.ForContext(ctx)
	if recipe == nil {
		return nil, validationError("recipe is required")
	}

	var updated *models.Recipe
	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		existing, err := repos.Recipes.GetByID(ctx, id)
		if err != nil {
			return translate(err, fmt.Sprintf("recipe %d", id))
		}

		candidate := recipe.Clone()
		candidate.ID = id
		candidate.Name = existing.Name
		if err := validateRecipeData(candidate); err != nil {
			return err
		}
		if err := s.checkIngredientsStocked(ctx, repos, candidate); err != nil {
			return err
		}
		if err := repos.Recipes.Update(ctx, candidate); err != nil {
			return translate(err, fmt.Sprintf("recipe %d", id))
		}
		updated = candidate
		return nil
	})
	if err != nil {
		log.Warn("Update recipe failed", "id", id, "error", err)
		return nil, err
	}

	log.Info("Recipe updated", "id", id, "name", updated.Name)
	return updated, nil
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, id int64) error {
	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		return translate(repos.Recipes.Delete(ctx, id), fmt.Sprintf("recipe %d", id))
	})
	if err != nil {
		s.logger.ForContext(ctx).Warn("Delete recipe failed", "id", id, "error", err)
		return err
	}
	s.logger.ForContext(ctx).Info("Recipe deleted", "id", id)
	return nil
}

func (s *RecipeService) checkIngredientsStocked(ctx context.Context, repos repositories.Repositories, recipe *models.Recipe) error {
	inv, err := repos.Inventory.GetOrCreate(ctx)
	if err != nil {
		return err
	}
	for _, ing := range recipe.Ingredients {
		if inv.Find(ing.Name) < 0 {
			return validationError("ingredient %s is not in the inventory", ing.Name)
		}
	}
	return nil
}

func validateRecipeData(recipe *models.Recipe) error {
	if recipe == nil {
		return validationError("recipe is required")
	}
	recipe.Name = strings.TrimSpace(recipe.Name)
	if recipe.Name == "" {
		return validationError("recipe name is required")
	}
	if recipe.Price <= 0 {
		return validationError("price must be positive")
	}
	if recipe.Price > models.MaxAmount {
		return validationError("price cannot exceed %d", models.MaxAmount)
	}
	if len(recipe.Ingredients) == 0 {
		return validationError("recipe needs at least one ingredient")
	}

	seen := map[string]bool{}
	for _, ing := range recipe.Ingredients {
		if ing.Name == "" {
			return validationError("ingredient name is required")
		}
		if ing.Amount <= 0 {
			return validationError("amount for %s must be positive", ing.Name)
		}
		if ing.Amount > models.MaxAmount {
			return validationError("amount for %s cannot exceed %d", ing.Name, models.MaxAmount)
		}
		if seen[ing.Name] {
			return validationError("ingredient %s listed twice", ing.Name)
		}
		seen[ing.Name] = true
	}
	return nil
}
