package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type RecipeRepository struct {
	q      querier
	logger *logger.Logger
}

func NewRecipeRepository(q querier, log *logger.Logger) *RecipeRepository {
	return &RecipeRepository{q: q, logger: log}
}

const selectRecipes = `
	SELECT r.id, r.name, r.price,
	       COALESCE(
	           json_agg(
	               json_build_object('id', ri.id, 'name', ri.name, 'amount', ri.amount)
	               ORDER BY ri.position
	           ) FILTER (WHERE ri.id IS NOT NULL), '[]'::json
	       ) AS ingredients
	FROM recipes r
	LEFT JOIN recipe_ingredients ri ON ri.recipe_id = r.id
`

func (r *RecipeRepository) GetAll(ctx context.Context) ([]*models.Recipe, error) {
	r.logger.Debug("Retrieving all recipes")
	return r.query(ctx, selectRecipes+` GROUP BY r.id ORDER BY r.name`)
}

func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	return r.queryOne(ctx, selectRecipes+` WHERE r.id = $1 GROUP BY r.id`, id)
}

func (r *RecipeRepository) GetByName(ctx context.Context, name string) (*models.Recipe, error) {
	return r.queryOne(ctx, selectRecipes+` WHERE r.name = $1 GROUP BY r.id`, name)
}

func (r *RecipeRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return n, nil
}

func (r *RecipeRepository) LockCatalog(ctx context.Context) error {
	if _, err := r.q.ExecContext(ctx, `LOCK TABLE recipes IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("failed to lock recipes: %w", err)
	}
	return nil
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	r.logger.Debug("Adding new recipe", "name", recipe.Name)

	err := r.q.QueryRowContext(ctx,
		`INSERT INTO recipes (name, price) VALUES ($1, $2) RETURNING id`,
		recipe.Name, recipe.Price,
	).Scan(&recipe.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("Attempted to add duplicate recipe", "name", recipe.Name)
			return fmt.Errorf("recipe %q: %w", recipe.Name, ErrDuplicate)
		}
		r.logger.Error("Failed to add recipe", "name", recipe.Name, "error", err)
		return fmt.Errorf("failed to add recipe: %w", err)
	}

	if err := r.insertIngredients(ctx, recipe); err != nil {
		return err
	}

	r.logger.Info("Added new recipe", "id", recipe.ID, "name", recipe.Name)
	return nil
}

func (r *RecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	r.logger.Debug("Updating recipe", "id", recipe.ID)

	result, err := r.q.ExecContext(ctx,
		`UPDATE recipes SET name = $1, price = $2 WHERE id = $3`,
		recipe.Name, recipe.Price, recipe.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("recipe %q: %w", recipe.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if _, err := r.q.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
		return fmt.Errorf("failed to delete recipe ingredients: %w", err)
	}
	return r.insertIngredients(ctx, recipe)
}

func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	r.logger.Debug("Deleting recipe", "id", id)

	result, err := r.q.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) insertIngredients(ctx context.Context, recipe *models.Recipe) error {
	query := `
		INSERT INTO recipe_ingredients (recipe_id, position, name, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range recipe.Ingredients {
		ing := &recipe.Ingredients[i]
		if err := r.q.QueryRowContext(ctx, query, recipe.ID, i, ing.Name, ing.Amount).Scan(&ing.ID); err != nil {
			return fmt.Errorf("failed to insert ingredient %s: %w", ing.Name, err)
		}
	}
	return nil
}

func (r *RecipeRepository) queryOne(ctx context.Context, query string, args ...any) (*models.Recipe, error) {
	recipe := &models.Recipe{}
	var ingredientsJSON []byte

	err := r.q.QueryRowContext(ctx, query, args...).Scan(&recipe.ID, &recipe.Name, &recipe.Price, &ingredientsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to retrieve recipe", "error", err)
		return nil, fmt.Errorf("failed to retrieve recipe: %w", err)
	}
	if err := json.Unmarshal(ingredientsJSON, &recipe.Ingredients); err != nil {
		return nil, fmt.Errorf("invalid ingredients for recipe %d: %w", recipe.ID, err)
	}
	return recipe, nil
}

func (r *RecipeRepository) query(ctx context.Context, query string, args ...any) ([]*models.Recipe, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query recipes", "error", err)
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := []*models.Recipe{}
	for rows.Next() {
		recipe := &models.Recipe{}
		var ingredientsJSON []byte
		if err := rows.Scan(&recipe.ID, &recipe.Name, &recipe.Price, &ingredientsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		if err := json.Unmarshal(ingredientsJSON, &recipe.Ingredients); err != nil {
			return nil, fmt.Errorf("invalid ingredients for recipe %d: %w", recipe.ID, err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipe rows: %w", err)
	}
	return recipes, nil
}
