package repositories

import (
	"context"
	"fmt"

	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type InventoryRepository struct {
	q      querier
	logger *logger.Logger
}

func NewInventoryRepository(q querier, log *logger.Logger) *InventoryRepository {
	return &InventoryRepository{q: q, logger: log}
}

// GetOrCreate returns the ledger and holds its row lock until the
// surrounding transaction ends.
func (r *InventoryRepository) GetOrCreate(ctx context.Context) (*models.Inventory, error) {
	r.logger.Debug("Loading inventory", "inventory_id", models.InventoryID)

	_, err := r.q.ExecContext(ctx, `INSERT INTO inventory (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, models.InventoryID)
	if err != nil {
		r.logger.Error("Failed to create inventory", "error", err)
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}

	inv := &models.Inventory{Ingredients: []models.Ingredient{}}
	err = r.q.QueryRowContext(ctx, `SELECT id FROM inventory WHERE id = $1 FOR UPDATE`, models.InventoryID).Scan(&inv.ID)
	if err != nil {
		r.logger.Error("Failed to lock inventory", "error", err)
		return nil, fmt.Errorf("failed to lock inventory: %w", err)
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, name, amount
		FROM inventory_ingredients
		WHERE inventory_id = $1
		ORDER BY id
	`, inv.ID)
	if err != nil {
		r.logger.Error("Failed to query inventory ingredients", "error", err)
		return nil, fmt.Errorf("failed to query inventory ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan inventory ingredient: %w", err)
		}
		inv.Ingredients = append(inv.Ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory rows: %w", err)
	}

	return inv, nil
}

// Save upserts every ingredient by name
func (r *InventoryRepository) Save(ctx context.Context, inv *models.Inventory) error {
	r.logger.Debug("Saving inventory", "ingredients", len(inv.Ingredients))

	query := `
		INSERT INTO inventory_ingredients (inventory_id, name, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (inventory_id, name) DO UPDATE SET amount = EXCLUDED.amount
		RETURNING id
	`
	for i := range inv.Ingredients {
		ing := &inv.Ingredients[i]
		if err := r.q.QueryRowContext(ctx, query, models.InventoryID, ing.Name, ing.Amount).Scan(&ing.ID); err != nil {
			r.logger.Error("Failed to save inventory ingredient", "name", ing.Name, "error", err)
			return fmt.Errorf("failed to save ingredient %s: %w", ing.Name, err)
		}
	}
	inv.ID = models.InventoryID
	return nil
}
