package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/hashicorp/go-memdb"
	"github.com/shopspring/decimal"

	"github.com/BrandonWrob/ExtendedManager/models"
)

type memoryInventoryRepository struct{ txn *memdb.Txn }

func (r *memoryInventoryRepository) GetOrCreate(ctx context.Context) (*models.Inventory, error) {
	raw, err := first(r.txn, tableInventory, "id", models.InventoryID)
	if err == nil {
		return raw.(*models.Inventory).Clone(), nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	inv := &models.Inventory{ID: models.InventoryID, Ingredients: []models.Ingredient{}}
	if err := r.txn.Insert(tableInventory, inv.Clone()); err != nil {
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}
	return inv, nil
}

func (r *memoryInventoryRepository) Save(ctx context.Context, inv *models.Inventory) error {
	for i := range inv.Ingredients {
		if inv.Ingredients[i].ID != models.UnsavedID {
			continue
		}
		id, err := nextID(r.txn, "inventory_ingredients")
		if err != nil {
			return err
		}
		inv.Ingredients[i].ID = id
	}

	stored := inv.Clone()
	stored.ID = models.InventoryID
	if err := r.txn.Insert(tableInventory, stored); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}

type memoryRecipeRepository struct{ txn *memdb.Txn }

func (r *memoryRecipeRepository) GetAll(ctx context.Context) ([]*models.Recipe, error) {
	rows, err := collect(r.txn, tableRecipes, "name")
	if err != nil {
		return nil, err
	}
	recipes := make([]*models.Recipe, 0, len(rows))
	for _, raw := range rows {
		recipes = append(recipes, raw.(*models.Recipe).Clone())
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].Name < recipes[j].Name })
	return recipes, nil
}

func (r *memoryRecipeRepository) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	raw, err := first(r.txn, tableRecipes, "id", id)
	if err != nil {
		return nil, err
	}
	return raw.(*models.Recipe).Clone(), nil
}

func (r *memoryRecipeRepository) GetByName(ctx context.Context, name string) (*models.Recipe, error) {
	raw, err := first(r.txn, tableRecipes, "name", name)
	if err != nil {
		return nil, err
	}
	return raw.(*models.Recipe).Clone(), nil
}

func (r *memoryRecipeRepository) Count(ctx context.Context) (int, error) {
	rows, err := collect(r.txn, tableRecipes, "id")
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// LockCatalog is a no-op: memdb already runs one writer at a time.
func (r *memoryRecipeRepository) LockCatalog(ctx context.Context) error {
	return nil
}

func (r *memoryRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if _, err := r.GetByName(ctx, recipe.Name); err == nil {
		return fmt.Errorf("recipe %q: %w", recipe.Name, ErrDuplicate)
	}

	id, err := nextID(r.txn, tableRecipes)
	if err != nil {
		return err
	}
	recipe.ID = id
	if err := r.assignIngredientIDs(recipe); err != nil {
		return err
	}
	if err := r.txn.Insert(tableRecipes, recipe.Clone()); err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

func (r *memoryRecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	existing, err := r.GetByID(ctx, recipe.ID)
	if err != nil {
		return err
	}
	if existing.Name != recipe.Name {
		if _, err := r.GetByName(ctx, recipe.Name); err == nil {
			return fmt.Errorf("recipe %q: %w", recipe.Name, ErrDuplicate)
		}
	}
	if err := r.assignIngredientIDs(recipe); err != nil {
		return err
	}
	if err := r.txn.Insert(tableRecipes, recipe.Clone()); err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	return nil
}

func (r *memoryRecipeRepository) Delete(ctx context.Context, id int64) error {
	raw, err := first(r.txn, tableRecipes, "id", id)
	if err != nil {
		return err
	}
	if err := r.txn.Delete(tableRecipes, raw); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

func (r *memoryRecipeRepository) assignIngredientIDs(recipe *models.Recipe) error {
	for i := range recipe.Ingredients {
		if recipe.Ingredients[i].ID != models.UnsavedID {
			continue
		}
		id, err := nextID(r.txn, "recipe_ingredients")
		if err != nil {
			return err
		}
		recipe.Ingredients[i].ID = id
	}
	return nil
}

type memoryOrderRepository struct{ txn *memdb.Txn }

func (r *memoryOrderRepository) GetAll(ctx context.Context) ([]*models.Order, error) {
	rows, err := collect(r.txn, tableOrders, "id")
	if err != nil {
		return nil, err
	}
	return sortedOrders(rows), nil
}

func (r *memoryOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	raw, err := first(r.txn, tableOrders, "id", id)
	if err != nil {
		return nil, err
	}
	return raw.(*models.Order).Clone(), nil
}

func (r *memoryOrderRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	rows, err := collect(r.txn, tableOrders, "user_id", userID)
	if err != nil {
		return nil, err
	}
	return sortedOrders(rows), nil
}

func (r *memoryOrderRepository) Add(ctx context.Context, order *models.Order) error {
	id, err := nextID(r.txn, tableOrders)
	if err != nil {
		return err
	}
	order.ID = id

	for _, line := range order.Lines {
		if line.ID, err = nextID(r.txn, "order_lines"); err != nil {
			return err
		}
		for i := range line.Ingredients {
			if line.Ingredients[i].ID, err = nextID(r.txn, "order_line_ingredients"); err != nil {
				return err
			}
		}
	}

	if err := r.txn.Insert(tableOrders, order.Clone()); err != nil {
		return fmt.Errorf("failed to add order: %w", err)
	}
	return nil
}

func (r *memoryOrderRepository) MarkFulfilled(ctx context.Context, id int64) (bool, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if order.Fulfilled {
		return false, nil
	}
	order.Fulfilled = true
	if err := r.txn.Insert(tableOrders, order); err != nil {
		return false, fmt.Errorf("failed to update order: %w", err)
	}
	return true, nil
}

func (r *memoryOrderRepository) Delete(ctx context.Context, id int64) error {
	raw, err := first(r.txn, tableOrders, "id", id)
	if err != nil {
		return err
	}
	if err := r.txn.Delete(tableOrders, raw); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func sortedOrders(rows []interface{}) []*models.Order {
	orders := make([]*models.Order, 0, len(rows))
	for _, raw := range rows {
		orders = append(orders, raw.(*models.Order).Clone())
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders
}

type memoryHistoryRepository struct{ txn *memdb.Txn }

func (r *memoryHistoryRepository) GetAll(ctx context.Context) ([]*models.OrderHistory, error) {
	rows, err := collect(r.txn, tableHistory, "id")
	if err != nil {
		return nil, err
	}
	histories := make([]*models.OrderHistory, 0, len(rows))
	for _, raw := range rows {
		histories = append(histories, raw.(*models.OrderHistory).Clone())
	}
	sort.Slice(histories, func(i, j int) bool { return histories[i].ID < histories[j].ID })
	return histories, nil
}

func (r *memoryHistoryRepository) GetByID(ctx context.Context, id int64) (*models.OrderHistory, error) {
	raw, err := first(r.txn, tableHistory, "id", id)
	if err != nil {
		return nil, err
	}
	return raw.(*models.OrderHistory).Clone(), nil
}

func (r *memoryHistoryRepository) Add(ctx context.Context, history *models.OrderHistory) error {
	if _, err := r.GetByID(ctx, history.ID); err == nil {
		return fmt.Errorf("order history %d: %w", history.ID, ErrDuplicate)
	}
	if err := r.txn.Insert(tableHistory, history.Clone()); err != nil {
		return fmt.Errorf("failed to add order history: %w", err)
	}
	return nil
}

func (r *memoryHistoryRepository) MarkPickedUp(ctx context.Context, id int64) error {
	history, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	history.PickedUp = true
	if err := r.txn.Insert(tableHistory, history); err != nil {
		return fmt.Errorf("failed to update order history: %w", err)
	}
	return nil
}

type memoryTaxRepository struct{ txn *memdb.Txn }

func (r *memoryTaxRepository) GetOrCreate(ctx context.Context, defaultRate decimal.Decimal) (*models.TaxRate, error) {
	raw, err := first(r.txn, tableTaxRates, "id", models.TaxRateID)
	if err == nil {
		return raw.(*models.TaxRate).Clone(), nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	rate := &models.TaxRate{ID: models.TaxRateID, Rate: defaultRate}
	if err := r.txn.Insert(tableTaxRates, rate.Clone()); err != nil {
		return nil, fmt.Errorf("failed to create tax rate: %w", err)
	}
	return rate, nil
}

func (r *memoryTaxRepository) Save(ctx context.Context, rate *models.TaxRate) error {
	stored := rate.Clone()
	stored.ID = models.TaxRateID
	if err := r.txn.Insert(tableTaxRates, stored); err != nil {
		return fmt.Errorf("failed to save tax rate: %w", err)
	}
	rate.ID = models.TaxRateID
	return nil
}

type memoryUserRepository struct{ txn *memdb.Txn }

func (r *memoryUserRepository) Create(ctx context.Context, user *models.User) error {
	for _, index := range []struct{ name, value string }{
		{"username", user.Username},
		{"email", user.Email},
	} {
		raw, err := r.txn.First(tableUsers, index.name, index.value)
		if err != nil {
			return fmt.Errorf("failed to query users: %w", err)
		}
		if raw != nil {
			return fmt.Errorf("user with %s %q: %w", index.name, index.value, ErrDuplicate)
		}
	}

	id, err := nextID(r.txn, tableUsers)
	if err != nil {
		return err
	}
	user.ID = id
	if err := r.txn.Insert(tableUsers, user.Clone()); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	raw, err := first(r.txn, tableUsers, "id", id)
	if err != nil {
		return nil, err
	}
	return raw.(*models.User).Clone(), nil
}

func (r *memoryUserRepository) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*models.User, error) {
	for _, index := range []string{"username", "email"} {
		raw, err := r.txn.First(tableUsers, index, usernameOrEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to query users: %w", err)
		}
		if raw != nil {
			return raw.(*models.User).Clone(), nil
		}
	}
	return nil, ErrNotFound
}
