package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonWrob/ExtendedManager/models"
)

var errRollback = errors.New("rollback")

func quantity(n int) *int { return &n }

// runStoreContract checks behaviour every Store implementation must share.
// newStore must return an empty store.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("Inventory", func(t *testing.T) { testInventoryContract(t, newStore(t)) })
	t.Run("Recipes", func(t *testing.T) { testRecipeContract(t, newStore(t)) })
	t.Run("Orders", func(t *testing.T) { testOrderContract(t, newStore(t)) })
	t.Run("Histories", func(t *testing.T) { testHistoryContract(t, newStore(t)) })
	t.Run("Taxes", func(t *testing.T) { testTaxContract(t, newStore(t)) })
	t.Run("Users", func(t *testing.T) { testUserContract(t, newStore(t)) })
}

func write(t *testing.T, store Store, fn func(ctx context.Context, repos Repositories) error) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.WithinTransaction(ctx, func(repos Repositories) error {
		return fn(ctx, repos)
	}))
}

func testInventoryContract(t *testing.T, store Store) {
	ctx := context.Background()

	write(t, store, func(ctx context.Context, repos Repositories) error {
		inv, err := repos.Inventory.GetOrCreate(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.InventoryID, inv.ID)
		assert.Empty(t, inv.Ingredients)

		inv.Ingredients = append(inv.Ingredients,
			models.Ingredient{Name: "coffee", Amount: 10},
			models.Ingredient{Name: "milk", Amount: 0},
		)
		require.NoError(t, repos.Inventory.Save(ctx, inv))
		for _, ing := range inv.Ingredients {
			assert.NotEqual(t, models.UnsavedID, ing.ID, ing.Name)
		}
		return nil
	})

	err := store.WithinTransaction(ctx, func(repos Repositories) error {
		inv, err := repos.Inventory.GetOrCreate(ctx)
		require.NoError(t, err)
		inv.Ingredients[inv.Find("coffee")].Amount = 1
		require.NoError(t, repos.Inventory.Save(ctx, inv))
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)

	// GetOrCreate locks the ledger, so it needs a write transaction
	write(t, store, func(ctx context.Context, repos Repositories) error {
		inv, err := repos.Inventory.GetOrCreate(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"coffee": 10, "milk": 0}, inv.Amounts())
		return nil
	})
}

func testRecipeContract(t *testing.T, store Store) {
	ctx := context.Background()
	coffee := &models.Recipe{Name: "Coffee", Price: 50, Ingredients: []models.Ingredient{
		{Name: "coffee", Amount: 3}, {Name: "milk", Amount: 5},
	}}

	write(t, store, func(ctx context.Context, repos Repositories) error {
		require.NoError(t, repos.Recipes.LockCatalog(ctx))
		require.NoError(t, repos.Recipes.Create(ctx, coffee))
		assert.NotEqual(t, models.UnsavedID, coffee.ID)
		return nil
	})

	err := store.WithinTransaction(ctx, func(repos Repositories) error {
		return repos.Recipes.Create(ctx, &models.Recipe{Name: "Coffee", Price: 1, Ingredients: coffee.Ingredients})
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, store.Read(ctx, func(repos Repositories) error {
		byName, err := repos.Recipes.GetByName(ctx, "Coffee")
		require.NoError(t, err)
		assert.Equal(t, coffee.ID, byName.ID)
		assert.Equal(t, 50, byName.Price)
		require.Len(t, byName.Ingredients, 2)
		assert.Equal(t, "coffee", byName.Ingredients[0].Name)
		assert.Equal(t, "milk", byName.Ingredients[1].Name)

		count, err := repos.Recipes.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		_, err = repos.Recipes.GetByName(ctx, "Mocha")
		assert.ErrorIs(t, err, ErrNotFound)
		return nil
	}))

	write(t, store, func(ctx context.Context, repos Repositories) error {
		updated := coffee.Clone()
		updated.Price = 60
		updated.Ingredients = []models.Ingredient{{Name: "coffee", Amount: 4}}
		require.NoError(t, repos.Recipes.Update(ctx, updated))

		got, err := repos.Recipes.GetByID(ctx, coffee.ID)
		require.NoError(t, err)
		assert.Equal(t, 60, got.Price)
		require.Len(t, got.Ingredients, 1)
		assert.Equal(t, 4, got.Ingredients[0].Amount)

		require.NoError(t, repos.Recipes.Delete(ctx, coffee.ID))
		assert.ErrorIs(t, repos.Recipes.Delete(ctx, coffee.ID), ErrNotFound)

		all, err := repos.Recipes.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
		return nil
	})
}

func createUser(t *testing.T, store Store, username string) *models.User {
	t.Helper()
	user := &models.User{Name: username, Username: username, Email: username + "@cafe.test"}
	write(t, store, func(ctx context.Context, repos Repositories) error {
		return repos.Users.Create(ctx, user)
	})
	return user
}

func testOrderContract(t *testing.T, store Store) {
	ctx := context.Background()
	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")

	order := &models.Order{UserID: alice.ID, Lines: []*models.OrderLine{
		{Name: "Coffee", Price: 50, Multiplier: quantity(2), Ingredients: []models.Ingredient{{Name: "coffee", Amount: 3}}},
		{Name: "Latte", Price: 100, Multiplier: quantity(1), Ingredients: []models.Ingredient{{Name: "cream", Amount: 6}, {Name: "vanilla", Amount: 10}}},
	}}
	other := &models.Order{UserID: bob.ID, Lines: []*models.OrderLine{
		{Name: "Coffee", Price: 50, Multiplier: quantity(1), Ingredients: []models.Ingredient{{Name: "coffee", Amount: 3}}},
	}}

	write(t, store, func(ctx context.Context, repos Repositories) error {
		require.NoError(t, repos.Orders.Add(ctx, order))
		return repos.Orders.Add(ctx, other)
	})
	assert.NotEqual(t, models.UnsavedID, order.ID)
	assert.NotEqual(t, models.UnsavedID, order.Lines[1].Ingredients[1].ID)

	require.NoError(t, store.Read(ctx, func(repos Repositories) error {
		got, err := repos.Orders.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.UserID)
		assert.False(t, got.Fulfilled)
		require.Len(t, got.Lines, 2)
		assert.Equal(t, "Coffee", got.Lines[0].Name)
		assert.Equal(t, 2, got.Lines[0].Quantity())
		require.Len(t, got.Lines[1].Ingredients, 2)
		assert.Equal(t, "vanilla", got.Lines[1].Ingredients[1].Name)

		mine, err := repos.Orders.GetByUserID(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, order.ID, mine[0].ID)

		all, err := repos.Orders.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, order.ID, all[0].ID)
		assert.Equal(t, other.ID, all[1].ID)
		return nil
	}))

	write(t, store, func(ctx context.Context, repos Repositories) error {
		changed, err := repos.Orders.MarkFulfilled(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = repos.Orders.MarkFulfilled(ctx, order.ID)
		require.NoError(t, err)
		assert.False(t, changed)

		_, err = repos.Orders.MarkFulfilled(ctx, 9999)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, repos.Orders.Delete(ctx, order.ID))
		assert.ErrorIs(t, repos.Orders.Delete(ctx, order.ID), ErrNotFound)

		_, err = repos.Orders.GetByID(ctx, order.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		return nil
	})
}

func testHistoryContract(t *testing.T, store Store) {
	ctx := context.Background()
	history := &models.OrderHistory{
		ID:              42,
		RecipesInOrder:  "Coffee: 4, Latte: 3",
		IngredientsUsed: "coffee:12, cream:34",
		Total:           decimal.RequireFromString("510.00"),
		Username:        "alice",
	}

	write(t, store, func(ctx context.Context, repos Repositories) error {
		return repos.Histories.Add(ctx, history)
	})

	err := store.WithinTransaction(ctx, func(repos Repositories) error {
		return repos.Histories.Add(ctx, history)
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	write(t, store, func(ctx context.Context, repos Repositories) error {
		require.NoError(t, repos.Histories.MarkPickedUp(ctx, 42))
		assert.ErrorIs(t, repos.Histories.MarkPickedUp(ctx, 43), ErrNotFound)
		return nil
	})

	require.NoError(t, store.Read(ctx, func(repos Repositories) error {
		got, err := repos.Histories.GetByID(ctx, 42)
		require.NoError(t, err)
		assert.True(t, got.PickedUp)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "Coffee: 4, Latte: 3", got.RecipesInOrder)
		assert.True(t, got.Total.Equal(history.Total), got.Total.String())

		all, err := repos.Histories.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
		return nil
	}))
}

func testTaxContract(t *testing.T, store Store) {
	write(t, store, func(ctx context.Context, repos Repositories) error {
		rate, err := repos.Taxes.GetOrCreate(ctx, models.DefaultTaxRate)
		require.NoError(t, err)
		assert.True(t, rate.Rate.Equal(models.DefaultTaxRate), rate.Rate.String())

		return repos.Taxes.Save(ctx, &models.TaxRate{Rate: decimal.RequireFromString("0.0725")})
	})

	write(t, store, func(ctx context.Context, repos Repositories) error {
		rate, err := repos.Taxes.GetOrCreate(ctx, models.DefaultTaxRate)
		require.NoError(t, err)
		assert.Equal(t, models.TaxRateID, rate.ID)
		assert.True(t, rate.Rate.Equal(decimal.RequireFromString("0.0725")), rate.Rate.String())
		return nil
	})
}

func testUserContract(t *testing.T, store Store) {
	ctx := context.Background()
	alice := createUser(t, store, "alice")
	assert.NotEqual(t, models.UnsavedID, alice.ID)

	err := store.WithinTransaction(ctx, func(repos Repositories) error {
		return repos.Users.Create(ctx, &models.User{Name: "A", Username: "alice", Email: "new@cafe.test"})
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, store.Read(ctx, func(repos Repositories) error {
		byEmail, err := repos.Users.FindByUsernameOrEmail(ctx, "alice@cafe.test")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byEmail.ID)

		byID, err := repos.Users.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)

		_, err = repos.Users.FindByUsernameOrEmail(ctx, "bob")
		assert.ErrorIs(t, err, ErrNotFound)
		return nil
	}))
}
