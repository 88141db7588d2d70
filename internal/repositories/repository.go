package repositories

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/BrandonWrob/ExtendedManager/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// InventoryRepositoryInterface stores the single ingredient ledger.
type InventoryRepositoryInterface interface {
	// GetOrCreate returns the ledger, creating an empty one on first use.
	// Within a write transaction the ledger stays locked until commit.
	GetOrCreate(ctx context.Context) (*models.Inventory, error)
	// Save writes every ingredient of inv, assigning IDs to new ones.
	Save(ctx context.Context, inv *models.Inventory) error
}

type RecipeRepositoryInterface interface {
	GetAll(ctx context.Context) ([]*models.Recipe, error)
	GetByID(ctx context.Context, id int64) (*models.Recipe, error)
	GetByName(ctx context.Context, name string) (*models.Recipe, error)
	Count(ctx context.Context) (int, error)
	// LockCatalog blocks other catalog writers until the transaction ends.
	LockCatalog(ctx context.Context) error
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id int64) error
}

type OrderRepositoryInterface interface {
	GetAll(ctx context.Context) ([]*models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Order, error)
	// Add inserts the order with its lines and assigns all IDs.
	Add(ctx context.Context, order *models.Order) error
	// MarkFulfilled reports false when the order was already fulfilled.
	MarkFulfilled(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type OrderHistoryRepositoryInterface interface {
	GetAll(ctx context.Context) ([]*models.OrderHistory, error)
	GetByID(ctx context.Context, id int64) (*models.OrderHistory, error)
	Add(ctx context.Context, history *models.OrderHistory) error
	MarkPickedUp(ctx context.Context, id int64) error
}

type TaxRepositoryInterface interface {
	// GetOrCreate returns the tax rate, storing defaultRate on first use.
	GetOrCreate(ctx context.Context, defaultRate decimal.Decimal) (*models.TaxRate, error)
	Save(ctx context.Context, rate *models.TaxRate) error
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*models.User, error)
}

// Repositories is a set of repositories bound to one transaction.
type Repositories struct {
	Inventory InventoryRepositoryInterface
	Recipes   RecipeRepositoryInterface
	Orders    OrderRepositoryInterface
	Histories OrderHistoryRepositoryInterface
	Taxes     TaxRepositoryInterface
	Users     UserRepositoryInterface
}

// Store hands out transaction-scoped repositories.
//
// WithinTransaction commits when fn returns nil and discards every write
// otherwise. Write transactions that touch the ledger never interleave.
// Read gives fn a consistent snapshot and rejects writes, including the lazy
// creation done by GetOrCreate.
type Store interface {
	WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error
	Read(ctx context.Context, fn func(repos Repositories) error) error
	HealthCheck(ctx context.Context) error
}
