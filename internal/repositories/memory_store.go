package repositories

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

const (
	tableInventory = "inventory"
	tableRecipes   = "recipes"
	tableOrders    = "orders"
	tableHistory   = "order_history"
	tableTaxRates  = "tax_rates"
	tableUsers     = "users"
	tableSequences = "sequences"
)

// sequence hands out increasing IDs per table.
type sequence struct {
	Table string
	Next  int64
}

func idIndex() *memdb.IndexSchema {
	return &memdb.IndexSchema{Name: "id", Unique: true, Indexer: &memdb.IntFieldIndex{Field: "ID"}}
}

func memorySchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableInventory: {
				Name:    tableInventory,
				Indexes: map[string]*memdb.IndexSchema{"id": idIndex()},
			},
			tableRecipes: {
				Name: tableRecipes,
				Indexes: map[string]*memdb.IndexSchema{
					"id":   idIndex(),
					"name": {Name: "name", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "Name"}},
				},
			},
			tableOrders: {
				Name: tableOrders,
				Indexes: map[string]*memdb.IndexSchema{
					"id":      idIndex(),
					"user_id": {Name: "user_id", Indexer: &memdb.IntFieldIndex{Field: "UserID"}},
				},
			},
			tableHistory: {
				Name:    tableHistory,
				Indexes: map[string]*memdb.IndexSchema{"id": idIndex()},
			},
			tableTaxRates: {
				Name:    tableTaxRates,
				Indexes: map[string]*memdb.IndexSchema{"id": idIndex()},
			},
			tableUsers: {
				Name: tableUsers,
				Indexes: map[string]*memdb.IndexSchema{
					"id":       idIndex(),
					"username": {Name: "username", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "Username"}},
					"email":    {Name: "email", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "Email"}},
				},
			},
			tableSequences: {
				Name: tableSequences,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {Name: "id", Unique: true, Indexer: &memdb.StringFieldIndex{Field: "Table"}},
				},
			},
		},
	}
}

// MemoryStore keeps everything in a go-memdb database. Write transactions
// are serialized by memdb; readers see immutable snapshots. Stored objects
// are never handed out, callers always get copies.
type MemoryStore struct {
	db     *memdb.MemDB
	logger *logger.Logger
}

func NewMemoryStore(log *logger.Logger) (*MemoryStore, error) {
	db, err := memdb.NewMemDB(memorySchema())
	if err != nil {
		return nil, fmt.Errorf("failed to create memory store: %w", err)
	}
	return &MemoryStore{db: db, logger: log.WithComponent("memory_store")}, nil
}

func (s *MemoryStore) WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := fn(bindMemory(txn)); err != nil {
		s.logger.Debug("Transaction aborted", "error", err)
		return err
	}
	txn.Commit()
	return nil
}

func (s *MemoryStore) Read(ctx context.Context, fn func(repos Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	txn := s.db.Txn(false)
	defer txn.Abort()
	return fn(bindMemory(txn))
}

func (s *MemoryStore) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

func bindMemory(txn *memdb.Txn) Repositories {
	return Repositories{
		Inventory: &memoryInventoryRepository{txn: txn},
		Recipes:   &memoryRecipeRepository{txn: txn},
		Orders:    &memoryOrderRepository{txn: txn},
		Histories: &memoryHistoryRepository{txn: txn},
		Taxes:     &memoryTaxRepository{txn: txn},
		Users:     &memoryUserRepository{txn: txn},
	}
}

func nextID(txn *memdb.Txn, table string) (int64, error) {
	raw, err := txn.First(tableSequences, "id", table)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s sequence: %w", table, err)
	}
	next := int64(1)
	if raw != nil {
		next = raw.(*sequence).Next
	}
	if err := txn.Insert(tableSequences, &sequence{Table: table, Next: next + 1}); err != nil {
		return 0, fmt.Errorf("failed to advance %s sequence: %w", table, err)
	}
	return next, nil
}

// first looks up a single object and maps a miss to ErrNotFound.
func first(txn *memdb.Txn, table, index string, args ...interface{}) (interface{}, error) {
	raw, err := txn.First(table, index, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	if raw == nil {
		return nil, ErrNotFound
	}
	return raw, nil
}

func collect(txn *memdb.Txn, table, index string, args ...interface{}) ([]interface{}, error) {
	it, err := txn.Get(table, index, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	var out []interface{}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, raw)
	}
	return out, nil
}
