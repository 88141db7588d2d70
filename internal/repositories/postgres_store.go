package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/BrandonWrob/ExtendedManager/pkg/database"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore runs repositories inside database/sql transactions.
// Writers use READ COMMITTED; the ledger row is locked with FOR UPDATE so
// concurrent orders reconcile one after another. Readers get a read-only
// REPEATABLE READ snapshot so a record and its child rows agree.
type PostgresStore struct {
	db     *database.DB
	logger *logger.Logger
}

func NewPostgresStore(db *database.DB, log *logger.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: log.WithComponent("postgres_store")}
}

func (s *PostgresStore) WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error {
	return s.db.ExecuteInTransaction(ctx, nil, func(tx *sql.Tx) error {
		return fn(s.bind(tx))
	})
}

func (s *PostgresStore) Read(ctx context.Context, fn func(repos Repositories) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	return s.db.ExecuteInTransaction(ctx, opts, func(tx *sql.Tx) error {
		return fn(s.bind(tx))
	})
}

func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

func (s *PostgresStore) bind(q querier) Repositories {
	return Repositories{
		Inventory: NewInventoryRepository(q, s.logger),
		Recipes:   NewRecipeRepository(q, s.logger),
		Orders:    NewOrderRepository(q, s.logger),
		Histories: NewOrderHistoryRepository(q, s.logger),
		Taxes:     NewTaxRepository(q, s.logger),
		Users:     NewUserRepository(q, s.logger),
	}
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
