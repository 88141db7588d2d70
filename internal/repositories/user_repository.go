package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type UserRepository struct {
	q      querier
	logger *logger.Logger
}

func NewUserRepository(q querier, log *logger.Logger) *UserRepository {
	return &UserRepository{q: q, logger: log}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO users (name, username, email) VALUES ($1, $2, $3) RETURNING id`,
		user.Name, user.Username, user.Email,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %q: %w", user.Username, ErrDuplicate)
		}
		r.logger.Error("Failed to create user", "username", user.Username, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.queryOne(ctx, `SELECT id, name, username, email FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*models.User, error) {
	return r.queryOne(ctx, `
		SELECT id, name, username, email FROM users
		WHERE username = $1 OR email = $1
		ORDER BY (username = $1) DESC
		LIMIT 1
	`, usernameOrEmail)
}

func (r *UserRepository) queryOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	user := &models.User{}
	err := r.q.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Name, &user.Username, &user.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}
