package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type OrderRepository struct {
	q      querier
	logger *logger.Logger
}

func NewOrderRepository(q querier, log *logger.Logger) *OrderRepository {
	return &OrderRepository{q: q, logger: log}
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]*models.Order, error) {
	r.logger.Debug("Retrieving all orders")
	return r.queryOrders(ctx, `SELECT id, user_id, fulfilled FROM orders ORDER BY id`)
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	orders, err := r.queryOrders(ctx, `SELECT id, user_id, fulfilled FROM orders WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return orders[0], nil
}

func (r *OrderRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	return r.queryOrders(ctx, `SELECT id, user_id, fulfilled FROM orders WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *OrderRepository) Add(ctx context.Context, order *models.Order) error {
	r.logger.Debug("Adding new order", "user_id", order.UserID, "lines", len(order.Lines))

	err := r.q.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, fulfilled) VALUES ($1, $2) RETURNING id`,
		order.UserID, order.Fulfilled,
	).Scan(&order.ID)
	if err != nil {
		r.logger.Error("Failed to add order", "error", err)
		return fmt.Errorf("failed to add order: %w", err)
	}

	lineQuery := `
		INSERT INTO order_lines (order_id, position, name, price, multiplier)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	ingredientQuery := `
		INSERT INTO order_line_ingredients (order_line_id, position, name, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for pos, line := range order.Lines {
		err := r.q.QueryRowContext(ctx, lineQuery, order.ID, pos, line.Name, line.Price, line.Quantity()).Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("failed to add order line %s: %w", line.Name, err)
		}
		for i := range line.Ingredients {
			ing := &line.Ingredients[i]
			if err := r.q.QueryRowContext(ctx, ingredientQuery, line.ID, i, ing.Name, ing.Amount).Scan(&ing.ID); err != nil {
				return fmt.Errorf("failed to add order line ingredient %s: %w", ing.Name, err)
			}
		}
	}

	r.logger.Info("Added new order", "order_id", order.ID)
	return nil
}

// MarkFulfilled flips the flag only while it is still false, so two
// concurrent callers cannot both succeed.
func (r *OrderRepository) MarkFulfilled(ctx context.Context, id int64) (bool, error) {
	result, err := r.q.ExecContext(ctx, `UPDATE orders SET fulfilled = TRUE WHERE id = $1 AND NOT fulfilled`, id)
	if err != nil {
		return false, fmt.Errorf("failed to fulfill order: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 1 {
		return true, nil
	}

	var exists bool
	if err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check order: %w", err)
	}
	if !exists {
		return false, ErrNotFound
	}
	return false, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	r.logger.Debug("Deleting order", "order_id", id)

	result, err := r.q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
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

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query orders", "error", err)
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	byID := map[int64]*models.Order{}
	ids := []int64{}
	for rows.Next() {
		order := &models.Order{Lines: []*models.OrderLine{}}
		if err := rows.Scan(&order.ID, &order.UserID, &order.Fulfilled); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	if len(ids) == 0 {
		return orders, nil
	}

	if err := r.loadLines(ctx, ids, byID); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) loadLines(ctx context.Context, orderIDs []int64, byID map[int64]*models.Order) error {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, order_id, name, price, multiplier
		FROM order_lines
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, pq.Array(orderIDs))
	if err != nil {
		return fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	lines := map[int64]*models.OrderLine{}
	lineIDs := []int64{}
	for rows.Next() {
		var orderID int64
		var multiplier int
		line := &models.OrderLine{Ingredients: []models.Ingredient{}}
		if err := rows.Scan(&line.ID, &orderID, &line.Name, &line.Price, &multiplier); err != nil {
			return fmt.Errorf("failed to scan order line: %w", err)
		}
		line.Multiplier = &multiplier
		byID[orderID].Lines = append(byID[orderID].Lines, line)
		lines[line.ID] = line
		lineIDs = append(lineIDs, line.ID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating order line rows: %w", err)
	}
	if len(lineIDs) == 0 {
		return nil
	}

	ingRows, err := r.q.QueryContext(ctx, `
		SELECT id, order_line_id, name, amount
		FROM order_line_ingredients
		WHERE order_line_id = ANY($1)
		ORDER BY order_line_id, position
	`, pq.Array(lineIDs))
	if err != nil {
		return fmt.Errorf("failed to query order line ingredients: %w", err)
	}
	defer ingRows.Close()

	for ingRows.Next() {
		var lineID int64
		var ing models.Ingredient
		if err := ingRows.Scan(&ing.ID, &lineID, &ing.Name, &ing.Amount); err != nil {
			return fmt.Errorf("failed to scan order line ingredient: %w", err)
		}
		lines[lineID].Ingredients = append(lines[lineID].Ingredients, ing)
	}
	return ingRows.Err()
}

type OrderHistoryRepository struct {
	q      querier
	logger *logger.Logger
}

func NewOrderHistoryRepository(q querier, log *logger.Logger) *OrderHistoryRepository {
	return &OrderHistoryRepository{q: q, logger: log}
}

const selectHistory = `SELECT id, picked_up, recipes_in_order, ingredients_used, total, username FROM order_history`

func (r *OrderHistoryRepository) GetAll(ctx context.Context) ([]*models.OrderHistory, error) {
	rows, err := r.q.QueryContext(ctx, selectHistory+` ORDER BY id`)
	if err != nil {
		r.logger.Error("Failed to query order history", "error", err)
		return nil, fmt.Errorf("failed to query order history: %w", err)
	}
	defer rows.Close()

	histories := []*models.OrderHistory{}
	for rows.Next() {
		h := &models.OrderHistory{}
		if err := rows.Scan(&h.ID, &h.PickedUp, &h.RecipesInOrder, &h.IngredientsUsed, &h.Total, &h.Username); err != nil {
			return nil, fmt.Errorf("failed to scan order history: %w", err)
		}
		histories = append(histories, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order history rows: %w", err)
	}
	return histories, nil
}

func (r *OrderHistoryRepository) GetByID(ctx context.Context, id int64) (*models.OrderHistory, error) {
	h := &models.OrderHistory{}
	err := r.q.QueryRowContext(ctx, selectHistory+` WHERE id = $1`, id).
		Scan(&h.ID, &h.PickedUp, &h.RecipesInOrder, &h.IngredientsUsed, &h.Total, &h.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve order history: %w", err)
	}
	return h, nil
}

func (r *OrderHistoryRepository) Add(ctx context.Context, h *models.OrderHistory) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO order_history (id, picked_up, recipes_in_order, ingredients_used, total, username)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, h.ID, h.PickedUp, h.RecipesInOrder, h.IngredientsUsed, h.Total, h.Username)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order history %d: %w", h.ID, ErrDuplicate)
		}
		r.logger.Error("Failed to add order history", "id", h.ID, "error", err)
		return fmt.Errorf("failed to add order history: %w", err)
	}
	return nil
}

func (r *OrderHistoryRepository) MarkPickedUp(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `UPDATE order_history SET picked_up = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to update order history: %w", err)
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
