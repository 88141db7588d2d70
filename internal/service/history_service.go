package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/BrandonWrob/ExtendedManager/internal/repositories"
	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type OrderHistoryServiceInterface interface {
	MakeOrderHistory(ctx context.Context, username string, order *models.Order) (*models.OrderHistory, error)
	UpdateOrderHistoryStatus(ctx context.Context, id int64) (bool, error)
	GetOrderHistory(ctx context.Context) ([]*models.OrderHistory, error)
	GetUserHistory(ctx context.Context, username string) ([]*models.OrderHistory, error)
	GetHistoryByID(ctx context.Context, id int64) (*models.OrderHistory, error)
}

type OrderHistoryService struct {
	store  repositories.Store
	logger *logger.Logger
}

func NewOrderHistoryService(store repositories.Store, logger *logger.Logger) *OrderHistoryService {
	return &OrderHistoryService{
		store:  store,
		logger: logger.WithComponent("order_history_service"),
	}
}

// MakeOrderHistory records a history entry for an order placed elsewhere.
// The order is validated like a new one; its ID becomes the history ID and
// may only be recorded once.
func (s *OrderHistoryService) MakeOrderHistory(ctx context.Context, username string, order *models.Order) (*models.OrderHistory, error) {
	log := s.logger.ForContext(ctx)

	if order != nil && order.ID <= 0 {
		return nil, validationError("order id must be positive")
	}

	var history *models.OrderHistory
	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		user, err := repos.Users.FindByUsernameOrEmail(ctx, username)
		if err != nil {
			return translate(err, fmt.Sprintf("user %q", username))
		}

		validated, err := ValidateOrder(ctx, repos.Recipes, order)
		if err != nil {
			return err
		}

		rate, err := repos.Taxes.GetOrCreate(ctx, models.DefaultTaxRate)
		if err != nil {
			return err
		}

		history = ComposeHistory(order.ID, user.Username, validated.Lines, rate.Rate)
		return translate(repos.Histories.Add(ctx, history), fmt.Sprintf("order history %d", order.ID))
	})
	if err != nil {
		log.Warn("Make order history failed", "username", username, "error", err)
		return nil, err
	}

	log.Info("Order history recorded", "id", history.ID, "username", history.Username, "total", history.Total)
	return history, nil
}

// UpdateOrderHistoryStatus marks a history record picked up. An unknown id
// is reported as false, not as an error.
func (s *OrderHistoryService) UpdateOrderHistoryStatus(ctx context.Context, id int64) (bool, error) {
	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		return repos.Histories.MarkPickedUp(ctx, id)
	})
	if errors.Is(err, repositories.ErrNotFound) {
		s.logger.ForContext(ctx).Info("No order history to update", "id", id)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetOrderHistory returns picked up records only.
func (s *OrderHistoryService) GetOrderHistory(ctx context.Context) ([]*models.OrderHistory, error) {
	var result []*models.OrderHistory
	err := s.store.Read(ctx, func(repos repositories.Repositories) error {
		all, err := repos.Histories.GetAll(ctx)
		if err != nil {
			return err
		}
		result = filterHistory(all, func(h *models.OrderHistory) bool { return h.PickedUp })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetUserHistory returns the picked up records captured under the user's
// username. The user may be given by username or email.
func (s *OrderHistoryService) GetUserHistory(ctx context.Context, username string) ([]*models.OrderHistory, error) {
	var result []*models.OrderHistory
	err := s.store.Read(ctx, func(repos repositories.Repositories) error {
		user, err := repos.Users.FindByUsernameOrEmail(ctx, username)
		if err != nil {
			return translate(err, fmt.Sprintf("user %q", username))
		}
		all, err := repos.Histories.GetAll(ctx)
		if err != nil {
			return err
		}
		result = filterHistory(all, func(h *models.OrderHistory) bool {
			return h.PickedUp && h.Username == user.Username
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *OrderHistoryService) GetHistoryByID(ctx context.Context, id int64) (*models.OrderHistory, error) {
	var history *models.OrderHistory
	err := s.store.Read(ctx, func(repos repositories.Repositories) error {
		var err error
		history, err = repos.Histories.GetByID(ctx, id)
		return translate(err, fmt.Sprintf("order history %d", id))
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

func filterHistory(all []*models.OrderHistory, keep func(*models.OrderHistory) bool) []*models.OrderHistory {
	out := []*models.OrderHistory{}
	for _, h := range all {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}
