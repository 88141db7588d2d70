package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/BrandonWrob/ExtendedManager/internal/repositories"
	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

// OrderServiceInterface drives an order from placement to pickup.
type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, username string, order *models.Order) (*models.Order, error)
	FulfillOrder(ctx context.Context, id int64) (*models.Order, error)
	PickupOrder(ctx context.Context, username string, id int64) (*models.Order, error)
	GetAllOrders(ctx context.Context) ([]*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetOrdersByUser(ctx context.Context, username string) ([]*models.Order, error)
}

type OrderService struct {
	store  repositories.Store
	logger *logger.Logger
}

func NewOrderService(store repositories.Store, logger *logger.Logger) *OrderService {
	return &OrderService{
		store:  store,
		logger: logger.WithComponent("order_service"),
	}
}

// PlaceOrder validates the order against the catalog, takes its ingredients
// out of the ledger and stores the order together with its history record.
// All of it happens in one transaction: on any error nothing is written.
func (s *OrderService) PlaceOrder(ctx context.Context, username string, order *models.Order) (*models.Order, error) {
	log := s.logger.ForContext(ctx)
	log.Info("Placing order", "username", username)

	var placed *models.Order
	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		user, err := repos.Users.FindByUsernameOrEmail(ctx, username)
		if err != nil {
			return translate(err, fmt.Sprintf("user %q", username))
		}

		validated, err := ValidateOrder(ctx, repos.Recipes, order)
		if err != nil {
			return err
		}

		inv, err := repos.Inventory.GetOrCreate(ctx)
		if err != nil {
			return err
		}
		consumption, err := AggregateConsumption(inv.Ingredients, validated.Lines)
		if err != nil {
			return err
		}
		updated, err := Reconcile(inv, consumption)
		if err != nil {
			return err
		}
		if err := repos.Inventory.Save(ctx, updated); err != nil {
			return err
		}

		validated.UserID = user.ID
		if err := repos.Orders.Add(ctx, validated); err != nil {
			return err
		}

		rate, err := repos.Taxes.GetOrCreate(ctx, models.DefaultTaxRate)
		if err != nil {
			return err
		}
		history := ComposeHistory(validated.ID, user.Username, validated.Lines, rate.Rate)
		if err := repos.Histories.Add(ctx, history); err != nil {
			return translate(err, fmt.Sprintf("order history %d", history.ID))
		}

		placed = validated
		return nil
	})
	if err != nil {
		log.Warn("Place order failed", "username", username, "error", err)
		return nil, err
	}

	log.Info("Order placed", "order_id", placed.ID, "username", username, "lines", len(placed.Lines))
	return placed, nil
}

// FulfillOrder marks an open order as ready. Fulfilling twice is a conflict.
func (s *OrderService) FulfillOrder(ctx context.Context, id int64) (*models.Order, error) {
	log := s.logger.ForContext(ctx)
	log.Info("Fulfilling order", "order_id", id)

	var fulfilled *models.Order
	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		order, err := repos.Orders.GetByID(ctx, id)
		if err != nil {
			return translate(err, fmt.Sprintf("order %d", id))
		}
		if order.Fulfilled {
			return ErrAlreadyFulfilled
		}

		changed, err := repos.Orders.MarkFulfilled(ctx, id)
		if err != nil {
			return translate(err, fmt.Sprintf("order %d", id))
		}
		if !changed {
			return ErrAlreadyFulfilled
		}

		order.Fulfilled = true
		fulfilled = order
		return nil
	})
	if err != nil {
		log.Warn("Fulfill order failed", "order_id", id, "error", err)
		return nil, err
	}

	log.Info("Order fulfilled", "order_id", id)
	return fulfilled, nil
}

// PickupOrder removes a fulfilled order from the active store and marks its
// history picked up. The order is only searched among the caller's own
// orders, so someone else's order looks exactly like a missing one.
func (s *OrderService) PickupOrder(ctx context.Context, username string, id int64) (*models.Order, error) {
	log := s.logger.ForContext(ctx)
	log.Info("Picking up order", "order_id", id, "username", username)

	var picked *models.Order
	err := s.store.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		user, err := repos.Users.FindByUsernameOrEmail(ctx, username)
		if err != nil {
			return translate(err, fmt.Sprintf("user %q", username))
		}

		owned, err := repos.Orders.GetByUserID(ctx, user.ID)
		if err != nil {
			return err
		}

		var order *models.Order
		for _, o := range owned {
			if o.ID == id {
				order = o
				break
			}
		}
		if order == nil {
			return fmt.Errorf("order %d: %w", id, ErrGone)
		}
		if !order.Fulfilled {
			return fmt.Errorf("order %d: %w", id, ErrNotReady)
		}

		if err := repos.Orders.Delete(ctx, id); err != nil {
			return translate(err, fmt.Sprintf("order %d", id))
		}
		if err := repos.Histories.MarkPickedUp(ctx, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		picked = order
		return nil
	})
	if err != nil {
		log.Warn("Pickup order failed", "order_id", id, "username", username, "error", err)
		return nil, err
	}

	log.Info("Order picked up", "order_id", id, "username", username)
	return picked, nil
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]*models.Order, error) {
	var orders []*models.Order
	err := s.store.Read(ctx, func(repos repositories.Repositories) error {
		var err error
		orders, err = repos.Orders.GetAll(ctx)
		return err
	})
	if err != nil {
		s.logger.ForContext(ctx).Error("Failed to get orders", "error", err)
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order *models.Order
	err := s.store.Read(ctx, func(repos repositories.Repositories) error {
		var err error
		order, err = repos.Orders.GetByID(ctx, id)
		return translate(err, fmt.Sprintf("order %d", id))
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetOrdersByUser(ctx context.Context, username string) ([]*models.Order, error) {
	var orders []*models.Order
	err := s.store.Read(ctx, func(repos repositories.Repositories) error {
		user, err := repos.Users.FindByUsernameOrEmail(ctx, username)
		if err != nil {
			return translate(err, fmt.Sprintf("user %q", username))
		}
		orders, err = repos.Orders.GetByUserID(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}
