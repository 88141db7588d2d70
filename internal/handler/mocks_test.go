package handler

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/BrandonWrob/ExtendedManager/models"
)

type mockOrderService struct{ mock.Mock }

func orderArg(args mock.Arguments, i int) *models.Order {
	o, _ := args.Get(i).(*models.Order)
	return o
}

func (m *mockOrderService) PlaceOrder(ctx context.Context, username string, order *models.Order) (*models.Order, error) {
	args := m.Called(ctx, username, order)
	return orderArg(args, 0), args.Error(1)
}

func (m *mockOrderService) FulfillOrder(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	return orderArg(args, 0), args.Error(1)
}

func (m *mockOrderService) PickupOrder(ctx context.Context, username string, id int64) (*models.Order, error) {
	args := m.Called(ctx, username, id)
	return orderArg(args, 0), args.Error(1)
}

func (m *mockOrderService) GetAllOrders(ctx context.Context) ([]*models.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*models.Order)
	return orders, args.Error(1)
}

func (m *mockOrderService) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	return orderArg(args, 0), args.Error(1)
}

func (m *mockOrderService) GetOrdersByUser(ctx context.Context, username string) ([]*models.Order, error) {
	args := m.Called(ctx, username)
	orders, _ := args.Get(0).([]*models.Order)
	return orders, args.Error(1)
}

type mockHistoryService struct{ mock.Mock }

func historyArg(args mock.Arguments, i int) *models.OrderHistory {
	h, _ := args.Get(i).(*models.OrderHistory)
	return h
}

func (m *mockHistoryService) MakeOrderHistory(ctx context.Context, username string, order *models.Order) (*models.OrderHistory, error) {
	args := m.Called(ctx, username, order)
	return historyArg(args, 0), args.Error(1)
}

func (m *mockHistoryService) UpdateOrderHistoryStatus(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockHistoryService) GetOrderHistory(ctx context.Context) ([]*models.OrderHistory, error) {
	args := m.Called(ctx)
	all, _ := args.Get(0).([]*models.OrderHistory)
	return all, args.Error(1)
}

func (m *mockHistoryService) GetUserHistory(ctx context.Context, username string) ([]*models.OrderHistory, error) {
	args := m.Called(ctx, username)
	all, _ := args.Get(0).([]*models.OrderHistory)
	return all, args.Error(1)
}

func (m *mockHistoryService) GetHistoryByID(ctx context.Context, id int64) (*models.OrderHistory, error) {
	args := m.Called(ctx, id)
	return historyArg(args, 0), args.Error(1)
}

type mockTaxService struct{ mock.Mock }

func (m *mockTaxService) GetTaxRate(ctx context.Context) (*models.TaxRate, error) {
	args := m.Called(ctx)
	rate, _ := args.Get(0).(*models.TaxRate)
	return rate, args.Error(1)
}

func (m *mockTaxService) SetTaxRate(ctx context.Context, rate decimal.Decimal) (*models.TaxRate, error) {
	args := m.Called(ctx, rate)
	saved, _ := args.Get(0).(*models.TaxRate)
	return saved, args.Error(1)
}

func (m *mockTaxService) CalcTax(ctx context.Context, preTax decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, preTax)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockRecipeService struct{ mock.Mock }

func recipeArg(args mock.Arguments, i int) *models.Recipe {
	r, _ := args.Get(i).(*models.Recipe)
	return r
}

func (m *mockRecipeService) GetAllRecipes(ctx context.Context) ([]*models.Recipe, error) {
	args := m.Called(ctx)
	all, _ := args.Get(0).([]*models.Recipe)
	return all, args.Error(1)
}

func (m *mockRecipeService) GetRecipeByName(ctx context.Context, name string) (*models.Recipe, error) {
	args := m.Called(ctx, name)
	return recipeArg(args, 0), args.Error(1)
}

func (m *mockRecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	args := m.Called(ctx, recipe)
	return recipeArg(args, 0), args.Error(1)
}

func (m *mockRecipeService) UpdateRecipe(ctx context.Context, id int64, recipe *models.Recipe) (*models.Recipe, error) {
	args := m.Called(ctx, id, recipe)
	return recipeArg(args, 0), args.Error(1)
}

func (m *mockRecipeService) DeleteRecipe(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type healthFunc func(ctx context.Context) error

func (f healthFunc) HealthCheck(ctx context.Context) error { return f(ctx) }
