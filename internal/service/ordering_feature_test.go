package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/BrandonWrob/ExtendedManager/internal/repositories"
	"github.com/BrandonWrob/ExtendedManager/models"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

var errorKinds = map[string]error{
	"validation":             ErrValidation,
	"not found":              ErrNotFound,
	"insufficient inventory": ErrInsufficientInventory,
	"not ready":              ErrNotReady,
	"gone":                   ErrGone,
	"conflict":               ErrConflict,
}

type orderingContext struct {
	store    *repositories.MemoryStore
	orders   *OrderService
	history  *OrderHistoryService
	users    *UserService
	menu     map[string]*models.Recipe
	initial  map[string]int
	placed   *models.Order
	err      error
	pickedUp *models.Order
}

func (c *orderingContext) reset() error {
	store, err := repositories.NewMemoryStore(logger.Discard())
	if err != nil {
		return err
	}
	*c = orderingContext{
		store:   store,
		orders:  NewOrderService(store, logger.Discard()),
		history: NewOrderHistoryService(store, logger.Discard()),
		users:   NewUserService(store, logger.Discard()),
		menu:    map[string]*models.Recipe{},
	}
	return nil
}

func parseIngredientList(s string) ([]models.Ingredient, error) {
	var out []models.Ingredient
	for _, part := range strings.Split(s, ",") {
		name, amount, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("bad ingredient %q", part)
		}
		n, err := strconv.Atoi(amount)
		if err != nil {
			return nil, err
		}
		out = append(out, models.Ingredient{Name: name, Amount: n})
	}
	return out, nil
}

// rows skips the header row of a data table.
func rows(table *godog.Table) [][]string {
	var out [][]string
	for _, row := range table.Rows[1:] {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.Value
		}
		out = append(out, cells)
	}
	return out
}

func (c *orderingContext) inventory() (map[string]int, error) {
	var amounts map[string]int
	err := c.store.WithinTransaction(context.Background(), func(repos repositories.Repositories) error {
		inv, err := repos.Inventory.GetOrCreate(context.Background())
		if err != nil {
			return err
		}
		amounts = inv.Amounts()
		return nil
	})
	return amounts, err
}

func (c *orderingContext) theInventoryHolds(table *godog.Table) error {
	want := map[string]int{}
	var ings []models.Ingredient
	for _, row := range rows(table) {
		n, err := strconv.Atoi(row[1])
		if err != nil {
			return err
		}
		want[row[0]] = n
		ings = append(ings, models.Ingredient{Name: row[0], Amount: n})
	}

	if c.initial == nil {
		c.initial = want
		return c.store.WithinTransaction(context.Background(), func(repos repositories.Repositories) error {
			inv, err := repos.Inventory.GetOrCreate(context.Background())
			if err != nil {
				return err
			}
			inv.Ingredients = ings
			return repos.Inventory.Save(context.Background(), inv)
		})
	}
	return c.inventoryEquals(want)
}

func (c *orderingContext) inventoryEquals(want map[string]int) error {
	got, err := c.inventory()
	if err != nil {
		return err
	}
	if len(got) != len(want) {
		return fmt.Errorf("expected %d ingredients, got %v", len(want), got)
	}
	for name, amount := range want {
		if got[name] != amount {
			return fmt.Errorf("expected %s to be %d, got %d", name, amount, got[name])
		}
	}
	return nil
}

func (c *orderingContext) theInventoryIsUnchanged() error {
	return c.inventoryEquals(c.initial)
}

func (c *orderingContext) theMenuOffers(table *godog.Table) error {
	for _, row := range rows(table) {
		price, err := strconv.Atoi(row[1])
		if err != nil {
			return err
		}
		ings, err := parseIngredientList(row[2])
		if err != nil {
			return err
		}
		recipe := &models.Recipe{Name: row[0], Price: price, Ingredients: ings}
		err = c.store.WithinTransaction(context.Background(), func(repos repositories.Repositories) error {
			return repos.Recipes.Create(context.Background(), recipe)
		})
		if err != nil {
			return err
		}
		c.menu[recipe.Name] = recipe
	}
	return nil
}

func (c *orderingContext) isARegisteredCustomer(username string) error {
	_, err := c.users.RegisterUser(context.Background(), &models.User{
		Name:     username,
		Username: username,
		Email:    username + "@cafe.test",
	})
	return err
}

func (c *orderingContext) lineFor(name string, price, amount int) (*models.OrderLine, error) {
	recipe, ok := c.menu[name]
	if !ok {
		return nil, fmt.Errorf("recipe %q is not on the test menu", name)
	}
	n := amount
	return &models.OrderLine{
		Name:        recipe.Name,
		Price:       price,
		Ingredients: append([]models.Ingredient(nil), recipe.Ingredients...),
		Multiplier:  &n,
	}, nil
}

func (c *orderingContext) placesOrder(username string, table *godog.Table) error {
	order := &models.Order{}
	for _, row := range rows(table) {
		amount, err := strconv.Atoi(row[1])
		if err != nil {
			return err
		}
		recipe, ok := c.menu[row[0]]
		if !ok {
			return fmt.Errorf("recipe %q is not on the test menu", row[0])
		}
		line, err := c.lineFor(row[0], recipe.Price, amount)
		if err != nil {
			return err
		}
		order.Lines = append(order.Lines, line)
	}
	c.placed, c.err = c.orders.PlaceOrder(context.Background(), username, order)
	return nil
}

func (c *orderingContext) ordersPricedAt(username string, amount int, name string, price int) error {
	line, err := c.lineFor(name, price, amount)
	if err != nil {
		return err
	}
	c.placed, c.err = c.orders.PlaceOrder(context.Background(), username, &models.Order{Lines: []*models.OrderLine{line}})
	return nil
}

func (c *orderingContext) theOrderIsAccepted() error {
	if c.err != nil {
		return fmt.Errorf("expected the order to be accepted, got %v", c.err)
	}
	if c.placed == nil || c.placed.ID == models.UnsavedID {
		return errors.New("expected a stored order")
	}
	return nil
}

func expectKind(err error, kind string) error {
	want, ok := errorKinds[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if !errors.Is(err, want) {
		return fmt.Errorf("expected %s error, got %v", kind, err)
	}
	return nil
}

func (c *orderingContext) theOrderIsRejectedAs(kind string) error {
	if c.placed != nil {
		return fmt.Errorf("expected no order, got order %d", c.placed.ID)
	}
	return expectKind(c.err, kind)
}

func (c *orderingContext) lastHistory() (*models.OrderHistory, error) {
	if c.placed == nil {
		return nil, errors.New("no order was placed")
	}
	return c.history.GetHistoryByID(context.Background(), c.placed.ID)
}

func (c *orderingContext) historyListsRecipes(want string) error {
	h, err := c.lastHistory()
	if err != nil {
		return err
	}
	if h.RecipesInOrder != want {
		return fmt.Errorf("expected recipes %q, got %q", want, h.RecipesInOrder)
	}
	return nil
}

func (c *orderingContext) historyListsIngredients(want string) error {
	h, err := c.lastHistory()
	if err != nil {
		return err
	}
	if h.IngredientsUsed != want {
		return fmt.Errorf("expected ingredients %q, got %q", want, h.IngredientsUsed)
	}
	return nil
}

func (c *orderingContext) historyTotals(want string) error {
	h, err := c.lastHistory()
	if err != nil {
		return err
	}
	if got := h.Total.StringFixed(2); got != want {
		return fmt.Errorf("expected total %s, got %s", want, got)
	}
	return nil
}

func (c *orderingContext) historyIsPickedUp(not string) error {
	h, err := c.lastHistory()
	if err != nil {
		return err
	}
	want := not == ""
	if h.PickedUp != want {
		return fmt.Errorf("expected picked up %t, got %t", want, h.PickedUp)
	}
	return nil
}

func (c *orderingContext) theBaristaFulfillsTheOrder() error {
	if c.placed == nil {
		return errors.New("no order was placed")
	}
	_, err := c.orders.FulfillOrder(context.Background(), c.placed.ID)
	return err
}

func (c *orderingContext) picksUpTheOrder(username string) error {
	if c.placed == nil {
		return errors.New("no order was placed")
	}
	c.pickedUp, c.err = c.orders.PickupOrder(context.Background(), username, c.placed.ID)
	return nil
}

func (c *orderingContext) thePickupSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected pickup to succeed, got %v", c.err)
	}
	if c.pickedUp == nil || c.pickedUp.ID != c.placed.ID {
		return errors.New("expected the placed order back")
	}
	return nil
}

func (c *orderingContext) thePickupFailsAs(kind string) error {
	return expectKind(c.err, kind)
}

func initializeOrderingScenario(sc *godog.ScenarioContext) {
	c := &orderingContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, c.reset()
	})

	sc.Step(`^the inventory holds:$`, c.theInventoryHolds)
	sc.Step(`^the menu offers:$`, c.theMenuOffers)
	sc.Step(`^"([^"]*)" is a registered customer$`, c.isARegisteredCustomer)

	sc.Step(`^"([^"]*)" orders:$`, c.placesOrder)
	sc.Step(`^"([^"]*)" orders (\d+) "([^"]*)" priced at (\d+)$`, c.ordersPricedAt)
	sc.Step(`^the barista fulfills the order$`, c.theBaristaFulfillsTheOrder)
	sc.Step(`^"([^"]*)" picks up the order$`, c.picksUpTheOrder)

	sc.Step(`^the order is accepted$`, c.theOrderIsAccepted)
	sc.Step(`^the order is rejected as "([^"]*)"$`, c.theOrderIsRejectedAs)
	sc.Step(`^the inventory is unchanged$`, c.theInventoryIsUnchanged)
	sc.Step(`^the history of the order lists recipes "([^"]*)"$`, c.historyListsRecipes)
	sc.Step(`^the history of the order lists ingredients "([^"]*)"$`, c.historyListsIngredients)
	sc.Step(`^the history of the order totals "([^"]*)"$`, c.historyTotals)
	sc.Step(`^the history of the order is (not )?picked up$`, c.historyIsPickedUp)
	sc.Step(`^the pickup succeeds$`, c.thePickupSucceeds)
	sc.Step(`^the pickup fails as "([^"]*)"$`, c.thePickupFailsAs)
}

func TestOrderingFeature(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeOrderingScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/ordering.feature"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
