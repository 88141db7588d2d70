package service

import (
	"math"

	"github.com/BrandonWrob/ExtendedManager/models"
)

// Consumption is the net quantity an order takes from the ledger.
type Consumption struct {
	// Amounts holds every ledger ingredient, zero when the order does not use it.
	Amounts map[string]int
	// Unstocked lists ingredients the order needs that the ledger does not carry.
	Unstocked []string
}

// AggregateConsumption sums amount times multiplier per ingredient over all
// lines. Only ledger ingredients are credited. A total that does not fit in
// an int rejects the order at the line that overflowed it.
func AggregateConsumption(ledger []models.Ingredient, lines []*models.OrderLine) (Consumption, error) {
	c := Consumption{Amounts: make(map[string]int, len(ledger))}
	for _, ing := range ledger {
		c.Amounts[ing.Name] = 0
	}

	seen := map[string]bool{}
	for i, line := range lines {
		multiplier := line.Quantity()
		for _, ing := range line.Ingredients {
			if _, ok := c.Amounts[ing.Name]; !ok {
				if !seen[ing.Name] {
					seen[ing.Name] = true
					c.Unstocked = append(c.Unstocked, ing.Name)
				}
				continue
			}
			total, ok := mulAdd(c.Amounts[ing.Name], ing.Amount, multiplier)
			if !ok {
				return Consumption{}, &RejectError{Reason: ReasonQuantityTooLarge, Line: i, Recipe: line.Name}
			}
			c.Amounts[ing.Name] = total
		}
	}
	return c, nil
}

// mulAdd returns total + amount*multiplier. It reports false for negative
// operands and for results above math.MaxInt.
func mulAdd(total, amount, multiplier int) (int, bool) {
	if total < 0 || amount < 0 || multiplier < 0 {
		return 0, false
	}
	if amount == 0 || multiplier == 0 {
		return total, true
	}
	if amount > (math.MaxInt-total)/multiplier {
		return 0, false
	}
	return total + amount*multiplier, true
}

// Reconcile checks the whole consumption against inv and only then
// returns a decremented copy. inv itself is never modified, so a rejected
// order leaves nothing half-applied.
func Reconcile(inv *models.Inventory, c Consumption) (*models.Inventory, error) {
	short := map[string]int{}
	for _, ing := range inv.Ingredients {
		need := c.Amounts[ing.Name]
		if need < 0 {
			return nil, validationError("consumption of %s cannot be negative", ing.Name)
		}
		if need > ing.Amount {
			short[ing.Name] = need - ing.Amount
		}
	}
	if len(short) > 0 || len(c.Unstocked) > 0 {
		return nil, &InsufficientInventoryError{Short: short, Unstocked: c.Unstocked}
	}

	updated := inv.Clone()
	for i := range updated.Ingredients {
		updated.Ingredients[i].Amount -= c.Amounts[updated.Ingredients[i].Name]
	}
	return updated, nil
}
