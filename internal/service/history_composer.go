package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BrandonWrob/ExtendedManager/models"
)

// Subtotal is the sum of price times multiplier over all lines.
func Subtotal(lines []*models.OrderLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		price := decimal.NewFromInt(int64(line.Price))
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity()))))
	}
	return subtotal
}

// ComputeTotal rounds tax on the aggregate subtotal, then rounds the total.
func ComputeTotal(subtotal, rate decimal.Decimal) (tax, total decimal.Decimal) {
	tax = subtotal.Mul(rate).Round(2)
	total = subtotal.Add(tax).Round(2)
	return tax, total
}

// SummarizeRecipes renders "Name: n" per line in submission order.
func SummarizeRecipes(lines []*models.OrderLine) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%s: %d", line.Name, line.Quantity()))
	}
	return strings.Join(parts, ", ")
}

// SummarizeIngredients renders "name:n" per ingredient, sorted by name.
// Totals are summed as decimals so large quantities cannot wrap.
func SummarizeIngredients(lines []*models.OrderLine) string {
	totals := map[string]decimal.Decimal{}
	for _, line := range lines {
		multiplier := decimal.NewFromInt(int64(line.Quantity()))
		for _, ing := range line.Ingredients {
			used := decimal.NewFromInt(int64(ing.Amount)).Mul(multiplier)
			totals[ing.Name] = totals[ing.Name].Add(used)
		}
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s:%s", name, totals[name].String()))
	}
	return strings.Join(parts, ", ")
}

// ComposeHistory builds the audit record for an accepted order. The record
// always starts out not picked up.
func ComposeHistory(id int64, username string, lines []*models.OrderLine, rate decimal.Decimal) *models.OrderHistory {
	_, total := ComputeTotal(Subtotal(lines), rate)
	return &models.OrderHistory{
		ID:              id,
		PickedUp:        false,
		RecipesInOrder:  SummarizeRecipes(lines),
		IngredientsUsed: SummarizeIngredients(lines),
		Total:           total,
		Username:        username,
	}
}
