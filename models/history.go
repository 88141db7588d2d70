package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// OrderHistory is the permanent audit record of a placed order.
// It shares its ID with the order it was created from.
type OrderHistory struct {
	ID              int64           `json:"id" db:"id"`
	PickedUp        bool            `json:"picked_up" db:"picked_up"`
	RecipesInOrder  string          `json:"recipes_in_order" db:"recipes_in_order"`
	IngredientsUsed string          `json:"ingredients_used" db:"ingredients_used"`
	Total           decimal.Decimal `json:"total" db:"total"`
	Username        string          `json:"username" db:"username"`
}

func (h *OrderHistory) Clone() *OrderHistory {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}

// MarshalJSON writes the total with exactly two decimal places.
func (h OrderHistory) MarshalJSON() ([]byte, error) {
	type plain OrderHistory
	return json.Marshal(struct {
		plain
		Total string `json:"total"`
	}{plain: plain(h), Total: h.Total.StringFixed(2)})
}
