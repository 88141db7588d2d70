package models

import "math"

// UnsavedID is the identifier of a record that has not been written yet.
// Stores assign a real identifier on insert.
const UnsavedID int64 = 0

// InventoryID is the fixed identity of the ingredient ledger.
const InventoryID int64 = 1

// MaxAmount is the largest quantity a ledger or recipe row can hold. It
// matches the INTEGER columns of the postgres schema.
const MaxAmount = math.MaxInt32

type Ingredient struct {
	ID     int64  `json:"id" db:"id"`         // Maps to inventory_ingredients.id (BIGSERIAL)
	Name   string `json:"name" db:"name"`     // Maps to inventory_ingredients.name (VARCHAR, unique per ledger)
	Amount int    `json:"amount" db:"amount"` // Maps to inventory_ingredients.amount (INTEGER >= 0)
}

// Inventory is the single shared ingredient ledger.
type Inventory struct {
	ID          int64        `json:"id" db:"id"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Find returns the index of the named ingredient, or -1.
func (inv *Inventory) Find(name string) int {
	for i := range inv.Ingredients {
		if inv.Ingredients[i].Name == name {
			return i
		}
	}
	return -1
}

// Amounts returns the on-hand quantity keyed by ingredient name.
func (inv *Inventory) Amounts() map[string]int {
	amounts := make(map[string]int, len(inv.Ingredients))
	for _, ing := range inv.Ingredients {
		amounts[ing.Name] = ing.Amount
	}
	return amounts
}

func (inv *Inventory) Clone() *Inventory {
	if inv == nil {
		return nil
	}
	return &Inventory{
		ID:          inv.ID,
		Ingredients: cloneIngredients(inv.Ingredients),
	}
}

func cloneIngredients(src []Ingredient) []Ingredient {
	if src == nil {
		return nil
	}
	dst := make([]Ingredient, len(src))
	copy(dst, src)
	return dst
}
