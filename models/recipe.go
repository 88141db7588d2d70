package models

// MaxRecipes is the size limit of the recipe catalog.
const MaxRecipes = 3

type Recipe struct {
	ID          int64        `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Price       int          `json:"price" db:"price"`
	Ingredients []Ingredient `json:"ingredients"`
}

func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	c := *r
	c.Ingredients = cloneIngredients(r.Ingredients)
	return &c
}
