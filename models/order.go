package models

// OrderLine is one recipe within an order, repeated Multiplier times.
// Ingredients are a snapshot of the recipe taken at submission.
type OrderLine struct {
	ID          int64        `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Price       int          `json:"price" db:"price"`
	Ingredients []Ingredient `json:"ingredients"`
	Multiplier  *int         `json:"multiplier" db:"multiplier"`
}

// Quantity returns the multiplier, treating an absent one as zero.
func (l *OrderLine) Quantity() int {
	if l == nil || l.Multiplier == nil {
		return 0
	}
	return *l.Multiplier
}

func (l *OrderLine) Clone() *OrderLine {
	if l == nil {
		return nil
	}
	c := *l
	c.Ingredients = cloneIngredients(l.Ingredients)
	if l.Multiplier != nil {
		m := *l.Multiplier
		c.Multiplier = &m
	}
	return &c
}

type Order struct {
	ID        int64        `json:"id" db:"id"`
	UserID    int64        `json:"-" db:"user_id"` // Owning user; orders are looked up per user through an index
	Fulfilled bool         `json:"fulfilled" db:"fulfilled"`
	Lines     []*OrderLine `json:"recipes"`
}

// OrderSummary is the public view of an order in listings.
type OrderSummary struct {
	ID        int64 `json:"id"`
	Fulfilled bool  `json:"fulfilled"`
}

func (o *Order) Summary() OrderSummary {
	return OrderSummary{ID: o.ID, Fulfilled: o.Fulfilled}
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	if o.Lines != nil {
		c.Lines = make([]*OrderLine, len(o.Lines))
		for i, line := range o.Lines {
			c.Lines[i] = line.Clone()
		}
	}
	return &c
}
