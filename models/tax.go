package models

import "github.com/shopspring/decimal"

// TaxRateID is the fixed identity of the tax rate record.
const TaxRateID int64 = 1

// DefaultTaxRate is stored the first time the rate is read.
var DefaultTaxRate = decimal.New(2, -2)

type TaxRate struct {
	ID   int64           `json:"id" db:"id"`
	Rate decimal.Decimal `json:"rate" db:"rate"`
}

func (t *TaxRate) Clone() *TaxRate {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
