package entities

import "github.com/shopspring/decimal"

type Product struct {
	ID      string
	StoreID string
	Name    string
	Price   decimal.Decimal
}
