package product

import "github.com/shopspring/decimal"

type ProductDB struct {
	ID      string
	StoreID string
	Name    string
	Price   decimal.Decimal
}
