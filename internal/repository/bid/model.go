package bid

import (
	"time"

	"github.com/shopspring/decimal"
)

type BidDB struct {
	ID                    string
	OrderID               string
	DeliveryAgentID       string
	Amount                decimal.Decimal
	EstimatedDeliveryTime time.Time
	Status                string
	TransactionID         *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
