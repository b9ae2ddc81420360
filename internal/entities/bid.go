package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bid struct {
	ID                    string
	OrderID               string
	DeliveryAgentID       string
	Amount                decimal.Decimal
	EstimatedDeliveryTime time.Time
	Status                BidStatusType
	TransactionID         *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type BidStatusType string

const (
	BidPending  BidStatusType = "pending"
	BidAccepted BidStatusType = "accepted"
	BidRejected BidStatusType = "rejected"
)

func (s BidStatusType) String() string {
	return string(s)
}

type BidCreate struct {
	OrderID               string
	Amount                decimal.Decimal
	EstimatedDeliveryTime time.Time
}

type BidAcceptance struct {
	Order    *Order
	Bid      *Bid
	Rejected int64
}
