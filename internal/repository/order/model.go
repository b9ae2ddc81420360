package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderDB struct {
	ID                  string
	CustomerID          string
	StoreID             string
	Items               []byte
	TotalAmount         decimal.Decimal
	DeliveryAddress     string
	Status              string
	DeliveryAgentID     *string
	DeliveryFee         decimal.NullDecimal
	DeliveryCode        *string
	SettlementStatus    string
	EscrowTransactionID string
	EscrowReceiptURL    string
	ConfirmedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ItemDB хранится в orders.items (jsonb).
type ItemDB struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type TransactionDB struct {
	OrderID               string
	Kind                  string
	Amount                decimal.Decimal
	ExternalTransactionID string
	ActorID               string
	CreatedAt             time.Time
}
