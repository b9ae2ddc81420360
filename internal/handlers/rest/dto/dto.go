// Package dto описывает JSON-контракт HTTP API.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderCreate struct {
	StoreID         string            `json:"storeId" validate:"required"`
	Items           []OrderItemCreate `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string            `json:"deliveryAddress" validate:"required,max=512"`
	PaymentProof    PaymentProof      `json:"paymentProof"`
}

type OrderItemCreate struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gte=1"`
}

type PaymentProof struct {
	BuyerAccount  string `json:"buyerAccount" validate:"required"`
	Authorization string `json:"authorization" validate:"required"`
}

type OrderStatusUpdate struct {
	Status string `json:"status" validate:"required"`
}

type BidCreate struct {
	Amount                decimal.Decimal `json:"amount" validate:"gt=0"`
	EstimatedDeliveryTime time.Time       `json:"estimatedDeliveryTime" validate:"required"`
}

type PickupScan struct {
	Token string `json:"token" validate:"required"`
}

type DeliveryConfirm struct {
	Code string `json:"code" validate:"required"`
}

type Order struct {
	ID                  string            `json:"id"`
	CustomerID          string            `json:"customerId"`
	StoreID             string            `json:"storeId"`
	Items               []OrderItem       `json:"items"`
	TotalAmount         decimal.Decimal   `json:"totalAmount"`
	DeliveryAddress     string            `json:"deliveryAddress"`
	Status              string            `json:"status"`
	DeliveryAgentID     *string           `json:"deliveryAgentId,omitempty"`
	DeliveryFee         *decimal.Decimal  `json:"deliveryFee,omitempty"`
	DeliveryCode        *string           `json:"deliveryCode,omitempty"`
	SettlementStatus    string            `json:"settlementStatus"`
	EscrowTransactionID string            `json:"escrowTransactionId,omitempty"`
	EscrowReceiptURL    string            `json:"escrowReceiptUrl,omitempty"`
	ConfirmedAt         *time.Time        `json:"confirmedAt,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
	Transactions        OrderTransactions `json:"transactions"`
	History             []TransactionNote `json:"history"`
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type OrderTransactions struct {
	OrderPlaced       *TransactionNote `json:"orderPlaced,omitempty"`
	BidPlaced         *TransactionNote `json:"bidPlaced,omitempty"`
	DeliveryConfirmed *TransactionNote `json:"deliveryConfirmed,omitempty"`
}

type TransactionNote struct {
	Kind                  string          `json:"kind"`
	Amount                decimal.Decimal `json:"amount"`
	Timestamp             time.Time       `json:"timestamp"`
	ExternalTransactionID string          `json:"externalTransactionId,omitempty"`
	ActorID               string          `json:"actorId,omitempty"`
}

type OrderList struct {
	Orders []Order `json:"orders"`
}

type Bid struct {
	ID                    string          `json:"id"`
	OrderID               string          `json:"orderId"`
	DeliveryAgentID       string          `json:"deliveryAgentId"`
	Amount                decimal.Decimal `json:"amount"`
	EstimatedDeliveryTime time.Time       `json:"estimatedDeliveryTime"`
	Status                string          `json:"status"`
	TransactionID         *string         `json:"transactionId,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

type BidList struct {
	Bids []Bid `json:"bids"`
}

type BidAcceptance struct {
	Order         Order `json:"order"`
	Bid           Bid   `json:"bid"`
	RejectedCount int64 `json:"rejectedCount"`
}

type PickupCode struct {
	OrderID  string    `json:"orderId"`
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issuedAt"`
}

type DeliveryCode struct {
	OrderID      string `json:"orderId"`
	DeliveryCode string `json:"deliveryCode"`
}

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}
