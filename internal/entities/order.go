package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID                  string
	CustomerID          string
	StoreID             string
	Items               []OrderItem
	TotalAmount         decimal.Decimal
	DeliveryAddress     string
	Status              OrderStatusType
	DeliveryAgentID     *string
	DeliveryFee         *decimal.Decimal
	DeliveryCode        *string
	SettlementStatus    SettlementStatusType
	EscrowTransactionID string
	EscrowReceiptURL    string
	ConfirmedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Transactions OrderTransactions
	History      []TransactionNote
}

type OrderItem struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

type OrderStatusType string

const (
	OrderPending   OrderStatusType = "pending"
	OrderConfirmed OrderStatusType = "confirmed"
	OrderInTransit OrderStatusType = "in-transit"
	OrderDelivered OrderStatusType = "delivered"
	OrderCancelled OrderStatusType = "cancelled"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsValid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderInTransit, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func (s OrderStatusType) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// HasAssignedAgent: deliveryAgentId задан ровно в этих статусах.
func (s OrderStatusType) HasAssignedAgent() bool {
	return s == OrderConfirmed || s == OrderInTransit || s == OrderDelivered
}

// HoldsDeliveryCode: deliveryCode хранится ровно в этих статусах.
func (s OrderStatusType) HoldsDeliveryCode() bool {
	return s == OrderConfirmed || s == OrderInTransit
}

var transitions = map[OrderStatusType][]OrderStatusType{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderInTransit, OrderCancelled},
	OrderInTransit: {OrderDelivered, OrderCancelled},
}

// CanTransition проверяет переход по таблице статусов. Статус никогда не
// откатывается назад, cancelled достижим из любого нетерминального статуса.
func CanTransition(from, to OrderStatusType) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type SettlementStatusType string

const (
	SettlementNone    SettlementStatusType = "none"
	SettlementPending SettlementStatusType = "pending"
	SettlementSettled SettlementStatusType = "settled"
	SettlementFailed  SettlementStatusType = "failed"
)

func (s SettlementStatusType) String() string {
	return string(s)
}

type OrderCreate struct {
	StoreID         string
	Items           []OrderItemCreate
	DeliveryAddress string
	PaymentProof    PaymentProof
	IdempotencyKey  string
}

type OrderItemCreate struct {
	ProductID string
	Quantity  int64
}

// OrderModify описывает условную запись: обновление применяется, только если
// текущий статус равен ExpectedStatus (и расчет в одном из ExpectedSettlement).
type OrderModify struct {
	ID                 *string
	ExpectedStatus     *OrderStatusType
	ExpectedSettlement []SettlementStatusType

	Status           *OrderStatusType
	DeliveryAgentID  *string
	DeliveryFee      *decimal.Decimal
	DeliveryCode     *string
	ConfirmedAt      *time.Time
	SettlementStatus *SettlementStatusType

	ClearAssignment   bool
	ClearDeliveryCode bool
}

// OrderFilter пустой фильтр означает все заказы.
type OrderFilter struct {
	CustomerID *string
	// OpenOrAssignedTo: заказы в pending плюс назначенные этому курьеру.
	OpenOrAssignedTo *string
}

type DeliveryCode struct {
	OrderID string
	Code    string
}

type PickupCode struct {
	OrderID  string
	Token    string
	IssuedAt time.Time
}
