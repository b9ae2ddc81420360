package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventOrderStatusChanged  EventType = "order.status.changed"
	EventSettlementRequested EventType = "order.settlement.requested"
)

func (t EventType) String() string {
	return string(t)
}

type OutboxEvent struct {
	ID        string
	Type      EventType
	Key       string
	Payload   []byte
	CreatedAt time.Time
	SentAt    *time.Time
}

// OrderStatusChangedEvent: EscrowTransactionID заполняется только при отмене,
// по нему потребитель возвратов находит эскроу.
type OrderStatusChangedEvent struct {
	OrderID             string    `json:"orderId"`
	Status              string    `json:"status"`
	PreviousStatus      string    `json:"previousStatus,omitempty"`
	SettlementStatus    string    `json:"settlementStatus"`
	DeliveryAgentID     *string   `json:"deliveryAgentId,omitempty"`
	ActorID             string    `json:"actorId,omitempty"`
	OccurredAt          time.Time `json:"occurredAt"`
	EscrowTransactionID string    `json:"escrowTransactionId,omitempty"`
}

type SettlementRequestedEvent struct {
	OrderID     string    `json:"orderId"`
	RequestedAt time.Time `json:"requestedAt"`
}

func NewOrderStatusChanged(order *Order, previous OrderStatusType, actorID string, at time.Time) (OutboxEvent, error) {
	event := OrderStatusChangedEvent{
		OrderID:          order.ID,
		Status:           order.Status.String(),
		PreviousStatus:   previous.String(),
		SettlementStatus: order.SettlementStatus.String(),
		DeliveryAgentID:  order.DeliveryAgentID,
		ActorID:          actorID,
		OccurredAt:       at,
	}
	if order.Status == OrderCancelled {
		event.EscrowTransactionID = order.EscrowTransactionID
	}
	return newEvent(EventOrderStatusChanged, order.ID, at, event)
}

func NewSettlementRequested(orderID string, at time.Time) (OutboxEvent, error) {
	return newEvent(EventSettlementRequested, orderID, at, SettlementRequestedEvent{
		OrderID:     orderID,
		RequestedAt: at,
	})
}

func newEvent(eventType EventType, key string, at time.Time, payload any) (OutboxEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	return OutboxEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Key:       key,
		Payload:   raw,
		CreatedAt: at,
	}, nil
}
