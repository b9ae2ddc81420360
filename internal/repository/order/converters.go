package order

import (
	"encoding/json"
	"fmt"

	"jamii/internal/entities"

	"github.com/shopspring/decimal"
)

func ToDomain(o *OrderDB) (*entities.Order, error) {
	if o == nil {
		return nil, nil
	}

	var itemsDB []ItemDB
	if err := json.Unmarshal(o.Items, &itemsDB); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", o.ID, err)
	}

	items := make([]entities.OrderItem, 0, len(itemsDB))
	for _, item := range itemsDB {
		items = append(items, entities.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	order := &entities.Order{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		StoreID:             o.StoreID,
		Items:               items,
		TotalAmount:         o.TotalAmount,
		DeliveryAddress:     o.DeliveryAddress,
		Status:              entities.OrderStatusType(o.Status),
		DeliveryAgentID:     o.DeliveryAgentID,
		DeliveryCode:        o.DeliveryCode,
		SettlementStatus:    entities.SettlementStatusType(o.SettlementStatus),
		EscrowTransactionID: o.EscrowTransactionID,
		EscrowReceiptURL:    o.EscrowReceiptURL,
		ConfirmedAt:         o.ConfirmedAt,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
	if o.DeliveryFee.Valid {
		fee := o.DeliveryFee.Decimal
		order.DeliveryFee = &fee
	}

	return order, nil
}

func FromDomain(order *entities.Order) (*OrderDB, error) {
	itemsDB := make([]ItemDB, 0, len(order.Items))
	for _, item := range order.Items {
		itemsDB = append(itemsDB, ItemDB{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	items, err := json.Marshal(itemsDB)
	if err != nil {
		return nil, fmt.Errorf("encode items of order %s: %w", order.ID, err)
	}

	orderDB := &OrderDB{
		ID:                  order.ID,
		CustomerID:          order.CustomerID,
		StoreID:             order.StoreID,
		Items:               items,
		TotalAmount:         order.TotalAmount,
		DeliveryAddress:     order.DeliveryAddress,
		Status:              order.Status.String(),
		DeliveryAgentID:     order.DeliveryAgentID,
		DeliveryCode:        order.DeliveryCode,
		SettlementStatus:    order.SettlementStatus.String(),
		EscrowTransactionID: order.EscrowTransactionID,
		EscrowReceiptURL:    order.EscrowReceiptURL,
		ConfirmedAt:         order.ConfirmedAt,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
	}
	if order.DeliveryFee != nil {
		orderDB.DeliveryFee = decimal.NewNullDecimal(*order.DeliveryFee)
	}

	return orderDB, nil
}

func TransactionToDomain(t *TransactionDB) entities.TransactionNote {
	return entities.TransactionNote{
		Kind:                  entities.TransactionKind(t.Kind),
		Amount:                t.Amount,
		Timestamp:             t.CreatedAt,
		ExternalTransactionID: t.ExternalTransactionID,
		ActorID:               t.ActorID,
	}
}

func settlementStrings(statuses []entities.SettlementStatusType) []string {
	result := make([]string, len(statuses))
	for i, status := range statuses {
		result[i] = status.String()
	}
	return result
}
