package dto

import "jamii/internal/entities"

func FromOrder(order *entities.Order) Order {
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	history := make([]TransactionNote, 0, len(order.History))
	for i := range order.History {
		history = append(history, *fromNote(&order.History[i]))
	}

	return Order{
		ID:                  order.ID,
		CustomerID:          order.CustomerID,
		StoreID:             order.StoreID,
		Items:               items,
		TotalAmount:         order.TotalAmount,
		DeliveryAddress:     order.DeliveryAddress,
		Status:              order.Status.String(),
		DeliveryAgentID:     order.DeliveryAgentID,
		DeliveryFee:         order.DeliveryFee,
		DeliveryCode:        order.DeliveryCode,
		SettlementStatus:    order.SettlementStatus.String(),
		EscrowTransactionID: order.EscrowTransactionID,
		EscrowReceiptURL:    order.EscrowReceiptURL,
		ConfirmedAt:         order.ConfirmedAt,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
		Transactions: OrderTransactions{
			OrderPlaced:       fromNote(order.Transactions.OrderPlaced),
			BidPlaced:         fromNote(order.Transactions.BidPlaced),
			DeliveryConfirmed: fromNote(order.Transactions.DeliveryConfirmed),
		},
		History: history,
	}
}

func FromOrderList(orders []entities.Order) OrderList {
	list := OrderList{Orders: make([]Order, 0, len(orders))}
	for i := range orders {
		list.Orders = append(list.Orders, FromOrder(&orders[i]))
	}
	return list
}

func FromBid(bid *entities.Bid) Bid {
	return Bid{
		ID:                    bid.ID,
		OrderID:               bid.OrderID,
		DeliveryAgentID:       bid.DeliveryAgentID,
		Amount:                bid.Amount,
		EstimatedDeliveryTime: bid.EstimatedDeliveryTime,
		Status:                bid.Status.String(),
		TransactionID:         bid.TransactionID,
		CreatedAt:             bid.CreatedAt,
		UpdatedAt:             bid.UpdatedAt,
	}
}

func FromBidList(bids []entities.Bid) BidList {
	list := BidList{Bids: make([]Bid, 0, len(bids))}
	for i := range bids {
		list.Bids = append(list.Bids, FromBid(&bids[i]))
	}
	return list
}

func FromBidAcceptance(acceptance *entities.BidAcceptance) BidAcceptance {
	return BidAcceptance{
		Order:         FromOrder(acceptance.Order),
		Bid:           FromBid(acceptance.Bid),
		RejectedCount: acceptance.Rejected,
	}
}

func (o OrderCreate) ToDomain(idempotencyKey string) entities.OrderCreate {
	items := make([]entities.OrderItemCreate, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, entities.OrderItemCreate{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return entities.OrderCreate{
		StoreID:         o.StoreID,
		Items:           items,
		DeliveryAddress: o.DeliveryAddress,
		PaymentProof: entities.PaymentProof{
			BuyerAccount:  o.PaymentProof.BuyerAccount,
			Authorization: o.PaymentProof.Authorization,
		},
		IdempotencyKey: idempotencyKey,
	}
}

func fromNote(note *entities.TransactionNote) *TransactionNote {
	if note == nil {
		return nil
	}
	return &TransactionNote{
		Kind:                  note.Kind.String(),
		Amount:                note.Amount,
		Timestamp:             note.Timestamp,
		ExternalTransactionID: note.ExternalTransactionID,
		ActorID:               note.ActorID,
	}
}
