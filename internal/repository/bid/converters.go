package bid

import (
	"jamii/internal/entities"
)

func ToDomain(b *BidDB) *entities.Bid {
	if b == nil {
		return nil
	}

	return &entities.Bid{
		ID:                    b.ID,
		OrderID:               b.OrderID,
		DeliveryAgentID:       b.DeliveryAgentID,
		Amount:                b.Amount,
		EstimatedDeliveryTime: b.EstimatedDeliveryTime,
		Status:                entities.BidStatusType(b.Status),
		TransactionID:         b.TransactionID,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}

func FromDomain(b *entities.Bid) *BidDB {
	return &BidDB{
		ID:                    b.ID,
		OrderID:               b.OrderID,
		DeliveryAgentID:       b.DeliveryAgentID,
		Amount:                b.Amount,
		EstimatedDeliveryTime: b.EstimatedDeliveryTime,
		Status:                b.Status.String(),
		TransactionID:         b.TransactionID,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}

func ToDomainList(bidsDB []BidDB) []entities.Bid {
	if len(bidsDB) == 0 {
		return []entities.Bid{}
	}

	result := make([]entities.Bid, len(bidsDB))
	for i, bidDB := range bidsDB {
		result[i] = *ToDomain(&bidDB)
	}
	return result
}
