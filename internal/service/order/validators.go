package order

import (
	"strings"

	"jamii/internal/entities"

	"github.com/google/uuid"
)

const maxIdempotencyKeyLength = 128

func isValidOrderID(id string) bool {
	return uuid.Validate(id) == nil
}

func validateOrderCreate(orderCreate entities.OrderCreate) error {
	if strings.TrimSpace(orderCreate.StoreID) == "" {
		return ErrMissingStore
	}
	if strings.TrimSpace(orderCreate.DeliveryAddress) == "" {
		return ErrMissingAddress
	}
	if strings.TrimSpace(orderCreate.PaymentProof.BuyerAccount) == "" {
		return ErrMissingBuyerAccount
	}
	if len(orderCreate.IdempotencyKey) > maxIdempotencyKeyLength {
		return ErrInvalidIdempotencyKey
	}
	if len(orderCreate.Items) == 0 {
		return ErrEmptyItems
	}

	seen := make(map[string]struct{}, len(orderCreate.Items))
	for _, item := range orderCreate.Items {
		if strings.TrimSpace(item.ProductID) == "" || item.Quantity <= 0 {
			return ErrInvalidItem
		}
		if _, ok := seen[item.ProductID]; ok {
			return ErrDuplicateItem
		}
		seen[item.ProductID] = struct{}{}
	}
	return nil
}
