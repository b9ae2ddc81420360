package verification

import (
	"errors"

	"jamii/pkg/delivery_code"
	"jamii/pkg/pickup_token"

	"github.com/google/uuid"
)

func isValidOrderID(id string) bool {
	return uuid.Validate(id) == nil
}

func validatePickupPayload(payload *pickup_token.Payload, orderID string) error {
	if payload.Type != pickup_token.TypePickup {
		return ErrInvalidPickupToken
	}
	if payload.OrderID != orderID {
		return ErrPickupTokenOtherOrder
	}
	return nil
}

func pickupTokenError(err error) error {
	if errors.Is(err, pickup_token.ErrExpired) {
		return ErrPickupTokenExpired
	}
	return ErrInvalidPickupToken.WithCause(err)
}

func checkDeliveryCode(expected *string, supplied string) error {
	if !delivery_code.IsWellFormed(supplied) {
		return ErrInvalidDeliveryCode
	}
	if expected == nil {
		return ErrNoDeliveryCode
	}
	if !delivery_code.Equal(*expected, supplied) {
		return ErrInvalidDeliveryCode
	}
	return nil
}
