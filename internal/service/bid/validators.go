package bid

import (
	"time"

	"jamii/internal/entities"

	"github.com/google/uuid"
)

// amountScale совпадает с NUMERIC(18,2) колонки bids.amount.
const amountScale = 2

func isValidID(id string) bool {
	return uuid.Validate(id) == nil
}

func validateBidCreate(bidCreate entities.BidCreate, now time.Time) error {
	if !isValidID(bidCreate.OrderID) {
		return ErrInvalidOrderID
	}
	if !bidCreate.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !bidCreate.Amount.Equal(bidCreate.Amount.Round(amountScale)) {
		return ErrAmountPrecision
	}
	if !bidCreate.EstimatedDeliveryTime.After(now) {
		return ErrInvalidEstimate
	}
	return nil
}
