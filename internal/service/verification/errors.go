package verification

import "jamii/internal/pkg/errs"

var (
	ErrInvalidOrderID         = errs.New(errs.ErrValidation, "invalid order id")
	ErrPickupCodeForbidden    = errs.New(errs.ErrForbidden, "only a store admin can issue pickup codes")
	ErrPickupForbidden        = errs.New(errs.ErrForbidden, "only the assigned delivery agent can confirm pickup")
	ErrDeliveryCodeForbidden  = errs.New(errs.ErrForbidden, "only the order owner can read the delivery code")
	ErrDeliveryForbidden      = errs.New(errs.ErrForbidden, "only the assigned agent or the order owner can confirm delivery")
	ErrOrderNotConfirmed      = errs.New(errs.ErrInvalidState, "order is not awaiting pickup")
	ErrOrderNotInTransit      = errs.New(errs.ErrInvalidState, "order is not in transit")
	ErrNoDeliveryCode         = errs.New(errs.ErrInvalidState, "order has no active delivery code")
	ErrInvalidPickupToken     = errs.New(errs.ErrInvalidCode, "pickup code is invalid")
	ErrPickupTokenExpired     = errs.New(errs.ErrInvalidCode, "pickup code has expired")
	ErrPickupTokenOtherOrder  = errs.New(errs.ErrInvalidCode, "pickup code belongs to another order")
	ErrInvalidDeliveryCode    = errs.New(errs.ErrInvalidCode, "delivery code is invalid")
	ErrPickupStatusConflict   = errs.New(errs.ErrInvalidState, "pickup was already confirmed")
	ErrDeliveryStatusConflict = errs.New(errs.ErrInvalidState, "delivery confirmation is already settled or the order changed")
)
