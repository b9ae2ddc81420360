package order

import "jamii/internal/pkg/errs"

var (
	ErrInvalidOrderID          = errs.New(errs.ErrValidation, "invalid order id")
	ErrMissingStore            = errs.New(errs.ErrValidation, "store id is required")
	ErrMissingAddress          = errs.New(errs.ErrValidation, "delivery address is required")
	ErrMissingBuyerAccount     = errs.New(errs.ErrValidation, "payment proof must name the buyer account")
	ErrEmptyItems              = errs.New(errs.ErrValidation, "order must contain at least one item")
	ErrInvalidItem             = errs.New(errs.ErrValidation, "every item needs a product id and a positive quantity")
	ErrDuplicateItem           = errs.New(errs.ErrValidation, "each product may appear only once per order")
	ErrUnknownProduct          = errs.New(errs.ErrValidation, "order references products the store does not sell")
	ErrStoreNotPayable         = errs.New(errs.ErrValidation, "store has no ledger account and cannot accept payments")
	ErrInvalidIdempotencyKey   = errs.New(errs.ErrValidation, "idempotency key must be at most 128 characters")
	ErrInvalidStatus           = errs.New(errs.ErrValidation, "unknown order status")
	ErrZeroTotal               = errs.New(errs.ErrValidation, "order total must be positive")
	ErrOnlyCustomersCanOrder   = errs.New(errs.ErrForbidden, "only customers can place orders")
	ErrOrderForbidden          = errs.New(errs.ErrForbidden, "order is not accessible to this user")
	ErrCancelForbidden         = errs.New(errs.ErrForbidden, "user may not cancel this order")
	ErrOrderNotFound           = errs.New(errs.ErrNotFound, "order not found")
	ErrInvalidTransition       = errs.New(errs.ErrInvalidState, "status transition is not allowed")
	ErrTransitionNeedsWorkflow = errs.New(errs.ErrInvalidState, "this transition happens through bid acceptance, pickup or delivery confirmation")
	ErrSettlementInProgress    = errs.New(errs.ErrInvalidState, "payment release is in progress, order cannot be cancelled")
	ErrStatusConflict          = errs.New(errs.ErrInvalidState, "order status changed concurrently")
)
