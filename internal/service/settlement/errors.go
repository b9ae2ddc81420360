package settlement

import "jamii/internal/pkg/errs"

var (
	ErrInvalidOrderID          = errs.New(errs.ErrValidation, "invalid order id")
	ErrOrderNotInTransit       = errs.New(errs.ErrInvalidState, "order is not in transit")
	ErrSettlementNotRequested  = errs.New(errs.ErrInvalidState, "delivery was not confirmed for this order")
	ErrMissingAssignment       = errs.New(errs.ErrInvalidState, "order has no assigned agent or delivery fee")
	ErrAccountNotFound         = errs.New(errs.ErrNotFound, "ledger account not found")
	ErrLedgerAccountMissing    = errs.New(errs.ErrPayment, "store or delivery agent has no ledger account")
	ErrSettlementStatusChanged = errs.New(errs.ErrInvalidState, "order changed while the payment was released")
)
