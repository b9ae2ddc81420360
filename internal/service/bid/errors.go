package bid

import "jamii/internal/pkg/errs"

var (
	ErrInvalidOrderID     = errs.New(errs.ErrValidation, "invalid order id")
	ErrInvalidBidID       = errs.New(errs.ErrValidation, "invalid bid id")
	ErrInvalidAmount      = errs.New(errs.ErrValidation, "bid amount must be positive")
	ErrAmountPrecision    = errs.New(errs.ErrValidation, "bid amount must have at most 2 decimal places")
	ErrAmountExceedsTotal = errs.New(errs.ErrValidation, "bid amount must be below the order total")
	ErrInvalidEstimate    = errs.New(errs.ErrValidation, "estimated delivery time must be in the future")
	ErrOnlyAgentsCanBid   = errs.New(errs.ErrForbidden, "only delivery agents can place bids")
	ErrAcceptForbidden    = errs.New(errs.ErrForbidden, "only the order owner or an admin can accept bids")
	ErrBidsForbidden      = errs.New(errs.ErrForbidden, "bids of this order are not accessible to this user")
	ErrBidNotFound        = errs.New(errs.ErrNotFound, "bid not found")
	ErrOrderNotOpen       = errs.New(errs.ErrInvalidState, "order is no longer open for bidding")
	ErrBidNotForOrder     = errs.New(errs.ErrInvalidBid, "bid does not belong to this order")
	ErrBidAlreadyResolved = errs.New(errs.ErrInvalidBid, "bid was already accepted or rejected")
	ErrDuplicateBid       = errs.New(errs.ErrInvalidBid, "agent already placed a bid on this order")
	ErrBidStatusConflict  = errs.New(errs.ErrInvalidState, "bid status changed concurrently")
	ErrAnotherBidAccepted = errs.New(errs.ErrInvalidState, "another bid was already accepted for this order")
)
