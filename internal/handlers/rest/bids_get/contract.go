//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=bids_get_test
package bids_get

import (
	"context"

	"jamii/internal/entities"
	"jamii/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ListBidsForOrder(ctx context.Context, orderID string, identity entities.Identity) ([]entities.Bid, error)
}
