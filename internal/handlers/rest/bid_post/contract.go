//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=bid_post_test
package bid_post

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
	CreateBid(ctx context.Context, bidCreate entities.BidCreate, identity entities.Identity) (*entities.Bid, error)
}

type requestValidator interface {
	Struct(s any) error
}
