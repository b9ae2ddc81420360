//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pickup_post_test
package pickup_post

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
	VerifyPickup(ctx context.Context, orderID, token string, identity entities.Identity) (*entities.Order, error)
}

type requestValidator interface {
	Struct(s any) error
}
