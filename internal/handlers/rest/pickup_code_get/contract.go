//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pickup_code_get_test
package pickup_code_get

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
	PickupCode(ctx context.Context, orderID string, identity entities.Identity) (*entities.PickupCode, error)
}
