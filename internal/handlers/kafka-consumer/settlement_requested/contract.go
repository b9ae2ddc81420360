package settlement_requested

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
	Settle(ctx context.Context, orderID string) (*entities.Order, error)
}
