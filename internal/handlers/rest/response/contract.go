//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=response_test
package response

import "jamii/pkg/logger"

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
