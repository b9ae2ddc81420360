//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=verification_test
package verification

import (
	"context"

	"jamii/internal/entities"
	"jamii/pkg/pickup_token"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
}

type OutboxRepository interface {
	Add(ctx context.Context, event entities.OutboxEvent) error
}

type TokenSigner interface {
	Encode(payload pickup_token.Payload) (string, error)
	Decode(token string) (*pickup_token.Payload, error)
}

type Settler interface {
	Settle(ctx context.Context, orderID string) (*entities.Order, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
