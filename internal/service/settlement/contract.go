//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=settlement_test
package settlement

import (
	"context"
	"time"

	"jamii/internal/entities"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	AddTransaction(ctx context.Context, orderID string, note entities.TransactionNote) error
	ListPendingSettlement(ctx context.Context, updatedBefore time.Time, limit uint64) ([]entities.Order, error)
}

type AccountRepository interface {
	GetAccount(ctx context.Context, ownerID string) (string, error)
}

type PaymentGateway interface {
	Release(ctx context.Context, req entities.ReleaseRequest) (*entities.ReleaseReceipt, error)
}

type OutboxRepository interface {
	Add(ctx context.Context, event entities.OutboxEvent) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
