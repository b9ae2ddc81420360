//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"jamii/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, order entities.Order) (*entities.Order, bool, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	AddTransaction(ctx context.Context, orderID string, note entities.TransactionNote) error
}

type ProductRepository interface {
	GetByIDs(ctx context.Context, storeID string, ids []string) ([]entities.Product, error)
}

type AccountRepository interface {
	GetAccount(ctx context.Context, ownerID string) (string, error)
}

type BidRepository interface {
	RejectPending(ctx context.Context, orderID string) (int64, error)
}

type OutboxRepository interface {
	Add(ctx context.Context, event entities.OutboxEvent) error
}

type PaymentGateway interface {
	Escrow(ctx context.Context, req entities.EscrowRequest) (*entities.EscrowReceipt, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
