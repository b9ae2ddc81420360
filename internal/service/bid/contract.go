//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=bid_test
package bid

import (
	"context"

	"jamii/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, bid entities.Bid) (*entities.Bid, error)
	GetByID(ctx context.Context, id string) (*entities.Bid, error)
	ListByOrder(ctx context.Context, orderID string, agentID *string) ([]entities.Bid, error)
	UpdateStatus(ctx context.Context, id string, from, to entities.BidStatusType) (*entities.Bid, error)
	RejectOthers(ctx context.Context, orderID, acceptedBidID string) (int64, error)
}

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	AddTransaction(ctx context.Context, orderID string, note entities.TransactionNote) error
}

type OutboxRepository interface {
	Add(ctx context.Context, event entities.OutboxEvent) error
}

type CodeGenerator interface {
	Generate() (string, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
