//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=relay_test
package relay

import (
	"context"
	"time"

	"jamii/internal/entities"
)

type Repository interface {
	FetchUnsent(ctx context.Context, limit uint64) ([]entities.OutboxEvent, error)
	MarkSent(ctx context.Context, ids []string, sentAt time.Time) error
}

type PublisherFactory interface {
	GetPublisher(eventType entities.EventType) (PublishFn, error)
}

type PublishFn func(ctx context.Context, event entities.OutboxEvent) error

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
