package outbox_relay

import (
	"context"
	"time"

	"jamii/pkg/logger"
)

type Service interface {
	Relay(ctx context.Context, limit uint64) (int, error)
}

type OutboxRelay struct {
	log      logger.Logger
	service  Service
	interval time.Duration
	batch    uint64
}

func NewOutboxRelay(log logger.Logger, service Service, interval time.Duration, batch int) *OutboxRelay {
	return &OutboxRelay{
		log:      log,
		service:  service,
		interval: interval,
		batch:    uint64(batch),
	}
}

// TTL возвращает интервал между выполнениями задачи.
func (o *OutboxRelay) TTL() time.Duration {
	return o.interval
}

// Do публикует одну пачку событий.
func (o *OutboxRelay) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	sent, err := o.service.Relay(ctxWithTimeout, o.batch)

	if sent > 0 {
		o.log.With(
			logger.NewField("published_events", sent),
		).Debug("outbox relay")
	}

	return err
}

func (o *OutboxRelay) Info() string {
	return "outbox relay"
}
