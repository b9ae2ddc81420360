package relay

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Service struct {
	repository       Repository
	publisherFactory PublisherFactory
	txManager        TxManager
	now              func() time.Time
}

func New(repository Repository, publisherFactory PublisherFactory, txManager TxManager) *Service {
	return &Service{
		repository:       repository,
		publisherFactory: publisherFactory,
		txManager:        txManager,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// Relay публикует пачку неотправленных событий в порядке записи.
// Доставка at-least-once: при ошибке публикации отправленная часть пачки
// фиксируется, остальное уйдет в следующий запуск.
func (s *Service) Relay(ctx context.Context, limit uint64) (int, error) {
	var (
		sent       int
		publishErr error
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		sent, publishErr = 0, nil

		events, err := s.repository.FetchUnsent(ctx, limit)
		if err != nil {
			return fmt.Errorf("fetch unsent events: %w", err)
		}
		if len(events) == 0 {
			return nil
		}

		done := make([]string, 0, len(events))
		for _, event := range events {
			publish, err := s.publisherFactory.GetPublisher(event.Type)
			if err != nil {
				// событие без топика не должно блокировать очередь
				if errors.Is(err, ErrUndefinedEventType) {
					done = append(done, event.ID)
					continue
				}
				return err
			}

			if err := publish(ctx, event); err != nil {
				publishErr = fmt.Errorf("publish event %s: %w", event.ID, err)
				break
			}
			done = append(done, event.ID)
			sent++
		}

		if err := s.repository.MarkSent(ctx, done, s.now()); err != nil {
			return fmt.Errorf("mark events sent: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return sent, publishErr
}
