package outbox

import (
	"context"
	"fmt"
	"time"

	"jamii/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Add(ctx context.Context, event entities.OutboxEvent) error {
	query := `
		INSERT INTO outbox (id, event_type, event_key, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.querier.Exec(ctx, query, event.ID, event.Type.String(), event.Key, event.Payload, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("unexpected outbox repository add error: %w", err)
	}

	return nil
}

// FetchUnsent блокирует пачку неотправленных событий до конца транзакции.
// SKIP LOCKED позволяет нескольким relay работать параллельно без дублей.
func (r *Repository) FetchUnsent(ctx context.Context, limit uint64) ([]entities.OutboxEvent, error) {
	query, args, err := qb.
		Select("id", "event_type", "event_key", "payload", "created_at", "sent_at").
		From("outbox").
		Where(sq.Eq{"sent_at": nil}).
		OrderBy("created_at", "id").
		Limit(limit).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected outbox repository fetchunsent error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected outbox repository fetchunsent error: %w", err)
	}
	defer rows.Close()

	events := make([]entities.OutboxEvent, 0, limit)
	for rows.Next() {
		var eventDB EventDB
		err := rows.Scan(
			&eventDB.ID,
			&eventDB.Type,
			&eventDB.Key,
			&eventDB.Payload,
			&eventDB.CreatedAt,
			&eventDB.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected outbox repository fetchunsent error: %w", err)
		}
		events = append(events, entities.OutboxEvent{
			ID:        eventDB.ID,
			Type:      entities.EventType(eventDB.Type),
			Key:       eventDB.Key,
			Payload:   eventDB.Payload,
			CreatedAt: eventDB.CreatedAt,
			SentAt:    eventDB.SentAt,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected outbox repository fetchunsent error: %w", err)
	}

	return events, nil
}

func (r *Repository) MarkSent(ctx context.Context, ids []string, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := qb.
		Update("outbox").
		Set("sent_at", sentAt).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected outbox repository marksent error: %w", err)
	}

	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("unexpected outbox repository marksent error: %w", err)
	}

	return nil
}
