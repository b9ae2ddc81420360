package bid

import (
	"context"
	"errors"
	"fmt"

	"jamii/internal/entities"
	"jamii/internal/repository"
	"jamii/internal/service/bid"
	"jamii/internal/service/order"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	constraintOrderAgent  = "bids_order_agent_key"
	constraintOneAccepted = "bids_one_accepted_per_order_idx"

	bidColumns = "id, order_id, delivery_agent_id, amount, estimated_delivery_time, status, transaction_id, created_at, updated_at"
)

type scanner interface {
	Scan(dest ...any) error
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, bidEntity entities.Bid) (*entities.Bid, error) {
	bidDB := FromDomain(&bidEntity)
	query := `
		INSERT INTO bids (id, order_id, delivery_agent_id, amount, estimated_delivery_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bidColumns

	created, err := scanBid(r.querier.QueryRow(
		ctx,
		query,
		bidDB.ID,
		bidDB.OrderID,
		bidDB.DeliveryAgentID,
		bidDB.Amount,
		bidDB.EstimatedDeliveryTime,
		bidDB.Status,
		bidDB.CreatedAt,
		bidDB.UpdatedAt,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, uniqueViolation(err)
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected bid repository create error: %w", err)
	}

	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Bid, error) {
	query := `SELECT ` + bidColumns + `
		FROM bids
		WHERE id = $1`

	found, err := scanBid(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bid.ErrBidNotFound
		}
		return nil, fmt.Errorf("unexpected bid repository getbyid error: %w", err)
	}

	return found, nil
}

func (r *Repository) ListByOrder(ctx context.Context, orderID string, agentID *string) ([]entities.Bid, error) {
	builder := qb.
		Select(bidColumns).
		From("bids").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("created_at", "id")

	if agentID != nil {
		builder = builder.Where(sq.Eq{"delivery_agent_id": *agentID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected bid repository listbyorder error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected bid repository listbyorder error: %w", err)
	}
	defer rows.Close()

	bidModels := make([]BidDB, 0, 8)
	for rows.Next() {
		bidDB, err := scanBidDB(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected bid repository listbyorder error: %w", err)
		}
		bidModels = append(bidModels, *bidDB)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected bid repository listbyorder error: %w", err)
	}

	return ToDomainList(bidModels), nil
}

// UpdateStatus переводит ставку только из статуса from.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to entities.BidStatusType) (*entities.Bid, error) {
	query := `
		UPDATE bids
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + bidColumns

	updated, err := scanBid(r.querier.QueryRow(ctx, query, id, from.String(), to.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, bid.ErrBidStatusConflict
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, uniqueViolation(err)
		}
		return nil, fmt.Errorf("unexpected bid repository updatestatus error: %w", err)
	}

	return updated, nil
}

func (r *Repository) RejectOthers(ctx context.Context, orderID, acceptedBidID string) (int64, error) {
	query := `
		UPDATE bids
		SET status = 'rejected', updated_at = NOW()
		WHERE order_id = $1 AND id <> $2 AND status = 'pending'
	`

	result, err := r.querier.Exec(ctx, query, orderID, acceptedBidID)
	if err != nil {
		return 0, fmt.Errorf("unexpected bid repository rejectothers error: %w", err)
	}

	return result.RowsAffected(), nil
}

// RejectPending отклоняет все ожидающие ставки отмененного заказа.
func (r *Repository) RejectPending(ctx context.Context, orderID string) (int64, error) {
	query := `
		UPDATE bids
		SET status = 'rejected', updated_at = NOW()
		WHERE order_id = $1 AND status = 'pending'
	`

	result, err := r.querier.Exec(ctx, query, orderID)
	if err != nil {
		return 0, fmt.Errorf("unexpected bid repository rejectpending error: %w", err)
	}

	return result.RowsAffected(), nil
}

func uniqueViolation(err error) error {
	switch repository.PgConstraintName(err) {
	case constraintOneAccepted:
		return bid.ErrAnotherBidAccepted
	case constraintOrderAgent:
		return bid.ErrDuplicateBid
	}
	return fmt.Errorf("unexpected bid repository unique violation: %w", err)
}

func scanBid(row scanner) (*entities.Bid, error) {
	bidDB, err := scanBidDB(row)
	if err != nil {
		return nil, err
	}
	return ToDomain(bidDB), nil
}

func scanBidDB(row scanner) (*BidDB, error) {
	var bidDB BidDB
	err := row.Scan(
		&bidDB.ID,
		&bidDB.OrderID,
		&bidDB.DeliveryAgentID,
		&bidDB.Amount,
		&bidDB.EstimatedDeliveryTime,
		&bidDB.Status,
		&bidDB.TransactionID,
		&bidDB.CreatedAt,
		&bidDB.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bidDB, nil
}
