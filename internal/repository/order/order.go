package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jamii/internal/entities"
	"jamii/internal/service/order"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var orderColumns = []string{
	"id", "customer_id", "store_id", "items", "total_amount", "delivery_address",
	"status", "delivery_agent_id", "delivery_fee", "delivery_code", "settlement_status",
	"escrow_transaction_id", "escrow_receipt_url", "confirmed_at", "created_at", "updated_at",
}

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

// Create вставляет заказ. Повторная вставка того же id не ошибка: возвращается
// сохраненный заказ и false.
func (r *Repository) Create(ctx context.Context, orderEntity entities.Order) (*entities.Order, bool, error) {
	orderDB, err := FromDomain(&orderEntity)
	if err != nil {
		return nil, false, err
	}

	query, args, err := qb.
		Insert("orders").
		Columns(orderColumns...).
		Values(
			orderDB.ID, orderDB.CustomerID, orderDB.StoreID, orderDB.Items, orderDB.TotalAmount,
			orderDB.DeliveryAddress, orderDB.Status, orderDB.DeliveryAgentID, orderDB.DeliveryFee,
			orderDB.DeliveryCode, orderDB.SettlementStatus, orderDB.EscrowTransactionID,
			orderDB.EscrowReceiptURL, orderDB.ConfirmedAt, orderDB.CreatedAt, orderDB.UpdatedAt,
		).
		Suffix("ON CONFLICT (id) DO NOTHING RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	created, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.GetByID(ctx, orderEntity.ID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return created, true, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query, args, err := qb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	orderEntity, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	if err := r.loadHistory(ctx, orderEntity); err != nil {
		return nil, err
	}

	return orderEntity, nil
}

func (r *Repository) List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	builder := qb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id")

	if filter.CustomerID != nil {
		builder = builder.Where(sq.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.OpenOrAssignedTo != nil {
		builder = builder.Where(sq.Or{
			sq.Eq{"status": entities.OrderPending.String()},
			sq.Eq{"delivery_agent_id": *filter.OpenOrAssignedTo},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	if err := r.loadHistories(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// Update применяет изменения условно: если заказ существует, но не в ожидаемом
// статусе или состоянии расчета, возвращается ErrStatusConflict.
func (r *Repository) Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error) {
	if orderModify.ID == nil {
		return nil, order.ErrInvalidOrderID
	}

	builder := qb.
		Update("orders")

	// опциональные поля
	if orderModify.Status != nil {
		builder = builder.Set("status", orderModify.Status.String())
	}
	if orderModify.DeliveryAgentID != nil {
		builder = builder.Set("delivery_agent_id", *orderModify.DeliveryAgentID)
	}
	if orderModify.DeliveryFee != nil {
		builder = builder.Set("delivery_fee", *orderModify.DeliveryFee)
	}
	if orderModify.DeliveryCode != nil {
		builder = builder.Set("delivery_code", *orderModify.DeliveryCode)
	}
	if orderModify.ConfirmedAt != nil {
		builder = builder.Set("confirmed_at", *orderModify.ConfirmedAt)
	}
	if orderModify.SettlementStatus != nil {
		builder = builder.Set("settlement_status", orderModify.SettlementStatus.String())
	}
	if orderModify.ClearAssignment {
		builder = builder.
			Set("delivery_agent_id", nil).
			Set("delivery_fee", nil)
	}
	if orderModify.ClearDeliveryCode {
		builder = builder.Set("delivery_code", nil)
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": *orderModify.ID})

	if orderModify.ExpectedStatus != nil {
		builder = builder.Where(sq.Eq{"status": orderModify.ExpectedStatus.String()})
	}
	if len(orderModify.ExpectedSettlement) > 0 {
		builder = builder.Where(sq.Eq{"settlement_status": settlementStrings(orderModify.ExpectedSettlement)})
	}

	query, args, err := builder.
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	updated, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missReason(ctx, *orderModify.ID)
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	if err := r.loadHistory(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *Repository) AddTransaction(ctx context.Context, orderID string, note entities.TransactionNote) error {
	query := `
		INSERT INTO order_transactions (order_id, kind, amount, external_transaction_id, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(
		ctx,
		query,
		orderID,
		note.Kind.String(),
		note.Amount,
		note.ExternalTransactionID,
		note.ActorID,
		note.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("unexpected order repository addtransaction error: %w", err)
	}

	return nil
}

// ListPendingSettlement выбирает заказы в пути, у которых перевод запрошен, но не завершен.
func (r *Repository) ListPendingSettlement(ctx context.Context, updatedBefore time.Time, limit uint64) ([]entities.Order, error) {
	query, args, err := qb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{
			"status":            entities.OrderInTransit.String(),
			"settlement_status": entities.SettlementPending.String(),
		}).
		Where(sq.Lt{"updated_at": updatedBefore}).
		OrderBy("updated_at").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository listpendingsettlement error: %w", err)
	}

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository listpendingsettlement error: %w", err)
	}

	return orders, nil
}

func (r *Repository) missReason(ctx context.Context, id string) error {
	var exists bool
	err := r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("unexpected order repository update error: %w", err)
	}
	if !exists {
		return order.ErrOrderNotFound
	}
	return order.ErrStatusConflict
}

func (r *Repository) queryOrders(ctx context.Context, query string, args ...any) ([]entities.Order, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entities.Order, 0, 8)
	for rows.Next() {
		orderEntity, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *orderEntity)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *Repository) loadHistory(ctx context.Context, orderEntity *entities.Order) error {
	orders := []entities.Order{*orderEntity}
	if err := r.loadHistories(ctx, orders); err != nil {
		return err
	}
	orderEntity.ApplyHistory(orders[0].History)
	return nil
}

func (r *Repository) loadHistories(ctx context.Context, orders []entities.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	query, args, err := qb.
		Select("order_id", "kind", "amount", "external_transaction_id", "actor_id", "created_at").
		From("order_transactions").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected order repository history error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected order repository history error: %w", err)
	}
	defer rows.Close()

	history := make(map[string][]entities.TransactionNote, len(orders))
	for rows.Next() {
		var transactionDB TransactionDB
		err := rows.Scan(
			&transactionDB.OrderID,
			&transactionDB.Kind,
			&transactionDB.Amount,
			&transactionDB.ExternalTransactionID,
			&transactionDB.ActorID,
			&transactionDB.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("unexpected order repository history error: %w", err)
		}
		history[transactionDB.OrderID] = append(history[transactionDB.OrderID], TransactionToDomain(&transactionDB))
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("unexpected order repository history error: %w", err)
	}

	for i := range orders {
		orders[i].ApplyHistory(history[orders[i].ID])
	}
	return nil
}

func scanOrder(row scanner) (*entities.Order, error) {
	var orderDB OrderDB
	err := row.Scan(
		&orderDB.ID,
		&orderDB.CustomerID,
		&orderDB.StoreID,
		&orderDB.Items,
		&orderDB.TotalAmount,
		&orderDB.DeliveryAddress,
		&orderDB.Status,
		&orderDB.DeliveryAgentID,
		&orderDB.DeliveryFee,
		&orderDB.DeliveryCode,
		&orderDB.SettlementStatus,
		&orderDB.EscrowTransactionID,
		&orderDB.EscrowReceiptURL,
		&orderDB.ConfirmedAt,
		&orderDB.CreatedAt,
		&orderDB.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return ToDomain(&orderDB)
}

func columnList() string {
	return strings.Join(orderColumns, ", ")
}
