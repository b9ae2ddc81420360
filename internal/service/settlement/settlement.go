package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jamii/internal/entities"
	"jamii/internal/pkg/errs"

	"github.com/google/uuid"
)

type Service struct {
	orderRepository   OrderRepository
	accountRepository AccountRepository
	paymentGateway    PaymentGateway
	outboxRepository  OutboxRepository
	txManager         TxManager
	now               func() time.Time
}

func New(
	orderRepository OrderRepository,
	accountRepository AccountRepository,
	paymentGateway PaymentGateway,
	outboxRepository OutboxRepository,
	txManager TxManager,
) *Service {
	return &Service{
		orderRepository:   orderRepository,
		accountRepository: accountRepository,
		paymentGateway:    paymentGateway,
		outboxRepository:  outboxRepository,
		txManager:         txManager,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

func ReleaseKey(orderID string) string {
	return "release:" + orderID
}

// Settle переводит средства из escrow магазину и курьеру и только затем
// отмечает заказ доставленным. Повторный вызов безопасен: перевод идет с тем же
// ключом идемпотентности, а доставленный заказ возвращается как есть.
func (s *Service) Settle(ctx context.Context, orderID string) (*entities.Order, error) {
	if uuid.Validate(orderID) != nil {
		return nil, ErrInvalidOrderID
	}

	order, err := s.orderRepository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	switch {
	case order.Status == entities.OrderDelivered:
		return order, nil
	case order.Status != entities.OrderInTransit:
		return nil, ErrOrderNotInTransit
	case order.SettlementStatus != entities.SettlementPending:
		return nil, ErrSettlementNotRequested
	case order.DeliveryAgentID == nil || order.DeliveryFee == nil:
		return nil, ErrMissingAssignment
	}

	req, err := s.releaseRequest(ctx, order)
	if err != nil {
		if errors.Is(err, ErrLedgerAccountMissing) {
			return nil, s.markFailed(ctx, order, err)
		}
		return nil, err
	}

	receipt, err := s.paymentGateway.Release(ctx, req)
	if err != nil {
		err = fmt.Errorf("release payment for order %s: %w", order.ID, err)
		if paymentErr, ok := errs.AsPaymentError(err); ok && !paymentErr.Retryable {
			return nil, s.markFailed(ctx, order, err)
		}
		return nil, err
	}

	return s.complete(ctx, order, receipt)
}

// SettlePending повторяет расчет для заказов, застрявших в settlementStatus = pending
// дольше minAge. Возвращает число доставленных заказов и все ошибки по отдельным заказам.
func (s *Service) SettlePending(ctx context.Context, minAge time.Duration, limit uint64) (int, error) {
	orders, err := s.orderRepository.ListPendingSettlement(ctx, s.now().Add(-minAge), limit)
	if err != nil {
		return 0, fmt.Errorf("list pending settlements: %w", err)
	}

	var (
		settled int
		failed  []error
	)
	for _, order := range orders {
		if ctx.Err() != nil {
			failed = append(failed, ctx.Err())
			break
		}
		if _, err := s.Settle(ctx, order.ID); err != nil {
			failed = append(failed, fmt.Errorf("settle order %s: %w", order.ID, err))
			continue
		}
		settled++
	}

	return settled, errors.Join(failed...)
}

func (s *Service) releaseRequest(ctx context.Context, order *entities.Order) (entities.ReleaseRequest, error) {
	storeAccount, err := s.account(ctx, order.StoreID)
	if err != nil {
		return entities.ReleaseRequest{}, err
	}
	agentAccount, err := s.account(ctx, *order.DeliveryAgentID)
	if err != nil {
		return entities.ReleaseRequest{}, err
	}

	fee := *order.DeliveryFee
	return entities.ReleaseRequest{
		IdempotencyKey:      ReleaseKey(order.ID),
		EscrowTransactionID: order.EscrowTransactionID,
		StoreAccount:        storeAccount,
		DeliveryAccount:     agentAccount,
		StoreAmount:         order.TotalAmount.Sub(fee),
		DeliveryAgentAmount: fee,
	}, nil
}

func (s *Service) account(ctx context.Context, ownerID string) (string, error) {
	account, err := s.accountRepository.GetAccount(ctx, ownerID)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return "", ErrLedgerAccountMissing.WithCause(fmt.Errorf("owner %s", ownerID))
	case err != nil:
		return "", fmt.Errorf("get ledger account of %s: %w", ownerID, err)
	}
	return account, nil
}

func (s *Service) complete(ctx context.Context, order *entities.Order, receipt *entities.ReleaseReceipt) (*entities.Order, error) {
	now := s.now()

	var delivered *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		expected := entities.OrderInTransit
		status := entities.OrderDelivered
		settled := entities.SettlementSettled

		updated, err := s.orderRepository.Update(ctx, entities.OrderModify{
			ID:                 &order.ID,
			ExpectedStatus:     &expected,
			ExpectedSettlement: []entities.SettlementStatusType{entities.SettlementPending},
			Status:             &status,
			SettlementStatus:   &settled,
			ClearDeliveryCode:  true,
		})
		if err != nil {
			return fmt.Errorf("mark order delivered: %w", err)
		}

		note := entities.TransactionNote{
			Kind:                  entities.TransactionDeliveryConfirmed,
			Amount:                order.TotalAmount,
			Timestamp:             now,
			ExternalTransactionID: receipt.TransactionID,
			ActorID:               *order.DeliveryAgentID,
		}
		if err := s.orderRepository.AddTransaction(ctx, order.ID, note); err != nil {
			return fmt.Errorf("record delivery confirmed: %w", err)
		}
		updated.ApplyHistory(append(updated.History, note))

		event, err := entities.NewOrderStatusChanged(updated, expected, *order.DeliveryAgentID, now)
		if err != nil {
			return err
		}
		if err := s.outboxRepository.Add(ctx, event); err != nil {
			return fmt.Errorf("add outbox event: %w", err)
		}

		delivered = updated
		return nil
	})
	if err == nil {
		return delivered, nil
	}
	if err = errs.FromTx(err); !errors.Is(err, errs.ErrInvalidState) {
		return nil, err
	}

	// параллельный вызов мог завершить расчет раньше
	current, getErr := s.orderRepository.GetByID(ctx, order.ID)
	if getErr == nil && current.Status == entities.OrderDelivered {
		return current, nil
	}
	return nil, ErrSettlementStatusChanged.WithCause(err)
}

func (s *Service) markFailed(ctx context.Context, order *entities.Order, cause error) error {
	expected := entities.OrderInTransit
	failed := entities.SettlementFailed

	_, err := s.orderRepository.Update(ctx, entities.OrderModify{
		ID:                 &order.ID,
		ExpectedStatus:     &expected,
		ExpectedSettlement: []entities.SettlementStatusType{entities.SettlementPending},
		SettlementStatus:   &failed,
	})
	if err != nil {
		return errors.Join(cause, fmt.Errorf("mark settlement failed: %w", err))
	}
	return cause
}
