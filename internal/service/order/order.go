package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jamii/internal/entities"
	"jamii/internal/pkg/errs"
	"jamii/internal/service/access"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// namespace для детерминированных id заказов по ключу идемпотентности
var orderNamespace = uuid.MustParse("6f1c2b7e-3d4a-5e8f-9a0b-1c2d3e4f5a6b")

type Service struct {
	repository        Repository
	productRepository ProductRepository
	accountRepository AccountRepository
	bidRepository     BidRepository
	outboxRepository  OutboxRepository
	paymentGateway    PaymentGateway
	txManager         TxManager
}

func New(
	repository Repository,
	productRepository ProductRepository,
	accountRepository AccountRepository,
	bidRepository BidRepository,
	outboxRepository OutboxRepository,
	paymentGateway PaymentGateway,
	txManager TxManager,
) *Service {
	return &Service{
		repository:        repository,
		productRepository: productRepository,
		accountRepository: accountRepository,
		bidRepository:     bidRepository,
		outboxRepository:  outboxRepository,
		paymentGateway:    paymentGateway,
		txManager:         txManager,
	}
}

// CreateOrder резервирует оплату и только после успешного escrow сохраняет заказ.
// Повтор с тем же ключом идемпотентности возвращает уже созданный заказ.
func (s *Service) CreateOrder(ctx context.Context, orderCreate entities.OrderCreate, identity entities.Identity) (*entities.Order, error) {
	if !access.Has(identity, access.PlaceOrder) {
		return nil, ErrOnlyCustomersCanOrder
	}
	if err := validateOrderCreate(orderCreate); err != nil {
		return nil, err
	}

	orderID := newOrderID(identity.UserID, orderCreate.IdempotencyKey)
	if orderCreate.IdempotencyKey != "" {
		existing, err := s.repository.GetByID(ctx, orderID)
		switch {
		case err == nil:
			return existing, nil
		case !errors.Is(err, ErrOrderNotFound):
			return nil, fmt.Errorf("lookup idempotent order: %w", err)
		}
	}

	items, total, err := s.priceItems(ctx, orderCreate)
	if err != nil {
		return nil, err
	}

	storeAccount, err := s.accountRepository.GetAccount(ctx, orderCreate.StoreID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrStoreNotPayable
		}
		return nil, fmt.Errorf("get store account: %w", err)
	}

	receipt, err := s.paymentGateway.Escrow(ctx, entities.EscrowRequest{
		IdempotencyKey: "escrow:" + orderID,
		Amount:         total,
		BuyerAccount:   orderCreate.PaymentProof.BuyerAccount,
		StoreAccount:   storeAccount,
		Authorization:  orderCreate.PaymentProof.Authorization,
	})
	if err != nil {
		return nil, fmt.Errorf("escrow payment: %w", err)
	}

	now := time.Now().UTC()
	order := entities.Order{
		ID:                  orderID,
		CustomerID:          identity.UserID,
		StoreID:             orderCreate.StoreID,
		Items:               items,
		TotalAmount:         total,
		DeliveryAddress:     orderCreate.DeliveryAddress,
		Status:              entities.OrderPending,
		SettlementStatus:    entities.SettlementNone,
		EscrowTransactionID: receipt.TransactionID,
		EscrowReceiptURL:    receipt.ReceiptURL,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	var created *entities.Order
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		stored, isNew, err := s.repository.Create(ctx, order)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		created = stored
		if !isNew {
			return nil
		}

		note := entities.TransactionNote{
			Kind:                  entities.TransactionOrderPlaced,
			Amount:                total,
			Timestamp:             now,
			ExternalTransactionID: receipt.TransactionID,
			ActorID:               identity.UserID,
		}
		if err := s.repository.AddTransaction(ctx, stored.ID, note); err != nil {
			return fmt.Errorf("record order placed: %w", err)
		}
		stored.ApplyHistory(append(stored.History, note))

		return s.publishStatusChanged(ctx, stored, "", identity.UserID, now)
	})
	if err != nil {
		return nil, errs.FromTx(err)
	}

	return created, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string, identity entities.Identity) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	order, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !access.CanReadOrder(identity, order) {
		return nil, ErrOrderForbidden
	}

	return access.Redact(identity, order), nil
}

func (s *Service) ListOrders(ctx context.Context, identity entities.Identity) ([]entities.Order, error) {
	filter, ok := access.OrderFilter(identity)
	if !ok {
		return nil, ErrOrderForbidden
	}

	orders, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return access.RedactList(identity, orders), nil
}

// SetStatus меняет статус вручную. Напрямую доступна только отмена, остальные
// переходы выполняются через принятие ставки, pickup и подтверждение доставки.
func (s *Service) SetStatus(ctx context.Context, orderID string, status entities.OrderStatusType, identity entities.Identity) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	var updated *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.repository.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if !access.CanReadOrder(identity, order) {
			return ErrOrderForbidden
		}
		if !entities.CanTransition(order.Status, status) {
			return ErrInvalidTransition
		}
		if status != entities.OrderCancelled {
			return ErrTransitionNeedsWorkflow
		}
		if !access.CanCancel(identity, order) {
			return ErrCancelForbidden
		}
		if order.SettlementStatus == entities.SettlementPending {
			return ErrSettlementInProgress
		}

		previous := order.Status
		updated, err = s.repository.Update(ctx, entities.OrderModify{
			ID:                &order.ID,
			ExpectedStatus:    &previous,
			Status:            &status,
			ClearAssignment:   true,
			ClearDeliveryCode: true,
		})
		if err != nil {
			return fmt.Errorf("cancel order: %w", err)
		}

		if _, err := s.bidRepository.RejectPending(ctx, order.ID); err != nil {
			return fmt.Errorf("reject pending bids: %w", err)
		}

		return s.publishStatusChanged(ctx, updated, previous, identity.UserID, time.Now().UTC())
	})
	if err != nil {
		return nil, errs.FromTx(err)
	}

	return access.Redact(identity, updated), nil
}

func (s *Service) priceItems(ctx context.Context, orderCreate entities.OrderCreate) ([]entities.OrderItem, decimal.Decimal, error) {
	ids := make([]string, 0, len(orderCreate.Items))
	for _, item := range orderCreate.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepository.GetByIDs(ctx, orderCreate.StoreID, ids)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("get products: %w", err)
	}

	prices := make(map[string]decimal.Decimal, len(products))
	for _, product := range products {
		prices[product.ID] = product.Price
	}

	items := make([]entities.OrderItem, 0, len(orderCreate.Items))
	total := decimal.Zero
	for _, item := range orderCreate.Items {
		price, ok := prices[item.ProductID]
		if !ok {
			return nil, decimal.Zero, ErrUnknownProduct
		}
		items = append(items, entities.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(item.Quantity)))
	}

	if !total.IsPositive() {
		return nil, decimal.Zero, ErrZeroTotal
	}
	return items, total, nil
}

func (s *Service) publishStatusChanged(ctx context.Context, order *entities.Order, previous entities.OrderStatusType, actorID string, at time.Time) error {
	event, err := entities.NewOrderStatusChanged(order, previous, actorID, at)
	if err != nil {
		return err
	}
	if err := s.outboxRepository.Add(ctx, event); err != nil {
		return fmt.Errorf("add outbox event: %w", err)
	}
	return nil
}

func newOrderID(customerID, idempotencyKey string) string {
	if idempotencyKey == "" {
		return uuid.NewString()
	}
	return uuid.NewSHA1(orderNamespace, []byte(customerID+":"+idempotencyKey)).String()
}
