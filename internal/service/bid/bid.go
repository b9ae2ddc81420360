package bid

import (
	"context"
	"fmt"
	"time"

	"jamii/internal/entities"
	"jamii/internal/pkg/errs"
	"jamii/internal/service/access"

	"github.com/google/uuid"
)

type Service struct {
	repository       Repository
	orderRepository  OrderRepository
	outboxRepository OutboxRepository
	codeGenerator    CodeGenerator
	txManager        TxManager
	now              func() time.Time
}

func New(
	repository Repository,
	orderRepository OrderRepository,
	outboxRepository OutboxRepository,
	codeGenerator CodeGenerator,
	txManager TxManager,
) *Service {
	return &Service{
		repository:       repository,
		orderRepository:  orderRepository,
		outboxRepository: outboxRepository,
		codeGenerator:    codeGenerator,
		txManager:        txManager,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// CreateBid принимает ставку курьера, пока заказ в pending, и пишет в журнал
// заказа заметку bidPlaced.
func (s *Service) CreateBid(ctx context.Context, bidCreate entities.BidCreate, identity entities.Identity) (*entities.Bid, error) {
	if !access.Has(identity, access.PlaceBid) {
		return nil, ErrOnlyAgentsCanBid
	}

	now := s.now()
	if err := validateBidCreate(bidCreate, now); err != nil {
		return nil, err
	}

	var created *entities.Bid
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orderRepository.GetByID(ctx, bidCreate.OrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if order.Status != entities.OrderPending {
			return ErrOrderNotOpen
		}
		if bidCreate.Amount.GreaterThanOrEqual(order.TotalAmount) {
			return ErrAmountExceedsTotal
		}

		created, err = s.repository.Create(ctx, entities.Bid{
			ID:                    uuid.NewString(),
			OrderID:               order.ID,
			DeliveryAgentID:       identity.UserID,
			Amount:                bidCreate.Amount,
			EstimatedDeliveryTime: bidCreate.EstimatedDeliveryTime.UTC(),
			Status:                entities.BidPending,
			CreatedAt:             now,
			UpdatedAt:             now,
		})
		if err != nil {
			return fmt.Errorf("create bid: %w", err)
		}

		err = s.orderRepository.AddTransaction(ctx, order.ID, entities.TransactionNote{
			Kind:                  entities.TransactionBidPlaced,
			Amount:                created.Amount,
			Timestamp:             now,
			ExternalTransactionID: created.ID,
			ActorID:               identity.UserID,
		})
		if err != nil {
			return fmt.Errorf("record bid placed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, errs.FromTx(err)
	}

	return created, nil
}

// ListBidsForOrder: курьер видит только свои ставки, остальные роли
// видят все ставки доступного им заказа.
func (s *Service) ListBidsForOrder(ctx context.Context, orderID string, identity entities.Identity) ([]entities.Bid, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}

	order, err := s.orderRepository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !access.CanReadOrder(identity, order) {
		return nil, ErrBidsForbidden
	}

	var agentID *string
	if identity.Role == entities.RoleDelivery {
		agentID = &identity.UserID
	}

	bids, err := s.repository.ListByOrder(ctx, order.ID, agentID)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	return bids, nil
}

// AcceptBid принимает одну ставку и в той же транзакции отклоняет остальные,
// назначает курьера и выпускает код доставки. Заказ переводится из pending
// условной записью, поэтому из двух конкурентных вызовов проходит один,
// второй получает ErrInvalidState.
func (s *Service) AcceptBid(ctx context.Context, orderID, bidID string, identity entities.Identity) (*entities.BidAcceptance, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !isValidID(bidID) {
		return nil, ErrInvalidBidID
	}

	code, err := s.codeGenerator.Generate()
	if err != nil {
		return nil, fmt.Errorf("accept bid %s: %w", bidID, err)
	}

	var acceptance entities.BidAcceptance
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orderRepository.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if !access.CanManageOrder(identity, order) {
			return ErrAcceptForbidden
		}
		if order.Status != entities.OrderPending {
			return fmt.Errorf("order %s is %s: %w", order.ID, order.Status, ErrOrderNotOpen)
		}

		bid, err := s.repository.GetByID(ctx, bidID)
		if err != nil {
			return fmt.Errorf("get bid: %w", err)
		}
		if bid.OrderID != order.ID {
			return ErrBidNotForOrder
		}
		if bid.Status != entities.BidPending {
			return ErrBidAlreadyResolved
		}

		now := s.now()
		expected := entities.OrderPending
		confirmed := entities.OrderConfirmed
		updated, err := s.orderRepository.Update(ctx, entities.OrderModify{
			ID:              &order.ID,
			ExpectedStatus:  &expected,
			Status:          &confirmed,
			DeliveryAgentID: &bid.DeliveryAgentID,
			DeliveryFee:     &bid.Amount,
			DeliveryCode:    &code,
			ConfirmedAt:     &now,
		})
		if err != nil {
			return fmt.Errorf("confirm order: %w", err)
		}

		accepted, err := s.repository.UpdateStatus(ctx, bid.ID, entities.BidPending, entities.BidAccepted)
		if err != nil {
			return fmt.Errorf("accept bid: %w", err)
		}

		rejected, err := s.repository.RejectOthers(ctx, order.ID, bid.ID)
		if err != nil {
			return fmt.Errorf("reject competing bids: %w", err)
		}

		event, err := entities.NewOrderStatusChanged(updated, expected, identity.UserID, now)
		if err != nil {
			return err
		}
		if err := s.outboxRepository.Add(ctx, event); err != nil {
			return fmt.Errorf("add outbox event: %w", err)
		}

		acceptance = entities.BidAcceptance{
			Order:    updated,
			Bid:      accepted,
			Rejected: rejected,
		}
		return nil
	})
	if err != nil {
		return nil, errs.FromTx(err)
	}

	return &acceptance, nil
}
