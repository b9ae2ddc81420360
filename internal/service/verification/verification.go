package verification

import (
	"context"
	"fmt"
	"time"

	"jamii/internal/entities"
	"jamii/internal/pkg/errs"
	"jamii/internal/service/access"
	"jamii/pkg/pickup_token"
)

type Service struct {
	orderRepository  OrderRepository
	outboxRepository OutboxRepository
	tokenSigner      TokenSigner
	settler          Settler
	txManager        TxManager
	now              func() time.Time
}

func New(
	orderRepository OrderRepository,
	outboxRepository OutboxRepository,
	tokenSigner TokenSigner,
	settler Settler,
	txManager TxManager,
) *Service {
	return &Service{
		orderRepository:  orderRepository,
		outboxRepository: outboxRepository,
		tokenSigner:      tokenSigner,
		settler:          settler,
		txManager:        txManager,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// PickupCode выдает подписанный payload для передачи заказа курьеру.
// Метка времени ставится в момент выдачи: срок жизни токена отсчитывается
// от нее, и повторный запрос всегда дает свежий код.
func (s *Service) PickupCode(ctx context.Context, orderID string, identity entities.Identity) (*entities.PickupCode, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !access.Has(identity, access.ManageAll) {
		return nil, ErrPickupCodeForbidden
	}

	order, err := s.orderRepository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order.Status != entities.OrderConfirmed {
		return nil, ErrOrderNotConfirmed
	}

	issuedAt := s.now()
	token, err := s.tokenSigner.Encode(pickup_token.NewPayload(order.ID, issuedAt))
	if err != nil {
		return nil, fmt.Errorf("sign pickup code for order %s: %w", order.ID, err)
	}

	return &entities.PickupCode{
		OrderID:  order.ID,
		Token:    token,
		IssuedAt: issuedAt,
	}, nil
}

// VerifyPickup переводит заказ confirmed -> in-transit по отсканированному токену.
func (s *Service) VerifyPickup(ctx context.Context, orderID, token string, identity entities.Identity) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	var updated *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orderRepository.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if !access.IsAssignedAgent(identity, order) {
			return ErrPickupForbidden
		}

		payload, err := s.tokenSigner.Decode(token)
		if err != nil {
			return pickupTokenError(err)
		}
		if err := validatePickupPayload(payload, order.ID); err != nil {
			return err
		}

		if order.Status != entities.OrderConfirmed {
			return ErrPickupStatusConflict
		}

		expected := entities.OrderConfirmed
		inTransit := entities.OrderInTransit
		updated, err = s.orderRepository.Update(ctx, entities.OrderModify{
			ID:             &order.ID,
			ExpectedStatus: &expected,
			Status:         &inTransit,
		})
		if err != nil {
			return fmt.Errorf("confirm pickup: %w", err)
		}

		event, err := entities.NewOrderStatusChanged(updated, expected, identity.UserID, s.now())
		if err != nil {
			return err
		}
		if err := s.outboxRepository.Add(ctx, event); err != nil {
			return fmt.Errorf("add outbox event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, errs.FromTx(err)
	}

	return access.Redact(identity, updated), nil
}

func (s *Service) DeliveryCode(ctx context.Context, orderID string, identity entities.Identity) (*entities.DeliveryCode, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	order, err := s.orderRepository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !access.CanManageOrder(identity, order) {
		return nil, ErrDeliveryCodeForbidden
	}
	if order.DeliveryCode == nil {
		return nil, ErrNoDeliveryCode
	}

	return &entities.DeliveryCode{
		OrderID: order.ID,
		Code:    *order.DeliveryCode,
	}, nil
}

// ConfirmDelivery сверяет код и запускает расчет. Заказ становится delivered
// только после успешного перевода средств, до этого он остается in-transit
// с settlementStatus = pending.
func (s *Service) ConfirmDelivery(ctx context.Context, orderID, code string, identity entities.Identity) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orderRepository.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if !access.IsAssignedAgent(identity, order) && !access.CanManageOrder(identity, order) {
			return ErrDeliveryForbidden
		}
		if order.Status != entities.OrderInTransit {
			return ErrOrderNotInTransit
		}
		if err := checkDeliveryCode(order.DeliveryCode, code); err != nil {
			return err
		}

		expected := entities.OrderInTransit
		requested := entities.SettlementPending
		_, err = s.orderRepository.Update(ctx, entities.OrderModify{
			ID:             &order.ID,
			ExpectedStatus: &expected,
			ExpectedSettlement: []entities.SettlementStatusType{
				entities.SettlementNone,
				entities.SettlementFailed,
				entities.SettlementPending,
			},
			SettlementStatus: &requested,
		})
		if err != nil {
			return fmt.Errorf("request settlement: %w", err)
		}

		event, err := entities.NewSettlementRequested(order.ID, s.now())
		if err != nil {
			return err
		}
		if err := s.outboxRepository.Add(ctx, event); err != nil {
			return fmt.Errorf("add outbox event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, errs.FromTx(err)
	}
	delivered, err := s.settler.Settle(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return access.Redact(identity, delivered), nil
}
