package settlement_requested

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"jamii/internal/entities"
	"jamii/internal/pkg/errs"
	"jamii/pkg/logger"

	"github.com/IBM/sarama"
)

type Handler struct {
	settlementService        Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, settlementService Service, timeout time.Duration) *Handler {
	return &Handler{
		settlementService:        settlementService,
		log:                      log.With(logger.NewField("handler", entities.EventSettlementRequested.String())),
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("settlement.requested: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			if shouldExit := h.messageProcessing(sess, message); shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("settlement.requested: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing возвращает true, если ConsumeClaim нужно прервать без коммита офсета.
// Сообщение тогда будет прочитано повторно, Settle идемпотентен.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event entities.SettlementRequestedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil || event.OrderID == "" {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("settlement.requested handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("offset", message.Offset),
	)

	order, err := h.settlementService.Settle(ctx, event.OrderID)
	if err != nil {
		paymentErr, isPayment := errs.AsPaymentError(err)
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("settlement.requested handler context cancelled, message will be reprocessed")
			return true

		case isPayment && paymentErr.Retryable:
			// добьет settlement sweep
			msgLog.With(
				logger.NewField("error", err),
			).Warn("settlement.requested ledger unavailable, left pending")

		case errors.Is(err, errs.ErrPayment):
			msgLog.With(
				logger.NewField("error", err),
			).Error("settlement.requested payment declined")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("settlement.requested handler failed to settle order")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("status", order.Status.String()),
		logger.NewField("settlement", order.SettlementStatus.String()),
	).Info("settlement.requested: processed")

	sess.MarkMessage(message, "")
	return false
}
