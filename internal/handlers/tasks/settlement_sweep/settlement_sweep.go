package settlement_sweep

import (
	"context"
	"time"

	"jamii/pkg/logger"
)

type Service interface {
	SettlePending(ctx context.Context, minAge time.Duration, limit uint64) (int, error)
}

// SettlementSweep добивает расчеты, которые застряли в pending:
// сообщение потерялось или воркер упал между списанием и записью.
type SettlementSweep struct {
	log      logger.Logger
	service  Service
	interval time.Duration
	minAge   time.Duration
	batch    uint64
}

func NewSettlementSweep(log logger.Logger, service Service, interval, minAge time.Duration, batch int) *SettlementSweep {
	return &SettlementSweep{
		log:      log,
		service:  service,
		interval: interval,
		minAge:   minAge,
		batch:    uint64(batch),
	}
}

func (s *SettlementSweep) TTL() time.Duration {
	return s.interval
}

func (s *SettlementSweep) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	settled, err := s.service.SettlePending(ctxWithTimeout, s.minAge, s.batch)

	if settled > 0 {
		s.log.With(
			logger.NewField("settled_orders", settled),
		).Info("settlement sweep")
	}

	// отдельные заказы повторятся на следующем тике, задача не считается упавшей
	if err != nil {
		s.log.With(
			logger.NewField("error", err),
		).Warn("settlement sweep left orders pending")
	}

	return nil
}

func (s *SettlementSweep) Info() string {
	return "settlement sweep"
}
