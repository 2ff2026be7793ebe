package scheduler

import (
	"context"
	"time"

	"offerte-engine-backend/platform/logger"
)

const defaultSweepInterval = time.Hour

// QuoteExpirer marks overdue sent quotes as verlopen.
type QuoteExpirer interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

// VerloopSweeper periodically expires sent quotes past their validity date.
type VerloopSweeper struct {
	expirer  QuoteExpirer
	log      *logger.Logger
	interval time.Duration
}

func NewVerloopSweeper(expirer QuoteExpirer, log *logger.Logger, interval time.Duration) *VerloopSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	return &VerloopSweeper{
		expirer:  expirer,
		log:      log,
		interval: interval,
	}
}

func (s *VerloopSweeper) Run(ctx context.Context) {
	if s == nil || s.expirer == nil {
		return
	}

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *VerloopSweeper) sweep(ctx context.Context) {
	expired, err := s.expirer.ExpireOverdue(ctx)
	if err != nil {
		s.log.Warn("quote expiry sweep failed", "error", err)
		return
	}

	if expired > 0 {
		s.log.Info("quote expiry sweep marked quotes verlopen", "expired", expired)
	}
}
