package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/forgeline/rfq-service/internal/usecase"
)

// BackgroundTasks runs the periodic jobs of the service. All loops stop when
// the context is cancelled.
type BackgroundTasks struct {
	NegotiationUsecase usecase.NegotiationUsecase
	ExpiryInterval     time.Duration
}

func NewBackgroundTasks(negotiationUC usecase.NegotiationUsecase, expiryInterval time.Duration) *BackgroundTasks {
	if expiryInterval <= 0 {
		expiryInterval = 30 * time.Second
	}
	return &BackgroundTasks{
		NegotiationUsecase: negotiationUC,
		ExpiryInterval:     expiryInterval,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startExpirySweep(ctx)
}

func (bt *BackgroundTasks) startExpirySweep(ctx context.Context) {
	ticker := time.NewTicker(bt.ExpiryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, err := bt.NegotiationUsecase.ExpireOverdueNegotiations(ctx)
			if err != nil {
				slog.Error("expiry sweep failed", "error", err)
				continue
			}
			if expired > 0 {
				slog.Info("expiry sweep finished", "expired", expired)
			}
		}
	}
}
