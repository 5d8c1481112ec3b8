// Package worker holds the payment status poller, the fallback path for
// resolving payment attempts when gateway webhooks cannot reach us.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/novellea/storefront-client/internal/application"
	"github.com/novellea/storefront-client/internal/domain"
)

// StatusPoller watches in-flight payment attempts and polls their status
// each interval until the gateway reports a terminal one. Watched ids
// are dropped once resolved.
type StatusPoller struct {
	payments   *application.PaymentService
	interval   time.Duration
	logger     *slog.Logger
	onTerminal func(domain.PaymentStatusInfo)

	mu      sync.Mutex
	watched map[string]struct{}
}

func NewStatusPoller(
	payments *application.PaymentService,
	interval time.Duration,
	onTerminal func(domain.PaymentStatusInfo),
	logger *slog.Logger,
) *StatusPoller {
	return &StatusPoller{
		payments:   payments,
		interval:   interval,
		logger:     logger,
		onTerminal: onTerminal,
		watched:    make(map[string]struct{}),
	}
}

// Watch registers a payment attempt for polling.
func (w *StatusPoller) Watch(paymentID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watched[paymentID] = struct{}{}
}

func (w *StatusPoller) Start(ctx context.Context) {
	w.logger.Info("payment status poller started", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("payment status poller stopping")
			return
		case <-ticker.C:
			w.pollOnce(ctx)
		}
	}
}

func (w *StatusPoller) pollOnce(ctx context.Context) {
	for _, paymentID := range w.snapshot() {
		info, err := w.payments.Status(ctx, paymentID)
		if err != nil {
			w.logger.Warn("payment status poll failed",
				"payment_id", paymentID,
				"error", err,
			)
			continue
		}

		if !info.Status.IsTerminal() {
			continue
		}

		w.logger.Info("payment resolved",
			"payment_id", paymentID,
			"status", info.Status,
		)
		w.forget(paymentID)
		if w.onTerminal != nil {
			w.onTerminal(*info)
		}
	}
}

func (w *StatusPoller) snapshot() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := make([]string, 0, len(w.watched))
	for id := range w.watched {
		ids = append(ids, id)
	}
	return ids
}

func (w *StatusPoller) forget(paymentID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.watched, paymentID)
}
