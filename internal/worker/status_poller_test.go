package worker_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/novellea/storefront-client/internal/application"
	"github.com/novellea/storefront-client/internal/domain"
	"github.com/novellea/storefront-client/internal/worker"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStatusPoller_ResolvesTerminalPayments(t *testing.T) {
	gateway := application.NewMockPaymentGateway()

	var mu sync.Mutex
	polls := 0
	gateway.PaymentStatusFn = func(_ context.Context, paymentID string) (*domain.PaymentStatusInfo, error) {
		mu.Lock()
		defer mu.Unlock()
		polls++
		status := domain.PaymentProcessing
		if polls >= 2 {
			status = domain.PaymentCompleted
		}
		return &domain.PaymentStatusInfo{PaymentID: paymentID, Status: status}, nil
	}

	payments := application.NewPaymentService(gateway, application.NotifierFunc(func(context.Context, string) {}), testLogger())

	resolved := make(chan domain.PaymentStatusInfo, 1)
	poller := worker.NewStatusPoller(payments, time.Millisecond, func(info domain.PaymentStatusInfo) {
		resolved <- info
	}, testLogger())
	poller.Watch("pay-1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Start(ctx)

	select {
	case info := <-resolved:
		assert.Equal(t, "pay-1", info.PaymentID)
		assert.Equal(t, domain.PaymentCompleted, info.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("payment was never resolved")
	}
	cancel()

	// The resolved attempt is forgotten: poll volume stops growing.
	mu.Lock()
	after := polls
	mu.Unlock()
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, after, polls, "terminal attempts are not polled again")
	mu.Unlock()
}

func TestStatusPoller_StopsOnContextCancel(t *testing.T) {
	gateway := application.NewMockPaymentGateway()
	payments := application.NewPaymentService(gateway, application.NotifierFunc(func(context.Context, string) {}), testLogger())
	poller := worker.NewStatusPoller(payments, time.Millisecond, nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop on cancel")
	}
}
