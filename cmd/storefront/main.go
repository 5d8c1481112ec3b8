package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/novellea/storefront-client/internal/application"
	"github.com/novellea/storefront-client/internal/config"
	"github.com/novellea/storefront-client/internal/domain"
	"github.com/novellea/storefront-client/internal/infrastructure/api"
	"github.com/novellea/storefront-client/internal/session"
	"github.com/novellea/storefront-client/internal/webhook"
	"github.com/novellea/storefront-client/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting storefront client",
		"api_base_url", cfg.API.BaseURL,
		"log_level", cfg.Logger.Level,
	)

	sess := session.NewStore(cfg.Session.Path, logger)
	if err := sess.Load(); err != nil {
		logger.Error("failed to restore session", "error", err)
		os.Exit(1)
	}
	if user, ok := sess.User(); ok {
		logger.Info("session restored", "user_id", user.ID)
	}

	client := api.NewClient(cfg.API, cfg.Retry, cfg.Breaker, sess, logger,
		api.WithAuthExpiredHook(func() {
			logger.Warn("session expired, re-authentication required",
				"login_path", cfg.API.LoginPath,
			)
		}),
	)

	notifier := application.NotifierFunc(func(ctx context.Context, message string) {
		logger.Warn("user notification", "message", message)
	})

	cartService := application.NewCartService(api.NewCartClient(client), sess, notifier, logger)
	orderService := application.NewOrderService(api.NewOrderClient(client), notifier, logger)
	paymentService := application.NewPaymentService(api.NewPaymentClient(client), notifier, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poller := worker.NewStatusPoller(
		paymentService,
		cfg.Poller.Interval,
		func(info domain.PaymentStatusInfo) {
			logger.Info("payment reached terminal status",
				"payment_id", info.PaymentID,
				"order_id", info.OrderID,
				"status", info.Status,
			)
		},
		logger,
	)
	go poller.Start(ctx)

	webhookServer := webhook.NewServer(cfg.Webhook.Secret, func(ctx context.Context, event webhook.Event) error {
		// The gateway's webhook is the source of truth for terminal
		// payment status; the poller is only the fallback.
		switch event.Event {
		case webhook.EventPaymentCompleted, webhook.EventPaymentFailed, webhook.EventPaymentCancelled:
			info, err := paymentService.Status(ctx, event.PaymentID)
			if err != nil {
				return err
			}
			logger.Info("payment resolved via webhook",
				"payment_id", info.PaymentID,
				"status", info.Status,
			)
		case webhook.EventRefundCompleted, webhook.EventRefundFailed:
			logger.Info("refund resolved via webhook",
				"payment_id", event.PaymentID,
				"event", event.Event,
			)
		}
		return nil
	}, logger)

	server := &http.Server{
		Addr:         cfg.Webhook.Addr,
		Handler:      webhookServer.Router(),
		ReadTimeout:  cfg.Webhook.ReadTimeout,
		WriteTimeout: cfg.Webhook.WriteTimeout,
	}

	go func() {
		logger.Info("webhook listener started", "addr", cfg.Webhook.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("webhook listener failed", "error", err)
			stop()
		}
	}()

	if sess.Authenticated() {
		warmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if cart, err := cartService.Cart(warmCtx); err != nil {
			logger.Warn("cart warm-up failed", "error", err)
		} else {
			logger.Info("cart loaded",
				"items", cart.ItemCount,
				"total", cart.Total,
			)
		}
		if page, err := orderService.List(warmCtx, application.OrderQuery{Limit: 5}); err != nil {
			logger.Warn("order warm-up failed", "error", err)
		} else {
			logger.Info("recent orders loaded", "count", len(page.Orders), "total", page.Total)
		}
		cancel()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("webhook listener shutdown failed", "error", err)
	}
}
