package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/novellea/storefront-client/internal/domain"
)

// PaymentService orchestrates payment attempts against the gateway. One
// Initiate call creates exactly one attempt bound to one order; a retry
// after failure is a new attempt with a new idempotency key, never a
// mutation of the failed one.
type PaymentService struct {
	gateway  PaymentGateway
	notifier Notifier
	logger   *slog.Logger
	validate *validator.Validate
}

func NewPaymentService(gateway PaymentGateway, notifier Notifier, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
		validate: validator.New(),
	}
}

func (s *PaymentService) Methods(ctx context.Context) ([]domain.PaymentMethod, error) {
	return s.gateway.ListMethods(ctx)
}

// AddMethod saves a payment instrument after client-side validation:
// card numbers must pass the Luhn checksum and UPI addresses the
// local-part@handle shape. Invalid instruments never reach the server.
func (s *PaymentService) AddMethod(ctx context.Context, method NewPaymentMethod) (*domain.PaymentMethod, error) {
	switch method.Type {
	case domain.MethodCard:
		if !domain.ValidCardNumber(method.CardNumber) {
			return nil, domain.NewInvalidCardError()
		}
	case domain.MethodUPI:
		if !domain.ValidUPIAddress(method.Details.VPA) {
			return nil, domain.NewInvalidUPIError(method.Details.VPA)
		}
	case domain.MethodNetBanking, domain.MethodWallet, domain.MethodCOD:
		// No client-side instrument shape to check.
	}

	return s.gateway.AddMethod(ctx, method)
}

func (s *PaymentService) RemoveMethod(ctx context.Context, methodID string) error {
	return s.gateway.RemoveMethod(ctx, methodID)
}

func (s *PaymentService) SetDefaultMethod(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
	return s.gateway.SetDefaultMethod(ctx, methodID)
}

// Initiate starts a payment attempt for an order. Admission checks run
// before submission: the method must be available for the amount
// (COD and UPI carry per-transaction ceilings). The server remains
// authoritative past this gate.
func (s *PaymentService) Initiate(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &domain.DomainError{
			Code:    domain.ErrCodeMissingField,
			Message: "payment request is incomplete",
			Err:     domain.ErrValidation,
		}
	}
	if !domain.MethodAvailable(req.PaymentMethod, req.Amount) {
		return nil, domain.NewMethodUnavailableError(req.PaymentMethod, req.Amount)
	}

	idempotencyKey := uuid.New().String()
	resp, err := s.gateway.InitiatePayment(ctx, req, idempotencyKey)
	if err != nil {
		s.notifier.Notify(ctx, "payment could not be started, please try again")
		return nil, err
	}

	s.logger.Info("payment initiated",
		"payment_id", resp.PaymentID,
		"order_id", resp.OrderID,
		"method", resp.PaymentMethod,
		"status", resp.Status,
	)
	return resp, nil
}

// Status polls one attempt. Idempotent and safe to call repeatedly.
func (s *PaymentService) Status(ctx context.Context, paymentID string) (*domain.PaymentStatusInfo, error) {
	return s.gateway.PaymentStatus(ctx, paymentID)
}

// PollUntilTerminal polls the attempt at the given interval until the
// gateway reports a terminal status or the context ends. The gateway's
// answer, not a simulated outcome, decides the result.
func (s *PaymentService) PollUntilTerminal(ctx context.Context, paymentID string, interval time.Duration) (*domain.PaymentStatusInfo, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		info, err := s.gateway.PaymentStatus(ctx, paymentID)
		if err != nil {
			return nil, err
		}
		if info.Status.IsTerminal() {
			return info, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Confirm completes a two-step method (e.g. UPI collect approval).
func (s *PaymentService) Confirm(ctx context.Context, paymentID string, confirmation map[string]any) (*domain.PaymentResponse, error) {
	return s.gateway.ConfirmPayment(ctx, paymentID, confirmation)
}

func (s *PaymentService) Cancel(ctx context.Context, paymentID, reason string) (*domain.PaymentResponse, error) {
	if reason == "" {
		reason = "User cancelled payment"
	}
	return s.gateway.CancelPayment(ctx, paymentID, reason)
}

// Refund requests a refund against a completed attempt. A nil amount
// means a full refund. Refund progress is tracked on its own record and
// never rewrites the original attempt.
func (s *PaymentService) Refund(ctx context.Context, paymentID string, cmd RefundCommand) (*domain.RefundResponse, error) {
	if cmd.Reason == "" {
		return nil, domain.NewMissingFieldError("refund reason")
	}

	idempotencyKey := uuid.New().String()
	refund, err := s.gateway.Refund(ctx, paymentID, cmd, idempotencyKey)
	if err != nil {
		s.notifier.Notify(ctx, "refund request failed")
		return nil, err
	}

	s.logger.Info("refund requested",
		"refund_id", refund.RefundID,
		"payment_id", refund.PaymentID,
		"amount", refund.Amount,
		"status", refund.Status,
	)
	return refund, nil
}

func (s *PaymentService) RefundHistory(ctx context.Context, paymentID string) ([]domain.RefundResponse, error) {
	return s.gateway.RefundHistory(ctx, paymentID)
}

func (s *PaymentService) RefundStatus(ctx context.Context, refundID string) (*domain.RefundResponse, error) {
	return s.gateway.RefundStatus(ctx, refundID)
}

// ProcessingFee estimates the display-only gateway fee for a method.
func (s *PaymentService) ProcessingFee(amount int64, method domain.PaymentMethodType) float64 {
	return domain.ProcessingFee(amount, method)
}
