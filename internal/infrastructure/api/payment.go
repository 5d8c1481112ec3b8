package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/novellea/storefront-client/internal/application"
	"github.com/novellea/storefront-client/internal/domain"
)

// PaymentClient implements application.PaymentGateway over the payment
// service endpoints.
type PaymentClient struct {
	client *Client
}

func NewPaymentClient(client *Client) application.PaymentGateway {
	return &PaymentClient{client: client}
}

type confirmPaymentRequest struct {
	ConfirmationData map[string]any `json:"confirmationData,omitempty"`
}

type cancelPaymentRequest struct {
	Reason string `json:"reason"`
}

func (c *PaymentClient) ListMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	return do[any, []domain.PaymentMethod](c.client, ctx, http.MethodGet, "/payment/methods", nil, "")
}

func (c *PaymentClient) AddMethod(ctx context.Context, method application.NewPaymentMethod) (*domain.PaymentMethod, error) {
	saved, err := do[application.NewPaymentMethod, domain.PaymentMethod](c.client, ctx, http.MethodPost, "/payment/methods", &method, "")
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *PaymentClient) RemoveMethod(ctx context.Context, methodID string) error {
	path := fmt.Sprintf("/payment/methods/%s", methodID)
	_, err := do[any, struct{}](c.client, ctx, http.MethodDelete, path, nil, "")
	return err
}

func (c *PaymentClient) SetDefaultMethod(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
	path := fmt.Sprintf("/payment/methods/%s/default", methodID)
	method, err := do[any, domain.PaymentMethod](c.client, ctx, http.MethodPut, path, nil, "")
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func (c *PaymentClient) InitiatePayment(ctx context.Context, req domain.PaymentRequest, idempotencyKey string) (*domain.PaymentResponse, error) {
	resp, err := do[domain.PaymentRequest, domain.PaymentResponse](c.client, ctx, http.MethodPost, "/payment/initiate", &req, idempotencyKey)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *PaymentClient) PaymentStatus(ctx context.Context, paymentID string) (*domain.PaymentStatusInfo, error) {
	path := fmt.Sprintf("/payment/%s/status", paymentID)
	info, err := do[any, domain.PaymentStatusInfo](c.client, ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *PaymentClient) ConfirmPayment(ctx context.Context, paymentID string, confirmation map[string]any) (*domain.PaymentResponse, error) {
	path := fmt.Sprintf("/payment/%s/confirm", paymentID)
	req := confirmPaymentRequest{ConfirmationData: confirmation}
	resp, err := do[confirmPaymentRequest, domain.PaymentResponse](c.client, ctx, http.MethodPost, path, &req, "")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *PaymentClient) CancelPayment(ctx context.Context, paymentID, reason string) (*domain.PaymentResponse, error) {
	path := fmt.Sprintf("/payment/%s/cancel", paymentID)
	req := cancelPaymentRequest{Reason: reason}
	resp, err := do[cancelPaymentRequest, domain.PaymentResponse](c.client, ctx, http.MethodPost, path, &req, "")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *PaymentClient) Refund(ctx context.Context, paymentID string, cmd application.RefundCommand, idempotencyKey string) (*domain.RefundResponse, error) {
	path := fmt.Sprintf("/payment/%s/refund", paymentID)
	refund, err := do[application.RefundCommand, domain.RefundResponse](c.client, ctx, http.MethodPost, path, &cmd, idempotencyKey)
	if err != nil {
		return nil, err
	}
	return &refund, nil
}

func (c *PaymentClient) RefundHistory(ctx context.Context, paymentID string) ([]domain.RefundResponse, error) {
	path := fmt.Sprintf("/payment/%s/refunds", paymentID)
	return do[any, []domain.RefundResponse](c.client, ctx, http.MethodGet, path, nil, "")
}

func (c *PaymentClient) RefundStatus(ctx context.Context, refundID string) (*domain.RefundResponse, error) {
	path := fmt.Sprintf("/payment/refunds/%s/status", refundID)
	refund, err := do[any, domain.RefundResponse](c.client, ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return &refund, nil
}
