package webhook_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novellea/storefront-client/internal/webhook"
)

const testSecret = "whsec_test"

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(t *testing.T, handler webhook.Handler, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := webhook.NewServer(testSecret, handler, logger)

	req := httptest.NewRequest(http.MethodPost, "/payment/webhook", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("X-Webhook-Signature", signature)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestWebhook_AcceptsSignedEvent(t *testing.T) {
	body := []byte(`{
		"event": "payment.completed",
		"paymentId": "pay-1",
		"orderId": "o1",
		"status": "completed",
		"amount": 708,
		"currency": "INR"
	}`)

	var received webhook.Event
	rec := postWebhook(t, func(_ context.Context, event webhook.Event) error {
		received = event
		return nil
	}, body, sign(body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, webhook.EventPaymentCompleted, received.Event)
	assert.Equal(t, "pay-1", received.PaymentID)
	assert.Equal(t, int64(708), received.Amount)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestWebhook_RejectsBadSignature(t *testing.T) {
	body := []byte(`{"event":"payment.completed","paymentId":"pay-1"}`)

	called := false
	rec := postWebhook(t, func(context.Context, webhook.Event) error {
		called = true
		return nil
	}, body, sign([]byte("different body")))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "unverified payloads never reach the handler")
}

func TestWebhook_RejectsMissingSignature(t *testing.T) {
	body := []byte(`{"event":"payment.completed"}`)

	rec := postWebhook(t, func(context.Context, webhook.Event) error {
		return nil
	}, body, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhook_RejectsMalformedPayload(t *testing.T) {
	body := []byte(`{"event": oops`)

	rec := postWebhook(t, func(context.Context, webhook.Event) error {
		return nil
	}, body, sign(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhook_RejectsOversizedPayload(t *testing.T) {
	body := append([]byte(`{"data":"`), bytes.Repeat([]byte("a"), 2<<20)...)
	body = append(body, `"}`...)

	called := false
	rec := postWebhook(t, func(context.Context, webhook.Event) error {
		called = true
		return nil
	}, body, sign(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestWebhook_HandlerErrorIsServerError(t *testing.T) {
	body := []byte(`{"event":"refund.completed","paymentId":"pay-1"}`)

	rec := postWebhook(t, func(context.Context, webhook.Event) error {
		return errors.New("status lookup failed")
	}, body, sign(body))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
