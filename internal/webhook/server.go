// Package webhook receives payment gateway callbacks. The gateway, not
// the client, decides terminal payment status; this listener is how that
// decision reaches the storefront.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const signatureHeader = "X-Webhook-Signature"

// maxBodyBytes caps the webhook payload; gateway events are a few KB.
const maxBodyBytes = 1 << 20

// Event is one gateway notification. Data carries the method-specific
// payload untouched.
type Event struct {
	Event         string          `json:"event"`
	PaymentID     string          `json:"paymentId"`
	OrderID       string          `json:"orderId"`
	Status        string          `json:"status"`
	Amount        int64           `json:"amount"`
	Currency      string          `json:"currency"`
	TransactionID string          `json:"transactionId,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
	Data          json.RawMessage `json:"data,omitempty"`
}

// Known event names.
const (
	EventPaymentCompleted = "payment.completed"
	EventPaymentFailed    = "payment.failed"
	EventPaymentCancelled = "payment.cancelled"
	EventRefundCompleted  = "refund.completed"
	EventRefundFailed     = "refund.failed"
)

// Handler processes one verified event.
type Handler func(ctx context.Context, event Event) error

type Server struct {
	secret  []byte
	handler Handler
	logger  *slog.Logger
}

func NewServer(secret string, handler Handler, logger *slog.Logger) *Server {
	return &Server{
		secret:  []byte(secret),
		handler: handler,
		logger:  logger,
	}
}

// Router mounts the webhook endpoint behind panic recovery.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(recovery(s.logger))
	r.Post("/payment/webhook", s.handleWebhook)
	return r
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "unreadable body", http.StatusBadRequest)
		return
	}

	if !s.verifySignature(body, r.Header.Get(signatureHeader)) {
		s.logger.Warn("webhook signature mismatch", "remote", r.RemoteAddr)
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	if err := s.handler(r.Context(), event); err != nil {
		s.logger.Error("webhook handler failed",
			"event", event.Event,
			"payment_id", event.PaymentID,
			"error", err,
		)
		http.Error(w, "handler failed", http.StatusInternalServerError)
		return
	}

	s.logger.Info("webhook processed",
		"event", event.Event,
		"payment_id", event.PaymentID,
		"order_id", event.OrderID,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "webhook processed",
	})
}

// verifySignature checks the hex HMAC-SHA256 of the raw body against the
// header value in constant time.
func (s *Server) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
