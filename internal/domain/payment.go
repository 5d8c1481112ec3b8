package domain

import (
	"math"
	"regexp"
	"time"
	"unicode"
)

// PaymentMethodType identifies a payment instrument family.
type PaymentMethodType string

const (
	MethodCard       PaymentMethodType = "card"
	MethodUPI        PaymentMethodType = "upi"
	MethodNetBanking PaymentMethodType = "netbanking"
	MethodWallet     PaymentMethodType = "wallet"
	MethodCOD        PaymentMethodType = "cod"
)

// PaymentStatus is the state of one payment attempt. An attempt is bound
// 1:1 to an order; retries create a new attempt rather than mutating a
// failed one.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCancelled  PaymentStatus = "cancelled"
)

// IsTerminal reports whether the attempt can no longer change state.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentCompleted, PaymentFailed, PaymentCancelled:
		return true
	case PaymentPending, PaymentProcessing:
		return false
	}
	return false
}

func (s PaymentStatus) Label() string {
	switch s {
	case PaymentPending:
		return "Pending"
	case PaymentProcessing:
		return "Processing"
	case PaymentCompleted:
		return "Completed"
	case PaymentFailed:
		return "Failed"
	case PaymentCancelled:
		return "Cancelled"
	}
	return string(s)
}

// MethodDetails carries the per-family instrument fields. Only the
// fields for the method's type are populated.
type MethodDetails struct {
	Last4       string `json:"last4,omitempty"`
	Brand       string `json:"brand,omitempty"`
	ExpiryMonth int    `json:"expiryMonth,omitempty"`
	ExpiryYear  int    `json:"expiryYear,omitempty"`
	VPA         string `json:"vpa,omitempty"`
	WalletName  string `json:"walletName,omitempty"`
	BankName    string `json:"bankName,omitempty"`
}

type PaymentMethod struct {
	ID        string            `json:"id"`
	Type      PaymentMethodType `json:"type"`
	Name      string            `json:"name"`
	Details   MethodDetails     `json:"details"`
	IsDefault bool              `json:"isDefault"`
	CreatedAt time.Time         `json:"createdAt"`
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type PaymentRequest struct {
	OrderID         string            `json:"orderId" validate:"required"`
	Amount          int64             `json:"amount" validate:"required,gt=0"`
	Currency        string            `json:"currency" validate:"required"`
	PaymentMethodID string            `json:"paymentMethodId"`
	PaymentMethod   PaymentMethodType `json:"paymentMethod" validate:"required"`
	CustomerInfo    CustomerInfo      `json:"customerInfo"`
	BillingAddress  Address           `json:"billingAddress"`
	ReturnURL       string            `json:"returnUrl,omitempty"`
	WebhookURL      string            `json:"webhookUrl,omitempty"`
	Metadata        map[string]any    `json:"metadata,omitempty"`
}

type PaymentResponse struct {
	PaymentID     string            `json:"paymentId"`
	OrderID       string            `json:"orderId"`
	Status        PaymentStatus     `json:"status"`
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	PaymentMethod PaymentMethodType `json:"paymentMethod"`
	TransactionID string            `json:"transactionId,omitempty"`
	RedirectURL   string            `json:"redirectUrl,omitempty"`
	QRCode        string            `json:"qrCode,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	CompletedAt   *time.Time        `json:"completedAt,omitempty"`
	FailureReason string            `json:"failureReason,omitempty"`
}

// RefundState tracks a refund independently of the original payment
// attempt; a completed refund never rewrites the attempt's record.
type RefundState string

const (
	RefundProcessing RefundState = "processing"
	RefundCompleted  RefundState = "completed"
	RefundFailed     RefundState = "failed"
)

// PaymentStatusInfo is the poll view of an attempt, including any refund
// progress against it.
type PaymentStatusInfo struct {
	PaymentID            string            `json:"paymentId"`
	OrderID              string            `json:"orderId"`
	Status               PaymentStatus     `json:"status"`
	Amount               int64             `json:"amount"`
	Currency             string            `json:"currency"`
	TransactionID        string            `json:"transactionId,omitempty"`
	GatewayTransactionID string            `json:"gatewayTransactionId,omitempty"`
	PaymentMethod        PaymentMethodType `json:"paymentMethod"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
	CompletedAt          *time.Time        `json:"completedAt,omitempty"`
	FailureReason        string            `json:"failureReason,omitempty"`
	RefundAmount         int64             `json:"refundAmount,omitempty"`
	RefundStatus         string            `json:"refundStatus,omitempty"`
}

type RefundResponse struct {
	RefundID        string      `json:"refundId"`
	PaymentID       string      `json:"paymentId"`
	OrderID         string      `json:"orderId"`
	Amount          int64       `json:"amount"`
	Status          RefundState `json:"status"`
	Reason          string      `json:"reason"`
	GatewayRefundID string      `json:"gatewayRefundId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	CompletedAt     *time.Time  `json:"completedAt,omitempty"`
	FailureReason   string      `json:"failureReason,omitempty"`
}

// Per-transaction amount ceilings for methods with gateway-imposed
// limits. Client-side admission only; the server remains authoritative.
const (
	CODLimit int64 = 50_000
	UPILimit int64 = 100_000
)

// ValidCardNumber runs the Luhn checksum over the digits of the card
// number, ignoring spaces and separators.
func ValidCardNumber(cardNumber string) bool {
	var digits []int
	for _, r := range cardNumber {
		if unicode.IsDigit(r) {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) == 0 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

var upiPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+$`)

// ValidUPIAddress checks the local-part@handle shape of a virtual
// payment address.
func ValidUPIAddress(vpa string) bool {
	return upiPattern.MatchString(vpa)
}

// MethodAvailable gates a payment method by transaction amount.
func MethodAvailable(method PaymentMethodType, amount int64) bool {
	switch method {
	case MethodCOD:
		return amount <= CODLimit
	case MethodUPI:
		return amount <= UPILimit
	case MethodCard, MethodNetBanking, MethodWallet:
		return true
	}
	return true
}

// ProcessingFee estimates the gateway fee for display: card 2%,
// UPI 0.5%, net banking 1.5%, wallet 1%, COD a flat 25, rounded to two
// decimal places.
func ProcessingFee(amount int64, method PaymentMethodType) float64 {
	var rate float64
	switch method {
	case MethodCard:
		rate = 0.02
	case MethodUPI:
		rate = 0.005
	case MethodNetBanking:
		rate = 0.015
	case MethodWallet:
		rate = 0.01
	case MethodCOD:
		return 25
	}
	return math.Round(float64(amount)*rate*100) / 100
}
