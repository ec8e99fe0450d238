package ports

import (
	"context"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
)

// CouponValidation is the outcome of validating a coupon code against a
// subtotal. When Valid is false, Message carries the human readable reason.
type CouponValidation struct {
	Valid   bool
	Coupon  *order.CouponSnapshot
	Message string
}

// CouponValidator validates coupon codes and computes their discounts.
// It is consumed by the pricing engine at order creation only; the snapshot
// applied to an order is never re-validated afterwards.
type CouponValidator interface {
	// Validate checks code against the subtotal (minimums, expiry, usage
	// limits). A rejected code is a normal outcome, not an error: the error
	// return is reserved for infrastructure faults.
	Validate(ctx context.Context, code string, subtotal int64) (CouponValidation, error)

	// CalculateDiscount computes the discount in minor units for an accepted
	// coupon. Pure: same inputs, same discount.
	CalculateDiscount(coupon order.CouponSnapshot, subtotal, baseFare int64) int64

	// RecordRedemption increments the coupon's usage counter. Called as a
	// non-blocking side effect after successful order creation, never inside
	// pricing computation.
	RecordRedemption(ctx context.Context, code string) error
}

// NotificationPayload is the message delivered to a driver's device.
type NotificationPayload struct {
	Kind        string
	OrderNumber string
	Message     string
}

// Notification kinds sent to drivers.
const (
	NotificationKindOrderAvailable = "order_available"
	NotificationKindOrderAssigned  = "order_assigned"
)

// NotificationDispatcher delivers a payload to one driver. Fire-and-forget:
// callers observe the result only to log and count it, and never let a
// delivery failure fail the operation that triggered it.
type NotificationDispatcher interface {
	Send(ctx context.Context, driverID kernel.UUID, payload NotificationPayload) error
}

// Invoice is the customer-facing record generated after a successful payment.
type Invoice struct {
	Number           string
	OrderNumber      string
	PaymentReference string
	Subtotal         int64
	Tax              int64
	Total            int64
	Currency         string
	IssuedAt         time.Time
}

// InvoiceService renders an invoice from an order's pricing snapshot.
type InvoiceService interface {
	Generate(ctx context.Context, o *order.Order, paymentReference string) (Invoice, error)
}

// EmailSender delivers an invoice to the customer. Best-effort: failures are
// logged and counted, never escalated to the payment reconciliation.
type EmailSender interface {
	SendInvoice(ctx context.Context, invoice Invoice) error
}
