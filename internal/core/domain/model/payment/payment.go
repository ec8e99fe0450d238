// Package payment provides the mirror of the external payment processor's view
// of an order's charge. It is written only by the payment webhook processor.
package payment

import (
	"fmt"

	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/guard"
)

// Status mirrors the processor-side payment intent states.
type Status string

const (
	StatusCreated    Status = "created"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusCanceled   Status = "canceled"
)

// Validate checks the status is one of the mirrored states.
func (s Status) Validate() error {
	switch s {
	case StatusCreated, StatusProcessing, StatusSucceeded, StatusFailed, StatusCanceled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%q is not a known payment intent status", string(s)),
		)
	}
}

// ErrPaymentIsNotConstructed is returned when using an improperly initialized Payment.
var ErrPaymentIsNotConstructed = errs.NewValueIsRequiredError(
	"Payment must be created via NewPayment",
)

// Payment mirrors one charge as reported by the payment processor.
// amount and currency echo the processor's figures; reconciliation against the
// order's own pricing snapshot happens upstream.
type Payment struct {
	orderNumber     string
	stripeReference string
	amount          int64
	currency        string
	status          Status
	guard           guard.ConstructorGuard
}

// NewPayment creates a validated payment mirror record.
func NewPayment(orderNumber, stripeReference string, amount int64, currency string, status Status) (*Payment, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}
	if stripeReference == "" {
		return nil, errs.NewValueIsRequiredError("payment reference")
	}
	if amount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%d is negative", amount),
		)
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Payment{
		orderNumber:     orderNumber,
		stripeReference: stripeReference,
		amount:          amount,
		currency:        currency,
		status:          status,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Payment was created through the constructor.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// OrderNumber returns the external order identifier this charge belongs to.
func (p *Payment) OrderNumber() string { return p.orderNumber }

// StripeReference returns the processor's charge reference.
func (p *Payment) StripeReference() string { return p.stripeReference }

// Amount returns the charged amount in minor units.
func (p *Payment) Amount() int64 { return p.amount }

// Currency returns the charge currency.
func (p *Payment) Currency() string { return p.currency }

// Status returns the mirrored processor status.
func (p *Payment) Status() Status { return p.status }
