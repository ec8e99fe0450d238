package order

import (
	"fmt"

	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"
)

// PaymentStatus tracks whether the order has been paid for. It is an axis
// independent from Status: an order can be cancelled and still end up paid,
// and reconciliation never touches the delivery lifecycle directly.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusUnpaid is the initial payment status of every order.
	PaymentStatusUnpaid

	// PaymentStatusPaid indicates the payment processor confirmed the charge.
	PaymentStatusPaid

	// PaymentStatusRefunded indicates the charge was returned to the customer.
	PaymentStatusRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown:  "unknown",
		PaymentStatusUnpaid:   "unpaid",
		PaymentStatusPaid:     "paid",
		PaymentStatusRefunded: "refunded",
	}
}

// PaymentStatusFromString parses the wire representation of a payment status.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != PaymentStatusUnknown {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("%q is not a known payment status", s),
	)
}

// Validate checks that the PaymentStatus is one of the defined states.
func (s PaymentStatus) Validate() error {
	if s != PaymentStatusUnpaid && s != PaymentStatusPaid && s != PaymentStatusRefunded {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
	return nil
}

// String returns the wire representation of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
