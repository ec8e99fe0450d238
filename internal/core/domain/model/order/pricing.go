package order

import (
	"errors"
	"fmt"

	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"
)

// DefaultCurrency is the currency used when the caller does not specify one.
// All amounts are integer minor units (cents).
const DefaultCurrency = "CAD"

// Pricing is the immutable financial snapshot of an order. It is computed once
// at creation and never recomputed, so invoices and reconciliation always see
// the figures the customer agreed to.
//
// Invariants:
//   - subtotal == baseFare + distanceSurcharge + fees - couponDiscount
//   - total == subtotal + tax
//   - every amount is non-negative
type Pricing struct {
	baseFare          int64
	distanceSurcharge int64
	fees              int64
	subtotal          int64
	tax               int64
	couponDiscount    int64
	total             int64
	currency          string
}

// NewPricing creates a validated pricing snapshot. Returns a validation error
// when any amount is negative, the currency is empty, or the arithmetic
// invariants do not hold.
func NewPricing(baseFare, distanceSurcharge, fees, subtotal, tax, couponDiscount, total int64, currency string) (Pricing, error) {
	if currency == "" {
		return Pricing{}, errs.NewValueIsRequiredError("currency")
	}
	for name, v := range map[string]int64{
		"baseFare":          baseFare,
		"distanceSurcharge": distanceSurcharge,
		"fees":              fees,
		"subtotal":          subtotal,
		"tax":               tax,
		"couponDiscount":    couponDiscount,
		"total":             total,
	} {
		if v < 0 {
			return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
				name, fmt.Errorf("%d is negative", v),
			)
		}
	}

	if subtotal != baseFare+distanceSurcharge+fees-couponDiscount {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
			"subtotal",
			fmt.Errorf("%d does not equal %d + %d + %d - %d",
				subtotal, baseFare, distanceSurcharge, fees, couponDiscount),
		)
	}
	if total != subtotal+tax {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("%d does not equal %d + %d", total, subtotal, tax),
		)
	}

	return Pricing{
		baseFare:          baseFare,
		distanceSurcharge: distanceSurcharge,
		fees:              fees,
		subtotal:          subtotal,
		tax:               tax,
		couponDiscount:    couponDiscount,
		total:             total,
		currency:          currency,
	}, nil
}

// BaseFare returns the flat delivery fare in minor units.
func (p Pricing) BaseFare() int64 { return p.baseFare }

// DistanceSurcharge returns the distance-based surcharge in minor units.
func (p Pricing) DistanceSurcharge() int64 { return p.distanceSurcharge }

// Fees returns additional service fees in minor units.
func (p Pricing) Fees() int64 { return p.fees }

// Subtotal returns the post-discount subtotal in minor units.
func (p Pricing) Subtotal() int64 { return p.subtotal }

// Tax returns the GST amount in minor units.
func (p Pricing) Tax() int64 { return p.tax }

// CouponDiscount returns the applied discount in minor units.
func (p Pricing) CouponDiscount() int64 { return p.couponDiscount }

// Total returns the amount the customer is charged in minor units.
func (p Pricing) Total() int64 { return p.total }

// Currency returns the ISO currency code of all amounts.
func (p Pricing) Currency() string { return p.currency }

// Validate reports whether the snapshot was built through NewPricing.
func (p Pricing) Validate() error {
	if p.currency == "" {
		return errors.New("Pricing must be created via NewPricing constructor")
	}
	return nil
}

// DiscountType describes how a coupon's value is interpreted.
type DiscountType string

const (
	// DiscountTypePercentage discounts a percentage of the subtotal.
	DiscountTypePercentage DiscountType = "percentage"

	// DiscountTypeFixed discounts a fixed amount, capped at the subtotal.
	DiscountTypeFixed DiscountType = "fixed"

	// DiscountTypeBaseFare waives the base fare entirely.
	DiscountTypeBaseFare DiscountType = "base_fare"
)

// Validate checks the discount type is one of the known kinds.
func (t DiscountType) Validate() error {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixed, DiscountTypeBaseFare:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"discount type is invalid",
			fmt.Errorf("%q is not a known discount type", string(t)),
		)
	}
}

// CouponSnapshot freezes the coupon terms applied at order creation.
// The snapshot is immutable once set and is never re-validated: later edits
// to the coupon record must not change what this order was charged.
type CouponSnapshot struct {
	code          string
	discountType  DiscountType
	discountValue int64
}

// NewCouponSnapshot creates a validated coupon snapshot.
func NewCouponSnapshot(code string, discountType DiscountType, discountValue int64) (CouponSnapshot, error) {
	if code == "" {
		return CouponSnapshot{}, errs.NewValueIsRequiredError("coupon code")
	}
	if err := discountType.Validate(); err != nil {
		return CouponSnapshot{}, err
	}
	if discountValue < 0 {
		return CouponSnapshot{}, errs.NewValueIsInvalidErrorWithCause(
			"discount value",
			fmt.Errorf("%d is negative", discountValue),
		)
	}
	return CouponSnapshot{
		code:          code,
		discountType:  discountType,
		discountValue: discountValue,
	}, nil
}

// Code returns the coupon code as entered by the customer.
func (c CouponSnapshot) Code() string { return c.code }

// DiscountType returns how the discount value is interpreted.
func (c CouponSnapshot) DiscountType() DiscountType { return c.discountType }

// DiscountValue returns the discount value: percent points for percentage
// coupons, minor units otherwise.
func (c CouponSnapshot) DiscountValue() int64 { return c.discountValue }
