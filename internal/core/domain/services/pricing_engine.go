// Package services provides stateless domain services that coordinate
// several domain objects without belonging to any single aggregate.
package services

import (
	"context"
	"fmt"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/ports"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// gstRate is the 5% goods-and-services tax applied to the discounted subtotal.
var gstRate = decimal.New(5, -2)

// PricingInput carries the raw pricing figures of an order request.
// All amounts are integer minor units.
type PricingInput struct {
	BaseFare          int64
	DistanceSurcharge int64
	Fees              int64

	// Subtotal optionally restates the pre-discount subtotal. When present it
	// must equal BaseFare + DistanceSurcharge + Fees; when absent that sum is
	// used. The restated value exists so callers submitting precomputed quotes
	// fail loudly on disagreement instead of being silently repriced.
	Subtotal *int64

	// CouponCode is the optional discount code to validate and apply.
	CouponCode string

	// Currency defaults to order.DefaultCurrency when empty.
	Currency string
}

// PricingEngine computes the financial snapshot of an order. The computation
// is deterministic: identical inputs and an identical coupon verdict always
// produce byte-for-byte identical snapshots. It reads no clock and keeps no
// state, which is what makes the snapshots auditable after the fact.
//
// Coupon usage counters are NOT updated here; redemption recording is a
// separate side effect owned by the order-creation flow.
type PricingEngine struct {
	couponValidator ports.CouponValidator
}

// NewPricingEngine creates a pricing engine using the given coupon validator.
func NewPricingEngine(couponValidator ports.CouponValidator) PricingEngine {
	return PricingEngine{couponValidator: couponValidator}
}

// ComputePricing computes subtotal, discount, tax and total for the input.
//
// Steps:
//  1. subtotal = BaseFare + DistanceSurcharge + Fees (validated against the
//     restated Subtotal when one is supplied)
//  2. when a coupon code is present, validate it against the subtotal; a
//     rejected code fails with errs.ErrCouponIsInvalid carrying the
//     validator's message
//  3. discount = validator's calculation, clamped to [0, subtotal]
//  4. tax = round-half-up(5% of the discounted subtotal)
//  5. total = discounted subtotal + tax
//
// Without a coupon the discount is zero and the same tax formula applies to
// the unchanged subtotal, so there is exactly one tax computation path.
func (e PricingEngine) ComputePricing(ctx context.Context, in PricingInput) (order.Pricing, *order.CouponSnapshot, error) {
	for name, v := range map[string]int64{
		"baseFare":          in.BaseFare,
		"distanceSurcharge": in.DistanceSurcharge,
		"fees":              in.Fees,
	} {
		if v < 0 {
			return order.Pricing{}, nil, errs.NewValueIsInvalidErrorWithCause(
				name, fmt.Errorf("%d is negative", v),
			)
		}
	}
	if in.BaseFare == 0 {
		return order.Pricing{}, nil, errs.NewValueIsRequiredError("baseFare")
	}

	subtotal := in.BaseFare + in.DistanceSurcharge + in.Fees
	if in.Subtotal != nil && *in.Subtotal != subtotal {
		return order.Pricing{}, nil, errs.NewValueIsInvalidErrorWithCause(
			"subtotal",
			fmt.Errorf("restated subtotal %d does not equal %d", *in.Subtotal, subtotal),
		)
	}

	currency := in.Currency
	if currency == "" {
		currency = order.DefaultCurrency
	}

	var discount int64
	var coupon *order.CouponSnapshot
	if in.CouponCode != "" {
		validation, err := e.couponValidator.Validate(ctx, in.CouponCode, subtotal)
		if err != nil {
			return order.Pricing{}, nil, err
		}
		if !validation.Valid {
			return order.Pricing{}, nil, errs.NewCouponIsInvalidError(in.CouponCode, validation.Message)
		}

		coupon = validation.Coupon
		discount = e.couponValidator.CalculateDiscount(*coupon, subtotal, in.BaseFare)
		if discount < 0 {
			discount = 0
		}
		if discount > subtotal {
			discount = subtotal
		}
	}

	discounted := subtotal - discount
	tax := decimal.NewFromInt(discounted).Mul(gstRate).Round(0).IntPart()
	total := discounted + tax

	pricing, err := order.NewPricing(
		in.BaseFare, in.DistanceSurcharge, in.Fees,
		discounted, tax, discount, total, currency,
	)
	if err != nil {
		return order.Pricing{}, nil, err
	}

	return pricing, coupon, nil
}
