package couponrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/ports"

	"gorm.io/gorm"
)

// GormCouponValidator implements CouponValidator against the coupons table.
//
// Validate answers with a verdict, not an error: an unknown, expired or
// exhausted coupon is a normal business outcome the caller turns into a
// rejection message. Errors are reserved for infrastructure failures.
type GormCouponValidator struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormCouponValidator creates a coupon validator backed by the database.
func NewGormCouponValidator(db *gorm.DB) *GormCouponValidator {
	return &GormCouponValidator{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Validate checks the coupon's terms against the pre-discount subtotal.
func (v *GormCouponValidator) Validate(ctx context.Context, code string, subtotal int64) (ports.CouponValidation, error) {
	var dto CouponDTO
	if err := v.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CouponValidation{Message: "coupon does not exist"}, nil
		}
		return ports.CouponValidation{}, err
	}

	switch {
	case !dto.Active:
		return ports.CouponValidation{Message: "coupon is no longer active"}, nil
	case dto.ExpiresAt != nil && dto.ExpiresAt.Before(v.now()):
		return ports.CouponValidation{Message: "coupon has expired"}, nil
	case dto.UsageLimit > 0 && dto.TimesUsed >= dto.UsageLimit:
		return ports.CouponValidation{Message: "coupon redemption limit reached"}, nil
	case dto.MinSubtotal > 0 && subtotal < dto.MinSubtotal:
		return ports.CouponValidation{
			Message: fmt.Sprintf("order subtotal is below the coupon minimum of %d", dto.MinSubtotal),
		}, nil
	}

	snapshot, err := order.NewCouponSnapshot(dto.Code, order.DiscountType(dto.DiscountType), dto.DiscountValue)
	if err != nil {
		return ports.CouponValidation{}, err
	}

	return ports.CouponValidation{Valid: true, Coupon: &snapshot}, nil
}

// CalculateDiscount computes the discount in minor units for a validated
// coupon. The result is always within [0, subtotal].
func (v *GormCouponValidator) CalculateDiscount(coupon order.CouponSnapshot, subtotal, baseFare int64) int64 {
	var discount int64
	switch coupon.DiscountType() {
	case order.DiscountTypePercentage:
		discount = subtotal * coupon.DiscountValue() / 100
	case order.DiscountTypeFixed:
		discount = coupon.DiscountValue()
	case order.DiscountTypeBaseFare:
		discount = baseFare
	}

	if discount < 0 {
		return 0
	}
	if discount > subtotal {
		return subtotal
	}
	return discount
}

// RecordRedemption increments the coupon's usage counter. The increment is a
// conditional update so concurrent redemptions cannot exceed the limit.
func (v *GormCouponValidator) RecordRedemption(ctx context.Context, code string) error {
	result := v.db.WithContext(ctx).Model(&CouponDTO{}).
		Where("code = ? AND (usage_limit = 0 OR times_used < usage_limit)", code).
		Update("times_used", gorm.Expr("times_used + 1"))
	if result.Error != nil {
		return result.Error
	}

	// A missed increment only means the counter raced the limit; the order
	// already holds its snapshot, so nothing else to do.
	return nil
}
