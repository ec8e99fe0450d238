// Package couponrepo stores coupon definitions and implements coupon
// validation against them. Orders never reference these rows directly: the
// terms applied to an order are frozen into its coupon snapshot at creation.
package couponrepo

import (
	"time"
)

// CouponDTO represents the database structure for coupon definitions.
// UsageLimit of zero means unlimited redemptions.
type CouponDTO struct {
	Code          string `gorm:"primaryKey"`
	DiscountType  string `gorm:"not null"`
	DiscountValue int64
	MinSubtotal   int64
	ExpiresAt     *time.Time
	UsageLimit    int
	TimesUsed     int
	Active        bool `gorm:"index"`
}

// TableName specifies the database table name for coupon definitions.
func (CouponDTO) TableName() string {
	return "coupons"
}
