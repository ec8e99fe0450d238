package couponrepo

import (
	"testing"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(t *testing.T, discountType order.DiscountType, value int64) order.CouponSnapshot {
	t.Helper()
	s, err := order.NewCouponSnapshot("TEST", discountType, value)
	require.NoError(t, err)
	return s
}

func TestCalculateDiscount(t *testing.T) {
	validator := &GormCouponValidator{}

	t.Run("percentage takes a share of the subtotal", func(t *testing.T) {
		got := validator.CalculateDiscount(snapshot(t, order.DiscountTypePercentage, 10), 1000, 600)
		assert.Equal(t, int64(100), got)
	})

	t.Run("percentage truncates fractional cents", func(t *testing.T) {
		got := validator.CalculateDiscount(snapshot(t, order.DiscountTypePercentage, 15), 999, 600)
		assert.Equal(t, int64(149), got)
	})

	t.Run("fixed takes the face value", func(t *testing.T) {
		got := validator.CalculateDiscount(snapshot(t, order.DiscountTypeFixed, 250), 1000, 600)
		assert.Equal(t, int64(250), got)
	})

	t.Run("fixed is clamped to the subtotal", func(t *testing.T) {
		got := validator.CalculateDiscount(snapshot(t, order.DiscountTypeFixed, 5000), 1000, 600)
		assert.Equal(t, int64(1000), got)
	})

	t.Run("base fare waives the base fare", func(t *testing.T) {
		got := validator.CalculateDiscount(snapshot(t, order.DiscountTypeBaseFare, 0), 1300, 1000)
		assert.Equal(t, int64(1000), got)
	})
}
