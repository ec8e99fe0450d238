package order_test

import (
	"testing"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPricing(t *testing.T) {
	t.Run("should create pricing with valid figures", func(t *testing.T) {
		pricing, err := order.NewPricing(1000, 200, 100, 1200, 60, 100, 1260, "CAD")

		require.NoError(t, err)
		require.NoError(t, pricing.Validate())
		assert.Equal(t, int64(1000), pricing.BaseFare())
		assert.Equal(t, int64(200), pricing.DistanceSurcharge())
		assert.Equal(t, int64(100), pricing.Fees())
		assert.Equal(t, int64(1200), pricing.Subtotal())
		assert.Equal(t, int64(60), pricing.Tax())
		assert.Equal(t, int64(100), pricing.CouponDiscount())
		assert.Equal(t, int64(1260), pricing.Total())
		assert.Equal(t, "CAD", pricing.Currency())
	})

	t.Run("should require currency", func(t *testing.T) {
		_, err := order.NewPricing(1000, 0, 0, 1000, 50, 0, 1050, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := order.NewPricing(1000, -1, 0, 999, 50, 0, 1049, "CAD")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject subtotal that breaks the arithmetic", func(t *testing.T) {
		_, err := order.NewPricing(1000, 0, 0, 900, 45, 0, 945, "CAD")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject total that is not subtotal plus tax", func(t *testing.T) {
		_, err := order.NewPricing(1000, 0, 0, 1000, 50, 0, 1000, "CAD")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var pricing order.Pricing
		require.Error(t, pricing.Validate())
	})
}

func TestNewCouponSnapshot(t *testing.T) {
	t.Run("should create snapshot for each discount type", func(t *testing.T) {
		for _, discountType := range []order.DiscountType{
			order.DiscountTypePercentage, order.DiscountTypeFixed, order.DiscountTypeBaseFare,
		} {
			snapshot, err := order.NewCouponSnapshot("SAVE10", discountType, 10)
			require.NoError(t, err)
			assert.Equal(t, "SAVE10", snapshot.Code())
			assert.Equal(t, discountType, snapshot.DiscountType())
			assert.Equal(t, int64(10), snapshot.DiscountValue())
		}
	})

	t.Run("should require code", func(t *testing.T) {
		_, err := order.NewCouponSnapshot("", order.DiscountTypeFixed, 100)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unknown discount type", func(t *testing.T) {
		_, err := order.NewCouponSnapshot("SAVE10", order.DiscountType("bogo"), 10)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative value", func(t *testing.T) {
		_, err := order.NewCouponSnapshot("SAVE10", order.DiscountTypeFixed, -1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
