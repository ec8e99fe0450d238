package commands_test

import (
	"testing"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func testPricing(t *testing.T) order.Pricing {
	t.Helper()
	pricing, err := order.NewPricing(1000, 0, 0, 1000, 50, 0, 1050, order.DefaultCurrency)
	require.NoError(t, err)
	return pricing
}

func testContact(address string) order.Contact {
	return order.Contact{Name: "Avery", Phone: "604-555-0101", Address: address}
}

// assignedOrder builds an order already claimed by driverID.
func assignedOrder(t *testing.T, number string, driverID kernel.UUID) *order.Order {
	t.Helper()
	assignedAt := time.Now().UTC().Add(-time.Minute)
	restored, err := order.RestoreOrder(
		kernel.NewUUID(),
		number,
		testContact("800 Robson St"),
		testContact("1055 W Georgia St"),
		"fragile",
		4.2,
		&driverID,
		order.StatusAssigned,
		order.PaymentStatusPaid,
		nil,
		testPricing(t),
		nil,
		order.Timeline{CreatedAt: assignedAt.Add(-time.Hour), AssignedAt: &assignedAt},
	)
	require.NoError(t, err)
	return restored
}

// paidPendingOrder builds an unclaimed paid order with an open claim window.
func paidPendingOrder(t *testing.T, number string) *order.Order {
	t.Helper()
	expiry := time.Now().UTC().Add(30 * time.Minute)
	restored, err := order.RestoreOrder(
		kernel.NewUUID(),
		number,
		testContact("800 Robson St"),
		testContact("1055 W Georgia St"),
		"",
		4.2,
		nil,
		order.StatusPending,
		order.PaymentStatusPaid,
		&expiry,
		testPricing(t),
		nil,
		order.Timeline{CreatedAt: time.Now().UTC().Add(-time.Minute)},
	)
	require.NoError(t, err)
	return restored
}
