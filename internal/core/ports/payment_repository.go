package ports

import (
	"context"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/payment"
)

// PaymentRepository persists the mirror of the payment processor's view of a
// charge. Only the payment webhook processor writes through this contract.
type PaymentRepository interface {
	// Upsert creates or replaces the mirror record for the payment's order.
	Upsert(ctx context.Context, aggregate *payment.Payment) error

	// GetByOrderNumber retrieves the mirror record for an order.
	// Returns errs.ErrObjectNotFound when no charge has been reported yet.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*payment.Payment, error)
}
