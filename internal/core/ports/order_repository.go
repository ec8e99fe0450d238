// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and the external
// collaborators (coupon validation, invoicing, notifications).
package ports

import (
	"context"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
)

// OrderQuery enumerates the supported order filters. Every field is optional;
// zero values mean "no constraint". Callers never pass free-form filter maps.
type OrderQuery struct {
	// Statuses restricts results to orders in any of the given statuses.
	Statuses []order.Status

	// HasDriver, when set, restricts to orders with (true) or without (false)
	// a bound driver.
	HasDriver *bool

	// DriverID restricts to orders bound to this driver.
	DriverID *kernel.UUID

	// PaymentStatus restricts to orders on this payment axis value.
	PaymentStatus *order.PaymentStatus

	// CreatedFrom/CreatedTo bound the creation time (inclusive from, exclusive to).
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// Limit caps the result size; 0 means no cap.
	Limit int
}

// OrderRepository is the persistence contract for order aggregates.
//
// The order row is the only contended resource in the system, so every
// mutation below is a single atomic conditional update: the predicate is
// re-checked by the database at write time, never in application code against
// a previously read snapshot. A caller that loses a race observes a typed
// refusal (conflict, invalid state, invalid transition), never silently
// overwritten state.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// GetByNumber retrieves an order by its external identifier.
	// Returns errs.ErrObjectNotFound when no such order exists.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// List retrieves orders matching the typed filter.
	List(ctx context.Context, query OrderQuery) ([]*order.Order, error)

	// AcceptByDriver atomically binds driverID to the order: the write applies
	// only if, at write time, the order is still pending, unclaimed, paid, and
	// its claim window has not closed. On success it stamps assignedAt, clears
	// the claim window and returns the updated aggregate.
	//
	// When the predicate fails the refusal is classified from the current row:
	//   - errs.ErrObjectNotFound: no such order
	//   - errs.ErrObjectConflict: another driver won, or the order left pending
	//   - errs.ErrInvalidState:  unpaid, or the claim window has closed
	//
	// Under N concurrent calls for one order exactly one succeeds; the
	// persisted driver id equals the winner's.
	AcceptByDriver(ctx context.Context, number string, driverID kernel.UUID, now time.Time) (*order.Order, error)

	// TransitionStatus atomically moves the order from exactly `from` to `to`,
	// stamping the timeline field the transition owns. The from-status is part
	// of the write predicate, so two racing updates cannot both apply.
	// Returns errs.ErrObjectNotFound or errs.ErrInvalidTransition (naming the
	// actual current status) on refusal.
	TransitionStatus(ctx context.Context, number string, from, to order.Status, now time.Time) (*order.Order, error)

	// FindExpiredNumbers returns the external ids of orders whose claim window
	// closed before now and which are still pending and unclaimed. The result
	// is a candidate list only: cancellation re-checks the predicate per row.
	FindExpiredNumbers(ctx context.Context, now time.Time, limit int) ([]string, error)

	// CancelIfUnclaimed cancels the order only if it is still pending and
	// unclaimed at write time, stamping cancelledAt. Reports whether the
	// cancellation applied; false with a nil error means a driver claimed the
	// order concurrently, which is not a failure of the sweep.
	CancelIfUnclaimed(ctx context.Context, number string, now time.Time) (bool, error)

	// MarkPaid atomically flips the payment axis from unpaid to paid.
	// Reports whether the flip applied; an already-paid order is a no-op
	// (false, nil). Returns errs.ErrObjectNotFound when the order does not
	// exist and errs.ErrInvalidState for a refunded order.
	MarkPaid(ctx context.Context, number string) (bool, error)
}
