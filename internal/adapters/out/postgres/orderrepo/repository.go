package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/ports"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Every mutation is a single UPDATE whose WHERE clause restates the business
// predicate, so the database is the arbiter of races. When zero rows match,
// one follow-up read classifies the refusal; that read never feeds a write.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectConflictErrorWithCause(
				"order", aggregate.Number(),
				fmt.Errorf("order number already exists"),
			)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByNumber retrieves an order by its external identifier.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// List retrieves orders matching the typed filter, newest first.
func (r *GormOrderRepository) List(ctx context.Context, query ports.OrderQuery) ([]*order.Order, error) {
	db := r.db.WithContext(ctx).Model(&OrderDTO{})

	if len(query.Statuses) > 0 {
		statuses := make([]int, 0, len(query.Statuses))
		for _, s := range query.Statuses {
			statuses = append(statuses, int(s))
		}
		db = db.Where("status IN ?", statuses)
	}
	if query.HasDriver != nil {
		if *query.HasDriver {
			db = db.Where("driver_id IS NOT NULL")
		} else {
			db = db.Where("driver_id IS NULL")
		}
	}
	if query.DriverID != nil {
		db = db.Where("driver_id = ?", query.DriverID.Bytes())
	}
	if query.PaymentStatus != nil {
		db = db.Where("payment_status = ?", int(*query.PaymentStatus))
	}
	if query.CreatedFrom != nil {
		db = db.Where("created_at >= ?", *query.CreatedFrom)
	}
	if query.CreatedTo != nil {
		db = db.Where("created_at < ?", *query.CreatedTo)
	}
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}

	var dtos []OrderDTO
	if err := db.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// AcceptByDriver atomically binds a driver to a pending, unclaimed, paid order
// whose claim window is still open. Exactly one of N concurrent callers for
// the same order observes a non-zero row count.
func (r *GormOrderRepository) AcceptByDriver(
	ctx context.Context, number string, driverID kernel.UUID, now time.Time,
) (*order.Order, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where(
			"number = ? AND status = ? AND driver_id IS NULL AND payment_status = ? AND expires_at IS NOT NULL AND expires_at >= ?",
			number, int(order.StatusPending), int(order.PaymentStatusPaid), now,
		).
		Updates(map[string]any{
			"driver_id":   driverID.Bytes(),
			"status":      int(order.StatusAssigned),
			"assigned_at": now,
			"expires_at":  nil,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, r.classifyAcceptRefusal(ctx, number, now)
	}

	accepted, err := r.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(accepted.ID(), accepted)
	return accepted, nil
}

// classifyAcceptRefusal reads the current row once to name why the claim
// predicate failed. The row may have moved again since the update; the
// classification is best effort and only affects the error, never the data.
func (r *GormOrderRepository) classifyAcceptRefusal(ctx context.Context, number string, now time.Time) error {
	current, err := r.GetByNumber(ctx, number)
	if err != nil {
		return err
	}

	switch {
	case current.Driver() != nil:
		return errs.NewObjectConflictErrorWithCause(
			"order", number, fmt.Errorf("order is already claimed by another driver"),
		)
	case current.Status() != order.StatusPending:
		return errs.NewObjectConflictErrorWithCause(
			"order", number, fmt.Errorf("order is %s and cannot be claimed", current.Status()),
		)
	case current.PaymentStatus() != order.PaymentStatusPaid:
		return errs.NewInvalidStateErrorWithCause(
			"order", fmt.Errorf("order %s is %s", number, current.PaymentStatus()),
		)
	case current.IsExpired(now):
		return errs.NewInvalidStateErrorWithCause(
			"order", fmt.Errorf("order %s claim window has closed", number),
		)
	default:
		return errs.NewObjectConflictErrorWithCause(
			"order", number, fmt.Errorf("order changed concurrently"),
		)
	}
}

// TransitionStatus atomically moves the order from exactly `from` to `to`,
// stamping the timeline column the transition owns. Racing updates cannot
// both apply because the from-status is part of the write predicate.
func (r *GormOrderRepository) TransitionStatus(
	ctx context.Context, number string, from, to order.Status, now time.Time,
) (*order.Order, error) {
	if _, err := from.TransitionTo(to); err != nil {
		return nil, err
	}

	updates := map[string]any{"status": int(to)}
	switch to {
	case order.StatusPickedUp:
		updates["picked_up_at"] = now
	case order.StatusDelivered:
		updates["delivered_at"] = now
	case order.StatusCancelled:
		updates["cancelled_at"] = now
		updates["expires_at"] = nil
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("number = ? AND status = ?", number, int(from)).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		current, err := r.GetByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		return nil, errs.NewInvalidTransitionError(current.Status().String(), to.String())
	}

	updated, err := r.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(updated.ID(), updated)
	return updated, nil
}

// FindExpiredNumbers returns external ids of pending, unclaimed orders whose
// claim window closed before now, oldest expiry first.
func (r *GormOrderRepository) FindExpiredNumbers(ctx context.Context, now time.Time, limit int) ([]string, error) {
	db := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where(
			"status = ? AND driver_id IS NULL AND expires_at IS NOT NULL AND expires_at < ?",
			int(order.StatusPending), now,
		).
		Order("expires_at ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	var numbers []string
	if err := db.Pluck("number", &numbers).Error; err != nil {
		return nil, err
	}

	return numbers, nil
}

// CancelIfUnclaimed cancels the order only if it is still pending and
// unclaimed at write time. A false result with a nil error means a driver
// claimed the order between the candidate scan and this write.
func (r *GormOrderRepository) CancelIfUnclaimed(ctx context.Context, number string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where(
			"number = ? AND status = ? AND driver_id IS NULL",
			number, int(order.StatusPending),
		).
		Updates(map[string]any{
			"status":       int(order.StatusCancelled),
			"cancelled_at": now,
			"expires_at":   nil,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// MarkPaid atomically flips the payment axis from unpaid to paid. A replayed
// confirmation finds zero matching rows and reports no flip.
func (r *GormOrderRepository) MarkPaid(ctx context.Context, number string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("number = ? AND payment_status = ?", number, int(order.PaymentStatusUnpaid)).
		Update("payment_status", int(order.PaymentStatusPaid))
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected > 0 {
		return true, nil
	}

	current, err := r.GetByNumber(ctx, number)
	if err != nil {
		return false, err
	}
	if current.PaymentStatus() == order.PaymentStatusRefunded {
		return false, errs.NewInvalidStateErrorWithCause(
			"order", fmt.Errorf("order %s is refunded and cannot be marked paid", number),
		)
	}

	return false, nil
}
