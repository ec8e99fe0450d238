package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Contact is a pickup or dropoff party: an opaque address plus how to reach
// the person at it. Address validation and geocoding live outside this service.
type Contact struct {
	Name    string
	Phone   string
	Address string
}

// Validate checks the contact carries the required fields.
func (c Contact) Validate() error {
	if c.Address == "" {
		return errs.NewValueIsRequiredError("contact address")
	}
	if c.Phone == "" {
		return errs.NewValueIsRequiredError("contact phone")
	}
	return nil
}

// Timeline records when each lifecycle transition happened. CreatedAt is set
// at construction; every other field is stamped at most once, by the single
// transition that owns it. in_transit stamps nothing.
type Timeline struct {
	CreatedAt   time.Time
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// Order is the delivery-order aggregate root. It tracks one request from
// creation to delivery or cancellation.
//
// Invariants:
//   - number is a stable external identifier, distinct from the storage id
//   - status moves only along the Status transition table
//   - a driver is present iff the order was claimed (and survives cancellation)
//   - expiresAt is set only while pending and unclaimed
//   - once delivered or cancelled, status, driver and timeline never change
//
// The in-memory methods enforce these rules for callers holding the aggregate;
// the repository re-checks the same predicates inside its conditional updates,
// so racing writers cannot bypass them.
type Order struct {
	id            kernel.UUID
	number        string
	pickup        Contact
	dropoff       Contact
	packageNote   string
	distanceKm    float64
	driverID      *kernel.UUID
	status        Status
	paymentStatus PaymentStatus
	expiresAt     *time.Time
	pricing       Pricing
	coupon        *CouponSnapshot
	timeline      Timeline
	isConstructed bool
}

// NewOrder creates a pending, unpaid order whose claim window closes ttl after
// createdAt. The pricing snapshot must already be computed; coupon may be nil.
func NewOrder(
	id kernel.UUID,
	number string,
	pickup, dropoff Contact,
	packageNote string,
	distanceKm float64,
	pricing Pricing,
	coupon *CouponSnapshot,
	createdAt time.Time,
	ttl time.Duration,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		paymentStatus: PaymentStatusUnpaid,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setContacts(pickup, dropoff),
		o.setDistance(distanceKm),
		o.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"ttl", fmt.Errorf("%s is not greater than 0", ttl),
		)
	}

	o.packageNote = packageNote
	o.coupon = coupon
	o.timeline = Timeline{CreatedAt: createdAt}
	expiry := createdAt.Add(ttl)
	o.expiresAt = &expiry

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// creation-time rules: historical rows must load even if the rules have
// since changed.
func RestoreOrder(
	id kernel.UUID,
	number string,
	pickup, dropoff Contact,
	packageNote string,
	distanceKm float64,
	driverID *kernel.UUID,
	status Status,
	paymentStatus PaymentStatus,
	expiresAt *time.Time,
	pricing Pricing,
	coupon *CouponSnapshot,
	timeline Timeline,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		paymentStatus.Validate(),
		pricing.Validate(),
	); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}

	return &Order{
		id:            id,
		number:        number,
		pickup:        pickup,
		dropoff:       dropoff,
		packageNote:   packageNote,
		distanceKm:    distanceKm,
		driverID:      driverID,
		status:        status,
		paymentStatus: paymentStatus,
		expiresAt:     expiresAt,
		pricing:       pricing,
		coupon:        coupon,
		timeline:      timeline,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the internal storage identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Number returns the stable external order identifier.
func (o *Order) Number() string { return o.number }

// Pickup returns the pickup contact.
func (o *Order) Pickup() Contact { return o.pickup }

// Dropoff returns the dropoff contact.
func (o *Order) Dropoff() Contact { return o.dropoff }

// PackageNote returns the free-form package description.
func (o *Order) PackageNote() string { return o.packageNote }

// DistanceKm returns the route distance used for pricing inputs.
func (o *Order) DistanceKm() float64 { return o.distanceKm }

// Driver returns the bound driver's id, or nil while unclaimed.
func (o *Order) Driver() *kernel.UUID { return o.driverID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PaymentStatus returns the payment axis of the order.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// ExpiresAt returns when the claim window closes, or nil once claimed or closed.
func (o *Order) ExpiresAt() *time.Time { return o.expiresAt }

// Pricing returns the immutable financial snapshot.
func (o *Order) Pricing() Pricing { return o.pricing }

// Coupon returns the applied coupon snapshot, or nil.
func (o *Order) Coupon() *CouponSnapshot { return o.coupon }

// Timeline returns the transition timestamps.
func (o *Order) Timeline() Timeline { return o.timeline }

// IsExpired reports whether the claim window has closed as of now.
func (o *Order) IsExpired(now time.Time) bool {
	return o.expiresAt != nil && o.expiresAt.Before(now)
}

// Assign binds a driver to the order. The same predicate is re-checked by the
// repository at write time; this method exists so in-memory callers and tests
// get the identical refusal taxonomy:
//   - conflict when the order is not pending or a driver is already bound
//   - invalid state when the order is unpaid or its claim window closed
func (o *Order) Assign(driverID kernel.UUID, at time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.driverID != nil || o.status != StatusPending {
		return errs.NewObjectConflictErrorWithCause(
			"order", o.number,
			fmt.Errorf("order is %s and cannot be claimed", o.status),
		)
	}
	if o.paymentStatus != PaymentStatusPaid {
		return errs.NewInvalidStateErrorWithCause(
			"order", fmt.Errorf("order %s is %s", o.number, o.paymentStatus),
		)
	}
	if o.IsExpired(at) {
		return errs.NewInvalidStateErrorWithCause(
			"order", fmt.Errorf("order %s expired at %s", o.number, o.expiresAt.Format(time.RFC3339)),
		)
	}

	newStatus, err := o.status.TransitionTo(StatusAssigned)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	o.expiresAt = nil
	o.stampTimeline(StatusAssigned, at)
	return nil
}

// ProgressTo advances the order along the driver path
// (assigned -> picked_up -> in_transit -> delivered, or cancellation), stamping
// the timeline field the transition owns.
func (o *Order) ProgressTo(target Status, at time.Time) error {
	if target == StatusAssigned {
		// claiming goes through Assign so the driver binding stays consistent
		return errs.NewInvalidTransitionError(o.status.String(), target.String())
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	if target == StatusCancelled {
		o.expiresAt = nil
	}
	o.stampTimeline(target, at)
	return nil
}

// Cancel moves the order to cancelled from any non-terminal status.
func (o *Order) Cancel(at time.Time) error {
	return o.ProgressTo(StatusCancelled, at)
}

// MarkPaid flips the payment axis from unpaid to paid. Reports whether the
// state changed: an already-paid order is a no-op, which is what makes
// at-least-once payment confirmations safe to replay.
func (o *Order) MarkPaid() (bool, error) {
	switch o.paymentStatus {
	case PaymentStatusPaid:
		return false, nil
	case PaymentStatusUnpaid:
		o.paymentStatus = PaymentStatusPaid
		return true, nil
	default:
		return false, errs.NewInvalidStateErrorWithCause(
			"order", fmt.Errorf("order %s is %s and cannot be marked paid", o.number, o.paymentStatus),
		)
	}
}

// stampTimeline records the timestamp owned by the transition into status.
// Each field is written at most once.
func (o *Order) stampTimeline(status Status, at time.Time) {
	switch status {
	case StatusAssigned:
		if o.timeline.AssignedAt == nil {
			o.timeline.AssignedAt = &at
		}
	case StatusPickedUp:
		if o.timeline.PickedUpAt == nil {
			o.timeline.PickedUpAt = &at
		}
	case StatusDelivered:
		if o.timeline.DeliveredAt == nil {
			o.timeline.DeliveredAt = &at
		}
	case StatusCancelled:
		if o.timeline.CancelledAt == nil {
			o.timeline.CancelledAt = &at
		}
	default:
		// in_transit and pending own no timeline field
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setContacts(pickup, dropoff Contact) error {
	if err := pickup.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("pickup", err)
	}
	if err := dropoff.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("dropoff", err)
	}
	o.pickup = pickup
	o.dropoff = dropoff
	return nil
}

func (o *Order) setDistance(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"distance", fmt.Errorf("%f is negative", distanceKm),
		)
	}
	o.distanceKm = distanceKm
	return nil
}

func (o *Order) setPricing(pricing Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}
	o.pricing = pricing
	return nil
}
