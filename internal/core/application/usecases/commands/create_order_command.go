package commands

import (
	"errors"
	"fmt"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrBaseFareIsInvalid = errors.New("base fare must be greater than 0")
)

// CreateOrderParams carries the caller-supplied fields of a new delivery order.
// Subtotal is optional: when present it must equal the sum of the fare
// components, guarding against clients that price on stale figures.
type CreateOrderParams struct {
	Pickup            order.Contact
	Dropoff           order.Contact
	PackageNote       string
	DistanceKm        float64
	BaseFare          int64
	DistanceSurcharge int64
	Fees              int64
	Subtotal          *int64
	CouponCode        string
	Currency          string
}

// CreateOrderCommand represents a request to create a new delivery order with
// its immutable pricing snapshot.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderParams{
//	    Pickup:   order.Contact{Phone: "604-555-0101", Address: "800 Robson St"},
//	    Dropoff:  order.Contact{Phone: "604-555-0102", Address: "1055 W Georgia St"},
//	    BaseFare: 1000,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	pickup            order.Contact
	dropoff           order.Contact
	packageNote       string
	distanceKm        float64
	baseFare          int64
	distanceSurcharge int64
	fees              int64
	subtotal          *int64
	couponCode        string
	currency          string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Contacts must carry an address and phone, the base fare must be positive and
// no amount may be negative. An empty currency defaults to order.DefaultCurrency.
func NewCreateOrderCommand(params CreateOrderParams) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setContacts(params.Pickup, params.Dropoff),
		orderCommand.setDistance(params.DistanceKm),
		orderCommand.setAmounts(params.BaseFare, params.DistanceSurcharge, params.Fees, params.Subtotal),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	orderCommand.packageNote = params.PackageNote
	orderCommand.couponCode = params.CouponCode
	orderCommand.currency = params.Currency
	if orderCommand.currency == "" {
		orderCommand.currency = order.DefaultCurrency
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Pickup returns the pickup contact.
func (c CreateOrderCommand) Pickup() order.Contact { return c.pickup }

// Dropoff returns the dropoff contact.
func (c CreateOrderCommand) Dropoff() order.Contact { return c.dropoff }

// PackageNote returns the free-form package description.
func (c CreateOrderCommand) PackageNote() string { return c.packageNote }

// DistanceKm returns the route distance in kilometers.
func (c CreateOrderCommand) DistanceKm() float64 { return c.distanceKm }

// BaseFare returns the flat delivery fare in minor units.
func (c CreateOrderCommand) BaseFare() int64 { return c.baseFare }

// DistanceSurcharge returns the distance surcharge in minor units.
func (c CreateOrderCommand) DistanceSurcharge() int64 { return c.distanceSurcharge }

// Fees returns the additional service fees in minor units.
func (c CreateOrderCommand) Fees() int64 { return c.fees }

// Subtotal returns the caller's restated subtotal, or nil when omitted.
func (c CreateOrderCommand) Subtotal() *int64 { return c.subtotal }

// CouponCode returns the coupon code to apply, or empty.
func (c CreateOrderCommand) CouponCode() string { return c.couponCode }

// Currency returns the pricing currency.
func (c CreateOrderCommand) Currency() string { return c.currency }

func (c *CreateOrderCommand) setContacts(pickup, dropoff order.Contact) error {
	if err := pickup.Validate(); err != nil {
		return fmt.Errorf("pickup: %w", err)
	}
	if err := dropoff.Validate(); err != nil {
		return fmt.Errorf("dropoff: %w", err)
	}

	c.pickup = pickup
	c.dropoff = dropoff
	return nil
}

func (c *CreateOrderCommand) setDistance(distanceKm float64) error {
	if distanceKm < 0 {
		return fmt.Errorf("distance %f must not be negative", distanceKm)
	}

	c.distanceKm = distanceKm
	return nil
}

func (c *CreateOrderCommand) setAmounts(baseFare, distanceSurcharge, fees int64, subtotal *int64) error {
	if baseFare <= 0 {
		return ErrBaseFareIsInvalid
	}
	if distanceSurcharge < 0 || fees < 0 {
		return errors.New("surcharge and fees must not be negative")
	}
	if subtotal != nil && *subtotal < 0 {
		return errors.New("subtotal must not be negative")
	}

	c.baseFare = baseFare
	c.distanceSurcharge = distanceSurcharge
	c.fees = fees
	c.subtotal = subtotal
	return nil
}
