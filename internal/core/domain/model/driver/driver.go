// Package driver provides the driver aggregate: the couriers eligible to claim
// and carry delivery orders.
package driver

import (
	"errors"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a driver without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver represents a delivery driver. A driver is eligible to accept orders
// and to receive new-order notifications only while active; deactivation
// removes the capability without deleting the record, so past orders keep a
// valid driver reference.
type Driver struct {
	id     kernel.UUID
	name   string
	phone  string
	active bool
	guard  guard.ConstructorGuard
}

// NewDriver creates an active driver with the given identity.
// All parameters are validated; errors are aggregated.
func NewDriver(id kernel.UUID, name, phone string) (*Driver, error) {
	d := &Driver{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a driver from persistence.
func RestoreDriver(id kernel.UUID, name, phone string, active bool) (*Driver, error) {
	d, err := NewDriver(id, name, phone)
	if err != nil {
		return nil, err
	}
	d.active = active
	return d, nil
}

// Validate ensures the Driver was created through a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID { return d.id }

// Name returns the driver's display name.
func (d *Driver) Name() string { return d.name }

// Phone returns the driver's contact phone number.
func (d *Driver) Phone() string { return d.phone }

// IsActive reports whether the driver currently holds the driver capability.
func (d *Driver) IsActive() bool { return d.active }

// Deactivate withdraws the driver capability.
func (d *Driver) Deactivate() { d.active = false }

// Activate restores the driver capability.
func (d *Driver) Activate() { d.active = true }

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	d.phone = phone
	return nil
}
