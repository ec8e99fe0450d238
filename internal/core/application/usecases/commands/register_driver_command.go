package commands

import (
	"errors"

	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/guard"
)

var (
	ErrRegisterDriverCommandIsNotConstructed = errors.New(
		"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
	)
	ErrDriverNameIsRequired  = errors.New("driver name is required")
	ErrDriverPhoneIsRequired = errors.New("driver phone is required")
)

// RegisterDriverCommand represents a request to register a new active driver.
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	name  string
	phone string

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand creates a command to register a driver.
func NewRegisterDriverCommand(name, phone string) (RegisterDriverCommand, error) {
	driverCommand := RegisterDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driverCommand.setName(name),
		driverCommand.setPhone(phone),
	); err != nil {
		return RegisterDriverCommand{}, err
	}

	return driverCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterDriverCommandIsNotConstructed if validation fails.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

// Name returns the driver's display name.
func (c RegisterDriverCommand) Name() string { return c.name }

// Phone returns the driver's contact phone number.
func (c RegisterDriverCommand) Phone() string { return c.phone }

func (c *RegisterDriverCommand) setName(name string) error {
	if name == "" {
		return ErrDriverNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterDriverCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrDriverPhoneIsRequired
	}

	c.phone = phone
	return nil
}
