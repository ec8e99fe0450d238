package commands

import (
	"errors"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/guard"
)

var (
	ErrExpireOrdersCommandIsNotConstructed = errors.New(
		"ExpireOrdersCommand must be created via NewExpireOrdersCommand constructor",
	)
	ErrSweepTimeIsRequired = errors.New("sweep time is required")
)

// ExpireOrdersCommand triggers one pass of the claim-window sweep: cancel
// every order whose window closed before the given instant and which no
// driver has claimed.
type ExpireOrdersCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewExpireOrdersCommand creates a sweep command anchored at now.
// The anchor is explicit so the scheduled job and manual triggers share one
// code path and tests can pin the clock.
func NewExpireOrdersCommand(now time.Time) (ExpireOrdersCommand, error) {
	if now.IsZero() {
		return ExpireOrdersCommand{}, ErrSweepTimeIsRequired
	}

	return ExpireOrdersCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpireOrdersCommandIsNotConstructed if validation fails.
func (c ExpireOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOrdersCommandIsNotConstructed)
}

// Now returns the instant the sweep evaluates claim windows against.
func (c ExpireOrdersCommand) Now() time.Time { return c.now }
