package order

import (
	"fmt"

	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a fixed state machine:
//
//	pending ──> assigned ──> picked_up ──> in_transit ──> delivered
//	   │            │             │              │
//	   └────────────┴─────────────┴──────────────┴──────> cancelled
//
// delivered and cancelled are terminal; no transition leaves them.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status: the order waits for a driver to claim it.
	StatusPending

	// StatusAssigned indicates exactly one driver has been bound to the order.
	StatusAssigned

	// StatusPickedUp indicates the driver collected the package at pickup.
	StatusPickedUp

	// StatusInTransit indicates the package is on its way to dropoff.
	StatusInTransit

	// StatusDelivered indicates the package reached the dropoff contact. Terminal.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled, by a participant or by
	// the expiry sweep. Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusAssigned:  "assigned",
		StatusPickedUp:  "picked_up",
		StatusInTransit: "in_transit",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
	}
}

// getAllowedTransitions returns the full transition table. Every mutation of an
// order's status, whichever actor performs it, must be an edge of this table.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:   {StatusAssigned, StatusCancelled},
		StatusAssigned:  {StatusPickedUp, StatusCancelled},
		StatusPickedUp:  {StatusInTransit, StatusCancelled},
		StatusInTransit: {StatusDelivered, StatusCancelled},
		StatusDelivered: {},
		StatusCancelled: {},
	}
}

// StatusFromString parses the wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known status", s),
	)
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getAllowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether target is an allowed next status.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the new status when the move is an edge of the
// transition table, or an InvalidTransitionError naming both states.
// It does not persist anything: callers apply the result through the
// repository's conditional update so the check and the write are atomic.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
