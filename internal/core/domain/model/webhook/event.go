// Package webhook provides the ledger entry recorded for every externally
// delivered payment event. The ledger's uniqueness on the external event id is
// the sole idempotency barrier against at-least-once delivery.
package webhook

import (
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/guard"
)

// Event types delivered by the payment processor.
const (
	EventTypePaymentCreated    = "payment_intent.created"
	EventTypePaymentProcessing = "payment_intent.processing"
	EventTypePaymentSucceeded  = "payment_intent.succeeded"
	EventTypePaymentFailed     = "payment_intent.payment_failed"
	EventTypePaymentCanceled   = "payment_intent.canceled"
)

// ErrEventIsNotConstructed is returned when using an improperly initialized Event.
var ErrEventIsNotConstructed = errs.NewValueIsRequiredError(
	"Event must be created via NewEvent or RestoreEvent",
)

// Event is one ledger entry keyed by the processor's event id. Created at most
// once per external id; Processed flips true only after downstream dispatch
// completed (or was deliberately skipped as already handled).
type Event struct {
	eventID    string
	eventType  string
	eventData  []byte
	receivedAt time.Time
	processed  bool
	guard      guard.ConstructorGuard
}

// NewEvent records a freshly received, not yet processed event.
func NewEvent(eventID, eventType string, eventData []byte, receivedAt time.Time) (*Event, error) {
	if eventID == "" {
		return nil, errs.NewValueIsRequiredError("event id")
	}
	if eventType == "" {
		return nil, errs.NewValueIsRequiredError("event type")
	}

	return &Event{
		eventID:    eventID,
		eventType:  eventType,
		eventData:  eventData,
		receivedAt: receivedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreEvent reconstructs a ledger entry from persistence.
func RestoreEvent(eventID, eventType string, eventData []byte, receivedAt time.Time, processed bool) (*Event, error) {
	e, err := NewEvent(eventID, eventType, eventData, receivedAt)
	if err != nil {
		return nil, err
	}
	e.processed = processed
	return e, nil
}

// Validate ensures the Event was created through a constructor.
func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// EventID returns the processor's unique event identifier.
func (e *Event) EventID() string { return e.eventID }

// EventType returns the processor's event type string.
func (e *Event) EventType() string { return e.eventType }

// EventData returns the raw event payload.
func (e *Event) EventData() []byte { return e.eventData }

// ReceivedAt returns when this service first accepted the event.
func (e *Event) ReceivedAt() time.Time { return e.receivedAt }

// Processed reports whether downstream dispatch completed for this event.
func (e *Event) Processed() bool { return e.processed }

// MarkProcessed records that dispatch completed.
func (e *Event) MarkProcessed() { e.processed = true }
