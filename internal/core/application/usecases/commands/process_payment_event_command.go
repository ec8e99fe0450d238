package commands

import (
	"errors"

	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/guard"
)

var (
	ErrProcessPaymentEventCommandIsNotConstructed = errors.New(
		"ProcessPaymentEventCommand must be created via NewProcessPaymentEventCommand constructor",
	)
	ErrEventIDIsRequired   = errors.New("event id is required")
	ErrEventTypeIsRequired = errors.New("event type is required")
	ErrPayloadIsRequired   = errors.New("event payload is required")
	ErrSignatureIsRequired = errors.New("event signature is required")
)

// ProcessPaymentEventCommand represents one delivery of a payment processor
// webhook. The payload is kept raw: the signature covers the exact bytes the
// processor sent, and the ledger stores them verbatim.
type ProcessPaymentEventCommand struct { //nolint:recvcheck //using for validation
	eventID   string
	eventType string
	payload   []byte
	signature string

	guard guard.ConstructorGuard
}

// NewProcessPaymentEventCommand creates a command for one webhook delivery.
// Unknown event types are accepted here; the handler records and ignores them.
func NewProcessPaymentEventCommand(eventID, eventType string, payload []byte, signature string) (ProcessPaymentEventCommand, error) {
	eventCommand := ProcessPaymentEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		eventCommand.setEventID(eventID),
		eventCommand.setEventType(eventType),
		eventCommand.setPayload(payload),
		eventCommand.setSignature(signature),
	); err != nil {
		return ProcessPaymentEventCommand{}, err
	}

	return eventCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessPaymentEventCommandIsNotConstructed if validation fails.
func (c ProcessPaymentEventCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentEventCommandIsNotConstructed)
}

// EventID returns the processor's unique event identifier.
func (c ProcessPaymentEventCommand) EventID() string { return c.eventID }

// EventType returns the processor's event type string.
func (c ProcessPaymentEventCommand) EventType() string { return c.eventType }

// Payload returns the raw webhook body.
func (c ProcessPaymentEventCommand) Payload() []byte { return c.payload }

// Signature returns the hex HMAC signature presented with the delivery.
func (c ProcessPaymentEventCommand) Signature() string { return c.signature }

func (c *ProcessPaymentEventCommand) setEventID(eventID string) error {
	if eventID == "" {
		return ErrEventIDIsRequired
	}

	c.eventID = eventID
	return nil
}

func (c *ProcessPaymentEventCommand) setEventType(eventType string) error {
	if eventType == "" {
		return ErrEventTypeIsRequired
	}

	c.eventType = eventType
	return nil
}

func (c *ProcessPaymentEventCommand) setPayload(payload []byte) error {
	if len(payload) == 0 {
		return ErrPayloadIsRequired
	}

	c.payload = payload
	return nil
}

func (c *ProcessPaymentEventCommand) setSignature(signature string) error {
	if signature == "" {
		return ErrSignatureIsRequired
	}

	c.signature = signature
	return nil
}
