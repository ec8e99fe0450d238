package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per request or command,
// isolating concurrent operations from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Client code manages the
// transaction lifecycle explicitly; repositories obtained from the unit of
// work execute within the transaction started by Begin.
//
// Note that the conditional-update primitives on OrderRepository are atomic on
// their own; the unit of work exists for operations that must persist several
// writes together, not as a substitute for the conditional predicates.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// DriverRepository returns a DriverRepository bound to the current transaction.
	DriverRepository() DriverRepository

	// WebhookLedger returns a WebhookLedger bound to the current transaction.
	WebhookLedger() WebhookLedger

	// PaymentRepository returns a PaymentRepository bound to the current transaction.
	PaymentRepository() PaymentRepository
}
