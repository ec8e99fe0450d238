package ports

import (
	"context"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/webhook"
)

// WebhookLedger is the append-only idempotency record for inbound payment
// events. The backing store enforces a uniqueness constraint on the external
// event id; that constraint is the sole synchronization point deduplicating
// the processor's at-least-once delivery. No additional lock exists.
type WebhookLedger interface {
	// Append inserts a new ledger entry. When an entry with the same event id
	// already exists the insert fails with errs.ErrObjectConflict and writes
	// nothing; it never overwrites the earlier entry.
	Append(ctx context.Context, event *webhook.Event) error

	// MarkProcessed flips the entry's processed flag after downstream dispatch
	// completed.
	MarkProcessed(ctx context.Context, eventID string) error

	// Get retrieves a ledger entry by event id.
	// Returns errs.ErrObjectNotFound when no such entry exists.
	Get(ctx context.Context, eventID string) (*webhook.Event, error)
}
