// Package ledgerrepo persists the payment webhook ledger. The unique index on
// the external event id is the idempotency barrier: a duplicate delivery fails
// the insert instead of creating a second entry.
package ledgerrepo

import (
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/webhook"
)

// EventDTO represents the database structure for persisting ledger entries.
type EventDTO struct {
	EventID    string `gorm:"primaryKey"`
	EventType  string `gorm:"not null;index"`
	EventData  []byte
	ReceivedAt time.Time
	Processed  bool `gorm:"index"`
}

// TableName specifies the database table name for ledger entries.
func (EventDTO) TableName() string {
	return "webhook_events"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(event *webhook.Event) EventDTO {
	return EventDTO{
		EventID:    event.EventID(),
		EventType:  event.EventType(),
		EventData:  event.EventData(),
		ReceivedAt: event.ReceivedAt(),
		Processed:  event.Processed(),
	}
}

// toDomain converts a database DTO to a ledger entry.
func toDomain(dto EventDTO) (*webhook.Event, error) {
	return webhook.RestoreEvent(dto.EventID, dto.EventType, dto.EventData, dto.ReceivedAt, dto.Processed)
}
