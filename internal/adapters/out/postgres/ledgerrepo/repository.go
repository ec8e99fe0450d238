package ledgerrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/webhook"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWebhookLedger implements WebhookLedger using GORM. Requires the
// connection to be opened with TranslateError so a unique violation surfaces
// as gorm.ErrDuplicatedKey regardless of driver.
type GormWebhookLedger struct {
	db *gorm.DB
}

// NewGormWebhookLedger creates a new GORM webhook ledger.
func NewGormWebhookLedger(db *gorm.DB) *GormWebhookLedger {
	return &GormWebhookLedger{db: db}
}

// Append inserts a new ledger entry. A duplicate event id fails with
// errs.ErrObjectConflict and writes nothing.
func (r *GormWebhookLedger) Append(ctx context.Context, event *webhook.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectConflictErrorWithCause(
				"webhook event", event.EventID(),
				fmt.Errorf("event was already received"),
			)
		}
		return err
	}

	return nil
}

// MarkProcessed flips the entry's processed flag.
func (r *GormWebhookLedger) MarkProcessed(ctx context.Context, eventID string) error {
	result := r.db.WithContext(ctx).Model(&EventDTO{}).
		Where("event_id = ?", eventID).
		Update("processed", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("webhook event", eventID)
	}

	return nil
}

// Get retrieves a ledger entry by event id.
func (r *GormWebhookLedger) Get(ctx context.Context, eventID string) (*webhook.Event, error) {
	if eventID == "" {
		return nil, errs.NewValueIsRequiredError("event id")
	}

	var dto EventDTO
	if err := r.db.WithContext(ctx).First(&dto, "event_id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("webhook event", eventID)
		}
		return nil, err
	}

	return toDomain(dto)
}
