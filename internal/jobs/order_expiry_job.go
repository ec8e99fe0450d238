package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderExpiryJob periodically cancels unclaimed orders whose claim window has
// passed. The sweep is idempotent and races safely with driver accepts, so a
// manual run from the maintenance endpoint between ticks is harmless.
type OrderExpiryJob struct {
	handler  commands.ExpireOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderExpiryJob creates the expiry sweep job. schedule is a cron
// expression accepted by robfig/cron, e.g. "@every 5m".
func NewOrderExpiryJob(
	handler commands.ExpireOrdersCommandHandler, schedule string, logger *slog.Logger,
) *OrderExpiryJob {
	return &OrderExpiryJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "order_expiry_job"),
	}
}

// Start schedules the sweep and begins running it.
func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewExpireOrdersCommand(time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Order expiry sweep could not be built", "error", err)
			return
		}

		cancelled, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order expiry sweep failed", "error", err)
			return
		}

		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Order expiry sweep cancelled unclaimed orders",
				"cancelled", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started", "schedule", j.schedule)
	return nil
}

// Stop stops the expiry job.
func (j *OrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}
