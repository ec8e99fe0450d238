package commands

import (
	"context"
	"log/slog"
)

// defaultSweepBatchSize caps how many expired candidates one sweep pass
// processes.
const defaultSweepBatchSize = 500

// ExpireOrdersCommandHandler cancels orders whose claim window closed before
// any driver claimed them.
//
// The sweep deliberately runs without a surrounding transaction: the
// candidate scan is advisory and every cancellation is its own atomic
// conditional update, so an order claimed between the scan and the write is
// simply skipped. One failing row must not abort the rest of the batch.
type ExpireOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	batchSize  int
	logger     *slog.Logger
}

// NewExpireOrdersCommandHandler creates a handler for the expiry sweep.
// batchSize caps candidates per pass; zero or negative selects the default.
func NewExpireOrdersCommandHandler(uowFactory OrderUoWFactory, batchSize int, logger *slog.Logger) ExpireOrdersCommandHandler {
	if batchSize <= 0 {
		batchSize = defaultSweepBatchSize
	}

	return ExpireOrdersCommandHandler{
		uowFactory: uowFactory,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// Handle runs one sweep pass and reports how many orders it cancelled.
// Per-order failures are logged and skipped; the returned error is reserved
// for the candidate scan itself failing.
func (h ExpireOrdersCommandHandler) Handle(ctx context.Context, command ExpireOrdersCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	ordersRepo := h.uowFactory.Create().OrderRepository()

	numbers, err := ordersRepo.FindExpiredNumbers(ctx, command.Now(), h.batchSize)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, number := range numbers {
		applied, cancelErr := ordersRepo.CancelIfUnclaimed(ctx, number, command.Now())
		if cancelErr != nil {
			h.logger.Error("failed to cancel expired order",
				slog.String("order", number),
				slog.Any("error", cancelErr))
			continue
		}
		if !applied {
			// a driver claimed the order after the scan; not a sweep failure
			continue
		}

		cancelled++
	}

	if cancelled > 0 {
		h.logger.Info("expiry sweep cancelled orders",
			slog.Int("cancelled", cancelled),
			slog.Int("candidates", len(numbers)))
	}

	return cancelled, nil
}
