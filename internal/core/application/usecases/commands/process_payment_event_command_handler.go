package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/payment"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/webhook"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/ports"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/hmacsig"

	"golang.org/x/sync/errgroup"
)

// paymentEventData is the payload shape shared by all payment intent events.
type paymentEventData struct {
	OrderNumber     string `json:"order_id"`
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// eventStatuses maps processor event types to the mirrored payment status.
var eventStatuses = map[string]payment.Status{
	webhook.EventTypePaymentCreated:    payment.StatusCreated,
	webhook.EventTypePaymentProcessing: payment.StatusProcessing,
	webhook.EventTypePaymentSucceeded:  payment.StatusSucceeded,
	webhook.EventTypePaymentFailed:     payment.StatusFailed,
	webhook.EventTypePaymentCanceled:   payment.StatusCanceled,
}

// ProcessPaymentEventCommandHandler ingests payment processor webhooks.
//
// The ledger's unique event id is the only idempotency mechanism: the entry is
// appended and committed before any side effect runs, and a duplicate delivery
// stops at the failed append. A bad signature or unparseable payload is
// rejected before the ledger is touched, so forged deliveries cannot occupy an
// event id.
//
// Side effects after the ledger commit follow at-least-once semantics: the
// order flip is an idempotent conditional update, and notification or invoice
// failures are logged rather than propagated, because the processor will not
// redeliver once acknowledged.
type ProcessPaymentEventCommandHandler struct {
	secret      []byte
	uowFactory  WebhookUoWFactory
	invoices    ports.InvoiceService
	email       ports.EmailSender
	dispatcher  ports.NotificationDispatcher
	fanoutLimit int
	logger      *slog.Logger
}

// NewProcessPaymentEventCommandHandler creates the webhook processor.
// fanoutLimit bounds concurrent driver notifications; values below 1 mean no
// bound.
func NewProcessPaymentEventCommandHandler(
	secret []byte,
	uowFactory WebhookUoWFactory,
	invoices ports.InvoiceService,
	email ports.EmailSender,
	dispatcher ports.NotificationDispatcher,
	fanoutLimit int,
	logger *slog.Logger,
) ProcessPaymentEventCommandHandler {
	return ProcessPaymentEventCommandHandler{
		secret:      secret,
		uowFactory:  uowFactory,
		invoices:    invoices,
		email:       email,
		dispatcher:  dispatcher,
		fanoutLimit: fanoutLimit,
		logger:      logger,
	}
}

// Handle processes one webhook delivery.
//
// Returned errors mean the delivery was rejected outright (bad signature,
// unparseable payload) and nothing was recorded. A nil return acknowledges
// the delivery; that includes duplicates and tolerated downstream failures.
func (h ProcessPaymentEventCommandHandler) Handle(ctx context.Context, command ProcessPaymentEventCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if !hmacsig.Verify(h.secret, command.Payload(), command.Signature()) {
		return errs.NewOperationForbiddenErrorWithCause(
			"payment webhook",
			fmt.Errorf("signature mismatch for event %s", command.EventID()),
		)
	}

	var data paymentEventData
	if err := json.Unmarshal(command.Payload(), &data); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("event payload", err)
	}
	if data.OrderNumber == "" {
		return errs.NewValueIsRequiredError("order_id")
	}

	appended, err := h.appendToLedger(ctx, command)
	if err != nil {
		h.logger.Error("failed to record webhook event",
			slog.String("event", command.EventID()),
			slog.Any("error", err))
		return nil
	}
	if !appended {
		h.logger.Info("duplicate webhook delivery ignored",
			slog.String("event", command.EventID()),
			slog.String("type", command.EventType()))
		return nil
	}

	if err = h.dispatch(ctx, command.EventType(), data); err != nil {
		// Acknowledged anyway: the processor will not redeliver, so the
		// unprocessed ledger entry is the replay record for operators.
		h.logger.Error("webhook side effects failed, ledger entry left unprocessed",
			slog.String("event", command.EventID()),
			slog.String("order", data.OrderNumber),
			slog.Any("error", err))
		return nil
	}

	if err = h.uowFactory.Create().WebhookLedger().MarkProcessed(ctx, command.EventID()); err != nil {
		h.logger.Error("failed to mark webhook event processed",
			slog.String("event", command.EventID()),
			slog.Any("error", err))
	}

	return nil
}

// appendToLedger commits the ledger entry in its own transaction before any
// side effect runs. Reports false for a duplicate event id.
func (h ProcessPaymentEventCommandHandler) appendToLedger(ctx context.Context, command ProcessPaymentEventCommand) (bool, error) {
	event, err := webhook.NewEvent(
		command.EventID(), command.EventType(), command.Payload(), time.Now().UTC(),
	)
	if err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WebhookLedger().Append(ctx, event); err != nil {
		if errors.Is(err, errs.ErrObjectConflict) {
			return false, nil
		}
		return false, err
	}

	return true, uow.Commit(ctx)
}

// dispatch applies the event's side effects. Unknown event types are recorded
// and ignored.
func (h ProcessPaymentEventCommandHandler) dispatch(ctx context.Context, eventType string, data paymentEventData) error {
	status, known := eventStatuses[eventType]
	if !known {
		h.logger.Warn("ignoring unknown webhook event type", slog.String("type", eventType))
		return nil
	}

	if status == payment.StatusSucceeded {
		return h.handleSucceeded(ctx, data)
	}

	return h.mirrorPayment(ctx, data, status)
}

// mirrorPayment records the processor's latest view without touching the order.
func (h ProcessPaymentEventCommandHandler) mirrorPayment(ctx context.Context, data paymentEventData, status payment.Status) error {
	mirror, err := payment.NewPayment(
		data.OrderNumber, data.PaymentIntentID, data.Amount, data.Currency, status,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PaymentRepository().Upsert(ctx, mirror); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// handleSucceeded records the successful charge and flips the order to paid in
// one transaction, then runs the post-payment side effects only when this
// event performed the flip. A replayed confirmation for an already paid order
// updates the mirror and does nothing else.
func (h ProcessPaymentEventCommandHandler) handleSucceeded(ctx context.Context, data paymentEventData) error {
	mirror, err := payment.NewPayment(
		data.OrderNumber, data.PaymentIntentID, data.Amount, data.Currency, payment.StatusSucceeded,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PaymentRepository().Upsert(ctx, mirror); err != nil {
		return err
	}

	flipped, err := uow.OrderRepository().MarkPaid(ctx, data.OrderNumber)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, errs.ErrInvalidState):
		// keep the mirror for reconciliation; there is no order flip to retry
		h.logger.Warn("payment confirmation without flippable order",
			slog.String("order", data.OrderNumber),
			slog.Any("error", err))
		flipped = false
	case err != nil:
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if !flipped {
		return nil
	}

	paidOrder, err := h.uowFactory.Create().OrderRepository().GetByNumber(ctx, data.OrderNumber)
	if err != nil {
		return err
	}

	if total := paidOrder.Pricing().Total(); data.Amount != total {
		h.logger.Warn("charged amount differs from order total",
			slog.String("order", data.OrderNumber),
			slog.Int64("charged", data.Amount),
			slog.Int64("total", total))
	}

	h.sendInvoice(ctx, paidOrder, data.PaymentIntentID)
	h.notifyDrivers(ctx, paidOrder)

	return nil
}

// sendInvoice generates and emails the invoice for a freshly paid order.
// Both steps are best effort.
func (h ProcessPaymentEventCommandHandler) sendInvoice(ctx context.Context, paidOrder *order.Order, reference string) {
	invoice, err := h.invoices.Generate(ctx, paidOrder, reference)
	if err != nil {
		h.logger.Warn("failed to generate invoice",
			slog.String("order", paidOrder.Number()),
			slog.Any("error", err))
		return
	}

	if err = h.email.SendInvoice(ctx, invoice); err != nil {
		h.logger.Warn("failed to email invoice",
			slog.String("order", paidOrder.Number()),
			slog.String("invoice", invoice.Number),
			slog.Any("error", err))
	}
}

// notifyDrivers fans the now-claimable order out to every active driver with
// bounded concurrency. Individual failures are logged; the fan-out never
// fails the webhook.
func (h ProcessPaymentEventCommandHandler) notifyDrivers(ctx context.Context, paidOrder *order.Order) {
	drivers, err := h.uowFactory.Create().DriverRepository().GetAllActive(ctx)
	if err != nil {
		h.logger.Warn("failed to load drivers for order fan-out",
			slog.String("order", paidOrder.Number()),
			slog.Any("error", err))
		return
	}

	payload := ports.NotificationPayload{
		Kind:        ports.NotificationKindOrderAvailable,
		OrderNumber: paidOrder.Number(),
		Message: fmt.Sprintf("new order: pickup at %s, %.1f km",
			paidOrder.Pickup().Address, paidOrder.DistanceKm()),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	if h.fanoutLimit > 0 {
		group.SetLimit(h.fanoutLimit)
	}

	for _, d := range drivers {
		group.Go(func() error {
			if sendErr := h.dispatcher.Send(groupCtx, d.ID(), payload); sendErr != nil {
				h.logger.Warn("failed to notify driver of new order",
					slog.String("order", payload.OrderNumber),
					slog.String("driver", d.ID().String()),
					slog.Any("error", sendErr))
			}
			return nil
		})
	}

	_ = group.Wait()
}
