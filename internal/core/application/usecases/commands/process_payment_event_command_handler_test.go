package commands_test

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/application/usecases/commands"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/driver"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/payment"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/webhook"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/ports"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/hmacsig"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var webhookSecret = []byte("whsec_test")

type webhookFixture struct {
	orderRepo  *MockOrderRepository
	driverRepo *MockDriverRepository
	ledger     *MockWebhookLedger
	payments   *MockPaymentRepository
	uow        *MockUoW
	factory    *MockWebhookUoWFactory
	invoices   *MockInvoiceService
	email      *MockEmailSender
	dispatcher *MockNotificationDispatcher
	handler    commands.ProcessPaymentEventCommandHandler
}

func newWebhookFixture() *webhookFixture {
	f := &webhookFixture{
		orderRepo:  new(MockOrderRepository),
		driverRepo: new(MockDriverRepository),
		ledger:     new(MockWebhookLedger),
		payments:   new(MockPaymentRepository),
		uow:        new(MockUoW),
		factory:    new(MockWebhookUoWFactory),
		invoices:   new(MockInvoiceService),
		email:      new(MockEmailSender),
		dispatcher: new(MockNotificationDispatcher),
	}

	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.On("OrderRepository").Return(f.orderRepo)
	f.uow.On("DriverRepository").Return(f.driverRepo)
	f.uow.On("WebhookLedger").Return(f.ledger)
	f.uow.On("PaymentRepository").Return(f.payments)

	f.handler = commands.NewProcessPaymentEventCommandHandler(
		webhookSecret, f.factory, f.invoices, f.email, f.dispatcher, 4,
		slog.New(slog.DiscardHandler),
	)
	return f
}

func signedEvent(t *testing.T, eventID, eventType, orderNumber string, amount int64) commands.ProcessPaymentEventCommand {
	t.Helper()
	payload := fmt.Appendf(nil,
		`{"order_id":%q,"payment_intent_id":"pi_123","amount":%d,"currency":"CAD"}`,
		orderNumber, amount)

	cmd, err := commands.NewProcessPaymentEventCommand(
		eventID, eventType, payload, hmacsig.Sign(webhookSecret, payload),
	)
	require.NoError(t, err)
	return cmd
}

func TestProcessPaymentEvent_BadSignatureRejectedBeforeLedger(t *testing.T) {
	f := newWebhookFixture()
	payload := []byte(`{"order_id":"ORD-1","payment_intent_id":"pi_1","amount":1050}`)
	cmd, err := commands.NewProcessPaymentEventCommand(
		"evt_1", webhook.EventTypePaymentSucceeded, payload, "deadbeef",
	)
	require.NoError(t, err)

	err = f.handler.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrOperationForbidden)

	// a forged delivery must not occupy the event id
	f.factory.AssertNotCalled(t, "Create")
	f.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestProcessPaymentEvent_MalformedPayloadRejected(t *testing.T) {
	f := newWebhookFixture()
	payload := []byte(`{"order_id": `)
	cmd, err := commands.NewProcessPaymentEventCommand(
		"evt_1", webhook.EventTypePaymentSucceeded, payload, hmacsig.Sign(webhookSecret, payload),
	)
	require.NoError(t, err)

	err = f.handler.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	f.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestProcessPaymentEvent_DuplicateDeliveryIsAcknowledgedNoop(t *testing.T) {
	f := newWebhookFixture()
	cmd := signedEvent(t, "evt_1", webhook.EventTypePaymentSucceeded, "ORD-1", 1050)

	f.ledger.On("Append", mock.Anything, mock.AnythingOfType("*webhook.Event")).
		Return(errs.NewObjectConflictError("webhook event", "evt_1")).Once()

	err := f.handler.Handle(t.Context(), cmd)
	require.NoError(t, err)

	f.payments.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	f.orderRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
	f.ledger.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything)
}

func TestProcessPaymentEvent_SucceededFlipsOrderAndFansOut(t *testing.T) {
	f := newWebhookFixture()
	cmd := signedEvent(t, "evt_1", webhook.EventTypePaymentSucceeded, "ORD-1", 1050)

	paid := paidPendingOrder(t, "ORD-1")
	driverA, err := driver.NewDriver(kernel.NewUUID(), "Ana", "604-555-0001")
	require.NoError(t, err)
	driverB, err := driver.NewDriver(kernel.NewUUID(), "Ben", "604-555-0002")
	require.NoError(t, err)

	f.ledger.On("Append", mock.Anything, mock.AnythingOfType("*webhook.Event")).Return(nil).Once()
	f.payments.On("Upsert", mock.Anything, mock.MatchedBy(func(p *payment.Payment) bool {
		return p.Status() == payment.StatusSucceeded && p.OrderNumber() == "ORD-1"
	})).Return(nil).Once()
	f.orderRepo.On("MarkPaid", mock.Anything, "ORD-1").Return(true, nil).Once()
	f.orderRepo.On("GetByNumber", mock.Anything, "ORD-1").Return(paid, nil).Once()

	invoice := ports.Invoice{Number: "INV-1", OrderNumber: "ORD-1", Total: 1050}
	f.invoices.On("Generate", mock.Anything, paid, "pi_123").Return(invoice, nil).Once()
	f.email.On("SendInvoice", mock.Anything, invoice).Return(nil).Once()

	f.driverRepo.On("GetAllActive", mock.Anything).
		Return([]*driver.Driver{driverA, driverB}, nil).Once()
	f.dispatcher.On("Send", mock.Anything, driverA.ID(), mock.MatchedBy(func(p ports.NotificationPayload) bool {
		return p.Kind == ports.NotificationKindOrderAvailable && p.OrderNumber == "ORD-1"
	})).Return(nil).Once()
	f.dispatcher.On("Send", mock.Anything, driverB.ID(), mock.AnythingOfType("ports.NotificationPayload")).
		Return(nil).Once()

	f.ledger.On("MarkProcessed", mock.Anything, "evt_1").Return(nil).Once()

	err = f.handler.Handle(t.Context(), cmd)
	require.NoError(t, err)

	f.ledger.AssertExpectations(t)
	f.payments.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
	f.invoices.AssertExpectations(t)
	f.email.AssertExpectations(t)
	f.dispatcher.AssertExpectations(t)
}

// A second succeeded event with a fresh event id finds the order already paid:
// the mirror updates but no second invoice or fan-out happens.
func TestProcessPaymentEvent_SecondConfirmationDoesNotRepeatSideEffects(t *testing.T) {
	f := newWebhookFixture()
	cmd := signedEvent(t, "evt_2", webhook.EventTypePaymentSucceeded, "ORD-1", 1050)

	f.ledger.On("Append", mock.Anything, mock.AnythingOfType("*webhook.Event")).Return(nil).Once()
	f.payments.On("Upsert", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil).Once()
	f.orderRepo.On("MarkPaid", mock.Anything, "ORD-1").Return(false, nil).Once()
	f.ledger.On("MarkProcessed", mock.Anything, "evt_2").Return(nil).Once()

	err := f.handler.Handle(t.Context(), cmd)
	require.NoError(t, err)

	f.invoices.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	f.dispatcher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	f.ledger.AssertExpectations(t)
}

func TestProcessPaymentEvent_FailedEventOnlyMirrors(t *testing.T) {
	f := newWebhookFixture()
	cmd := signedEvent(t, "evt_3", webhook.EventTypePaymentFailed, "ORD-1", 1050)

	f.ledger.On("Append", mock.Anything, mock.AnythingOfType("*webhook.Event")).Return(nil).Once()
	f.payments.On("Upsert", mock.Anything, mock.MatchedBy(func(p *payment.Payment) bool {
		return p.Status() == payment.StatusFailed
	})).Return(nil).Once()
	f.ledger.On("MarkProcessed", mock.Anything, "evt_3").Return(nil).Once()

	err := f.handler.Handle(t.Context(), cmd)
	require.NoError(t, err)

	f.orderRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
	f.payments.AssertExpectations(t)
}

func TestProcessPaymentEvent_UnknownTypeIsRecordedAndIgnored(t *testing.T) {
	f := newWebhookFixture()
	cmd := signedEvent(t, "evt_4", "charge.refund_updated", "ORD-1", 1050)

	f.ledger.On("Append", mock.Anything, mock.AnythingOfType("*webhook.Event")).Return(nil).Once()
	f.ledger.On("MarkProcessed", mock.Anything, "evt_4").Return(nil).Once()

	err := f.handler.Handle(t.Context(), cmd)
	require.NoError(t, err)

	f.payments.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	f.ledger.AssertExpectations(t)
}

// Notification failures never fail the webhook.
func TestProcessPaymentEvent_FanOutFailuresAreTolerated(t *testing.T) {
	f := newWebhookFixture()
	cmd := signedEvent(t, "evt_5", webhook.EventTypePaymentSucceeded, "ORD-1", 1050)

	paid := paidPendingOrder(t, "ORD-1")
	d, err := driver.NewDriver(kernel.NewUUID(), "Ana", "604-555-0001")
	require.NoError(t, err)

	f.ledger.On("Append", mock.Anything, mock.AnythingOfType("*webhook.Event")).Return(nil).Once()
	f.payments.On("Upsert", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil).Once()
	f.orderRepo.On("MarkPaid", mock.Anything, "ORD-1").Return(true, nil).Once()
	f.orderRepo.On("GetByNumber", mock.Anything, "ORD-1").Return(paid, nil).Once()
	f.invoices.On("Generate", mock.Anything, paid, "pi_123").
		Return(ports.Invoice{}, assert.AnError).Once()
	f.driverRepo.On("GetAllActive", mock.Anything).Return([]*driver.Driver{d}, nil).Once()
	f.dispatcher.On("Send", mock.Anything, d.ID(), mock.AnythingOfType("ports.NotificationPayload")).
		Return(assert.AnError).Once()
	f.ledger.On("MarkProcessed", mock.Anything, "evt_5").Return(nil).Once()

	err = f.handler.Handle(t.Context(), cmd)
	require.NoError(t, err)

	f.email.AssertNotCalled(t, "SendInvoice", mock.Anything, mock.Anything)
	f.ledger.AssertExpectations(t)
}
