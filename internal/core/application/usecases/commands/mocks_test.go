package commands_test

import (
	"context"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/application/usecases/commands"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/driver"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/payment"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/webhook"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, query ports.OrderQuery) ([]*order.Order, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AcceptByDriver(
	ctx context.Context, number string, driverID kernel.UUID, now time.Time,
) (*order.Order, error) {
	args := m.Called(ctx, number, driverID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) TransitionStatus(
	ctx context.Context, number string, from, to order.Status, now time.Time,
) (*order.Order, error) {
	args := m.Called(ctx, number, from, to, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindExpiredNumbers(ctx context.Context, now time.Time, limit int) ([]string, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOrderRepository) CancelIfUnclaimed(ctx context.Context, number string, now time.Time) (bool, error) {
	args := m.Called(ctx, number, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllActive(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockWebhookLedger struct{ mock.Mock }

func (m *MockWebhookLedger) Append(ctx context.Context, event *webhook.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockWebhookLedger) MarkProcessed(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockWebhookLedger) Get(ctx context.Context, eventID string) (*webhook.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webhook.Event), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Upsert(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*payment.Payment, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

// MockUoW satisfies every unit of work shape the command handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) WebhookLedger() ports.WebhookLedger {
	args := m.Called()
	return args.Get(0).(ports.WebhookLedger)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockWebhookUoWFactory struct{ mock.Mock }

func (m *MockWebhookUoWFactory) Create() commands.WebhookUoW {
	args := m.Called()
	return args.Get(0).(commands.WebhookUoW)
}

type MockCouponValidator struct{ mock.Mock }

func (m *MockCouponValidator) Validate(ctx context.Context, code string, subtotal int64) (ports.CouponValidation, error) {
	args := m.Called(ctx, code, subtotal)
	return args.Get(0).(ports.CouponValidation), args.Error(1)
}

func (m *MockCouponValidator) CalculateDiscount(coupon order.CouponSnapshot, subtotal, baseFare int64) int64 {
	args := m.Called(coupon, subtotal, baseFare)
	return args.Get(0).(int64)
}

func (m *MockCouponValidator) RecordRedemption(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) Send(ctx context.Context, driverID kernel.UUID, payload ports.NotificationPayload) error {
	args := m.Called(ctx, driverID, payload)
	return args.Error(0)
}

type MockInvoiceService struct{ mock.Mock }

func (m *MockInvoiceService) Generate(ctx context.Context, o *order.Order, paymentReference string) (ports.Invoice, error) {
	args := m.Called(ctx, o, paymentReference)
	return args.Get(0).(ports.Invoice), args.Error(1)
}

type MockEmailSender struct{ mock.Mock }

func (m *MockEmailSender) SendInvoice(ctx context.Context, invoice ports.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}
