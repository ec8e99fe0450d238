package cmd

import (
	"log/slog"

	"github.com/Freeway-project/Jaddpi-sub001/internal/adapters/out/invoicing"
	"github.com/Freeway-project/Jaddpi-sub001/internal/adapters/out/kafka"
	"github.com/Freeway-project/Jaddpi-sub001/internal/adapters/out/postgres"
	"github.com/Freeway-project/Jaddpi-sub001/internal/adapters/out/postgres/couponrepo"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/application/usecases/commands"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/application/usecases/queries"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	dispatcher *kafka.NotificationDispatcher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	writer := kafka.NewWriter([]string{config.KafkaHost}, config.KafkaNotificationsTopic)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: kafka.NewNotificationDispatcher(writer),
		logger:     logger,
	}
}

// Close releases resources held by outbound adapters.
func (c *CompositionRoot) Close() error {
	return c.dispatcher.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	couponValidator := couponrepo.NewGormCouponValidator(c.gormDB)
	return commands.NewCreateOrderCommandHandler(
		f,
		services.NewPricingEngine(couponValidator),
		couponValidator,
		c.config.OrderClaimTTL,
		c.logger,
	)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateExpireOrdersCommandHandler() commands.ExpireOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireOrdersCommandHandler(f, c.config.ExpirySweepBatch, c.logger)
}

func (c *CompositionRoot) CreateProcessPaymentEventCommandHandler() commands.ProcessPaymentEventCommandHandler {
	var f commands.WebhookUoWFactory = FuncWebhookUoWFactory(func() commands.WebhookUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessPaymentEventCommandHandler(
		[]byte(c.config.WebhookSecret),
		f,
		invoicing.NewService(),
		invoicing.NewLogEmailSender(c.logger),
		c.dispatcher,
		c.config.NotifyFanoutLimit,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncWebhookUoWFactory func() commands.WebhookUoW

func (f FuncWebhookUoWFactory) Create() commands.WebhookUoW {
	return f()
}
