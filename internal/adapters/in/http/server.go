package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/application/usecases/commands"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/application/usecases/queries"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/kernel"
	"github.com/Freeway-project/Jaddpi-sub001/internal/core/domain/model/order"
	"github.com/Freeway-project/Jaddpi-sub001/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// SignatureHeader carries the hex HMAC-SHA256 of the webhook request body.
const SignatureHeader = "X-Webhook-Signature"

// webhookEnvelope extracts the event identity from a delivery body. The same
// bytes are handed to the command verbatim so the signature covers exactly
// what was received.
type webhookEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	acceptOrderHandler       commands.AcceptOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	registerDriverHandler    commands.RegisterDriverCommandHandler
	processPaymentHandler    commands.ProcessPaymentEventCommandHandler
	expireOrdersHandler      commands.ExpireOrdersCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	registerDriverHandler commands.RegisterDriverCommandHandler,
	processPaymentHandler commands.ProcessPaymentEventCommandHandler,
	expireOrdersHandler commands.ExpireOrdersCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		acceptOrderHandler:       acceptOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		registerDriverHandler:    registerDriverHandler,
		processPaymentHandler:    processPaymentHandler,
		expireOrdersHandler:      expireOrdersHandler,
		getOrderHandler:          getOrderHandler,
		listOrdersHandler:        listOrdersHandler,
	}
}

// RegisterRoutes mounts all API endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:number", s.GetOrder)
	api.POST("/orders/:number/accept", s.AcceptOrder)
	api.POST("/orders/:number/status", s.UpdateOrderStatus)
	api.POST("/drivers", s.RegisterDriver)
	api.POST("/webhooks/payment", s.ProcessPaymentWebhook)
	api.POST("/admin/expiry-sweep", s.SweepExpiredOrders)
}

// CreateOrder handles POST /api/v1/orders - prices and creates a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		Pickup:            order.Contact(request.Pickup),
		Dropoff:           order.Contact(request.Dropoff),
		PackageNote:       request.PackageNote,
		DistanceKm:        request.DistanceKm,
		BaseFare:          request.BaseFare,
		DistanceSurcharge: request.DistanceSurcharge,
		Fees:              request.Fees,
		Subtotal:          request.Subtotal,
		CouponCode:        request.CouponCode,
		Currency:          request.Currency,
	})
	if err != nil {
		return badRequest(ctx, err)
	}

	createdOrder, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(createdOrder))
}

// AcceptOrder handles POST /api/v1/orders/:number/accept - a driver claims an
// open order. The first accepted claim wins; later claims get 409.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	var request AcceptOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(ctx.Param("number"), driverID)
	if err != nil {
		return badRequest(ctx, err)
	}

	acceptedOrder, err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(acceptedOrder))
}

// UpdateOrderStatus handles POST /api/v1/orders/:number/status - the assigned
// driver advances or cancels the order.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var request UpdateOrderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return badRequest(ctx, err)
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(ctx.Param("number"), driverID, target)
	if err != nil {
		return badRequest(ctx, err)
	}

	updatedOrder, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updatedOrder))
}

// RegisterDriver handles POST /api/v1/drivers - registers an active driver.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var request RegisterDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewRegisterDriverCommand(request.Name, request.Phone)
	if err != nil {
		return badRequest(ctx, err)
	}

	newDriver, err := s.registerDriverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toDriverResponse(newDriver))
}

// ProcessPaymentWebhook handles POST /api/v1/webhooks/payment - ingests one
// payment processor delivery. Duplicates and tolerated downstream failures
// are acknowledged with 200 so the processor stops redelivering; only forged
// or unparseable deliveries are rejected.
func (s *Server) ProcessPaymentWebhook(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("event payload", err))
	}

	cmd, err := commands.NewProcessPaymentEventCommand(
		envelope.ID, envelope.Type, body, ctx.Request().Header.Get(SignatureHeader),
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.processPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, WebhookAck{Received: true})
}

// SweepExpiredOrders handles POST /api/v1/admin/expiry-sweep - cancels
// unclaimed orders whose claim window has passed. The cron job runs the same
// sweep on a schedule; this endpoint exists for operators.
func (s *Server) SweepExpiredOrders(ctx echo.Context) error {
	cmd, err := commands.NewExpireOrdersCommand(time.Now().UTC())
	if err != nil {
		return errorJSON(ctx, err)
	}

	cancelled, err := s.expireOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SweepResponse{CancelledCount: cancelled})
}

// GetOrder handles GET /api/v1/orders/:number - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := queries.NewGetOrderQuery(ctx.Param("number"))
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListOrders handles GET /api/v1/orders - lists orders newest first.
// Filters: status (comma separated), has_driver, driver_id, payment_status,
// created_from/created_to (RFC 3339), limit.
func (s *Server) ListOrders(ctx echo.Context) error {
	filters, err := listFiltersFromParams(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewListOrdersQuery(filters)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

func listFiltersFromParams(ctx echo.Context) (queries.ListOrdersFilters, error) {
	filters := queries.ListOrdersFilters{
		DriverID:      ctx.QueryParam("driver_id"),
		PaymentStatus: ctx.QueryParam("payment_status"),
	}

	if statuses := ctx.QueryParam("status"); statuses != "" {
		filters.Statuses = strings.Split(statuses, ",")
	}

	if hasDriver := ctx.QueryParam("has_driver"); hasDriver != "" {
		value, err := strconv.ParseBool(hasDriver)
		if err != nil {
			return queries.ListOrdersFilters{}, errs.NewValueIsInvalidErrorWithCause("has_driver", err)
		}
		filters.HasDriver = &value
	}

	for param, target := range map[string]**time.Time{
		"created_from": &filters.CreatedFrom,
		"created_to":   &filters.CreatedTo,
	} {
		raw := ctx.QueryParam(param)
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return queries.ListOrdersFilters{}, errs.NewValueIsInvalidErrorWithCause(param, err)
		}
		*target = &parsed
	}

	if limit := ctx.QueryParam("limit"); limit != "" {
		value, err := strconv.Atoi(limit)
		if err != nil {
			return queries.ListOrdersFilters{}, errs.NewValueIsInvalidErrorWithCause("limit", err)
		}
		filters.Limit = value
	}

	return filters, nil
}
