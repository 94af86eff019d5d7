// Package http is the inbound REST adapter. Handlers translate JSON
// payloads into commands and queries; all business rules live behind them.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"neuroload/internal/core/application/usecases/commands"
	"neuroload/internal/core/application/usecases/queries"
	"neuroload/internal/core/domain/model/order"
	"neuroload/internal/core/domain/model/plan"
	"neuroload/internal/core/ports"
	"neuroload/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	postOrderHandler            commands.PostOrderCommandHandler
	acceptOrderHandler          commands.AcceptOrderCommandHandler
	generatePlanHandler         commands.GeneratePlanCommandHandler
	dispatchOrderHandler        commands.DispatchOrderCommandHandler
	completeDeliveryHandler     commands.CompleteDeliveryCommandHandler
	registerVehicleHandler      commands.RegisterVehicleCommandHandler
	completeVerificationHandler commands.CompleteVerificationCommandHandler

	// Query handlers
	getMarketplaceOrdersHandler queries.GetMarketplaceOrdersQueryHandler
	getPlanHandler              queries.GetPlanQueryHandler
	getPaymentStatusHandler     queries.GetPaymentStatusQueryHandler

	stateStore ports.StateStore
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	postOrderHandler commands.PostOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	generatePlanHandler commands.GeneratePlanCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	registerVehicleHandler commands.RegisterVehicleCommandHandler,
	completeVerificationHandler commands.CompleteVerificationCommandHandler,
	getMarketplaceOrdersHandler queries.GetMarketplaceOrdersQueryHandler,
	getPlanHandler queries.GetPlanQueryHandler,
	getPaymentStatusHandler queries.GetPaymentStatusQueryHandler,
	stateStore ports.StateStore,
	logger *slog.Logger,
) *Server {
	return &Server{
		postOrderHandler:            postOrderHandler,
		acceptOrderHandler:          acceptOrderHandler,
		generatePlanHandler:         generatePlanHandler,
		dispatchOrderHandler:        dispatchOrderHandler,
		completeDeliveryHandler:     completeDeliveryHandler,
		registerVehicleHandler:      registerVehicleHandler,
		completeVerificationHandler: completeVerificationHandler,
		getMarketplaceOrdersHandler: getMarketplaceOrdersHandler,
		getPlanHandler:              getPlanHandler,
		getPaymentStatusHandler:     getPaymentStatusHandler,
		stateStore:                  stateStore,
		logger:                      logger,
	}
}

// RegisterRoutes mounts every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/users", s.RegisterUser)
	api.GET("/session/:slot", s.GetSessionSnapshot)
	api.DELETE("/session/:slot", s.ClearSessionSnapshot)

	api.POST("/orders", s.PostOrder)
	api.GET("/orders/marketplace", s.GetMarketplaceOrders)
	api.POST("/orders/:orderID/accept", s.AcceptOrder)
	api.POST("/orders/:orderID/plan", s.GeneratePlan)
	api.GET("/orders/:orderID/plan", s.GetPlan)
	api.POST("/orders/:orderID/dispatch", s.DispatchOrder)
	api.POST("/orders/:orderID/delivery", s.CompleteDelivery)
	api.GET("/orders/:orderID/payment", s.GetPaymentStatus)

	api.POST("/vehicles", s.RegisterVehicle)
	api.POST("/vehicles/:vehicleID/verification", s.CompleteVerification)
}

// ErrorResponse is the JSON error envelope of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps an application error to an HTTP status. Lifecycle and
// precondition violations are conflicts, planner faults are gateway errors,
// everything the caller can fix is a bad request.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, commands.ErrPreconditionFailed):
		return http.StatusConflict
	case errors.Is(err, plan.ErrPlanGenerationFailed):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"path", ctx.Path(),
			"error", err,
		)
		return ctx.JSON(code, ErrorResponse{Code: code, Message: "internal error"})
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
