// Package http exposes the operator API: order submission, the live fleet
// snapshot, and the dispatch archive. The simulation itself runs entirely on
// the message bus; this surface exists for humans and scripts.
package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/wire"
)

const defaultDispatchLogLimit = 50

// DispatchLogReader serves the dispatch archive read model. Satisfied by
// queries.GetDispatchLogQueryHandler; deployments without a database plug in
// an empty reader.
type DispatchLogReader interface {
	Handle(ctx context.Context, query queries.GetDispatchLogQuery) ([]queries.GetDispatchLogQueryResponse, error)
}

// ErrorResponse is the JSON error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderAccepted is the response body for a submitted order.
type OrderAccepted struct {
	OrderID string `json:"order_id"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	submitOrderHandler    commands.SubmitOrderCommandHandler
	getFleetHandler       queries.GetFleetSnapshotQueryHandler
	getDispatchLogHandler DispatchLogReader
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	getFleetHandler queries.GetFleetSnapshotQueryHandler,
	getDispatchLogHandler DispatchLogReader,
) *Server {
	return &Server{
		submitOrderHandler:    submitOrderHandler,
		getFleetHandler:       getFleetHandler,
		getDispatchLogHandler: getDispatchLogHandler,
	}
}

// RegisterRoutes binds all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/v1/orders", s.SubmitOrder)
	e.GET("/api/v1/fleet", s.GetFleet)
	e.GET("/api/v1/dispatches", s.GetDispatches)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// SubmitOrder handles POST /api/v1/orders - accepts one order into the
// pending queue.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var intake wire.OrderIntake
	if err := ctx.Bind(&intake); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSubmitOrderCommand(intake.OrderID, intake.Item, intake.Quantity, intake.PackStation)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to submit order",
		})
	}

	return ctx.JSON(http.StatusAccepted, OrderAccepted{OrderID: cmd.OrderID()})
}

// GetFleet handles GET /api/v1/fleet - returns the coordinator's current
// world view.
func (s *Server) GetFleet(ctx echo.Context) error {
	snapshot, err := s.getFleetHandler.Handle(ctx.Request().Context(), queries.NewGetFleetSnapshotQuery())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve fleet snapshot",
		})
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// GetDispatches handles GET /api/v1/dispatches - returns recent coordination
// events, newest first. The optional limit parameter defaults to 50.
func (s *Server) GetDispatches(ctx echo.Context) error {
	limit := defaultDispatchLogLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid limit parameter",
			})
		}
		limit = parsed
	}

	query, err := queries.NewGetDispatchLogQuery(limit)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid limit parameter: " + err.Error(),
		})
	}

	events, err := s.getDispatchLogHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve dispatch log",
		})
	}

	return ctx.JSON(http.StatusOK, events)
}
