// Package http exposes the operational API of the dispatch engine. The
// surface is thin: every handler binds the request, builds a command or
// query, and delegates to the application layer.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"geodispatch/internal/core/application/usecases/commands"
	"geodispatch/internal/core/application/usecases/queries"
	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/order"
	"geodispatch/internal/core/ports"
	"geodispatch/internal/pkg/errs"
	"geodispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server wires the HTTP routes to the application command and query handlers.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	advanceOrderHandler       commands.AdvanceOrderCommandHandler
	dispatchOrderHandler      commands.DispatchOrderCommandHandler
	acceptAssignmentHandler   commands.AcceptAssignmentCommandHandler
	rejectAssignmentHandler   commands.RejectAssignmentCommandHandler
	progressAssignmentHandler commands.ProgressAssignmentCommandHandler
	updateAddressHandler      commands.UpdateAddressCoordinatesCommandHandler
	closeOverdueShiftsHandler commands.CloseOverdueShiftsCommandHandler

	undispatchedOrdersHandler queries.GetUndispatchedOrdersQueryHandler
	orderHistoryHandler       queries.GetOrderHistoryQueryHandler
	openShiftsHandler         queries.GetOpenShiftsQueryHandler
	resolveZoneHandler        queries.ResolveZoneQueryHandler
}

// NewServer creates the HTTP server over the given handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	acceptAssignmentHandler commands.AcceptAssignmentCommandHandler,
	rejectAssignmentHandler commands.RejectAssignmentCommandHandler,
	progressAssignmentHandler commands.ProgressAssignmentCommandHandler,
	updateAddressHandler commands.UpdateAddressCoordinatesCommandHandler,
	closeOverdueShiftsHandler commands.CloseOverdueShiftsCommandHandler,
	undispatchedOrdersHandler queries.GetUndispatchedOrdersQueryHandler,
	orderHistoryHandler queries.GetOrderHistoryQueryHandler,
	openShiftsHandler queries.GetOpenShiftsQueryHandler,
	resolveZoneHandler queries.ResolveZoneQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		advanceOrderHandler:       advanceOrderHandler,
		dispatchOrderHandler:      dispatchOrderHandler,
		acceptAssignmentHandler:   acceptAssignmentHandler,
		rejectAssignmentHandler:   rejectAssignmentHandler,
		progressAssignmentHandler: progressAssignmentHandler,
		updateAddressHandler:      updateAddressHandler,
		closeOverdueShiftsHandler: closeOverdueShiftsHandler,
		undispatchedOrdersHandler: undispatchedOrdersHandler,
		orderHistoryHandler:       orderHistoryHandler,
		openShiftsHandler:         openShiftsHandler,
		resolveZoneHandler:        resolveZoneHandler,
	}
}

// NewRouter builds the echo instance with all routes registered.
func (s *Server) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/undispatched", s.GetUndispatchedOrders)
	v1.GET("/orders/:orderID/history", s.GetOrderHistory)
	v1.POST("/orders/:orderID/advance", s.AdvanceOrder)
	v1.POST("/orders/:orderID/dispatch", s.DispatchOrder)
	v1.POST("/assignments/:assignmentID/accept", s.AcceptAssignment)
	v1.POST("/assignments/:assignmentID/reject", s.RejectAssignment)
	v1.POST("/assignments/:assignmentID/progress", s.ProgressAssignment)
	v1.PUT("/addresses/:addressID/coordinates", s.UpdateAddressCoordinates)
	v1.GET("/zones/resolve", s.ResolveZone)
	v1.POST("/shifts/close-overdue", s.CloseOverdueShifts)
	v1.GET("/shifts/open", s.GetOpenShifts)

	return e
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	StoreID    string `json:"store_id"`
	AddressID  string `json:"address_id"`
	CustomerID string `json:"customer_id"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return badRequest(ctx, "invalid store_id")
	}
	addressID, err := kernel.UUIDFromString(req.AddressID)
	if err != nil {
		return badRequest(ctx, "invalid address_id")
	}
	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer_id")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, storeID, addressID, customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"order_id": orderID.String()})
}

// AdvanceOrderRequest is the body of POST /api/v1/orders/:orderID/advance.
type AdvanceOrderRequest struct {
	Target  string `json:"target"`
	ActorID string `json:"actor_id"`
	Note    string `json:"note"`
}

// AdvanceOrder handles POST /api/v1/orders/:orderID/advance.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req AdvanceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.ParseStatus(req.Target)
	if err != nil {
		return badRequest(ctx, "invalid target status")
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor_id")
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, target, actorID, req.Note)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchOrder handles POST /api/v1/orders/:orderID/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptAssignmentRequest is the body of POST /api/v1/assignments/:assignmentID/accept.
type AcceptAssignmentRequest struct {
	CourierID string `json:"courier_id"`
}

// AcceptAssignment handles POST /api/v1/assignments/:assignmentID/accept.
func (s *Server) AcceptAssignment(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("assignmentID"))
	if err != nil {
		return badRequest(ctx, "invalid assignment id")
	}

	var req AcceptAssignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	cmd, err := commands.NewAcceptAssignmentCommand(assignmentID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.acceptAssignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectAssignmentRequest is the body of POST /api/v1/assignments/:assignmentID/reject.
type RejectAssignmentRequest struct {
	CourierID string `json:"courier_id"`
}

// RejectAssignment handles POST /api/v1/assignments/:assignmentID/reject.
// Declining re-dispatches the order to the next candidate; the declining
// courier is excluded from further offers for this order.
func (s *Server) RejectAssignment(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("assignmentID"))
	if err != nil {
		return badRequest(ctx, "invalid assignment id")
	}

	var req RejectAssignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	cmd, err := commands.NewRejectAssignmentCommand(assignmentID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.rejectAssignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ProgressAssignmentRequest is the body of POST /api/v1/assignments/:assignmentID/progress.
type ProgressAssignmentRequest struct {
	Target string `json:"target"`
}

// ProgressAssignment handles POST /api/v1/assignments/:assignmentID/progress.
func (s *Server) ProgressAssignment(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("assignmentID"))
	if err != nil {
		return badRequest(ctx, "invalid assignment id")
	}

	var req ProgressAssignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	target, err := assignment.ParseStatus(req.Target)
	if err != nil {
		return badRequest(ctx, "invalid target status")
	}

	cmd, err := commands.NewProgressAssignmentCommand(assignmentID, target)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.progressAssignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateAddressCoordinatesRequest is the body of PUT /api/v1/addresses/:addressID/coordinates.
type UpdateAddressCoordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// UpdateAddressCoordinates handles PUT /api/v1/addresses/:addressID/coordinates.
// Moving an address re-resolves its delivery zone; a point outside every
// zone leaves the address unresolved rather than failing.
func (s *Server) UpdateAddressCoordinates(ctx echo.Context) error {
	addressID, err := kernel.UUIDFromString(ctx.Param("addressID"))
	if err != nil {
		return badRequest(ctx, "invalid address id")
	}

	var req UpdateAddressCoordinatesRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	point, err := kernel.NewGeoPoint(req.Lat, req.Lon)
	if err != nil {
		return badRequest(ctx, "invalid coordinates")
	}

	cmd, err := commands.NewUpdateAddressCoordinatesCommand(addressID, point)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.updateAddressHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveZoneResponse is the body of GET /api/v1/zones/resolve. When the
// point lies outside every active zone, resolved is false and the zone
// fields are omitted.
type ResolveZoneResponse struct {
	Resolved  bool   `json:"resolved"`
	ZoneID    string `json:"zone_id,omitempty"`
	ZoneName  string `json:"zone_name,omitempty"`
	CityID    string `json:"city_id,omitempty"`
	RegionID  string `json:"region_id,omitempty"`
	CountryID string `json:"country_id,omitempty"`
}

// ResolveZone handles GET /api/v1/zones/resolve?lat=&lon=.
func (s *Server) ResolveZone(ctx echo.Context) error {
	lat, err := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	if err != nil {
		return badRequest(ctx, "invalid lat")
	}
	lon, err := strconv.ParseFloat(ctx.QueryParam("lon"), 64)
	if err != nil {
		return badRequest(ctx, "invalid lon")
	}

	query, err := queries.NewResolveZoneQuery(lat, lon)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.resolveZoneHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to resolve zone")
	}

	if !result.Resolved {
		return ctx.JSON(http.StatusOK, ResolveZoneResponse{Resolved: false})
	}

	return ctx.JSON(http.StatusOK, ResolveZoneResponse{
		Resolved:  true,
		ZoneID:    result.ZoneID.String(),
		ZoneName:  result.ZoneName,
		CityID:    result.CityID.String(),
		RegionID:  result.RegionID.String(),
		CountryID: result.CountryID.String(),
	})
}

// CloseOverdueShifts handles POST /api/v1/shifts/close-overdue.
func (s *Server) CloseOverdueShifts(ctx echo.Context) error {
	cmd := commands.NewCloseOverdueShiftsCommand()

	if err := s.closeOverdueShiftsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UndispatchedOrderResponse represents one backlog order.
type UndispatchedOrderResponse struct {
	ID            string    `json:"id"`
	StoreID       string    `json:"store_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	OfferAttempts int       `json:"offer_attempts"`
}

// GetUndispatchedOrders handles GET /api/v1/orders/undispatched.
func (s *Server) GetUndispatchedOrders(ctx echo.Context) error {
	query := queries.NewGetUndispatchedOrdersQuery()

	orders, err := s.undispatchedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve undispatched orders")
	}

	response := make([]UndispatchedOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = UndispatchedOrderResponse{
			ID:            o.ID.String(),
			StoreID:       o.StoreID.String(),
			Status:        o.Status,
			CreatedAt:     o.CreatedAt,
			OfferAttempts: o.OfferAttempts,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// OrderHistoryResponse represents one status change in an order's trail.
type OrderHistoryResponse struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
	Note      string    `json:"note,omitempty"`
}

// GetOrderHistory handles GET /api/v1/orders/:orderID/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	trail, err := s.orderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve order history")
	}

	response := make([]OrderHistoryResponse, len(trail))
	for i, record := range trail {
		response[i] = OrderHistoryResponse{
			Status:    record.Status,
			ChangedAt: record.ChangedAt,
			ChangedBy: record.ChangedBy,
			Note:      record.Note,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// OpenShiftResponse represents one open shift.
type OpenShiftResponse struct {
	ID            string    `json:"id"`
	CourierID     string    `json:"courier_id"`
	CourierName   string    `json:"courier_name"`
	OpenedAt      time.Time `json:"opened_at"`
	ExpectedEndAt time.Time `json:"expected_end_at"`
	Overdue       bool      `json:"overdue"`
}

// GetOpenShifts handles GET /api/v1/shifts/open.
func (s *Server) GetOpenShifts(ctx echo.Context) error {
	query := queries.NewGetOpenShiftsQuery()

	shifts, err := s.openShiftsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve open shifts")
	}

	response := make([]OpenShiftResponse, len(shifts))
	for i, shift := range shifts {
		response[i] = OpenShiftResponse{
			ID:            shift.ID.String(),
			CourierID:     shift.CourierID.String(),
			CourierName:   shift.CourierName,
			OpenedAt:      shift.OpenedAt,
			ExpectedEndAt: shift.ExpectedEndAt,
			Overdue:       shift.Overdue,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// commandError maps application and domain errors to HTTP responses.
func commandError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return respondError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return respondError(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, commands.ErrOrderLocked),
		errors.Is(err, commands.ErrNoCourierAvailable),
		errors.Is(err, commands.ErrReassignmentsExhausted),
		errors.Is(err, commands.ErrAddressUnresolved),
		errors.Is(err, assignment.ErrOfferNotAcceptable),
		errors.Is(err, ports.ErrConcurrentUpdate):
		return respondError(ctx, http.StatusConflict, err.Error())
	default:
		return internalError(ctx, "internal error")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return respondError(ctx, http.StatusBadRequest, message)
}

func internalError(ctx echo.Context, message string) error {
	return respondError(ctx, http.StatusInternalServerError, message)
}

func respondError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
