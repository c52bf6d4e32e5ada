package cmd

import (
	"context"
	"log/slog"

	"geodispatch/internal/adapters/out/postgres"
	"geodispatch/internal/core/application/events"
	"geodispatch/internal/core/application/usecases/commands"
	"geodispatch/internal/core/application/usecases/queries"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires the application layer over its infrastructure.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	locker     ports.OrderLocker
	bus        *events.Bus
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	locker ports.OrderLocker,
	bus *events.Bus,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:     locker,
		bus:        bus,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.bus)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrderCommandHandler(
		f, c.locker, c.bus,
		c.config.DispatchLockTTL, c.config.OfferTTL, c.config.MaxReassignments)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(c.assignmentUoWFactory())
}

func (c *CompositionRoot) CreateRejectAssignmentCommandHandler() commands.RejectAssignmentCommandHandler {
	return commands.NewRejectAssignmentCommandHandler(
		c.assignmentUoWFactory(), c.CreateDispatcher(), c.logger)
}

func (c *CompositionRoot) CreateProgressAssignmentCommandHandler() commands.ProgressAssignmentCommandHandler {
	return commands.NewProgressAssignmentCommandHandler(c.assignmentUoWFactory())
}

func (c *CompositionRoot) CreateExpireOffersCommandHandler() commands.ExpireOffersCommandHandler {
	return commands.NewExpireOffersCommandHandler(
		c.assignmentUoWFactory(), c.CreateDispatcher(), c.bus, c.logger)
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	return commands.NewCancelStaleOrdersCommandHandler(
		c.orderUoWFactory(), c.config.PendingTimeout, c.logger)
}

func (c *CompositionRoot) CreateCloseOverdueShiftsCommandHandler() commands.CloseOverdueShiftsCommandHandler {
	var f commands.ShiftUoWFactory = FuncShiftUoWFactory(func() commands.ShiftUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCloseOverdueShiftsCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateUpdateAddressCoordinatesCommandHandler() commands.UpdateAddressCoordinatesCommandHandler {
	var f commands.AddressUoWFactory = FuncAddressUoWFactory(func() commands.AddressUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateAddressCoordinatesCommandHandler(f)
}

// CreateDispatcher adapts the dispatch handler to the narrow Dispatcher
// interface the expiry sweep and the backlog sweep depend on.
func (c *CompositionRoot) CreateDispatcher() commands.Dispatcher {
	handler := c.CreateDispatchOrderCommandHandler()
	return &dispatcherAdapter{handler: handler}
}

func (c *CompositionRoot) CreateOrderUoWFactory() commands.OrderUoWFactory {
	return c.orderUoWFactory()
}

func (c *CompositionRoot) CreateGetUndispatchedOrdersQueryHandler() queries.GetUndispatchedOrdersQueryHandler {
	return queries.NewGetUndispatchedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenShiftsQueryHandler() queries.GetOpenShiftsQueryHandler {
	return queries.NewGetOpenShiftsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateResolveZoneQueryHandler() queries.ResolveZoneQueryHandler {
	return queries.NewResolveZoneQueryHandler(c.uowFactory.Create().ZoneRepository())
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
}

type dispatcherAdapter struct {
	handler commands.DispatchOrderCommandHandler
}

func (d *dispatcherAdapter) Dispatch(ctx context.Context, orderID kernel.UUID) error {
	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return err
	}
	return d.handler.Handle(ctx, cmd)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncAddressUoWFactory func() commands.AddressUoW

func (f FuncAddressUoWFactory) Create() commands.AddressUoW {
	return f()
}

type FuncShiftUoWFactory func() commands.ShiftUoW

func (f FuncShiftUoWFactory) Create() commands.ShiftUoW {
	return f()
}
