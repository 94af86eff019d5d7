package cmd

import (
	"log/slog"

	"neuroload/internal/adapters/out/postgres"
	"neuroload/internal/core/application/usecases/commands"
	"neuroload/internal/core/application/usecases/queries"
	"neuroload/internal/core/ports"
	"neuroload/internal/pkg/keylock"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into the application's command and query
// handlers. One root per process; handlers built from it share the order
// lock registry, so lifecycle transitions on one order stay serialized.
type CompositionRoot struct {
	gormDB         *gorm.DB
	uowFactory     postgres.GormUnitOfWorkFactory
	escrowProvider ports.EscrowProvider
	plannerClient  ports.PlannerClient
	stateStore     ports.StateStore
	orderLocks     *keylock.KeyedMutex
	logger         *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	escrowProvider ports.EscrowProvider,
	plannerClient ports.PlannerClient,
	stateStore ports.StateStore,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		escrowProvider: escrowProvider,
		plannerClient:  plannerClient,
		stateStore:     stateStore,
		orderLocks:     keylock.NewKeyedMutex(),
		logger:         logger,
	}
}

// StateStore exposes the session snapshot store for the HTTP server.
func (c *CompositionRoot) StateStore() ports.StateStore {
	return c.stateStore
}

// Logger exposes the process logger for the HTTP server and jobs.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreatePostOrderCommandHandler() commands.PostOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPostOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.AcceptOrderUoWFactory = FuncAcceptOrderUoWFactory(func() commands.AcceptOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.escrowProvider, c.orderLocks)
}

func (c *CompositionRoot) CreateGeneratePlanCommandHandler() commands.GeneratePlanCommandHandler {
	var f commands.PlanUoWFactory = FuncPlanUoWFactory(func() commands.PlanUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGeneratePlanCommandHandler(f, c.plannerClient, c.logger)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	var f commands.PlanUoWFactory = FuncPlanUoWFactory(func() commands.PlanUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrderCommandHandler(f, c.orderLocks)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.PayoutUoWFactory = FuncPayoutUoWFactory(func() commands.PayoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.escrowProvider, c.orderLocks, c.logger)
}

func (c *CompositionRoot) CreateReconcilePayoutsCommandHandler() commands.ReconcilePayoutsCommandHandler {
	var f commands.PayoutUoWFactory = FuncPayoutUoWFactory(func() commands.PayoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcilePayoutsCommandHandler(f, c.escrowProvider, c.orderLocks, c.logger)
}

func (c *CompositionRoot) CreateRegisterVehicleCommandHandler() commands.RegisterVehicleCommandHandler {
	var f commands.VehicleUoWFactory = FuncVehicleUoWFactory(func() commands.VehicleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterVehicleCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteVerificationCommandHandler() commands.CompleteVerificationCommandHandler {
	var f commands.VehicleUoWFactory = FuncVehicleUoWFactory(func() commands.VehicleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteVerificationCommandHandler(f)
}

func (c *CompositionRoot) CreateGetMarketplaceOrdersQueryHandler() queries.GetMarketplaceOrdersQueryHandler {
	return queries.NewGetMarketplaceOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPlanQueryHandler() queries.GetPlanQueryHandler {
	return queries.NewGetPlanQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPaymentStatusQueryHandler() queries.GetPaymentStatusQueryHandler {
	return queries.NewGetPaymentStatusQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAcceptOrderUoWFactory func() commands.AcceptOrderUoW

func (f FuncAcceptOrderUoWFactory) Create() commands.AcceptOrderUoW {
	return f()
}

type FuncPlanUoWFactory func() commands.PlanUoW

func (f FuncPlanUoWFactory) Create() commands.PlanUoW {
	return f()
}

type FuncPayoutUoWFactory func() commands.PayoutUoW

func (f FuncPayoutUoWFactory) Create() commands.PayoutUoW {
	return f()
}

type FuncVehicleUoWFactory func() commands.VehicleUoW

func (f FuncVehicleUoWFactory) Create() commands.VehicleUoW {
	return f()
}
