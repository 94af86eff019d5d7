package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "neuroload/internal/adapters/out/postgres"
	"neuroload/internal/adapters/out/postgres/escrowrepo"
	"neuroload/internal/adapters/out/postgres/orderrepo"
	"neuroload/internal/adapters/out/postgres/planrepo"
	"neuroload/internal/adapters/out/postgres/vehiclerepo"
	"neuroload/internal/core/domain/model/cargo"
	"neuroload/internal/core/domain/model/escrow"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/order"
	"neuroload/internal/core/domain/model/vehicle"
	"neuroload/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&vehiclerepo.VehicleDTO{},
		&escrowrepo.HoldDTO{},
		&planrepo.PlanDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, vehicles, escrow_holds, plans").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.VehicleRepository())
	suite.NotNil(uow2.EscrowRepository())
	suite.NotNil(uow2.PlanRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Multiple begin calls are safe.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitWithoutBegin_ReturnsError() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

// TestUnitOfWork_AcceptanceCommit mirrors the acceptance transaction: the
// order, the vehicle and the escrow hold all change in one unit of work.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AcceptanceCommit() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder()
	testVehicle := suite.createVerifiedVehicle()

	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.Begin(ctx))
	suite.Require().NoError(setupUow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setupUow.VehicleRepository().Add(ctx, testVehicle))
	suite.Require().NoError(setupUow.Commit(ctx))

	suite.Require().NoError(testOrder.Accept(
		testVehicle.OwnerID(), testVehicle.ID(), "order_razor_123", "trf_razor_456"))
	suite.Require().NoError(testVehicle.Assign())

	hold, err := escrow.NewHold(
		kernel.NewUUID(), testOrder.ID(), testOrder.Price(),
		testVehicle.LinkedAccountID(), "order_razor_123", "trf_razor_456")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.EscrowRepository().Add(ctx, hold))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, testOrder))
	suite.Require().NoError(uow.VehicleRepository().Update(ctx, testVehicle))
	suite.Require().NoError(uow.Commit(ctx))

	verifyUow := suite.factory.Create()
	persistedOrder, err := verifyUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, persistedOrder.Status())

	persistedVehicle, err := verifyUow.VehicleRepository().Get(ctx, testVehicle.ID())
	suite.Require().NoError(err)
	suite.Equal(vehicle.StatusBusy, persistedVehicle.Status())

	persistedHold, err := verifyUow.EscrowRepository().GetByOrderID(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(escrow.StatusSecured, persistedHold.Status())
}

// TestUnitOfWork_RollbackDiscardsAllChanges verifies that nothing from a
// multi-repository transaction survives a rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsAllChanges() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder()
	testVehicle := suite.createVerifiedVehicle()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.VehicleRepository().Add(ctx, testVehicle))
	suite.Require().NoError(uow.Rollback(ctx))

	var orderCount, vehicleCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&vehiclerepo.VehicleDTO{}).Count(&vehicleCount).Error)
	suite.Zero(orderCount)
	suite.Zero(vehicleCount)
}

func (suite *UnitOfWorkIntegrationTestSuite) createPendingOrder() *order.Order {
	p1, err := cargo.NewPackage("P101", 3200, cargo.FragilityLow, "Bangalore", cargo.PriorityExpress, "120x80x90")
	suite.Require().NoError(err)

	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
	suite.Require().NoError(err)
	c1, err := cargo.NewCity("Bangalore", 0, 24, cargo.TrafficHigh, cargo.WeatherClear, point)
	suite.Require().NoError(err)

	constraints, err := cargo.NewTruckConstraints(5000, 2500, 4.2)
	suite.Require().NoError(err)

	scenario, err := cargo.NewSimulationScenario(1.0, 1.0, false)
	suite.Require().NoError(err)

	manifest, err := cargo.NewManifest(
		[]cargo.Package{p1}, []cargo.City{c1}, constraints, scenario)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 15400, 3200, 850, manifest)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) createVerifiedVehicle() *vehicle.Vehicle {
	testVehicle, err := vehicle.NewVehicle(
		kernel.NewUUID(), kernel.NewUUID(), "Tata Prima 5530", "KA-01-AB-1234", 5000, 2500)
	suite.Require().NoError(err)
	suite.Require().NoError(testVehicle.CompleteVerification("acc_carrier_77"))
	return testVehicle
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
