package commands_test

import (
	"context"
	"testing"

	"neuroload/internal/core/application/usecases/commands"
	"neuroload/internal/core/domain/model/cargo"
	"neuroload/internal/core/domain/model/escrow"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/order"
	"neuroload/internal/core/domain/model/plan"
	"neuroload/internal/core/domain/model/vehicle"
	"neuroload/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInPendingStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllAwaitingPayout(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, v *vehicle.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetAllByOwner(ctx context.Context, ownerID kernel.UUID) ([]*vehicle.Vehicle, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vehicle.Vehicle), args.Error(1)
}

type MockEscrowRepository struct{ mock.Mock }

func (m *MockEscrowRepository) Add(ctx context.Context, h *escrow.Hold) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockEscrowRepository) Update(ctx context.Context, h *escrow.Hold) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockEscrowRepository) Get(ctx context.Context, id kernel.UUID) (*escrow.Hold, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*escrow.Hold), args.Error(1)
}

func (m *MockEscrowRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*escrow.Hold, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*escrow.Hold), args.Error(1)
}

type MockPlanRepository struct{ mock.Mock }

func (m *MockPlanRepository) Save(ctx context.Context, orderID kernel.UUID, p *plan.Plan) error {
	args := m.Called(ctx, orderID, p)
	return args.Error(0)
}

func (m *MockPlanRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*plan.Plan, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.Plan), args.Error(1)
}

func (m *MockPlanRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

// MockUoW satisfies every unit of work shape used by the handlers.
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

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

func (m *MockUoW) EscrowRepository() ports.EscrowRepository {
	args := m.Called()
	return args.Get(0).(ports.EscrowRepository)
}

func (m *MockUoW) PlanRepository() ports.PlanRepository {
	args := m.Called()
	return args.Get(0).(ports.PlanRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockVehicleUoWFactory struct{ mock.Mock }

func (m *MockVehicleUoWFactory) Create() commands.VehicleUoW {
	args := m.Called()
	return args.Get(0).(commands.VehicleUoW)
}

type MockAcceptOrderUoWFactory struct{ mock.Mock }

func (m *MockAcceptOrderUoWFactory) Create() commands.AcceptOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.AcceptOrderUoW)
}

type MockPlanUoWFactory struct{ mock.Mock }

func (m *MockPlanUoWFactory) Create() commands.PlanUoW {
	args := m.Called()
	return args.Get(0).(commands.PlanUoW)
}

type MockPayoutUoWFactory struct{ mock.Mock }

func (m *MockPayoutUoWFactory) Create() commands.PayoutUoW {
	args := m.Called()
	return args.Get(0).(commands.PayoutUoW)
}

type MockEscrowProvider struct{ mock.Mock }

func (m *MockEscrowProvider) CreateHold(
	ctx context.Context, orderID kernel.UUID, amount float64, payoutAccountRef string,
) (ports.EscrowHold, error) {
	args := m.Called(ctx, orderID, amount, payoutAccountRef)
	return args.Get(0).(ports.EscrowHold), args.Error(1)
}

func (m *MockEscrowProvider) Release(ctx context.Context, transferID string) error {
	args := m.Called(ctx, transferID)
	return args.Error(0)
}

func (m *MockEscrowProvider) Status(ctx context.Context, transferID string) (string, error) {
	args := m.Called(ctx, transferID)
	return args.String(0), args.Error(1)
}

type MockPlannerClient struct{ mock.Mock }

func (m *MockPlannerClient) GeneratePlan(ctx context.Context, manifest cargo.Manifest) ([]byte, error) {
	args := m.Called(ctx, manifest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Domain object helpers shared by the handler tests.

func testManifest(t *testing.T) cargo.Manifest {
	t.Helper()

	p1, err := cargo.NewPackage("P101", 50, cargo.FragilityLow, "Bangalore", cargo.PriorityNormal, "50x50x50")
	require.NoError(t, err)
	p2, err := cargo.NewPackage("P102", 120, cargo.FragilityMedium, "Chennai", cargo.PriorityExpress, "80x60x60")
	require.NoError(t, err)

	blr, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	chn, err := kernel.NewGeoPoint(13.0827, 80.2707)
	require.NoError(t, err)
	c1, err := cargo.NewCity("Bangalore", 350, 24, cargo.TrafficMedium, cargo.WeatherClear, blr)
	require.NoError(t, err)
	c2, err := cargo.NewCity("Chennai", 150, 12, cargo.TrafficHigh, cargo.WeatherRain, chn)
	require.NoError(t, err)

	constraints, err := cargo.NewTruckConstraints(5000, 2500, 4.5)
	require.NoError(t, err)
	scenario, err := cargo.NewSimulationScenario(1.0, 1.0, false)
	require.NoError(t, err)

	m, err := cargo.NewManifest([]cargo.Package{p1, p2}, []cargo.City{c1, c2}, constraints, scenario)
	require.NoError(t, err)
	return m
}

func pendingOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()

	o, err := order.NewOrder(id, kernel.NewUUID(), 15400, 3200, 850, testManifest(t))
	require.NoError(t, err)
	return o
}

func acceptedOrder(t *testing.T, id kernel.UUID, vehicleID kernel.UUID) *order.Order {
	t.Helper()

	o := pendingOrder(t, id)
	require.NoError(t, o.Accept(kernel.NewUUID(), vehicleID, "order_razor_123", "trf_razor_456"))
	return o
}

func inTransitOrder(t *testing.T, id kernel.UUID, vehicleID kernel.UUID) *order.Order {
	t.Helper()

	o := acceptedOrder(t, id, vehicleID)
	require.NoError(t, o.Dispatch())
	return o
}

func verifiedIdleVehicle(t *testing.T, id kernel.UUID) *vehicle.Vehicle {
	t.Helper()

	v, err := vehicle.NewVehicle(id, kernel.NewUUID(), "Tata Prima 5530", "KA-01-AB-1234", 5000, 2500)
	require.NoError(t, err)
	require.NoError(t, v.CompleteVerification("acc_carrier_77"))
	return v
}

func busyVehicle(t *testing.T, id kernel.UUID) *vehicle.Vehicle {
	t.Helper()

	v := verifiedIdleVehicle(t, id)
	require.NoError(t, v.Assign())
	return v
}

func securedHold(t *testing.T, orderID kernel.UUID) *escrow.Hold {
	t.Helper()

	h, err := escrow.NewHold(kernel.NewUUID(), orderID, 15400,
		"acc_carrier_77", "order_razor_123", "trf_razor_456")
	require.NoError(t, err)
	return h
}
