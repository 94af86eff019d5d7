package order_test

import (
	"testing"
	"time"

	"neuroload/internal/core/domain/model/cargo"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManifest(t *testing.T) cargo.Manifest {
	t.Helper()

	p1, err := cargo.NewPackage("P101", 50, cargo.FragilityLow, "Bangalore", cargo.PriorityNormal, "50x50x50")
	require.NoError(t, err)
	p2, err := cargo.NewPackage("P102", 120, cargo.FragilityMedium, "Chennai", cargo.PriorityExpress, "80x60x60")
	require.NoError(t, err)

	blr, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	city, err := cargo.NewCity("Bangalore", 350, 24, cargo.TrafficMedium, cargo.WeatherClear, blr)
	require.NoError(t, err)

	constraints, err := cargo.NewTruckConstraints(5000, 2500, 4.5)
	require.NoError(t, err)
	scenario, err := cargo.NewSimulationScenario(1.0, 1.0, false)
	require.NoError(t, err)

	m, err := cargo.NewManifest([]cargo.Package{p1, p2}, []cargo.City{city}, constraints, scenario)
	require.NoError(t, err)
	return m
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 15400, 3200, 850, testManifest(t))
	require.NoError(t, err)
	return o
}

func acceptedOrder(t *testing.T) *order.Order {
	t.Helper()

	o := pendingOrder(t)
	require.NoError(t, o.Accept(kernel.NewUUID(), kernel.NewUUID(), "order_razor_123", "trf_razor_456"))
	return o
}

func deliveredOrder(t *testing.T) *order.Order {
	t.Helper()

	o := acceptedOrder(t)
	require.NoError(t, o.Dispatch())
	require.NoError(t, o.Deliver())
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create valid pending order", func(t *testing.T) {
		id := kernel.NewUUID()
		shipperID := kernel.NewUUID()

		o, err := order.NewOrder(id, shipperID, 15400, 3200, 850, testManifest(t))

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.ShipperID().IsEqual(shipperID))
		assert.InDelta(t, 15400.0, o.Price(), 1e-9)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentUnset, o.PaymentStatus())
		assert.Empty(t, o.EscrowOrderID())
		assert.Empty(t, o.EscrowTransferID())
		assert.Nil(t, o.AssignedCarrierID())
		assert.Nil(t, o.AssignedVehicleID())
		assert.False(t, o.CreatedAt().IsZero())
	})

	t.Run("should fail with non-positive price", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 0, 3200, 850, testManifest(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "price")
	})

	t.Run("should fail with negative estimates", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 15400, -1, -1, testManifest(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "fuelCostEstimate")
	})

	t.Run("should fail with zero-value manifest", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 15400, 3200, 850, cargo.Manifest{})

		require.ErrorIs(t, err, cargo.ErrManifestIsNotConstructed)
	})

	t.Run("should fail with empty ids", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, 15400, 3200, 850, testManifest(t))

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Accept(t *testing.T) {
	t.Run("should accept pending order with escrow references", func(t *testing.T) {
		o := pendingOrder(t)
		carrierID := kernel.NewUUID()
		vehicleID := kernel.NewUUID()

		err := o.Accept(carrierID, vehicleID, "order_razor_123", "trf_razor_456")

		require.NoError(t, err)
		assert.Equal(t, order.Accepted, o.Status())
		assert.Equal(t, order.PaymentSecured, o.PaymentStatus())
		assert.Equal(t, "order_razor_123", o.EscrowOrderID())
		assert.Equal(t, "trf_razor_456", o.EscrowTransferID())
		require.NotNil(t, o.AssignedCarrierID())
		assert.True(t, o.AssignedCarrierID().IsEqual(carrierID))
		require.NotNil(t, o.AssignedVehicleID())
		assert.True(t, o.AssignedVehicleID().IsEqual(vehicleID))
	})

	t.Run("should reject acceptance without escrow references", func(t *testing.T) {
		o := pendingOrder(t)

		err := o.Accept(kernel.NewUUID(), kernel.NewUUID(), "", "")

		require.Error(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentUnset, o.PaymentStatus())
	})

	t.Run("should reject double acceptance", func(t *testing.T) {
		o := acceptedOrder(t)

		err := o.Accept(kernel.NewUUID(), kernel.NewUUID(), "order_other", "trf_other")

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, "order_razor_123", o.EscrowOrderID())
	})
}

func TestOrder_DispatchAndDeliver(t *testing.T) {
	t.Run("full lifecycle", func(t *testing.T) {
		o := acceptedOrder(t)

		require.NoError(t, o.Dispatch())
		assert.Equal(t, order.InTransit, o.Status())

		require.NoError(t, o.Deliver())
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.PaymentSecured, o.PaymentStatus())
	})

	t.Run("cannot dispatch pending order", func(t *testing.T) {
		o := pendingOrder(t)

		require.ErrorIs(t, o.Dispatch(), order.ErrInvalidTransition)
	})

	t.Run("cannot deliver accepted order", func(t *testing.T) {
		o := acceptedOrder(t)

		require.ErrorIs(t, o.Deliver(), order.ErrInvalidTransition)
	})

	t.Run("cannot deliver twice", func(t *testing.T) {
		o := deliveredOrder(t)

		require.ErrorIs(t, o.Deliver(), order.ErrInvalidTransition)
	})
}

func TestOrder_PaymentOutcomes(t *testing.T) {
	t.Run("release after delivery", func(t *testing.T) {
		o := deliveredOrder(t)

		require.NoError(t, o.MarkPaymentReleased())
		assert.Equal(t, order.PaymentReleased, o.PaymentStatus())
	})

	t.Run("release before delivery is rejected", func(t *testing.T) {
		o := acceptedOrder(t)

		require.ErrorIs(t, o.MarkPaymentReleased(), order.ErrPaymentNotReleasable)
		assert.Equal(t, order.PaymentSecured, o.PaymentStatus())
	})

	t.Run("double release is rejected", func(t *testing.T) {
		o := deliveredOrder(t)
		require.NoError(t, o.MarkPaymentReleased())

		require.ErrorIs(t, o.MarkPaymentReleased(), order.ErrPaymentNotReleasable)
		assert.Equal(t, order.PaymentReleased, o.PaymentStatus())
	})

	t.Run("failed release keeps delivery and flags payout", func(t *testing.T) {
		o := deliveredOrder(t)

		require.NoError(t, o.MarkPaymentFailed())
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
	})

	t.Run("reconciliation retries a failed payout", func(t *testing.T) {
		o := deliveredOrder(t)
		require.NoError(t, o.MarkPaymentFailed())

		require.NoError(t, o.MarkPaymentReleased())
		assert.Equal(t, order.PaymentReleased, o.PaymentStatus())
	})

	t.Run("cannot fail payout before delivery", func(t *testing.T) {
		o := acceptedOrder(t)

		require.ErrorIs(t, o.MarkPaymentFailed(), order.ErrPaymentNotReleasable)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores an accepted order", func(t *testing.T) {
		id := kernel.NewUUID()
		carrierID := kernel.NewUUID()
		vehicleID := kernel.NewUUID()
		createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

		o, err := order.RestoreOrder(
			id, kernel.NewUUID(), 15400, 3200, 850, testManifest(t),
			order.Accepted, order.PaymentSecured,
			"order_razor_123", "trf_razor_456",
			&carrierID, &vehicleID, createdAt,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Accepted, o.Status())
		assert.Equal(t, createdAt, o.CreatedAt())
	})

	t.Run("rejects pending order with escrow references", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), 15400, 3200, 850, testManifest(t),
			order.Pending, order.PaymentUnset,
			"order_razor_123", "", nil, nil, time.Now(),
		)

		require.Error(t, err)
	})

	t.Run("rejects accepted order without carrier", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), 15400, 3200, 850, testManifest(t),
			order.Accepted, order.PaymentSecured,
			"order_razor_123", "trf_razor_456", nil, nil, time.Now(),
		)

		require.Error(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), 15400, 3200, 850, testManifest(t),
			order.Unknown, order.PaymentUnset,
			"", "", nil, nil, time.Now(),
		)

		require.Error(t, err)
	})
}
