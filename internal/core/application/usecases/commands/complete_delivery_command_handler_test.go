package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"neuroload/internal/core/application/usecases/commands"
	"neuroload/internal/core/domain/model/escrow"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/order"
	"neuroload/internal/core/domain/model/vehicle"
	"neuroload/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestCompleteDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	vehicleID := kernel.NewUUID()
	cmd, err := commands.NewCompleteDeliveryCommand(orderID)
	require.NoError(t, err)

	testOrder := inTransitOrder(t, orderID, vehicleID)
	testVehicle := busyVehicle(t, vehicleID)
	hold := securedHold(t, orderID)

	orderRepo := new(MockOrderRepository)
	vehicleRepo := new(MockVehicleRepository)
	escrowRepo := new(MockEscrowRepository)
	provider := new(MockEscrowProvider)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("EscrowRepository").Return(escrowRepo).Once(),
		escrowRepo.On("GetByOrderID", ctx, orderID).Return(hold, nil).Once(),
		uow.On("VehicleRepository").Return(vehicleRepo).Once(),
		vehicleRepo.On("Get", ctx, vehicleID).Return(testVehicle, nil).Once(),
		provider.On("Release", ctx, "trf_razor_456").Return(nil).Once(),
		uow.On("EscrowRepository").Return(escrowRepo).Once(),
		escrowRepo.On("Update", ctx, hold).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("VehicleRepository").Return(vehicleRepo).Once(),
		vehicleRepo.On("Update", ctx, testVehicle).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPayoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory, provider, keylock.NewKeyedMutex(), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, testOrder.Status())
	assert.Equal(t, order.PaymentReleased, testOrder.PaymentStatus())
	assert.Equal(t, escrow.StatusReleased, hold.Status())
	assert.Equal(t, vehicle.StatusIdle, testVehicle.Status())
	uow.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_ReleaseFailureCommitsDelivery(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	vehicleID := kernel.NewUUID()
	cmd, err := commands.NewCompleteDeliveryCommand(orderID)
	require.NoError(t, err)

	testOrder := inTransitOrder(t, orderID, vehicleID)
	testVehicle := busyVehicle(t, vehicleID)
	hold := securedHold(t, orderID)

	orderRepo := new(MockOrderRepository)
	vehicleRepo := new(MockVehicleRepository)
	escrowRepo := new(MockEscrowRepository)
	provider := new(MockEscrowProvider)
	uow := new(MockUoW)

	providerErr := errors.New("transfer is on hold review")

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("EscrowRepository").Return(escrowRepo).Once(),
		escrowRepo.On("GetByOrderID", ctx, orderID).Return(hold, nil).Once(),
		uow.On("VehicleRepository").Return(vehicleRepo).Once(),
		vehicleRepo.On("Get", ctx, vehicleID).Return(testVehicle, nil).Once(),
		provider.On("Release", ctx, "trf_razor_456").Return(providerErr).Once(),
		uow.On("EscrowRepository").Return(escrowRepo).Once(),
		escrowRepo.On("Update", ctx, hold).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("VehicleRepository").Return(vehicleRepo).Once(),
		vehicleRepo.On("Update", ctx, testVehicle).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPayoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory, provider, keylock.NewKeyedMutex(), discardLogger())
	err = handler.Handle(ctx, cmd)

	// The fault surfaces even though the delivery was committed.
	require.ErrorIs(t, err, escrow.ErrEscrowFailure)
	require.ErrorIs(t, err, providerErr)
	assert.Equal(t, order.Delivered, testOrder.Status())
	assert.Equal(t, order.PaymentFailed, testOrder.PaymentStatus())
	assert.Equal(t, escrow.StatusFailed, hold.Status())
	uow.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_NotInTransit(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCompleteDeliveryCommand(orderID)
	require.NoError(t, err)

	testOrder := pendingOrder(t, orderID)

	orderRepo := new(MockOrderRepository)
	provider := new(MockEscrowProvider)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPayoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory, provider, keylock.NewKeyedMutex(), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	provider.AssertNotCalled(t, "Release")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
