package commands

import (
	"context"
	"fmt"

	"neuroload/internal/core/domain/model/escrow"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/vehicle"
	"neuroload/internal/core/ports"
	"neuroload/internal/pkg/keylock"
)

// ErrVehicleOverCapacity is returned when the manifest's total weight
// exceeds the offered vehicle's weight limit.
var ErrVehicleOverCapacity = fmt.Errorf("%w: manifest weight exceeds vehicle capacity", ErrPreconditionFailed)

// ErrVehicleNotEligible is returned when the offered vehicle is unverified
// or not idle.
var ErrVehicleNotEligible = fmt.Errorf("%w: vehicle is not eligible", ErrPreconditionFailed)

// AcceptOrderCommandHandler handles a carrier accepting a pending order.
//
// The acceptance workflow is ordered so that money moves last and state
// commits only after money moved:
//  1. check every precondition (order pending, vehicle verified, idle and
//     big enough) before touching the escrow provider
//  2. create the escrow hold at the provider
//  3. record the hold, flip the order to ACCEPTED and reserve the vehicle in
//     one transaction
//
// A provider failure at step 2 leaves the order PENDING on the marketplace.
// Transitions on one order are serialized with a per-order mutex, so a
// concurrent duplicate accept fails its precondition instead of racing.
type AcceptOrderCommandHandler struct {
	uowFactory     AcceptOrderUoWFactory
	escrowProvider ports.EscrowProvider
	orderLocks     *keylock.KeyedMutex
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(
	uowFactory AcceptOrderUoWFactory,
	escrowProvider ports.EscrowProvider,
	orderLocks *keylock.KeyedMutex,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory:     uowFactory,
		escrowProvider: escrowProvider,
		orderLocks:     orderLocks,
	}
}

// Handle processes the accept order command.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.orderLocks.Lock(cmd.OrderID().String())
	defer h.orderLocks.Unlock(cmd.OrderID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	theOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = theOrder.Status().ValidateAccept(); err != nil {
		return err
	}

	theVehicle, err := uow.VehicleRepository().Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}
	if !theVehicle.IsVerified() || theVehicle.Status() != vehicle.StatusIdle {
		return ErrVehicleNotEligible
	}
	if !theVehicle.CanCarry(theOrder.Manifest().TotalWeightKg()) {
		return ErrVehicleOverCapacity
	}

	// Every precondition holds; only now is the provider asked for money.
	providerHold, err := h.escrowProvider.CreateHold(
		ctx, theOrder.ID(), theOrder.Price(), theVehicle.LinkedAccountID())
	if err != nil {
		return err
	}

	hold, err := escrow.NewHold(
		kernel.NewUUID(),
		theOrder.ID(),
		theOrder.Price(),
		theVehicle.LinkedAccountID(),
		providerHold.ProviderOrderID,
		providerHold.TransferID,
	)
	if err != nil {
		return err
	}

	if err = theOrder.Accept(
		cmd.CarrierID(), cmd.VehicleID(),
		providerHold.ProviderOrderID, providerHold.TransferID,
	); err != nil {
		return err
	}
	if err = theVehicle.Assign(); err != nil {
		return err
	}

	if err = uow.EscrowRepository().Add(ctx, hold); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, theOrder); err != nil {
		return err
	}
	if err = uow.VehicleRepository().Update(ctx, theVehicle); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
