package commands

import (
	"context"
	"log/slog"

	"neuroload/internal/core/domain/model/escrow"
	"neuroload/internal/core/ports"
	"neuroload/internal/pkg/keylock"
)

// CompleteDeliveryCommandHandler records proof of delivery and settles the
// escrow hold.
//
// Delivery is a fact about the physical world and is never rolled back for a
// payment fault: if the provider rejects the release, the order commits as
// DELIVERED with paymentStatus FAILED and the escrow error is returned to
// the caller. The reconciliation job retries such payouts later.
type CompleteDeliveryCommandHandler struct {
	uowFactory     PayoutUoWFactory
	escrowProvider ports.EscrowProvider
	orderLocks     *keylock.KeyedMutex
	logger         *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory PayoutUoWFactory,
	escrowProvider ports.EscrowProvider,
	orderLocks *keylock.KeyedMutex,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory:     uowFactory,
		escrowProvider: escrowProvider,
		orderLocks:     orderLocks,
		logger:         logger,
	}
}

// Handle processes the complete delivery command. The returned error may be
// an escrow fault even though the delivery itself was committed.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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
	if err = theOrder.Deliver(); err != nil {
		return err
	}

	hold, err := uow.EscrowRepository().GetByOrderID(ctx, theOrder.ID())
	if err != nil {
		return err
	}

	theVehicle, err := uow.VehicleRepository().Get(ctx, *theOrder.AssignedVehicleID())
	if err != nil {
		return err
	}
	if err = theVehicle.Release(); err != nil {
		return err
	}

	var escrowErr error
	if releaseErr := h.escrowProvider.Release(ctx, hold.TransferID()); releaseErr != nil {
		if err = hold.MarkReleaseFailed(); err != nil {
			return err
		}
		if err = theOrder.MarkPaymentFailed(); err != nil {
			return err
		}
		escrowErr = escrow.NewError("release", hold.TransferID(), releaseErr)
		h.logger.ErrorContext(ctx, "escrow release failed, payout flagged for reconciliation",
			"order_id", theOrder.ID().String(),
			"transfer_id", hold.TransferID(),
			"error", releaseErr,
		)
	} else {
		if err = hold.Release(); err != nil {
			return err
		}
		if err = theOrder.MarkPaymentReleased(); err != nil {
			return err
		}
	}

	if err = uow.EscrowRepository().Update(ctx, hold); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, theOrder); err != nil {
		return err
	}
	if err = uow.VehicleRepository().Update(ctx, theVehicle); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return escrowErr
}
