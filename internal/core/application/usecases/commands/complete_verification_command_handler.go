package commands

import (
	"context"
)

// CompleteVerificationCommandHandler marks a vehicle as verified and links
// its payout account.
type CompleteVerificationCommandHandler struct {
	uowFactory VehicleUoWFactory
}

// NewCompleteVerificationCommandHandler creates a handler for verification completion.
func NewCompleteVerificationCommandHandler(uowFactory VehicleUoWFactory) CompleteVerificationCommandHandler {
	return CompleteVerificationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the complete verification command.
func (h *CompleteVerificationCommandHandler) Handle(ctx context.Context, cmd CompleteVerificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	theVehicle, err := uow.VehicleRepository().Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}

	if err = theVehicle.CompleteVerification(cmd.LinkedAccountID()); err != nil {
		return err
	}

	if err = uow.VehicleRepository().Update(ctx, theVehicle); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
