package commands

import (
	"context"

	"neuroload/internal/core/domain/model/vehicle"
)

// RegisterVehicleCommandHandler handles vehicle registration. The vehicle
// starts idle and unverified; it cannot accept orders until verification
// links a payout account.
type RegisterVehicleCommandHandler struct {
	uowFactory VehicleUoWFactory
}

// NewRegisterVehicleCommandHandler creates a handler for vehicle registration.
func NewRegisterVehicleCommandHandler(uowFactory VehicleUoWFactory) RegisterVehicleCommandHandler {
	return RegisterVehicleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the register vehicle command.
func (h *RegisterVehicleCommandHandler) Handle(ctx context.Context, cmd RegisterVehicleCommand) error {
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

	newVehicle, err := vehicle.NewVehicle(
		cmd.VehicleID(),
		cmd.OwnerID(),
		cmd.Model(),
		cmd.PlateNumber(),
		cmd.MaxWeightKg(),
		cmd.MaxVolume(),
	)
	if err != nil {
		return err
	}

	if err = uow.VehicleRepository().Add(ctx, newVehicle); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
