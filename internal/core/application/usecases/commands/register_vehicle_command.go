package commands

import (
	"errors"
	"fmt"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

var (
	ErrRegisterVehicleCommandIsNotConstructed = errors.New(
		"RegisterVehicleCommand must be created via NewRegisterVehicleCommand constructor",
	)
	ErrVehicleModelIsRequired = errors.New("vehicle model is required")
	ErrPlateNumberIsRequired  = errors.New("plate number is required")
)

// RegisterVehicleCommand represents a carrier registering a truck on the
// marketplace.
type RegisterVehicleCommand struct { //nolint:recvcheck //using for validation
	vehicleID   kernel.UUID
	ownerID     kernel.UUID
	model       string
	plateNumber string
	maxWeightKg float64
	maxVolume   float64

	guard guard.ConstructorGuard
}

// NewRegisterVehicleCommand creates a command to register a vehicle.
func NewRegisterVehicleCommand(
	vehicleID kernel.UUID,
	ownerID kernel.UUID,
	model string,
	plateNumber string,
	maxWeightKg float64,
	maxVolume float64,
) (RegisterVehicleCommand, error) {
	cmd := RegisterVehicleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVehicleID(vehicleID),
		cmd.setOwnerID(ownerID),
		cmd.setModel(model),
		cmd.setPlateNumber(plateNumber),
		cmd.setCapacity(maxWeightKg, maxVolume),
	); err != nil {
		return RegisterVehicleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterVehicleCommand) Validate() error {
	return c.guard.Validate(ErrRegisterVehicleCommandIsNotConstructed)
}

// VehicleID returns the identifier the new vehicle will get.
func (c RegisterVehicleCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

// OwnerID returns the registering carrier.
func (c RegisterVehicleCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// Model returns the make and model description.
func (c RegisterVehicleCommand) Model() string {
	return c.model
}

// PlateNumber returns the registration plate.
func (c RegisterVehicleCommand) PlateNumber() string {
	return c.plateNumber
}

// MaxWeightKg returns the weight limit in kilograms.
func (c RegisterVehicleCommand) MaxWeightKg() float64 {
	return c.maxWeightKg
}

// MaxVolume returns the volume limit.
func (c RegisterVehicleCommand) MaxVolume() float64 {
	return c.maxVolume
}

func (c *RegisterVehicleCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	c.vehicleID = vehicleID
	return nil
}

func (c *RegisterVehicleCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ownerID", err)
	}
	c.ownerID = ownerID
	return nil
}

func (c *RegisterVehicleCommand) setModel(model string) error {
	if model == "" {
		return ErrVehicleModelIsRequired
	}
	c.model = model
	return nil
}

func (c *RegisterVehicleCommand) setPlateNumber(plateNumber string) error {
	if plateNumber == "" {
		return ErrPlateNumberIsRequired
	}
	c.plateNumber = plateNumber
	return nil
}

func (c *RegisterVehicleCommand) setCapacity(maxWeightKg, maxVolume float64) error {
	if maxWeightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxWeightKg",
			fmt.Errorf("%g is not greater than 0", maxWeightKg))
	}
	if maxVolume <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxVolume",
			fmt.Errorf("%g is not greater than 0", maxVolume))
	}
	c.maxWeightKg = maxWeightKg
	c.maxVolume = maxVolume
	return nil
}
