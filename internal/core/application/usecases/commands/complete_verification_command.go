package commands

import (
	"errors"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

var ErrCompleteVerificationCommandIsNotConstructed = errors.New(
	"CompleteVerificationCommand must be created via NewCompleteVerificationCommand constructor",
)

// CompleteVerificationCommand represents the verification of a registered
// vehicle, linking the payout account escrow releases will go to.
type CompleteVerificationCommand struct { //nolint:recvcheck //using for validation
	vehicleID       kernel.UUID
	linkedAccountID string

	guard guard.ConstructorGuard
}

// NewCompleteVerificationCommand creates a command to complete verification.
func NewCompleteVerificationCommand(vehicleID kernel.UUID, linkedAccountID string) (CompleteVerificationCommand, error) {
	cmd := CompleteVerificationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVehicleID(vehicleID),
		cmd.setLinkedAccountID(linkedAccountID),
	); err != nil {
		return CompleteVerificationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteVerificationCommand) Validate() error {
	return c.guard.Validate(ErrCompleteVerificationCommandIsNotConstructed)
}

// VehicleID returns the vehicle being verified.
func (c CompleteVerificationCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

// LinkedAccountID returns the payout account to link.
func (c CompleteVerificationCommand) LinkedAccountID() string {
	return c.linkedAccountID
}

func (c *CompleteVerificationCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	c.vehicleID = vehicleID
	return nil
}

func (c *CompleteVerificationCommand) setLinkedAccountID(linkedAccountID string) error {
	if linkedAccountID == "" {
		return errs.NewValueIsRequiredError("linkedAccountID")
	}
	c.linkedAccountID = linkedAccountID
	return nil
}
