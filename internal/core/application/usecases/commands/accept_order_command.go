package commands

import (
	"errors"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a carrier taking a pending order off the
// marketplace with a specific vehicle.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	carrierID kernel.UUID
	vehicleID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command to accept an order.
func NewAcceptOrderCommand(orderID, carrierID, vehicleID kernel.UUID) (AcceptOrderCommand, error) {
	cmd := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCarrierID(carrierID),
		cmd.setVehicleID(vehicleID),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the order being accepted.
func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CarrierID returns the accepting carrier.
func (c AcceptOrderCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// VehicleID returns the vehicle the carrier offers.
func (c AcceptOrderCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c *AcceptOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AcceptOrderCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("carrierID", err)
	}
	c.carrierID = carrierID
	return nil
}

func (c *AcceptOrderCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vehicleID", err)
	}
	c.vehicleID = vehicleID
	return nil
}
