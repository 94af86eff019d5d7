package commands

import (
	"errors"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/guard"
)

var ErrGeneratePlanCommandIsNotConstructed = errors.New(
	"GeneratePlanCommand must be created via NewGeneratePlanCommand constructor",
)

// GeneratePlanCommand represents a request to run the external planner for
// an order and store the resulting optimization plan.
type GeneratePlanCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGeneratePlanCommand creates a command to generate a plan for an order.
func NewGeneratePlanCommand(orderID kernel.UUID) (GeneratePlanCommand, error) {
	cmd := GeneratePlanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return GeneratePlanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GeneratePlanCommand) Validate() error {
	return c.guard.Validate(ErrGeneratePlanCommandIsNotConstructed)
}

// OrderID returns the order to plan for.
func (c GeneratePlanCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *GeneratePlanCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
