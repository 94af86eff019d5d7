package commands

import (
	"errors"
	"fmt"

	"neuroload/internal/core/domain/model/cargo"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

var (
	ErrPostOrderCommandIsNotConstructed = errors.New(
		"PostOrderCommand must be created via NewPostOrderCommand constructor",
	)
	ErrPriceIsInvalid = errors.New("price must be greater than 0")
)

// PostOrderCommand represents a shipper's request to put a new order on the
// marketplace. It carries the commercial terms and the cargo manifest the
// planner will later optimize.
type PostOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	shipperID        kernel.UUID
	price            float64
	fuelCostEstimate float64
	tollsEstimate    float64
	manifest         cargo.Manifest

	guard guard.ConstructorGuard
}

// NewPostOrderCommand creates a command to post a new order.
// Validates identifiers, the price and the manifest up front so a bad
// request never reaches the transaction.
func NewPostOrderCommand(
	orderID kernel.UUID,
	shipperID kernel.UUID,
	price float64,
	fuelCostEstimate float64,
	tollsEstimate float64,
	manifest cargo.Manifest,
) (PostOrderCommand, error) {
	cmd := PostOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShipperID(shipperID),
		cmd.setPrice(price),
		cmd.setEstimates(fuelCostEstimate, tollsEstimate),
		cmd.setManifest(manifest),
	); err != nil {
		return PostOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PostOrderCommand) Validate() error {
	return c.guard.Validate(ErrPostOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will get.
func (c PostOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShipperID returns the posting shipper.
func (c PostOrderCommand) ShipperID() kernel.UUID {
	return c.shipperID
}

// Price returns the offered freight price.
func (c PostOrderCommand) Price() float64 {
	return c.price
}

// FuelCostEstimate returns the estimated fuel cost.
func (c PostOrderCommand) FuelCostEstimate() float64 {
	return c.fuelCostEstimate
}

// TollsEstimate returns the estimated toll cost.
func (c PostOrderCommand) TollsEstimate() float64 {
	return c.tollsEstimate
}

// Manifest returns the cargo manifest.
func (c PostOrderCommand) Manifest() cargo.Manifest {
	return c.manifest
}

func (c *PostOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PostOrderCommand) setShipperID(shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipperID", err)
	}
	c.shipperID = shipperID
	return nil
}

func (c *PostOrderCommand) setPrice(price float64) error {
	if price <= 0 {
		return ErrPriceIsInvalid
	}
	c.price = price
	return nil
}

func (c *PostOrderCommand) setEstimates(fuelCostEstimate, tollsEstimate float64) error {
	if fuelCostEstimate < 0 {
		return errs.NewValueIsInvalidErrorWithCause("fuelCostEstimate",
			fmt.Errorf("%g is negative", fuelCostEstimate))
	}
	if tollsEstimate < 0 {
		return errs.NewValueIsInvalidErrorWithCause("tollsEstimate",
			fmt.Errorf("%g is negative", tollsEstimate))
	}
	c.fuelCostEstimate = fuelCostEstimate
	c.tollsEstimate = tollsEstimate
	return nil
}

func (c *PostOrderCommand) setManifest(manifest cargo.Manifest) error {
	if err := manifest.Validate(); err != nil {
		return err
	}
	c.manifest = manifest
	return nil
}
