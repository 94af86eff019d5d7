package cargo

import (
	"errors"
	"fmt"

	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

// ErrTruckConstraintsAreNotConstructed is returned when TruckConstraints were
// not created via the NewTruckConstraints constructor.
var ErrTruckConstraintsAreNotConstructed = errors.New(
	"TruckConstraints must be created via NewTruckConstraints constructor")

// TruckConstraints describe the vehicle capacity the planner must respect:
// payload weight, cargo volume, and the fuel rate in km per liter. They are
// planner input; capacity enforcement against the manifest happens at order
// acceptance, not here.
type TruckConstraints struct { //nolint:recvcheck //using for validation
	maxWeightKg    float64
	volumeCapacity float64
	fuelRate       float64

	guard guard.ConstructorGuard
}

// NewTruckConstraints creates validated TruckConstraints. All three values
// must be positive.
func NewTruckConstraints(maxWeightKg, volumeCapacity, fuelRate float64) (TruckConstraints, error) {
	constraints := TruckConstraints{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		constraints.setMaxWeight(maxWeightKg),
		constraints.setVolumeCapacity(volumeCapacity),
		constraints.setFuelRate(fuelRate),
	); err != nil {
		return TruckConstraints{}, err
	}

	return constraints, nil
}

// Validate ensures the constraints were created through the constructor.
func (t TruckConstraints) Validate() error {
	return t.guard.Validate(ErrTruckConstraintsAreNotConstructed)
}

// MaxWeightKg returns the payload limit in kilograms.
func (t TruckConstraints) MaxWeightKg() float64 {
	return t.maxWeightKg
}

// VolumeCapacity returns the cargo volume in cubic meters.
func (t TruckConstraints) VolumeCapacity() float64 {
	return t.volumeCapacity
}

// FuelRate returns the fuel rate in kilometers per liter.
func (t TruckConstraints) FuelRate() float64 {
	return t.fuelRate
}

func (t *TruckConstraints) setMaxWeight(maxWeightKg float64) error {
	if maxWeightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxWeight",
			fmt.Errorf("%g is not greater than 0", maxWeightKg))
	}
	t.maxWeightKg = maxWeightKg
	return nil
}

func (t *TruckConstraints) setVolumeCapacity(volumeCapacity float64) error {
	if volumeCapacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("volumeCapacity",
			fmt.Errorf("%g is not greater than 0", volumeCapacity))
	}
	t.volumeCapacity = volumeCapacity
	return nil
}

func (t *TruckConstraints) setFuelRate(fuelRate float64) error {
	if fuelRate <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("fuelRate",
			fmt.Errorf("%g is not greater than 0", fuelRate))
	}
	t.fuelRate = fuelRate
	return nil
}
