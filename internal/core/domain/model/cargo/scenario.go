package cargo

import (
	"errors"
	"fmt"

	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

// ErrScenarioIsNotConstructed is returned when a SimulationScenario was not
// created via the NewSimulationScenario constructor.
var ErrScenarioIsNotConstructed = errors.New(
	"SimulationScenario must be created via NewSimulationScenario constructor")

// SimulationScenario holds the what-if knobs passed opaquely to the planner.
// Multipliers of 1.0 mean normal conditions; values above 1.0 model fuel
// price hikes or traffic surges. The scenario never influences domain logic
// directly.
type SimulationScenario struct { //nolint:recvcheck //using for validation
	fuelPriceMultiplier   float64
	trafficSurgeMultiplier float64
	isHolidaySeason       bool

	guard guard.ConstructorGuard
}

// NewSimulationScenario creates a validated scenario. Multipliers must be
// positive; by convention they are at least 1.0 but lower values are not
// rejected.
func NewSimulationScenario(
	fuelPriceMultiplier float64,
	trafficSurgeMultiplier float64,
	isHolidaySeason bool,
) (SimulationScenario, error) {
	scenario := SimulationScenario{
		isHolidaySeason: isHolidaySeason,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		scenario.setFuelPriceMultiplier(fuelPriceMultiplier),
		scenario.setTrafficSurgeMultiplier(trafficSurgeMultiplier),
	); err != nil {
		return SimulationScenario{}, err
	}

	return scenario, nil
}

// Validate ensures the scenario was created through the constructor.
func (s SimulationScenario) Validate() error {
	return s.guard.Validate(ErrScenarioIsNotConstructed)
}

// FuelPriceMultiplier returns the fuel price perturbation factor.
func (s SimulationScenario) FuelPriceMultiplier() float64 {
	return s.fuelPriceMultiplier
}

// TrafficSurgeMultiplier returns the traffic surge perturbation factor.
func (s SimulationScenario) TrafficSurgeMultiplier() float64 {
	return s.trafficSurgeMultiplier
}

// IsHolidaySeason reports whether holiday-season conditions apply.
func (s SimulationScenario) IsHolidaySeason() bool {
	return s.isHolidaySeason
}

func (s *SimulationScenario) setFuelPriceMultiplier(v float64) error {
	if v <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("fuelPriceMultiplier",
			fmt.Errorf("%g is not greater than 0", v))
	}
	s.fuelPriceMultiplier = v
	return nil
}

func (s *SimulationScenario) setTrafficSurgeMultiplier(v float64) error {
	if v <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("trafficSurgeMultiplier",
			fmt.Errorf("%g is not greater than 0", v))
	}
	s.trafficSurgeMultiplier = v
	return nil
}
