package cargo

import (
	"fmt"

	"neuroload/internal/pkg/errs"
)

// Fragility grades how carefully a package must be handled.
type Fragility string

const (
	FragilityLow    Fragility = "Low"
	FragilityMedium Fragility = "Medium"
	FragilityHigh   Fragility = "High"
)

// Validate checks the fragility grade against the known set.
func (f Fragility) Validate() error {
	switch f {
	case FragilityLow, FragilityMedium, FragilityHigh:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("fragility",
		fmt.Errorf("%q is not a valid fragility grade", string(f)))
}

// Priority ranks how urgently a package must reach its destination.
type Priority string

const (
	PriorityNormal   Priority = "Normal"
	PriorityExpress  Priority = "Express"
	PriorityCritical Priority = "Critical"
)

// Validate checks the priority against the known set.
func (p Priority) Validate() error {
	switch p {
	case PriorityNormal, PriorityExpress, PriorityCritical:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("priority",
		fmt.Errorf("%q is not a valid priority", string(p)))
}

// TrafficCondition describes the congestion level on the leg to a city.
type TrafficCondition string

const (
	TrafficLow      TrafficCondition = "Low"
	TrafficMedium   TrafficCondition = "Medium"
	TrafficHigh     TrafficCondition = "High"
	TrafficGridlock TrafficCondition = "Gridlock"
)

// Validate checks the traffic condition against the known set.
func (t TrafficCondition) Validate() error {
	switch t {
	case TrafficLow, TrafficMedium, TrafficHigh, TrafficGridlock:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("trafficCondition",
		fmt.Errorf("%q is not a valid traffic condition", string(t)))
}

// WeatherCondition describes the forecast on the leg to a city.
type WeatherCondition string

const (
	WeatherClear WeatherCondition = "Clear"
	WeatherRain  WeatherCondition = "Rain"
	WeatherStorm WeatherCondition = "Storm"
	WeatherSnow  WeatherCondition = "Snow"
)

// Validate checks the weather condition against the known set.
func (w WeatherCondition) Validate() error {
	switch w {
	case WeatherClear, WeatherRain, WeatherStorm, WeatherSnow:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("weatherCondition",
		fmt.Errorf("%q is not a valid weather condition", string(w)))
}
