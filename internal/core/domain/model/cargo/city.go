package cargo

import (
	"errors"
	"fmt"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

// ErrCityIsNotConstructed is returned when a City was not created via the
// NewCity constructor.
var ErrCityIsNotConstructed = errors.New("City must be created via NewCity constructor")

// City is a destination stop in a manifest: how far it is from the hub, the
// delivery window, and the traffic and weather the planner should account for.
type City struct { //nolint:recvcheck //using for validation
	name       string
	distanceKm float64
	slaHours   int
	traffic    TrafficCondition
	weather    WeatherCondition
	point      kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCity creates a validated City. Distance is measured from the hub and
// must be non-negative; the SLA window must be positive.
func NewCity(
	name string,
	distanceKm float64,
	slaHours int,
	traffic TrafficCondition,
	weather WeatherCondition,
	point kernel.GeoPoint,
) (City, error) {
	city := City{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		city.setName(name),
		city.setDistance(distanceKm),
		city.setSLA(slaHours),
		city.setTraffic(traffic),
		city.setWeather(weather),
		city.setPoint(point),
	); err != nil {
		return City{}, err
	}

	return city, nil
}

// Validate ensures the City was created through the constructor.
func (c City) Validate() error {
	return c.guard.Validate(ErrCityIsNotConstructed)
}

// Name returns the city name.
func (c City) Name() string {
	return c.name
}

// DistanceKm returns the distance from the hub in kilometers.
func (c City) DistanceKm() float64 {
	return c.distanceKm
}

// SLAHours returns the delivery window in hours.
func (c City) SLAHours() int {
	return c.slaHours
}

// Traffic returns the congestion level on the leg to this city.
func (c City) Traffic() TrafficCondition {
	return c.traffic
}

// Weather returns the forecast on the leg to this city.
func (c City) Weather() WeatherCondition {
	return c.weather
}

// Point returns the city coordinates.
func (c City) Point() kernel.GeoPoint {
	return c.point
}

func (c *City) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("city name")
	}
	c.name = name
	return nil
}

func (c *City) setDistance(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distance",
			fmt.Errorf("%g is negative", distanceKm))
	}
	c.distanceKm = distanceKm
	return nil
}

func (c *City) setSLA(slaHours int) error {
	if slaHours <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("sla",
			fmt.Errorf("%d is not greater than 0", slaHours))
	}
	c.slaHours = slaHours
	return nil
}

func (c *City) setTraffic(traffic TrafficCondition) error {
	if err := traffic.Validate(); err != nil {
		return err
	}
	c.traffic = traffic
	return nil
}

func (c *City) setWeather(weather WeatherCondition) error {
	if err := weather.Validate(); err != nil {
		return err
	}
	c.weather = weather
	return nil
}

func (c *City) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	c.point = point
	return nil
}
