package cargo

import (
	"errors"
	"slices"

	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

// ErrManifestIsNotConstructed is returned when a Manifest was not created via
// the NewManifest constructor.
var ErrManifestIsNotConstructed = errors.New("Manifest must be created via NewManifest constructor")

// Manifest is the complete optimization input of one order: the packages to
// move, the destination cities, the vehicle constraints, and the simulation
// scenario. A manifest is assembled when the shipper posts the order and is
// frozen once the order is accepted.
//
// Invariants:
//   - At least one package and at least one city
//   - Every package, city, the constraints, and the scenario are individually valid
//
// Package city references are logical (by name); a package may name a city
// that is absent from the stop list without failing construction.
type Manifest struct { //nolint:recvcheck //using for validation
	packages    []Package
	cities      []City
	constraints TruckConstraints
	scenario    SimulationScenario

	guard guard.ConstructorGuard
}

// NewManifest creates a validated Manifest. The package and city slices are
// copied so later mutation of the caller's slices cannot reach the manifest.
func NewManifest(
	packages []Package,
	cities []City,
	constraints TruckConstraints,
	scenario SimulationScenario,
) (Manifest, error) {
	manifest := Manifest{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		manifest.setPackages(packages),
		manifest.setCities(cities),
		manifest.setConstraints(constraints),
		manifest.setScenario(scenario),
	); err != nil {
		return Manifest{}, err
	}

	return manifest, nil
}

// Validate ensures the Manifest was created through the constructor.
func (m Manifest) Validate() error {
	return m.guard.Validate(ErrManifestIsNotConstructed)
}

// Packages returns a copy of the package list.
func (m Manifest) Packages() []Package {
	return slices.Clone(m.packages)
}

// Cities returns a copy of the city list.
func (m Manifest) Cities() []City {
	return slices.Clone(m.cities)
}

// Constraints returns the truck constraints.
func (m Manifest) Constraints() TruckConstraints {
	return m.constraints
}

// Scenario returns the simulation scenario.
func (m Manifest) Scenario() SimulationScenario {
	return m.scenario
}

// HasPackage reports whether a package with the given identifier is present.
func (m Manifest) HasPackage(id string) bool {
	return slices.ContainsFunc(m.packages, func(p Package) bool {
		return p.id == id
	})
}

// HasCity reports whether a city with the given name is a stop.
func (m Manifest) HasCity(name string) bool {
	return slices.ContainsFunc(m.cities, func(c City) bool {
		return c.name == name
	})
}

// TotalWeightKg sums the package weights. Used for the pre-flight capacity
// check at order acceptance.
func (m Manifest) TotalWeightKg() float64 {
	var total float64
	for _, p := range m.packages {
		total += p.weightKg
	}
	return total
}

func (m *Manifest) setPackages(packages []Package) error {
	if len(packages) == 0 {
		return errs.NewValueIsRequiredError("packages")
	}
	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	m.packages = slices.Clone(packages)
	return nil
}

func (m *Manifest) setCities(cities []City) error {
	if len(cities) == 0 {
		return errs.NewValueIsRequiredError("cities")
	}
	for _, c := range cities {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	m.cities = slices.Clone(cities)
	return nil
}

func (m *Manifest) setConstraints(constraints TruckConstraints) error {
	if err := constraints.Validate(); err != nil {
		return err
	}
	m.constraints = constraints
	return nil
}

func (m *Manifest) setScenario(scenario SimulationScenario) error {
	if err := scenario.Validate(); err != nil {
		return err
	}
	m.scenario = scenario
	return nil
}
