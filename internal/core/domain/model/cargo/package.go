package cargo

import (
	"errors"
	"fmt"

	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

// ErrPackageIsNotConstructed is returned when a Package was not created via
// the NewPackage constructor.
var ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage constructor")

// Package describes a single piece of cargo inside a manifest.
//
// Invariants:
//   - Identifier and destination city name are non-empty
//   - Weight is positive
//   - Fragility and priority belong to their known sets
//   - Dimensions carry the "LxWxH" label used by the planner prompt
//
// Package is immutable: once the owning order leaves PENDING status, the
// manifest and every package inside it are frozen.
type Package struct { //nolint:recvcheck //using for validation
	id         string
	weightKg   float64
	fragility  Fragility
	city       string
	priority   Priority
	dimensions string

	guard guard.ConstructorGuard
}

// NewPackage creates a validated Package.
func NewPackage(
	id string,
	weightKg float64,
	fragility Fragility,
	city string,
	priority Priority,
	dimensions string,
) (Package, error) {
	pkg := Package{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pkg.setID(id),
		pkg.setWeight(weightKg),
		pkg.setFragility(fragility),
		pkg.setCity(city),
		pkg.setPriority(priority),
		pkg.setDimensions(dimensions),
	); err != nil {
		return Package{}, err
	}

	return pkg, nil
}

// Validate ensures the Package was created through the constructor.
func (p Package) Validate() error {
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

// ID returns the package identifier (e.g. "P101").
func (p Package) ID() string {
	return p.id
}

// WeightKg returns the package weight in kilograms.
func (p Package) WeightKg() float64 {
	return p.weightKg
}

// Fragility returns the handling grade.
func (p Package) Fragility() Fragility {
	return p.fragility
}

// City returns the destination city name. The reference is by name only;
// no referential check against the manifest cities is enforced here.
func (p Package) City() string {
	return p.city
}

// Priority returns the delivery priority.
func (p Package) Priority() Priority {
	return p.priority
}

// Dimensions returns the "LxWxH" label.
func (p Package) Dimensions() string {
	return p.dimensions
}

func (p *Package) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("package id")
	}
	p.id = id
	return nil
}

func (p *Package) setWeight(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%g is not greater than 0", weightKg))
	}
	p.weightKg = weightKg
	return nil
}

func (p *Package) setFragility(fragility Fragility) error {
	if err := fragility.Validate(); err != nil {
		return err
	}
	p.fragility = fragility
	return nil
}

func (p *Package) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("package city")
	}
	p.city = city
	return nil
}

func (p *Package) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	p.priority = priority
	return nil
}

func (p *Package) setDimensions(dimensions string) error {
	if dimensions == "" {
		return errs.NewValueIsRequiredError("package dimensions")
	}
	p.dimensions = dimensions
	return nil
}
