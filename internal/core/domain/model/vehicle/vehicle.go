package vehicle

import (
	"errors"
	"fmt"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

// Domain errors for vehicle operations.
var (
	// ErrModelIsRequired is returned when attempting to register a vehicle without a model.
	ErrModelIsRequired = errs.NewValueIsRequiredError("model")
	// ErrPlateNumberIsRequired is returned when attempting to register a vehicle without a plate number.
	ErrPlateNumberIsRequired = errs.NewValueIsRequiredError("plateNumber")
	// ErrVehicleIsNotConstructed is returned when using an improperly initialized Vehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
	// ErrVehicleNotVerified is returned when an unverified vehicle is offered for an order.
	ErrVehicleNotVerified = errors.New("vehicle is not verified")
	// ErrVehicleNotAvailable is returned when a vehicle that is not idle is offered for an order.
	ErrVehicleNotAvailable = errors.New("vehicle is not available")
	// ErrLinkedAccountIsRequired is returned when verification completes without a payout account.
	ErrLinkedAccountIsRequired = errs.NewValueIsRequiredError("linkedAccountID")
)

// Vehicle represents a carrier's truck registered on the marketplace.
// It is an aggregate root that manages the vehicle's identity, capacity
// limits, verification state and availability.
//
// Business rules:
//   - A vehicle belongs to exactly one carrier (the owner)
//   - Capacity limits (max weight, max volume) must be positive
//   - Only verified vehicles can accept orders; verification links the payout
//     account used for escrow releases
//   - A vehicle carries at most one active order, tracked by the
//     idle/busy status
type Vehicle struct {
	id          kernel.UUID
	ownerID     kernel.UUID
	model       string
	plateNumber string

	maxWeightKg float64
	maxVolume   float64

	status          Status
	isVerified      bool
	linkedAccountID string

	guard guard.ConstructorGuard
}

// NewVehicle registers a new vehicle for a carrier. The vehicle starts idle
// and unverified; it cannot accept orders until CompleteVerification is
// called with the payout account.
//
// Parameters:
//   - id: unique vehicle identifier
//   - ownerID: the carrier who owns the vehicle
//   - model: free-form make and model description (must be non-empty)
//   - plateNumber: registration plate (must be non-empty)
//   - maxWeightKg: load weight limit in kilograms (must be positive)
//   - maxVolume: load volume limit (must be positive)
func NewVehicle(
	id kernel.UUID,
	ownerID kernel.UUID,
	model string,
	plateNumber string,
	maxWeightKg float64,
	maxVolume float64,
) (*Vehicle, error) {
	v := &Vehicle{
		status: StatusIdle,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setOwnerID(ownerID),
		v.setModel(model),
		v.setPlateNumber(plateNumber),
		v.setCapacity(maxWeightKg, maxVolume),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVehicle reconstructs a Vehicle aggregate from persistent storage,
// revalidating every field so a corrupted row cannot produce a vehicle that
// violates the aggregate invariants.
func RestoreVehicle(
	id kernel.UUID,
	ownerID kernel.UUID,
	model string,
	plateNumber string,
	maxWeightKg float64,
	maxVolume float64,
	status Status,
	isVerified bool,
	linkedAccountID string,
) (*Vehicle, error) {
	v := &Vehicle{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setOwnerID(ownerID),
		v.setModel(model),
		v.setPlateNumber(plateNumber),
		v.setCapacity(maxWeightKg, maxVolume),
		v.setStatus(status),
	); err != nil {
		return nil, err
	}

	if isVerified && linkedAccountID == "" {
		return nil, ErrLinkedAccountIsRequired
	}

	v.isVerified = isVerified
	v.linkedAccountID = linkedAccountID
	return v, nil
}

// Validate checks if the Vehicle was properly constructed.
// Returns ErrVehicleIsNotConstructed otherwise.
func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// IsEqual compares two vehicles by identifier.
func (v *Vehicle) IsEqual(other *Vehicle) bool {
	if other == nil {
		return false
	}
	return v.id.IsEqual(other.id)
}

// ID returns the vehicle identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// OwnerID returns the identifier of the owning carrier.
func (v *Vehicle) OwnerID() kernel.UUID {
	return v.ownerID
}

// Model returns the make and model description.
func (v *Vehicle) Model() string {
	return v.model
}

// PlateNumber returns the registration plate.
func (v *Vehicle) PlateNumber() string {
	return v.plateNumber
}

// MaxWeightKg returns the load weight limit in kilograms.
func (v *Vehicle) MaxWeightKg() float64 {
	return v.maxWeightKg
}

// MaxVolume returns the load volume limit.
func (v *Vehicle) MaxVolume() float64 {
	return v.maxVolume
}

// Status returns the current availability of the vehicle.
func (v *Vehicle) Status() Status {
	return v.status
}

// IsVerified reports whether the vehicle has passed verification.
func (v *Vehicle) IsVerified() bool {
	return v.isVerified
}

// LinkedAccountID returns the payout account linked during verification,
// empty until the vehicle is verified.
func (v *Vehicle) LinkedAccountID() string {
	return v.linkedAccountID
}

// CompleteVerification marks the vehicle as verified and links the payout
// account the escrow provider will transfer funds to. Re-verification with a
// new account is allowed.
func (v *Vehicle) CompleteVerification(linkedAccountID string) error {
	if linkedAccountID == "" {
		return ErrLinkedAccountIsRequired
	}

	v.isVerified = true
	v.linkedAccountID = linkedAccountID
	return nil
}

// CanCarry checks whether the vehicle can legally take a load of the given
// total weight. It does not reserve the vehicle.
func (v *Vehicle) CanCarry(totalWeightKg float64) bool {
	return totalWeightKg > 0 && totalWeightKg <= v.maxWeightKg
}

// Assign reserves the vehicle for an order.
//
// Business rules:
//   - The vehicle must be verified
//   - The vehicle must be idle
func (v *Vehicle) Assign() error {
	if !v.isVerified {
		return ErrVehicleNotVerified
	}
	if v.status != StatusIdle {
		return fmt.Errorf("%w: status is %s", ErrVehicleNotAvailable, v.status)
	}

	v.status = StatusBusy
	return nil
}

// Release frees the vehicle after its order is delivered.
func (v *Vehicle) Release() error {
	if v.status != StatusBusy {
		return fmt.Errorf("%w: status is %s", ErrVehicleNotAvailable, v.status)
	}

	v.status = StatusIdle
	return nil
}

// StartMaintenance takes an idle vehicle out of service.
func (v *Vehicle) StartMaintenance() error {
	if v.status != StatusIdle {
		return fmt.Errorf("%w: status is %s", ErrVehicleNotAvailable, v.status)
	}

	v.status = StatusMaintenance
	return nil
}

// FinishMaintenance returns the vehicle to service.
func (v *Vehicle) FinishMaintenance() error {
	if v.status != StatusMaintenance {
		return fmt.Errorf("%w: status is %s", ErrVehicleNotAvailable, v.status)
	}

	v.status = StatusIdle
	return nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ownerID", err)
	}
	v.ownerID = ownerID
	return nil
}

func (v *Vehicle) setModel(model string) error {
	if model == "" {
		return ErrModelIsRequired
	}
	v.model = model
	return nil
}

func (v *Vehicle) setPlateNumber(plateNumber string) error {
	if plateNumber == "" {
		return ErrPlateNumberIsRequired
	}
	v.plateNumber = plateNumber
	return nil
}

func (v *Vehicle) setCapacity(maxWeightKg, maxVolume float64) error {
	if maxWeightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxWeightKg",
			fmt.Errorf("%g is not greater than 0", maxWeightKg))
	}
	if maxVolume <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxVolume",
			fmt.Errorf("%g is not greater than 0", maxVolume))
	}
	v.maxWeightKg = maxWeightKg
	v.maxVolume = maxVolume
	return nil
}

func (v *Vehicle) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	v.status = status
	return nil
}
