package order

import (
	"errors"
	"fmt"
	"time"

	"neuroload/internal/core/domain/model/cargo"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrPaymentNotReleasable is returned when a payment release is recorded
	// against an order that is not delivered or has no escrow transfer.
	ErrPaymentNotReleasable = errors.New("payment can only be released for a delivered order with an escrow transfer")
)

// Order is the aggregate root of the shipment lifecycle. It owns the
// canonical state machine from posting through delivery and mirrors the
// escrow outcome of each transition.
//
// Order follows these invariants:
//   - Status moves strictly forward: Pending, Accepted, InTransit, Delivered
//   - The manifest is frozen once the order leaves Pending
//   - Escrow identifiers are populated exactly when the order is accepted
//   - PaymentStatus becomes Released only on a Delivered order with a
//     recorded escrow transfer
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	id        kernel.UUID
	shipperID kernel.UUID

	price            float64
	fuelCostEstimate float64
	tollsEstimate    float64

	manifest cargo.Manifest

	status        Status
	paymentStatus PaymentStatus

	// escrowOrderID and escrowTransferID are the provider references of the
	// hold, empty until acceptance.
	escrowOrderID    string
	escrowTransferID string

	assignedCarrierID *kernel.UUID
	assignedVehicleID *kernel.UUID

	createdAt time.Time

	isConstructed bool
}

// NewOrder creates a Pending order posted by a shipper. This is the only way
// to create a valid new Order, ensuring all business invariants hold from the
// start.
//
// Parameters:
//   - id: unique order identifier
//   - shipperID: the posting shipper
//   - price: agreed freight price (must be positive)
//   - fuelCostEstimate, tollsEstimate: commercial estimates (non-negative)
//   - manifest: the optimization input, already validated by cargo.NewManifest
//
// The order starts in Pending status with no payment and no carrier.
func NewOrder(
	id kernel.UUID,
	shipperID kernel.UUID,
	price float64,
	fuelCostEstimate float64,
	tollsEstimate float64,
	manifest cargo.Manifest,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentUnset,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setShipperID(shipperID),
		o.setPrice(price),
		o.setEstimates(fuelCostEstimate, tollsEstimate),
		o.setManifest(manifest),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. It revalidates every
// field, the status enums, and the consistency between lifecycle state and
// escrow linkage, so a corrupted row cannot produce an order that violates
// the aggregate invariants.
func RestoreOrder(
	id kernel.UUID,
	shipperID kernel.UUID,
	price float64,
	fuelCostEstimate float64,
	tollsEstimate float64,
	manifest cargo.Manifest,
	status Status,
	paymentStatus PaymentStatus,
	escrowOrderID string,
	escrowTransferID string,
	assignedCarrierID *kernel.UUID,
	assignedVehicleID *kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setShipperID(shipperID),
		o.setPrice(price),
		o.setEstimates(fuelCostEstimate, tollsEstimate),
		o.setManifest(manifest),
		o.setStatus(status),
		o.setPaymentStatus(paymentStatus),
	); err != nil {
		return nil, err
	}

	o.escrowOrderID = escrowOrderID
	o.escrowTransferID = escrowTransferID
	o.assignedCarrierID = assignedCarrierID
	o.assignedVehicleID = assignedVehicleID

	if err := o.validateEscrowLinkage(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ShipperID returns the identifier of the posting shipper.
func (o *Order) ShipperID() kernel.UUID {
	return o.shipperID
}

// Price returns the agreed freight price.
func (o *Order) Price() float64 {
	return o.price
}

// FuelCostEstimate returns the estimated fuel cost.
func (o *Order) FuelCostEstimate() float64 {
	return o.fuelCostEstimate
}

// TollsEstimate returns the estimated toll cost.
func (o *Order) TollsEstimate() float64 {
	return o.tollsEstimate
}

// Manifest returns the frozen optimization input.
func (o *Order) Manifest() cargo.Manifest {
	return o.manifest
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the mirrored escrow state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// EscrowOrderID returns the provider's order reference, empty before acceptance.
func (o *Order) EscrowOrderID() string {
	return o.escrowOrderID
}

// EscrowTransferID returns the provider's transfer reference, empty before acceptance.
func (o *Order) EscrowTransferID() string {
	return o.escrowTransferID
}

// AssignedCarrierID returns the accepting carrier, nil before acceptance.
func (o *Order) AssignedCarrierID() *kernel.UUID {
	return o.assignedCarrierID
}

// AssignedVehicleID returns the accepting carrier's vehicle, nil before acceptance.
func (o *Order) AssignedVehicleID() *kernel.UUID {
	return o.assignedVehicleID
}

// CreatedAt returns the posting time in UTC.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Accept records a carrier taking the order together with the escrow hold
// secured for it.
//
// Business rules:
//   - The order must be Pending
//   - Carrier and vehicle identifiers must be valid
//   - Both escrow references must be present, because acceptance without a
//     secured hold must never be recorded
//
// The caller is expected to have created the hold first; if hold creation
// fails, Accept is never reached and the order stays Pending.
func (o *Order) Accept(
	carrierID kernel.UUID,
	vehicleID kernel.UUID,
	escrowOrderID string,
	escrowTransferID string,
) error {
	if err := errors.Join(carrierID.Validate(), vehicleID.Validate()); err != nil {
		return err
	}
	if escrowOrderID == "" {
		return errs.NewValueIsRequiredError("escrowOrderID")
	}
	if escrowTransferID == "" {
		return errs.NewValueIsRequiredError("escrowTransferID")
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.paymentStatus = PaymentSecured
	o.escrowOrderID = escrowOrderID
	o.escrowTransferID = escrowTransferID
	o.assignedCarrierID = &carrierID
	o.assignedVehicleID = &vehicleID
	return nil
}

// Dispatch moves an accepted order onto the road. The application layer
// guards the plan-exists precondition; here only the state machine applies.
func (o *Order) Dispatch() error {
	newStatus, err := o.status.Dispatch()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver records proof-of-delivery completion. Delivery is terminal and
// independent of the payout outcome: a failed escrow release afterwards is
// recorded via MarkPaymentFailed without rolling this back.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkPaymentReleased records a successful escrow release. Allowed only on a
// Delivered order with a recorded transfer, from Secured or Failed (a
// reconciliation retry) payment state.
func (o *Order) MarkPaymentReleased() error {
	if o.status != Delivered || o.escrowTransferID == "" {
		return ErrPaymentNotReleasable
	}
	if o.paymentStatus != PaymentSecured && o.paymentStatus != PaymentFailed {
		return fmt.Errorf("%w: payment status is %s", ErrPaymentNotReleasable, o.paymentStatus)
	}

	o.paymentStatus = PaymentReleased
	return nil
}

// MarkPaymentFailed records a failed escrow release on a delivered order,
// flagging the payout for reconciliation.
func (o *Order) MarkPaymentFailed() error {
	if o.status != Delivered {
		return fmt.Errorf("%w: order is %s", ErrPaymentNotReleasable, o.status)
	}
	if o.paymentStatus == PaymentReleased {
		return fmt.Errorf("%w: payment already released", ErrPaymentNotReleasable)
	}

	o.paymentStatus = PaymentFailed
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setShipperID(shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipperID", err)
	}
	o.shipperID = shipperID
	return nil
}

func (o *Order) setPrice(price float64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%g is not greater than 0", price))
	}
	o.price = price
	return nil
}

func (o *Order) setEstimates(fuelCostEstimate, tollsEstimate float64) error {
	if fuelCostEstimate < 0 {
		return errs.NewValueIsInvalidErrorWithCause("fuelCostEstimate",
			fmt.Errorf("%g is negative", fuelCostEstimate))
	}
	if tollsEstimate < 0 {
		return errs.NewValueIsInvalidErrorWithCause("tollsEstimate",
			fmt.Errorf("%g is negative", tollsEstimate))
	}
	o.fuelCostEstimate = fuelCostEstimate
	o.tollsEstimate = tollsEstimate
	return nil
}

func (o *Order) setManifest(manifest cargo.Manifest) error {
	if err := manifest.Validate(); err != nil {
		return err
	}
	o.manifest = manifest
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentStatus(paymentStatus PaymentStatus) error {
	if err := paymentStatus.Validate(); err != nil {
		return err
	}
	o.paymentStatus = paymentStatus
	return nil
}

// validateEscrowLinkage enforces consistency between lifecycle state and the
// escrow/carrier fields during restoration:
//   - Pending orders carry no escrow references, no carrier, no payment
//   - Accepted and later orders carry both escrow references and a carrier
func (o *Order) validateEscrowLinkage() error {
	switch o.status {
	case Pending:
		if o.escrowOrderID != "" || o.escrowTransferID != "" {
			return errs.NewValueIsInvalidErrorWithCause("escrow linkage",
				errors.New("pending order must not carry escrow references"))
		}
		if o.assignedCarrierID != nil || o.assignedVehicleID != nil {
			return errs.NewValueIsInvalidErrorWithCause("escrow linkage",
				errors.New("pending order must not carry a carrier assignment"))
		}
		if o.paymentStatus != PaymentUnset {
			return errs.NewValueIsInvalidErrorWithCause("escrow linkage",
				fmt.Errorf("pending order must not carry payment status %s", o.paymentStatus))
		}
	case Accepted, InTransit, Delivered:
		if o.escrowOrderID == "" || o.escrowTransferID == "" {
			return errs.NewValueIsInvalidErrorWithCause("escrow linkage",
				fmt.Errorf("%s order must carry escrow references", o.status))
		}
		if o.assignedCarrierID == nil || o.assignedVehicleID == nil {
			return errs.NewValueIsInvalidErrorWithCause("escrow linkage",
				fmt.Errorf("%s order must carry a carrier assignment", o.status))
		}
		if o.paymentStatus == PaymentUnset {
			return errs.NewValueIsInvalidErrorWithCause("escrow linkage",
				fmt.Errorf("%s order must carry a payment status", o.status))
		}
	case Unknown:
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}
