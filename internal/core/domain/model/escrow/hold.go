package escrow

import (
	"errors"
	"fmt"
	"time"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

// Domain errors for escrow operations.
var (
	// ErrHoldIsNotConstructed is returned when using an improperly initialized Hold.
	ErrHoldIsNotConstructed = errors.New("Hold must be created via NewHold constructor")
	// ErrAlreadyReleased is returned when releasing a hold that has already
	// been released. Releases are not idempotent: a repeated release points
	// at a bookkeeping bug and must surface.
	ErrAlreadyReleased = errors.New("escrow hold is already released")
	// ErrEscrowFailure is the unwrap target for provider-side escrow faults.
	ErrEscrowFailure = errors.New("escrow operation failed")
)

// Error reports a failed escrow operation against the payment provider,
// carrying the operation name and the transfer it targeted.
type Error struct {
	Op         string
	TransferID string
	Cause      error
}

func (e *Error) Error() string {
	if e.TransferID == "" {
		return fmt.Sprintf("%s: %s: %v", ErrEscrowFailure, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s (transfer %s): %v", ErrEscrowFailure, e.Op, e.TransferID, e.Cause)
}

func (e *Error) Unwrap() []error {
	return []error{ErrEscrowFailure, e.Cause}
}

// NewError wraps a provider fault into an escrow Error.
func NewError(op, transferID string, cause error) *Error {
	return &Error{Op: op, TransferID: transferID, Cause: cause}
}

// Hold is the ledger record of funds captured for one order. It is created
// only after the payment provider has confirmed the hold, so a SECURED row
// always corresponds to real captured money.
//
// Lifecycle: SECURED -> RELEASED (terminal), with FAILED as a retryable
// detour when a release attempt fails.
type Hold struct {
	id      kernel.UUID
	orderID kernel.UUID

	amount           float64
	payoutAccountRef string

	// providerOrderID and transferID are the provider's references; the
	// transfer is what gets released.
	providerOrderID string
	transferID      string

	status     Status
	createdAt  time.Time
	releasedAt *time.Time

	guard guard.ConstructorGuard
}

// NewHold records a freshly secured hold.
//
// Business rules:
//   - amount must be positive
//   - payoutAccountRef must name the carrier's payout account
//   - both provider references must be present, since the hold is recorded
//     only after the provider confirmed it
func NewHold(
	id kernel.UUID,
	orderID kernel.UUID,
	amount float64,
	payoutAccountRef string,
	providerOrderID string,
	transferID string,
) (*Hold, error) {
	h := &Hold{
		status:    StatusSecured,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		h.setID(id),
		h.setOrderID(orderID),
		h.setAmount(amount),
		h.setPayoutAccountRef(payoutAccountRef),
		h.setProviderRefs(providerOrderID, transferID),
	); err != nil {
		return nil, err
	}

	return h, nil
}

// RestoreHold reconstructs a Hold from persistent storage.
func RestoreHold(
	id kernel.UUID,
	orderID kernel.UUID,
	amount float64,
	payoutAccountRef string,
	providerOrderID string,
	transferID string,
	status Status,
	createdAt time.Time,
	releasedAt *time.Time,
) (*Hold, error) {
	h := &Hold{
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		h.setID(id),
		h.setOrderID(orderID),
		h.setAmount(amount),
		h.setPayoutAccountRef(payoutAccountRef),
		h.setProviderRefs(providerOrderID, transferID),
		h.setStatus(status),
	); err != nil {
		return nil, err
	}

	if status == StatusReleased && releasedAt == nil {
		return nil, errs.NewValueIsRequiredError("releasedAt")
	}
	if releasedAt != nil {
		at := releasedAt.UTC()
		h.releasedAt = &at
	}

	return h, nil
}

// Validate checks if the Hold was properly constructed.
// Returns ErrHoldIsNotConstructed otherwise.
func (h *Hold) Validate() error {
	if h == nil {
		return ErrHoldIsNotConstructed
	}
	return h.guard.Validate(ErrHoldIsNotConstructed)
}

// IsEqual compares two holds by identifier.
func (h *Hold) IsEqual(other *Hold) bool {
	if other == nil {
		return false
	}
	return h.id.IsEqual(other.id)
}

// ID returns the hold identifier.
func (h *Hold) ID() kernel.UUID {
	return h.id
}

// OrderID returns the order the hold secures.
func (h *Hold) OrderID() kernel.UUID {
	return h.orderID
}

// Amount returns the held amount in major currency units.
func (h *Hold) Amount() float64 {
	return h.amount
}

// PayoutAccountRef returns the carrier payout account the hold releases to.
func (h *Hold) PayoutAccountRef() string {
	return h.payoutAccountRef
}

// ProviderOrderID returns the provider's order reference.
func (h *Hold) ProviderOrderID() string {
	return h.providerOrderID
}

// TransferID returns the provider's transfer reference.
func (h *Hold) TransferID() string {
	return h.transferID
}

// Status returns the current ledger state of the hold.
func (h *Hold) Status() Status {
	return h.status
}

// CreatedAt returns the time the hold was secured, in UTC.
func (h *Hold) CreatedAt() time.Time {
	return h.createdAt
}

// ReleasedAt returns the release time, nil while the hold is not released.
func (h *Hold) ReleasedAt() *time.Time {
	return h.releasedAt
}

// Release marks the hold as released to the payout account. Valid from
// SECURED or FAILED. Releasing an already released hold returns
// ErrAlreadyReleased.
func (h *Hold) Release() error {
	if h.status == StatusReleased {
		return fmt.Errorf("%w: transfer %s", ErrAlreadyReleased, h.transferID)
	}

	now := time.Now().UTC()
	h.status = StatusReleased
	h.releasedAt = &now
	return nil
}

// MarkReleaseFailed records a failed release attempt. The hold stays
// releasable for reconciliation. Not valid on a released hold.
func (h *Hold) MarkReleaseFailed() error {
	if h.status == StatusReleased {
		return fmt.Errorf("%w: transfer %s", ErrAlreadyReleased, h.transferID)
	}

	h.status = StatusFailed
	return nil
}

func (h *Hold) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *Hold) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	h.orderID = orderID
	return nil
}

func (h *Hold) setAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%g is not greater than 0", amount))
	}
	h.amount = amount
	return nil
}

func (h *Hold) setPayoutAccountRef(payoutAccountRef string) error {
	if payoutAccountRef == "" {
		return errs.NewValueIsRequiredError("payoutAccountRef")
	}
	h.payoutAccountRef = payoutAccountRef
	return nil
}

func (h *Hold) setProviderRefs(providerOrderID, transferID string) error {
	if providerOrderID == "" {
		return errs.NewValueIsRequiredError("providerOrderID")
	}
	if transferID == "" {
		return errs.NewValueIsRequiredError("transferID")
	}
	h.providerOrderID = providerOrderID
	h.transferID = transferID
	return nil
}

func (h *Hold) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	h.status = status
	return nil
}
