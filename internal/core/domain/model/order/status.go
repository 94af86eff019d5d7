package order

import (
	"errors"
	"fmt"

	"neuroload/internal/pkg/errs"
)

// ErrInvalidTransition is the unwrap target for every rejected lifecycle
// transition. Callers classify with errors.Is(err, ErrInvalidTransition).
var ErrInvalidTransition = errors.New("invalid order status transition")

// InvalidTransitionError reports a lifecycle transition attempted from a
// state that is not its source state. The order is left unchanged.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order. It implements a strictly
// forward-moving state machine with no skips, no repeats, and no backward
// edges:
//
//	Pending ──> Accepted ──> InTransit ──> Delivered
//
// Delivered is terminal. Status is a value object that validates state
// transitions and provides the wire tokens used for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a posted order waiting on the
	// marketplace for a carrier to accept it.
	Pending

	// Accepted indicates a carrier has taken the order and the escrow hold
	// has been secured. The manifest is frozen from this point on.
	Accepted

	// InTransit indicates the shipment has been dispatched on its route.
	InTransit

	// Delivered indicates proof of delivery has been completed.
	// This is a terminal state with no further transitions.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Accepted:  "ACCEPTED",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "PENDING",
		Accepted:  "ACCEPTED",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
	}
}

// Validate checks if the Status value is one of the four lifecycle states.
// Unknown (0) and any other values are invalid. Used when reconstructing
// orders from persistence or parsing external input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire token of the status ("PENDING", "ACCEPTED",
// "IN_TRANSIT", "DELIVERED"). Safe to call on any value; invalid values
// return "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a wire token back into a Status.
func StatusFromString(raw string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == raw {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", raw))
}

// ValidateAccept checks whether acceptance is allowed from the current state
// without performing the transition. Only Pending orders can be accepted.
// The application layer runs this check before creating the escrow hold so
// a doomed transition never reaches the payment provider.
func (s Status) ValidateAccept() error {
	if s != Pending {
		return &InvalidTransitionError{From: s, To: Accepted}
	}
	return nil
}

// Accept transitions the status to Accepted. Valid only from Pending.
func (s Status) Accept() (Status, error) {
	if err := s.ValidateAccept(); err != nil {
		return 0, err
	}
	return Accepted, nil
}

// ValidateDispatch checks whether dispatch is allowed from the current state
// without performing the transition. Only Accepted orders can be dispatched.
func (s Status) ValidateDispatch() error {
	if s != Accepted {
		return &InvalidTransitionError{From: s, To: InTransit}
	}
	return nil
}

// Dispatch transitions the status to InTransit. Valid only from Accepted.
func (s Status) Dispatch() (Status, error) {
	if err := s.ValidateDispatch(); err != nil {
		return 0, err
	}
	return InTransit, nil
}

// ValidateDeliver checks whether delivery completion is allowed from the
// current state without performing the transition. Only InTransit orders can
// be delivered.
func (s Status) ValidateDeliver() error {
	if s != InTransit {
		return &InvalidTransitionError{From: s, To: Delivered}
	}
	return nil
}

// Deliver transitions the status to Delivered, the terminal state.
// Valid only from InTransit.
func (s Status) Deliver() (Status, error) {
	if err := s.ValidateDeliver(); err != nil {
		return 0, err
	}
	return Delivered, nil
}
