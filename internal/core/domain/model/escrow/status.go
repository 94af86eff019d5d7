package escrow

import (
	"fmt"

	"neuroload/internal/pkg/errs"
)

// Status represents the state of an escrow hold.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusSecured means funds are captured and held at the provider.
	StatusSecured

	// StatusReleased means the hold has been released to the payout account.
	// This is a terminal state.
	StatusReleased

	// StatusFailed means the last release attempt failed. The hold stays
	// releasable so reconciliation can retry.
	StatusFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "UNKNOWN",
		StatusSecured:  "SECURED",
		StatusReleased: "RELEASED",
		StatusFailed:   "FAILED",
	}
}

func getValidStatusStrings() map[Status]string {
	return map[Status]string{
		StatusSecured:  "SECURED",
		StatusReleased: "RELEASED",
		StatusFailed:   "FAILED",
	}
}

// Validate checks the status against the known set. StatusUnknown is invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("escrow status",
			fmt.Errorf("%d is not a valid escrow status", s))
	}
	return nil
}

// String returns the wire token of the status.
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
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("escrow status",
		fmt.Errorf("%q is not a valid escrow status", raw))
}
