package vehicle

import (
	"fmt"

	"neuroload/internal/pkg/errs"
)

// Status represents the availability of a vehicle.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusIdle means the vehicle is free to accept an order.
	StatusIdle

	// StatusBusy means the vehicle is assigned to an active order.
	StatusBusy

	// StatusMaintenance means the vehicle is temporarily out of service.
	StatusMaintenance
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "UNKNOWN",
		StatusIdle:        "IDLE",
		StatusBusy:        "BUSY",
		StatusMaintenance: "MAINTENANCE",
	}
}

func getValidStatusStrings() map[Status]string {
	return map[Status]string{
		StatusIdle:        "IDLE",
		StatusBusy:        "BUSY",
		StatusMaintenance: "MAINTENANCE",
	}
}

// Validate checks the status against the known set. StatusUnknown is invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle status",
			fmt.Errorf("%d is not a valid vehicle status", s))
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
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("vehicle status",
		fmt.Errorf("%q is not a valid vehicle status", raw))
}
