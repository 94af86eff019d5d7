package order

import (
	"fmt"

	"neuroload/internal/pkg/errs"
)

// PaymentStatus mirrors the escrow state of the order's funds as seen by the
// lifecycle. The escrow ledger owns the semantics; OrderLifecycle copies the
// outcome here after each successful escrow call.
type PaymentStatus int

const (
	// PaymentUnset is the state of a posted order before any escrow hold
	// exists. It is the only zero-value enum that is deliberately legal,
	// since every order starts without a payment.
	PaymentUnset PaymentStatus = iota

	// PaymentSecured means funds are captured and held pending delivery.
	PaymentSecured

	// PaymentReleased means the hold has been released to the carrier.
	PaymentReleased

	// PaymentFailed means the release attempt after delivery failed and the
	// payout is awaiting reconciliation.
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnset:    "UNSET",
		PaymentSecured:  "SECURED",
		PaymentReleased: "RELEASED",
		PaymentFailed:   "FAILED",
	}
}

// Validate checks the payment status against the known set, PaymentUnset
// included.
func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the wire token of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNSET"
}

// PaymentStatusFromString parses a wire token back into a PaymentStatus.
func PaymentStatusFromString(raw string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == raw {
			return status, nil
		}
	}
	return PaymentUnset, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", raw))
}
