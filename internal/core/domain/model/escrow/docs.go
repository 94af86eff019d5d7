// Package escrow contains the Hold aggregate, the ledger side of the
// marketplace's payment guarantees.
//
// When a carrier accepts an order the price is captured into a hold at the
// payment provider and mirrored here as a Hold in SECURED state. After
// delivery the hold is released to the carrier's payout account. The ledger
// is deliberately non-idempotent on release: releasing twice is an error,
// because double payout must be loud, not silent.
//
// Money movement itself happens behind the EscrowProvider port; this package
// only owns the ledger state and its transitions.
package escrow
