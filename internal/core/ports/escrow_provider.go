package ports

import (
	"context"

	"neuroload/internal/core/domain/model/kernel"
)

// EscrowHold is the provider's confirmation of a created hold.
type EscrowHold struct {
	// ProviderOrderID is the provider-side order reference.
	ProviderOrderID string
	// TransferID is the held transfer; releasing it pays the carrier.
	TransferID string
}

// EscrowProvider is the outbound contract for moving real money. The ledger
// in the domain mirrors what this port reports; it never assumes success.
type EscrowProvider interface {
	// CreateHold captures the amount and parks it on a held transfer routed
	// to the carrier's payout account. The order id doubles as the
	// idempotency handle on the provider side.
	CreateHold(ctx context.Context, orderID kernel.UUID, amount float64, payoutAccountRef string) (EscrowHold, error)

	// Release lifts the hold on a transfer, paying the carrier out.
	// Releasing an unknown or already released transfer is an error.
	Release(ctx context.Context, transferID string) error

	// Status reports the provider-side state of a transfer as a raw
	// provider token, for reconciliation diagnostics.
	Status(ctx context.Context, transferID string) (string, error)
}
