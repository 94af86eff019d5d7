package ports

import (
	"context"

	"neuroload/internal/core/domain/model/escrow"
	"neuroload/internal/core/domain/model/kernel"
)

// EscrowRepository defines the persistence contract for the escrow ledger.
type EscrowRepository interface {
	// Add persists a freshly secured hold.
	Add(ctx context.Context, aggregate *escrow.Hold) error

	// Update persists changes to an existing hold.
	Update(ctx context.Context, aggregate *escrow.Hold) error

	// Get retrieves a hold by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*escrow.Hold, error)

	// GetByOrderID retrieves the hold securing a given order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*escrow.Hold, error)
}
