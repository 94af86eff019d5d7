// Package ports defines the contracts between the application core and the
// outside world: repositories, the unit of work, the escrow provider, the
// planner client and the snapshot store. Adapters implement these interfaces;
// use cases depend only on them.
package ports

import (
	"context"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInPendingStatus retrieves every order still waiting on the
	// marketplace, newest first. Backs the carrier feed.
	GetAllInPendingStatus(ctx context.Context) ([]*order.Order, error)

	// GetAllAwaitingPayout retrieves delivered orders whose payment has not
	// been released yet. Backs the payout reconciliation job.
	GetAllAwaitingPayout(ctx context.Context) ([]*order.Order, error)
}
