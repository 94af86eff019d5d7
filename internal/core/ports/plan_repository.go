package ports

import (
	"context"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/plan"
)

// PlanRepository defines the persistence contract for optimization plans.
// A plan belongs to exactly one order; regenerating replaces the stored plan.
type PlanRepository interface {
	// Save stores or replaces the plan generated for an order.
	Save(ctx context.Context, orderID kernel.UUID, p *plan.Plan) error

	// GetByOrderID retrieves the stored plan for an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*plan.Plan, error)

	// ExistsForOrder reports whether a plan is stored for an order.
	// Backs the dispatch precondition.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)
}
