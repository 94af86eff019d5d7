// Package queries contains read-side operations of the CQRS architecture.
// Query handlers read the database directly with raw SQL, bypassing the
// aggregates, since they never modify state.
package queries

import (
	"errors"
	"time"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/guard"
)

var ErrGetMarketplaceOrdersQueryIsNotConstructed = errors.New(
	"GetMarketplaceOrdersQuery must be created via NewGetMarketplaceOrdersQuery constructor",
)

// GetMarketplaceOrdersQuery retrieves the carrier-facing feed of orders
// still waiting for acceptance.
type GetMarketplaceOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetMarketplaceOrdersQuery creates a query for the marketplace feed.
// This is a parameterless query that fetches all pending orders.
func NewGetMarketplaceOrdersQuery() GetMarketplaceOrdersQuery {
	return GetMarketplaceOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetMarketplaceOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetMarketplaceOrdersQueryIsNotConstructed)
}

// GetMarketplaceOrdersQueryResponse is one feed entry: the commercial facts
// a carrier needs to decide on an order.
type GetMarketplaceOrdersQueryResponse struct {
	ID               kernel.UUID
	ShipperID        kernel.UUID
	Price            float64
	FuelCostEstimate float64
	TollsEstimate    float64
	TotalWeightKg    float64
	CreatedAt        time.Time
}
