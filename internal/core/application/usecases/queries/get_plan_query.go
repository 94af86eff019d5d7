package queries

import (
	"errors"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/plan"
	"neuroload/internal/core/domain/services"
	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

var ErrGetPlanQueryIsNotConstructed = errors.New(
	"GetPlanQuery must be created via NewGetPlanQuery constructor",
)

// GetPlanQuery retrieves the stored optimization plan for an order.
type GetPlanQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPlanQuery creates a plan query for the given order.
func NewGetPlanQuery(orderID kernel.UUID) (GetPlanQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPlanQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	return GetPlanQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPlanQuery) Validate() error {
	return q.guard.Validate(ErrGetPlanQueryIsNotConstructed)
}

// OrderID returns the order whose plan is requested.
func (q GetPlanQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetPlanQueryResponse carries the stored plan together with the derived
// placement zones, so clients get the truck layout without recomputing it.
type GetPlanQueryResponse struct {
	OrderID kernel.UUID
	Plan    plan.Plan
	Zones   services.PlacementZones
}
