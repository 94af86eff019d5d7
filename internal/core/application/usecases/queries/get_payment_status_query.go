package queries

import (
	"errors"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/errs"
	"neuroload/internal/pkg/guard"
)

var ErrGetPaymentStatusQueryIsNotConstructed = errors.New(
	"GetPaymentStatusQuery must be created via NewGetPaymentStatusQuery constructor",
)

// GetPaymentStatusQuery retrieves the payment side of a single order:
// where its money currently is and which escrow records it is tied to.
type GetPaymentStatusQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPaymentStatusQuery creates a payment status query for the given order.
func NewGetPaymentStatusQuery(orderID kernel.UUID) (GetPaymentStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPaymentStatusQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	return GetPaymentStatusQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPaymentStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentStatusQueryIsNotConstructed)
}

// OrderID returns the order whose payment state is requested.
func (q GetPaymentStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetPaymentStatusQueryResponse reports the order's payment state together
// with the escrow references needed to trace it at the payment provider.
type GetPaymentStatusQueryResponse struct {
	OrderID          kernel.UUID
	PaymentStatus    string
	EscrowOrderID    string
	EscrowTransferID string
}
