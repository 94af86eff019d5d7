package queries

import (
	"context"
	"database/sql"
	"errors"

	"neuroload/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetPaymentStatusQueryHandler retrieves the payment state of an order from
// the database, bypassing the aggregate.
type GetPaymentStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetPaymentStatusQueryHandler creates a handler for payment status queries.
// Requires a GORM database connection for query execution.
func NewGetPaymentStatusQueryHandler(db *gorm.DB) GetPaymentStatusQueryHandler {
	return GetPaymentStatusQueryHandler{db: db}
}

// Handle executes the query for a single order's payment state.
// Returns an object-not-found error when the order does not exist.
func (h GetPaymentStatusQueryHandler) Handle(
	ctx context.Context,
	query GetPaymentStatusQuery,
) (GetPaymentStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPaymentStatusQueryResponse{}, err
	}

	var paymentStatus string
	var escrowOrderID, escrowTransferID sql.NullString

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			payment_status,
			escrow_order_id,
			escrow_transfer_id
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	err := row.Scan(&paymentStatus, &escrowOrderID, &escrowTransferID)
	if errors.Is(err, sql.ErrNoRows) {
		return GetPaymentStatusQueryResponse{},
			errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetPaymentStatusQueryResponse{}, err
	}

	return GetPaymentStatusQueryResponse{
		OrderID:          query.OrderID(),
		PaymentStatus:    paymentStatus,
		EscrowOrderID:    escrowOrderID.String,
		EscrowTransferID: escrowTransferID.String,
	}, nil
}
