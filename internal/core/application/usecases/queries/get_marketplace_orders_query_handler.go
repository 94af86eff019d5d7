package queries

import (
	"context"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMarketplaceOrdersQueryHandler retrieves the open marketplace feed from
// the database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
//
// Example:
//
//	handler := NewGetMarketplaceOrdersQueryHandler(db)
//	query := NewGetMarketplaceOrdersQuery()
//
//	feed, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get marketplace feed: %v", err)
//	    return err
//	}
//
//	fmt.Printf("%d orders open for acceptance\n", len(feed))
type GetMarketplaceOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetMarketplaceOrdersQueryHandler creates a handler for marketplace feed queries.
// Requires a GORM database connection for query execution.
func NewGetMarketplaceOrdersQueryHandler(db *gorm.DB) GetMarketplaceOrdersQueryHandler {
	return GetMarketplaceOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders open for acceptance.
// Returns pending orders newest first. The total weight is summed from the
// manifest in SQL so the aggregate never has to be rehydrated on the read path.
func (h GetMarketplaceOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetMarketplaceOrdersQuery,
) ([]GetMarketplaceOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetMarketplaceOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			shipper_id,
			price,
			fuel_cost_estimate,
			tolls_estimate,
			COALESCE((
				SELECT SUM((pkg->>'weightKg')::numeric)
				FROM jsonb_array_elements(manifest->'packages') AS pkg
			), 0),
			created_at
		FROM orders
		WHERE status = ?
		ORDER BY created_at DESC
	`, order.Pending.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetMarketplaceOrdersQueryResponse
		var id, shipperID uuid.UUID

		err = rows.Scan(
			&id,
			&shipperID,
			&orderResp.Price,
			&orderResp.FuelCostEstimate,
			&orderResp.TollsEstimate,
			&orderResp.TotalWeightKg,
			&orderResp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		shipper, idErr := kernel.UUIDFromBytes(shipperID[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ShipperID = shipper

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
