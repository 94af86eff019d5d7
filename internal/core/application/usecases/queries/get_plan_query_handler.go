package queries

import (
	"context"
	"database/sql"
	"errors"

	"neuroload/internal/core/domain/model/plan"
	"neuroload/internal/core/domain/services"
	"neuroload/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetPlanQueryHandler retrieves a stored optimization plan from the database
// and classifies its loading plan into placement zones for display.
type GetPlanQueryHandler struct {
	db         *gorm.DB
	classifier services.LoadPlacementClassifier
}

// NewGetPlanQueryHandler creates a handler for plan queries.
// Requires a GORM database connection for query execution.
func NewGetPlanQueryHandler(db *gorm.DB) GetPlanQueryHandler {
	return GetPlanQueryHandler{
		db:         db,
		classifier: services.NewLoadPlacementClassifier(),
	}
}

// Handle executes the query for an order's stored plan.
// Returns an object-not-found error when no plan was generated for the order.
// The payload was validated before storage, so a parse failure here means the
// stored row is corrupt and is surfaced as-is.
func (h GetPlanQueryHandler) Handle(
	ctx context.Context,
	query GetPlanQuery,
) (GetPlanQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPlanQueryResponse{}, err
	}

	var payload []byte

	row := h.db.WithContext(ctx).Raw(`
		SELECT payload
		FROM plans
		WHERE order_id = ?
	`, query.OrderID().String()).Row()

	err := row.Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return GetPlanQueryResponse{},
			errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetPlanQueryResponse{}, err
	}

	storedPlan, err := plan.Parse(payload)
	if err != nil {
		return GetPlanQueryResponse{}, err
	}

	return GetPlanQueryResponse{
		OrderID: query.OrderID(),
		Plan:    *storedPlan,
		Zones:   h.classifier.Classify(storedPlan.LoadingPlan),
	}, nil
}
