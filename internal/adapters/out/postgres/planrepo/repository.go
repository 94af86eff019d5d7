package planrepo

import (
	"context"
	"errors"
	"time"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/plan"
	"neuroload/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPlanRepository implements PlanRepository using GORM.
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GORM plan repository.
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// Save stores or replaces the plan generated for an order. Upserts on the
// order id so regeneration overwrites the previous plan.
func (r *GormPlanRepository) Save(ctx context.Context, orderID kernel.UUID, p *plan.Plan) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	payload, err := p.MarshalRaw()
	if err != nil {
		return err
	}

	dto := PlanDTO{
		OrderID:     orderID.Bytes(),
		Payload:     payload,
		GeneratedAt: time.Now().UTC(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// GetByOrderID retrieves the stored plan for an order.
func (r *GormPlanRepository) GetByOrderID(
	ctx context.Context,
	orderID kernel.UUID,
) (*plan.Plan, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PlanDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("plan for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsForOrder reports whether a plan is stored for an order.
func (r *GormPlanRepository) ExistsForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&PlanDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
