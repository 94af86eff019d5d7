package escrowrepo

import (
	"context"
	"errors"

	"neuroload/internal/core/domain/model/escrow"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEscrowRepository implements EscrowRepository using GORM.
type GormEscrowRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormEscrowRepository creates a new GORM escrow repository.
func NewGormEscrowRepository(db *gorm.DB, tracker aggregateTracker) *GormEscrowRepository {
	return &GormEscrowRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a freshly secured hold to the ledger.
func (r *GormEscrowRepository) Add(ctx context.Context, aggregate *escrow.Hold) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing hold to the ledger. All columns are written so the
// status transitions and release timestamp always land.
func (r *GormEscrowRepository) Update(ctx context.Context, aggregate *escrow.Hold) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&HoldDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a hold by ID.
func (r *GormEscrowRepository) Get(ctx context.Context, id kernel.UUID) (*escrow.Hold, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HoldDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("escrow hold", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the hold securing a given order.
func (r *GormEscrowRepository) GetByOrderID(
	ctx context.Context,
	orderID kernel.UUID,
) (*escrow.Hold, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto HoldDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("escrow hold for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
