// Package planrepo persists optimization plans. A plan is stored as the
// validated planner payload keyed by order, since it is served back verbatim
// and never edited field-by-field.
package planrepo

import (
	"time"

	"neuroload/internal/core/domain/model/plan"

	"github.com/google/uuid"
)

// PlanDTO represents the database structure for persisting plans.
// One row per order; regeneration replaces the payload.
type PlanDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Payload     []byte    `gorm:"type:jsonb"`
	GeneratedAt time.Time
}

// TableName specifies the database table name for plans.
func (PlanDTO) TableName() string {
	return "plans"
}

// toDomain parses a stored payload back into a plan. The payload was
// validated before storage, so failure here means the row is corrupt.
func toDomain(dto PlanDTO) (*plan.Plan, error) {
	return plan.Parse(dto.Payload)
}
