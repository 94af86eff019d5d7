// Package escrowrepo persists the escrow ledger, converting between the Hold
// aggregate and its relational representation.
package escrowrepo

import (
	"time"

	"neuroload/internal/core/domain/model/escrow"
	"neuroload/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// HoldDTO represents the database structure for persisting escrow holds.
// OrderID carries a unique index: one order is secured by at most one hold.
type HoldDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	Amount           float64
	PayoutAccountRef string

	ProviderOrderID string
	TransferID      string `gorm:"index"`

	Status     string `gorm:"index"`
	CreatedAt  time.Time
	ReleasedAt *time.Time
}

// TableName specifies the database table name for escrow holds.
func (HoldDTO) TableName() string {
	return "escrow_holds"
}

// fromDomain converts a hold aggregate to its database representation.
func fromDomain(aggregate *escrow.Hold) HoldDTO {
	return HoldDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		Amount:           aggregate.Amount(),
		PayoutAccountRef: aggregate.PayoutAccountRef(),
		ProviderOrderID:  aggregate.ProviderOrderID(),
		TransferID:       aggregate.TransferID(),
		Status:           aggregate.Status().String(),
		CreatedAt:        aggregate.CreatedAt(),
		ReleasedAt:       aggregate.ReleasedAt(),
	}
}

// toDomain converts a database DTO to a hold aggregate using RestoreHold.
func toDomain(dto HoldDTO) (*escrow.Hold, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	status, err := escrow.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return escrow.RestoreHold(
		id,
		orderID,
		dto.Amount,
		dto.PayoutAccountRef,
		dto.ProviderOrderID,
		dto.TransferID,
		status,
		dto.CreatedAt,
		dto.ReleasedAt,
	)
}
