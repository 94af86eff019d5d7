// Package vehiclerepo persists vehicle aggregates, converting between the
// domain model and its relational representation.
package vehiclerepo

import (
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// VehicleDTO represents the database structure for persisting vehicle aggregates.
type VehicleDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;index"`

	Model       string
	PlateNumber string `gorm:"uniqueIndex"`

	MaxWeightKg float64
	MaxVolume   float64

	Status          string `gorm:"index"`
	IsVerified      bool
	LinkedAccountID string
}

// TableName specifies the database table name for vehicle entities.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// fromDomain converts a vehicle domain aggregate to its database representation.
func fromDomain(aggregate *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:              aggregate.ID().Bytes(),
		OwnerID:         aggregate.OwnerID().Bytes(),
		Model:           aggregate.Model(),
		PlateNumber:     aggregate.PlateNumber(),
		MaxWeightKg:     aggregate.MaxWeightKg(),
		MaxVolume:       aggregate.MaxVolume(),
		Status:          aggregate.Status().String(),
		IsVerified:      aggregate.IsVerified(),
		LinkedAccountID: aggregate.LinkedAccountID(),
	}
}

// toDomain converts a database DTO to a vehicle domain aggregate using RestoreVehicle.
func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	status, err := vehicle.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return vehicle.RestoreVehicle(
		id,
		ownerID,
		dto.Model,
		dto.PlateNumber,
		dto.MaxWeightKg,
		dto.MaxVolume,
		status,
		dto.IsVerified,
		dto.LinkedAccountID,
	)
}
