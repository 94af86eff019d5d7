package ports

import (
	"context"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/vehicle"
)

// VehicleRepository defines the persistence contract for vehicle aggregates.
type VehicleRepository interface {
	// Add persists a new vehicle aggregate to storage.
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Update persists changes to an existing vehicle aggregate.
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Get retrieves a vehicle aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)

	// GetAllByOwner retrieves every vehicle registered by a carrier.
	GetAllByOwner(ctx context.Context, ownerID kernel.UUID) ([]*vehicle.Vehicle, error)
}
