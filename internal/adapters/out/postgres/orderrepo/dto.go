// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"neuroload/internal/core/domain/model/cargo"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Lifecycle and payment statuses are stored as their string tokens so the
// read-side SQL stays legible; the manifest is stored as a jsonb document
// because it is written once and never queried field-by-field on the write path.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipperID uuid.UUID `gorm:"type:uuid;index"`

	Price            float64
	FuelCostEstimate float64
	TollsEstimate    float64

	Manifest []byte `gorm:"type:jsonb"`

	Status        string `gorm:"index"`
	PaymentStatus string `gorm:"index"`

	EscrowOrderID    string
	EscrowTransferID string

	AssignedCarrierID *uuid.UUID `gorm:"type:uuid"`
	AssignedVehicleID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

type manifestDTO struct {
	Packages    []packageDTO   `json:"packages"`
	Cities      []cityDTO      `json:"cities"`
	Constraints constraintsDTO `json:"constraints"`
	Scenario    scenarioDTO    `json:"scenario"`
}

type packageDTO struct {
	ID         string  `json:"id"`
	WeightKg   float64 `json:"weightKg"`
	Fragility  string  `json:"fragility"`
	City       string  `json:"city"`
	Priority   string  `json:"priority"`
	Dimensions string  `json:"dimensions"`
}

type cityDTO struct {
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distanceKm"`
	SLAHours   int     `json:"slaHours"`
	Traffic    string  `json:"traffic"`
	Weather    string  `json:"weather"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

type constraintsDTO struct {
	MaxWeightKg    float64 `json:"maxWeightKg"`
	VolumeCapacity float64 `json:"volumeCapacity"`
	FuelRate       float64 `json:"fuelRate"`
}

type scenarioDTO struct {
	FuelPriceMultiplier    float64 `json:"fuelPriceMultiplier"`
	TrafficSurgeMultiplier float64 `json:"trafficSurgeMultiplier"`
	IsHolidaySeason        bool    `json:"isHolidaySeason"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	manifest, err := marshalManifest(aggregate.Manifest())
	if err != nil {
		return OrderDTO{}, err
	}

	var carrierID, vehicleID *uuid.UUID
	if id := aggregate.AssignedCarrierID(); id != nil {
		raw := id.Bytes()
		carrierID = &raw
	}
	if id := aggregate.AssignedVehicleID(); id != nil {
		raw := id.Bytes()
		vehicleID = &raw
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		ShipperID:         aggregate.ShipperID().Bytes(),
		Price:             aggregate.Price(),
		FuelCostEstimate:  aggregate.FuelCostEstimate(),
		TollsEstimate:     aggregate.TollsEstimate(),
		Manifest:          manifest,
		Status:            aggregate.Status().String(),
		PaymentStatus:     aggregate.PaymentStatus().String(),
		EscrowOrderID:     aggregate.EscrowOrderID(),
		EscrowTransferID:  aggregate.EscrowTransferID(),
		AssignedCarrierID: carrierID,
		AssignedVehicleID: vehicleID,
		CreatedAt:         aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including statuses and escrow linkage using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipperID, err := kernel.UUIDFromBytes(dto.ShipperID[:])
	if err != nil {
		return nil, err
	}

	var carrierID, vehicleID *kernel.UUID
	if dto.AssignedCarrierID != nil {
		cID, carrierErr := kernel.UUIDFromBytes((*dto.AssignedCarrierID)[:])
		if carrierErr != nil {
			return nil, carrierErr
		}
		carrierID = &cID
	}
	if dto.AssignedVehicleID != nil {
		vID, vehicleErr := kernel.UUIDFromBytes((*dto.AssignedVehicleID)[:])
		if vehicleErr != nil {
			return nil, vehicleErr
		}
		vehicleID = &vID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	manifest, err := unmarshalManifest(dto.Manifest)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		shipperID,
		dto.Price,
		dto.FuelCostEstimate,
		dto.TollsEstimate,
		manifest,
		status,
		paymentStatus,
		dto.EscrowOrderID,
		dto.EscrowTransferID,
		carrierID,
		vehicleID,
		dto.CreatedAt,
	)
}

func marshalManifest(manifest cargo.Manifest) ([]byte, error) {
	packages := make([]packageDTO, 0, len(manifest.Packages()))
	for _, p := range manifest.Packages() {
		packages = append(packages, packageDTO{
			ID:         p.ID(),
			WeightKg:   p.WeightKg(),
			Fragility:  string(p.Fragility()),
			City:       p.City(),
			Priority:   string(p.Priority()),
			Dimensions: p.Dimensions(),
		})
	}

	cities := make([]cityDTO, 0, len(manifest.Cities()))
	for _, c := range manifest.Cities() {
		cities = append(cities, cityDTO{
			Name:       c.Name(),
			DistanceKm: c.DistanceKm(),
			SLAHours:   c.SLAHours(),
			Traffic:    string(c.Traffic()),
			Weather:    string(c.Weather()),
			Lat:        c.Point().Lat(),
			Lng:        c.Point().Lng(),
		})
	}

	return json.Marshal(manifestDTO{
		Packages: packages,
		Cities:   cities,
		Constraints: constraintsDTO{
			MaxWeightKg:    manifest.Constraints().MaxWeightKg(),
			VolumeCapacity: manifest.Constraints().VolumeCapacity(),
			FuelRate:       manifest.Constraints().FuelRate(),
		},
		Scenario: scenarioDTO{
			FuelPriceMultiplier:    manifest.Scenario().FuelPriceMultiplier(),
			TrafficSurgeMultiplier: manifest.Scenario().TrafficSurgeMultiplier(),
			IsHolidaySeason:        manifest.Scenario().IsHolidaySeason(),
		},
	})
}

func unmarshalManifest(raw []byte) (cargo.Manifest, error) {
	var dto manifestDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return cargo.Manifest{}, err
	}

	packages := make([]cargo.Package, 0, len(dto.Packages))
	for _, p := range dto.Packages {
		pkg, err := cargo.NewPackage(
			p.ID,
			p.WeightKg,
			cargo.Fragility(p.Fragility),
			p.City,
			cargo.Priority(p.Priority),
			p.Dimensions,
		)
		if err != nil {
			return cargo.Manifest{}, err
		}
		packages = append(packages, pkg)
	}

	cities := make([]cargo.City, 0, len(dto.Cities))
	for _, c := range dto.Cities {
		point, err := kernel.NewGeoPoint(c.Lat, c.Lng)
		if err != nil {
			return cargo.Manifest{}, err
		}

		city, err := cargo.NewCity(
			c.Name,
			c.DistanceKm,
			c.SLAHours,
			cargo.TrafficCondition(c.Traffic),
			cargo.WeatherCondition(c.Weather),
			point,
		)
		if err != nil {
			return cargo.Manifest{}, err
		}
		cities = append(cities, city)
	}

	constraints, err := cargo.NewTruckConstraints(
		dto.Constraints.MaxWeightKg,
		dto.Constraints.VolumeCapacity,
		dto.Constraints.FuelRate,
	)
	if err != nil {
		return cargo.Manifest{}, err
	}

	scenario, err := cargo.NewSimulationScenario(
		dto.Scenario.FuelPriceMultiplier,
		dto.Scenario.TrafficSurgeMultiplier,
		dto.Scenario.IsHolidaySeason,
	)
	if err != nil {
		return cargo.Manifest{}, err
	}

	return cargo.NewManifest(packages, cities, constraints, scenario)
}
