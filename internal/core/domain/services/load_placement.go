package services

import (
	"strings"

	"neuroload/internal/core/domain/model/plan"
)

// PlacementZones is the result of classifying a loading plan into the three
// coarse physical zones of a truck bed. Together the zones always hold every
// placement of the input exactly once, in input order within each zone.
type PlacementZones struct {
	// ZoneA is the front / deep zone, loaded first and unloaded last.
	ZoneA []plan.Placement
	// ZoneB is the mid / axle zone carrying the weight balance.
	ZoneB []plan.Placement
	// ZoneC is the rear / access zone, reachable at every stop.
	ZoneC []plan.Placement
}

// LoadPlacementClassifier is a domain service that partitions a loading
// plan's placements into three truck zones using only the textual content of
// each position label.
//
// Classification rules (case-insensitive substring match, first rule wins):
//   - "front" places the item in Zone A
//   - "mid" or "axle" places the item in Zone B
//   - "rear" or "back" places the item in Zone C
//
// Position labels matching none of the rules are distributed afterwards in
// chunked thirds: with n unmatched items and chunk = ceil(n/3), the first
// chunk goes to Zone A, the second to Zone B and the remainder to Zone C,
// preserving their original order.
type LoadPlacementClassifier struct{}

// NewLoadPlacementClassifier creates a new LoadPlacementClassifier instance.
func NewLoadPlacementClassifier() LoadPlacementClassifier {
	return LoadPlacementClassifier{}
}

// Classify partitions the given loading plan into zones. The input is never
// mutated and every placement lands in exactly one zone.
func (c LoadPlacementClassifier) Classify(loadingPlan []plan.Placement) PlacementZones {
	var zones PlacementZones
	var unmatched []plan.Placement

	for _, placement := range loadingPlan {
		position := strings.ToLower(placement.Position)
		switch {
		case strings.Contains(position, "front"):
			zones.ZoneA = append(zones.ZoneA, placement)
		case strings.Contains(position, "mid"), strings.Contains(position, "axle"):
			zones.ZoneB = append(zones.ZoneB, placement)
		case strings.Contains(position, "rear"), strings.Contains(position, "back"):
			zones.ZoneC = append(zones.ZoneC, placement)
		default:
			unmatched = append(unmatched, placement)
		}
	}

	if len(unmatched) == 0 {
		return zones
	}

	chunk := (len(unmatched) + 2) / 3
	zones.ZoneA = append(zones.ZoneA, unmatched[:min(chunk, len(unmatched))]...)
	if len(unmatched) > chunk {
		zones.ZoneB = append(zones.ZoneB, unmatched[chunk:min(2*chunk, len(unmatched))]...)
	}
	if len(unmatched) > 2*chunk {
		zones.ZoneC = append(zones.ZoneC, unmatched[2*chunk:]...)
	}

	return zones
}

// Total returns the number of placements across all zones.
func (z PlacementZones) Total() int {
	return len(z.ZoneA) + len(z.ZoneB) + len(z.ZoneC)
}
