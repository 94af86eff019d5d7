package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"neuroload/internal/core/domain/model/cargo"
)

// ErrPlanGenerationFailed is the unwrap target for every malformed or
// inconsistent planner response.
var ErrPlanGenerationFailed = errors.New("plan generation failed")

// GenerationError reports why a planner response was rejected.
type GenerationError struct {
	Reason string
	Cause  error
}

func (e *GenerationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", ErrPlanGenerationFailed, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", ErrPlanGenerationFailed, e.Reason, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return ErrPlanGenerationFailed
}

// NewGenerationError builds a GenerationError with an optional cause.
func NewGenerationError(reason string, cause error) *GenerationError {
	return &GenerationError{Reason: reason, Cause: cause}
}

// Placement is one loading plan entry: where a package goes and why.
type Placement struct {
	PackageID string `json:"packageId"`
	Position  string `json:"position"`
	Reason    string `json:"reason"`
}

// RouteStop is one route plan entry. WeatherAlert is the only optional field
// of the whole response.
type RouteStop struct {
	City         string `json:"city"`
	ETA          string `json:"eta"`
	Activity     string `json:"activity"`
	WeatherAlert string `json:"weatherAlert,omitempty"`
}

// Metrics are the planner's human-readable impact summaries.
type Metrics struct {
	FuelSaved          string `json:"fuelSaved"`
	CO2Reduction       string `json:"co2Reduction"`
	TimeSaved          string `json:"timeSaved"`
	OnTimeDeliveryRate string `json:"onTimeDeliveryRate"`
}

// Plan is the full optimization output for one order. It is treated as
// immutable once parsed.
type Plan struct {
	LoadingPlan      []Placement `json:"loadingPlan"`
	RoutePlan        []RouteStop `json:"routePlan"`
	Metrics          Metrics     `json:"metrics"`
	Explanation      string      `json:"explanation"`
	RiskAssessment   string      `json:"riskAssessment"`
	LearningInsights string      `json:"learningInsights"`
}

// Parse strictly decodes a raw planner response. Unknown fields, trailing
// data, missing required fields and an empty loading plan are all rejected
// with a GenerationError.
func Parse(raw []byte) (*Plan, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()

	var p Plan
	if err := decoder.Decode(&p); err != nil {
		return nil, NewGenerationError("malformed response JSON", err)
	}
	if decoder.More() {
		return nil, NewGenerationError("trailing data after response JSON", nil)
	}

	if err := p.validateShape(); err != nil {
		return nil, err
	}
	return &p, nil
}

// validateShape checks every required field of the response schema.
func (p *Plan) validateShape() error {
	if len(p.LoadingPlan) == 0 {
		return NewGenerationError("loadingPlan is empty", nil)
	}
	for i, placement := range p.LoadingPlan {
		if placement.PackageID == "" || placement.Position == "" || placement.Reason == "" {
			return NewGenerationError(
				fmt.Sprintf("loadingPlan[%d] is missing required fields", i), nil)
		}
	}

	if len(p.RoutePlan) == 0 {
		return NewGenerationError("routePlan is empty", nil)
	}
	for i, stop := range p.RoutePlan {
		if stop.City == "" || stop.ETA == "" || stop.Activity == "" {
			return NewGenerationError(
				fmt.Sprintf("routePlan[%d] is missing required fields", i), nil)
		}
	}

	if p.Metrics.FuelSaved == "" || p.Metrics.CO2Reduction == "" ||
		p.Metrics.TimeSaved == "" || p.Metrics.OnTimeDeliveryRate == "" {
		return NewGenerationError("metrics are incomplete", nil)
	}

	if p.Explanation == "" {
		return NewGenerationError("explanation is missing", nil)
	}
	if p.RiskAssessment == "" {
		return NewGenerationError("riskAssessment is missing", nil)
	}
	if p.LearningInsights == "" {
		return NewGenerationError("learningInsights is missing", nil)
	}

	return nil
}

// ValidateAgainst cross-checks the plan with the manifest it was generated
// for. A loading plan entry referencing a package that is not on the
// manifest is a hard generation failure; route stops are checked separately
// with UnknownCities because stray city names are tolerated.
func (p *Plan) ValidateAgainst(manifest cargo.Manifest) error {
	if err := manifest.Validate(); err != nil {
		return err
	}

	for _, placement := range p.LoadingPlan {
		if !manifest.HasPackage(placement.PackageID) {
			return NewGenerationError(
				fmt.Sprintf("loadingPlan references unknown package %q", placement.PackageID), nil)
		}
	}
	return nil
}

// UnknownCities returns route stop cities that do not appear on the
// manifest, in route order. The caller logs them; they do not fail the plan.
func (p *Plan) UnknownCities(manifest cargo.Manifest) []string {
	var unknown []string
	for _, stop := range p.RoutePlan {
		if !manifest.HasCity(stop.City) {
			unknown = append(unknown, stop.City)
		}
	}
	return unknown
}

// MarshalRaw serializes the plan back to JSON for persistence.
func (p *Plan) MarshalRaw() ([]byte, error) {
	return json.Marshal(p)
}
