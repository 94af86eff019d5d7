// Package gemini implements the planner client port on the Gemini API.
// The model is asked for a loading plan, a route plan and narrative metrics
// in strict JSON, constrained by a response schema; validation of the payload
// happens in the domain, not here.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"neuroload/internal/core/domain/model/cargo"

	"google.golang.org/genai"
)

const defaultModel = "gemini-3-pro-preview"

const systemInstruction = `You are NeuroLoad AI, an industrial-grade autonomous logistics intelligence system.
You think like a senior logistics planner and AI optimization engineer.

Your goal is to produce decisions that are Cost-optimal, Operationally realistic, and Explainable.

CORE TASKS:
1. Intelligent 3D Truck Loading: Position items based on weight (axle balance), fragility, and sequence.
2. AI-Driven Route Optimization: Consider distance, traffic, and weather.
3. Autonomous Learning Loop: Identify patterns (e.g., "Frequent delays in region X").

OUTPUT FORMAT: Strict JSON.`

// PlannerClient generates optimization plans through the Gemini API.
type PlannerClient struct {
	client *genai.Client
	model  string
}

// NewPlannerClient creates a planner client authenticated with an API key.
func NewPlannerClient(ctx context.Context, apiKey string) (*PlannerClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key must be non-empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &PlannerClient{
		client: client,
		model:  defaultModel,
	}, nil
}

// GeneratePlan asks the model for an optimization plan over the manifest and
// returns the raw JSON payload. Parsing and validation belong to the caller,
// so a malformed model response is surfaced with the payload intact.
func (c *PlannerClient) GeneratePlan(ctx context.Context, manifest cargo.Manifest) ([]byte, error) {
	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	prompt, err := buildPrompt(manifest)
	if err != nil {
		return nil, fmt.Errorf("build planner prompt: %w", err)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    planSchema(),
			Temperature:       genai.Ptr[float32](0.1),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, errors.New("gemini returned an empty plan response")
	}

	return []byte(text), nil
}

type promptPackage struct {
	ID         string  `json:"id"`
	WeightKg   float64 `json:"weightKg"`
	Fragility  string  `json:"fragility"`
	City       string  `json:"city"`
	Priority   string  `json:"priority"`
	Dimensions string  `json:"dimensions"`
}

type promptCity struct {
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distanceKm"`
	SLAHours   int     `json:"slaHours"`
	Traffic    string  `json:"traffic"`
	Weather    string  `json:"weather"`
}

type promptConstraints struct {
	MaxWeightKg    float64 `json:"maxWeightKg"`
	VolumeCapacity float64 `json:"volumeCapacity"`
	FuelRate       float64 `json:"fuelRate"`
}

type promptScenario struct {
	FuelPriceMultiplier    float64 `json:"fuelPriceMultiplier"`
	TrafficSurgeMultiplier float64 `json:"trafficSurgeMultiplier"`
	IsHolidaySeason        bool    `json:"isHolidaySeason"`
}

// buildPrompt renders the manifest into the analysis request. The sections
// mirror the four manifest components so the model sees the full scenario.
func buildPrompt(manifest cargo.Manifest) (string, error) {
	packages := make([]promptPackage, 0, len(manifest.Packages()))
	for _, p := range manifest.Packages() {
		packages = append(packages, promptPackage{
			ID:         p.ID(),
			WeightKg:   p.WeightKg(),
			Fragility:  string(p.Fragility()),
			City:       p.City(),
			Priority:   string(p.Priority()),
			Dimensions: p.Dimensions(),
		})
	}

	cities := make([]promptCity, 0, len(manifest.Cities()))
	for _, c := range manifest.Cities() {
		cities = append(cities, promptCity{
			Name:       c.Name(),
			DistanceKm: c.DistanceKm(),
			SLAHours:   c.SLAHours(),
			Traffic:    string(c.Traffic()),
			Weather:    string(c.Weather()),
		})
	}

	packagesJSON, err := json.MarshalIndent(packages, "", "  ")
	if err != nil {
		return "", err
	}

	citiesJSON, err := json.MarshalIndent(cities, "", "  ")
	if err != nil {
		return "", err
	}

	constraintsJSON, err := json.MarshalIndent(promptConstraints{
		MaxWeightKg:    manifest.Constraints().MaxWeightKg(),
		VolumeCapacity: manifest.Constraints().VolumeCapacity(),
		FuelRate:       manifest.Constraints().FuelRate(),
	}, "", "  ")
	if err != nil {
		return "", err
	}

	scenarioJSON, err := json.MarshalIndent(promptScenario{
		FuelPriceMultiplier:    manifest.Scenario().FuelPriceMultiplier(),
		TrafficSurgeMultiplier: manifest.Scenario().TrafficSurgeMultiplier(),
		IsHolidaySeason:        manifest.Scenario().IsHolidaySeason(),
	}, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Analyze the following logistics scenario and generate an optimization plan.

INPUT SPECIFICATION:

1. Packages:
%s

2. Cities/Destinations (Includes Traffic & Weather):
%s

3. Truck Constraints:
%s

4. Simulation Scenario (What-If Factors):
%s

Generate the loading plan and route plan strictly following the system instructions.
Ensure 'learningInsights' demonstrates the system's ability to learn from the specific weather/traffic conditions provided.`,
		packagesJSON, citiesJSON, constraintsJSON, scenarioJSON), nil
}

// planSchema constrains the model output to the plan document shape. Field
// names must match what plan.Parse expects.
func planSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"loadingPlan": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"packageId": {Type: genai.TypeString},
						"position": {
							Type:        genai.TypeString,
							Description: "e.g., 'Front-Bottom-Left', 'Rear-Top-Right', 'Mid-Axle'",
						},
						"reason": {
							Type:        genai.TypeString,
							Description: "Why this position was chosen (e.g., 'Heavy item for axle balance')",
						},
					},
					Required: []string{"packageId", "position", "reason"},
				},
			},
			"routePlan": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"city": {Type: genai.TypeString},
						"eta": {
							Type:        genai.TypeString,
							Description: "Estimated time of arrival",
						},
						"activity": {
							Type:        genai.TypeString,
							Description: "What to do here (e.g., 'Unload P101')",
						},
						"weatherAlert": {
							Type:        genai.TypeString,
							Description: "Any weather related warnings for this leg",
						},
					},
					Required: []string{"city", "eta", "activity"},
				},
			},
			"metrics": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"fuelSaved":          {Type: genai.TypeString},
					"co2Reduction":       {Type: genai.TypeString},
					"timeSaved":          {Type: genai.TypeString},
					"onTimeDeliveryRate": {Type: genai.TypeString},
				},
				Required: []string{"fuelSaved", "co2Reduction", "timeSaved", "onTimeDeliveryRate"},
			},
			"explanation": {
				Type:        genai.TypeString,
				Description: "A detailed paragraph explaining the strategy like a human logistics manager.",
			},
			"riskAssessment": {
				Type:        genai.TypeString,
				Description: "Potential risks and mitigations.",
			},
			"learningInsights": {
				Type:        genai.TypeString,
				Description: "What the system learned from this scenario that improves future logic.",
			},
		},
		Required: []string{
			"loadingPlan", "routePlan", "metrics",
			"explanation", "riskAssessment", "learningInsights",
		},
	}
}
