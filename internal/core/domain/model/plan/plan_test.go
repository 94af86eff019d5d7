package plan_test

import (
	"strings"
	"testing"

	"neuroload/internal/core/domain/model/cargo"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResponse = `{
	"loadingPlan": [
		{"packageId": "P101", "position": "Front-Bottom-Left", "reason": "heaviest first"},
		{"packageId": "P102", "position": "Mid-Axle", "reason": "weight balance"}
	],
	"routePlan": [
		{"city": "Bangalore", "eta": "06:00", "activity": "Load all packages"},
		{"city": "Chennai", "eta": "12:30", "activity": "Drop P102", "weatherAlert": "Heavy rain expected"}
	],
	"metrics": {
		"fuelSaved": "12.5L",
		"co2Reduction": "18kg",
		"timeSaved": "1.4h",
		"onTimeDeliveryRate": "96%"
	},
	"explanation": "Heavy packages over the axle keep the center of mass low.",
	"riskAssessment": "Rain in Chennai may slow the final leg.",
	"learningInsights": "Express packages cluster on the coastal corridor."
}`

func testManifest(t *testing.T) cargo.Manifest {
	t.Helper()

	p1, err := cargo.NewPackage("P101", 50, cargo.FragilityLow, "Bangalore", cargo.PriorityNormal, "50x50x50")
	require.NoError(t, err)
	p2, err := cargo.NewPackage("P102", 120, cargo.FragilityMedium, "Chennai", cargo.PriorityExpress, "80x60x60")
	require.NoError(t, err)

	blr, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	chn, err := kernel.NewGeoPoint(13.0827, 80.2707)
	require.NoError(t, err)
	c1, err := cargo.NewCity("Bangalore", 350, 24, cargo.TrafficMedium, cargo.WeatherClear, blr)
	require.NoError(t, err)
	c2, err := cargo.NewCity("Chennai", 150, 12, cargo.TrafficHigh, cargo.WeatherRain, chn)
	require.NoError(t, err)

	constraints, err := cargo.NewTruckConstraints(5000, 2500, 4.5)
	require.NoError(t, err)
	scenario, err := cargo.NewSimulationScenario(1.0, 1.0, false)
	require.NoError(t, err)

	m, err := cargo.NewManifest([]cargo.Package{p1, p2}, []cargo.City{c1, c2}, constraints, scenario)
	require.NoError(t, err)
	return m
}

func TestParse(t *testing.T) {
	t.Run("decodes a complete response", func(t *testing.T) {
		p, err := plan.Parse([]byte(validResponse))

		require.NoError(t, err)
		require.Len(t, p.LoadingPlan, 2)
		assert.Equal(t, "P101", p.LoadingPlan[0].PackageID)
		require.Len(t, p.RoutePlan, 2)
		assert.Empty(t, p.RoutePlan[0].WeatherAlert)
		assert.Equal(t, "Heavy rain expected", p.RoutePlan[1].WeatherAlert)
		assert.Equal(t, "12.5L", p.Metrics.FuelSaved)
		assert.Equal(t, "96%", p.Metrics.OnTimeDeliveryRate)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := plan.Parse([]byte(`{"loadingPlan": [`))

		require.ErrorIs(t, err, plan.ErrPlanGenerationFailed)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, err := plan.Parse([]byte(`{"loadingPlan": [], "surprise": true}`))

		require.ErrorIs(t, err, plan.ErrPlanGenerationFailed)
	})

	t.Run("rejects empty loading plan", func(t *testing.T) {
		_, err := plan.Parse([]byte(`{
			"loadingPlan": [],
			"routePlan": [{"city": "Bangalore", "eta": "06:00", "activity": "Load"}],
			"metrics": {"fuelSaved": "1L", "co2Reduction": "1kg", "timeSaved": "1h", "onTimeDeliveryRate": "90%"},
			"explanation": "x", "riskAssessment": "x", "learningInsights": "x"
		}`))

		require.ErrorIs(t, err, plan.ErrPlanGenerationFailed)
		assert.Contains(t, err.Error(), "loadingPlan")
	})

	t.Run("rejects placement with missing fields", func(t *testing.T) {
		_, err := plan.Parse([]byte(`{
			"loadingPlan": [{"packageId": "P101", "position": "", "reason": "r"}],
			"routePlan": [{"city": "Bangalore", "eta": "06:00", "activity": "Load"}],
			"metrics": {"fuelSaved": "1L", "co2Reduction": "1kg", "timeSaved": "1h", "onTimeDeliveryRate": "90%"},
			"explanation": "x", "riskAssessment": "x", "learningInsights": "x"
		}`))

		require.ErrorIs(t, err, plan.ErrPlanGenerationFailed)
		assert.Contains(t, err.Error(), "loadingPlan[0]")
	})

	t.Run("rejects incomplete metrics", func(t *testing.T) {
		_, err := plan.Parse([]byte(`{
			"loadingPlan": [{"packageId": "P101", "position": "Front", "reason": "r"}],
			"routePlan": [{"city": "Bangalore", "eta": "06:00", "activity": "Load"}],
			"metrics": {"fuelSaved": "1L", "co2Reduction": "1kg", "timeSaved": "1h", "onTimeDeliveryRate": ""},
			"explanation": "x", "riskAssessment": "x", "learningInsights": "x"
		}`))

		require.ErrorIs(t, err, plan.ErrPlanGenerationFailed)
		assert.Contains(t, err.Error(), "metrics")
	})

	t.Run("rejects missing narrative fields", func(t *testing.T) {
		const template = `{
			"loadingPlan": [{"packageId": "P101", "position": "Front", "reason": "r"}],
			"routePlan": [{"city": "Bangalore", "eta": "06:00", "activity": "Load"}],
			"metrics": {"fuelSaved": "1L", "co2Reduction": "1kg", "timeSaved": "1h", "onTimeDeliveryRate": "90%"},
			"explanation": "x", "riskAssessment": "x", "learningInsights": "x", "FIELD": ""
		}`

		for _, field := range []string{"explanation", "riskAssessment", "learningInsights"} {
			// Overriding the field with "" makes it a duplicate key; the last
			// value wins under encoding/json, leaving the field empty.
			raw := strings.Replace(template, "FIELD", field, 1)

			_, err := plan.Parse([]byte(raw))

			require.ErrorIs(t, err, plan.ErrPlanGenerationFailed, field)
			assert.Contains(t, err.Error(), field+" is missing")
		}
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		_, err := plan.Parse([]byte(validResponse + `{"more": true}`))

		require.ErrorIs(t, err, plan.ErrPlanGenerationFailed)
	})
}

func TestPlan_ValidateAgainst(t *testing.T) {
	manifest := testManifest(t)

	t.Run("accepts plan covering manifest packages", func(t *testing.T) {
		p, err := plan.Parse([]byte(validResponse))
		require.NoError(t, err)

		require.NoError(t, p.ValidateAgainst(manifest))
	})

	t.Run("rejects unknown package id", func(t *testing.T) {
		p := &plan.Plan{
			LoadingPlan: []plan.Placement{{PackageID: "P999", Position: "Front", Reason: "r"}},
		}

		err := p.ValidateAgainst(manifest)

		require.ErrorIs(t, err, plan.ErrPlanGenerationFailed)
		assert.Contains(t, err.Error(), "P999")
	})
}

func TestPlan_UnknownCities(t *testing.T) {
	manifest := testManifest(t)

	t.Run("reports stray cities in route order", func(t *testing.T) {
		p := &plan.Plan{
			RoutePlan: []plan.RouteStop{
				{City: "Bangalore", ETA: "06:00", Activity: "Load"},
				{City: "Mumbai", ETA: "09:00", Activity: "Refuel"},
				{City: "Chennai", ETA: "12:30", Activity: "Drop"},
				{City: "Pune", ETA: "15:00", Activity: "Rest"},
			},
		}

		assert.Equal(t, []string{"Mumbai", "Pune"}, p.UnknownCities(manifest))
	})

	t.Run("empty for a fully matching route", func(t *testing.T) {
		p, err := plan.Parse([]byte(validResponse))
		require.NoError(t, err)

		assert.Empty(t, p.UnknownCities(manifest))
	})
}

func TestPlan_MarshalRaw(t *testing.T) {
	p, err := plan.Parse([]byte(validResponse))
	require.NoError(t, err)

	raw, err := p.MarshalRaw()
	require.NoError(t, err)

	reparsed, err := plan.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, p, reparsed)
}
