package gemini

import (
	"testing"

	"neuroload/internal/core/domain/model/cargo"
	"neuroload/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManifest(t *testing.T) cargo.Manifest {
	t.Helper()

	p1, err := cargo.NewPackage("P101", 3200, cargo.FragilityLow, "Bangalore", cargo.PriorityExpress, "120x80x90")
	require.NoError(t, err)

	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	c1, err := cargo.NewCity("Bangalore", 0, 24, cargo.TrafficHigh, cargo.WeatherClear, point)
	require.NoError(t, err)

	constraints, err := cargo.NewTruckConstraints(5000, 2500, 4.2)
	require.NoError(t, err)

	scenario, err := cargo.NewSimulationScenario(1.25, 1.0, true)
	require.NoError(t, err)

	manifest, err := cargo.NewManifest(
		[]cargo.Package{p1}, []cargo.City{c1}, constraints, scenario)
	require.NoError(t, err)
	return manifest
}

func TestBuildPrompt_ContainsAllManifestSections(t *testing.T) {
	prompt, err := buildPrompt(testManifest(t))
	require.NoError(t, err)

	assert.Contains(t, prompt, `"id": "P101"`)
	assert.Contains(t, prompt, `"weightKg": 3200`)
	assert.Contains(t, prompt, `"name": "Bangalore"`)
	assert.Contains(t, prompt, `"traffic": "High"`)
	assert.Contains(t, prompt, `"maxWeightKg": 5000`)
	assert.Contains(t, prompt, `"fuelPriceMultiplier": 1.25`)
	assert.Contains(t, prompt, `"isHolidaySeason": true`)
	assert.Contains(t, prompt, "learningInsights")
}

func TestPlanSchema_RequiresEveryTopLevelField(t *testing.T) {
	schema := planSchema()

	assert.ElementsMatch(t, []string{
		"loadingPlan", "routePlan", "metrics",
		"explanation", "riskAssessment", "learningInsights",
	}, schema.Required)

	loading := schema.Properties["loadingPlan"].Items
	assert.ElementsMatch(t, []string{"packageId", "position", "reason"}, loading.Required)

	route := schema.Properties["routePlan"].Items
	assert.ElementsMatch(t, []string{"city", "eta", "activity"}, route.Required)
	assert.Contains(t, route.Properties, "weatherAlert")

	metrics := schema.Properties["metrics"]
	assert.Len(t, metrics.Required, 4)
}

func TestNewPlannerClient_RequiresAPIKey(t *testing.T) {
	_, err := NewPlannerClient(t.Context(), "")
	require.Error(t, err)
}
