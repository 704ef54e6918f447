package portfolio

import (
	"testing"

	"github.com/aegisprime/risk-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoAssetPortfolio() []domain.AssetSpec {
	return []domain.AssetSpec{
		{Value: 150_000, Volatility: 0.12, ExpectedReturn: 0.08, AssetID: "real-estate"},
		{Value: 75_000, Volatility: 0.08, ExpectedReturn: 0.06, AssetID: "invoices"},
	}
}

func TestAggregate_EmptyPortfolio(t *testing.T) {
	_, err := Aggregate(nil, domain.DefaultSimulationConfig())
	assert.ErrorIs(t, err, ErrEmptyPortfolio)
}

func TestAggregate_ZeroValuePortfolio(t *testing.T) {
	assets := []domain.AssetSpec{
		{Value: 0, Volatility: 0.15},
		{Value: 0, Volatility: 0.10},
	}

	_, err := Aggregate(assets, domain.DefaultSimulationConfig())
	assert.ErrorIs(t, err, ErrZeroValuePortfolio)
}

func TestAggregate_TwoAssetScenario(t *testing.T) {
	result, err := Aggregate(twoAssetPortfolio(), domain.DefaultSimulationConfig())
	require.NoError(t, err)

	assert.Equal(t, 225_000.0, result.TotalValue)
	assert.Equal(t, 2, result.AssetCount)
	assert.Equal(t, 5000, result.Simulations)
	assert.Greater(t, result.Var95, 0.0)
	assert.Greater(t, result.Var99, result.Var95)

	// Daily VaR on a diversified low-vol portfolio sits far below the 2%
	// MEDIUM threshold
	assert.Equal(t, domain.RiskLevelLow, result.RiskLevel)
	assert.Greater(t, result.DailyVarPercent, 0.0)
	assert.Less(t, result.DailyVarPercent, 2.0)
}

func TestAggregate_CVarDominatesVar(t *testing.T) {
	result, err := Aggregate(twoAssetPortfolio(), domain.DefaultSimulationConfig())
	require.NoError(t, err)

	// Conditional tail average is always at least the VaR threshold
	assert.GreaterOrEqual(t, result.CVar95, result.Var95)
}

func TestAggregate_Deterministic(t *testing.T) {
	first, err := Aggregate(twoAssetPortfolio(), domain.DefaultSimulationConfig())
	require.NoError(t, err)
	second, err := Aggregate(twoAssetPortfolio(), domain.DefaultSimulationConfig())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregate_AssetOrderAffectsDraws(t *testing.T) {
	// The shared generator makes the draw sequence, and therefore the exact
	// output, depend on asset iteration order.
	assets := twoAssetPortfolio()
	reversed := []domain.AssetSpec{assets[1], assets[0]}

	forward, err := Aggregate(assets, domain.DefaultSimulationConfig())
	require.NoError(t, err)
	backward, err := Aggregate(reversed, domain.DefaultSimulationConfig())
	require.NoError(t, err)

	assert.Equal(t, forward.TotalValue, backward.TotalValue)
	assert.NotEqual(t, forward.Var95, backward.Var95)
}

func TestAggregate_DefaultsForMissingFields(t *testing.T) {
	implicit, err := Aggregate([]domain.AssetSpec{
		{Value: 100_000},
	}, domain.DefaultSimulationConfig())
	require.NoError(t, err)

	explicit, err := Aggregate([]domain.AssetSpec{
		{Value: 100_000, Volatility: domain.DefaultVolatility, ExpectedReturn: domain.DefaultExpectedReturn},
	}, domain.DefaultSimulationConfig())
	require.NoError(t, err)

	assert.Equal(t, explicit, implicit)
}

func TestAggregate_RiskClassificationThresholds(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		expected domain.RiskLevel
	}{
		{name: "well below medium", ratio: 0.005, expected: domain.RiskLevelLow},
		{name: "at medium threshold", ratio: 0.02, expected: domain.RiskLevelLow},
		{name: "above medium", ratio: 0.03, expected: domain.RiskLevelMedium},
		{name: "at high threshold", ratio: 0.05, expected: domain.RiskLevelMedium},
		{name: "above high", ratio: 0.06, expected: domain.RiskLevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ClassifyRisk(tt.ratio))
		})
	}
}

func TestAggregate_HighVolatilityRaisesRiskLevel(t *testing.T) {
	// A single max-volatility asset produces a much larger daily VaR ratio
	// than the diversified two-asset portfolio.
	risky, err := Aggregate([]domain.AssetSpec{
		{Value: 100_000, Volatility: 1.0, ExpectedReturn: 0.0},
	}, domain.DefaultSimulationConfig())
	require.NoError(t, err)

	calm, err := Aggregate(twoAssetPortfolio(), domain.DefaultSimulationConfig())
	require.NoError(t, err)

	assert.Greater(t, risky.DailyVarPercent, calm.DailyVarPercent)
	assert.Equal(t, domain.RiskLevelHigh, risky.RiskLevel)
}

func BenchmarkAggregate(b *testing.B) {
	assets := twoAssetPortfolio()
	cfg := domain.DefaultSimulationConfig()

	for i := 0; i < b.N; i++ {
		if _, err := Aggregate(assets, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
