package risk

import (
	"testing"

	"github.com/aegisprime/risk-engine/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCoordinator() *Coordinator {
	return NewCoordinator(zerolog.Nop())
}

func TestRunBatch_MultipleAssets(t *testing.T) {
	assets := []domain.AssetSpec{
		{Value: 2_500_000, Volatility: 0.15, AssetID: "real-estate-1"},
		{Value: 1_000_000, Volatility: 0.08, AssetID: "bonds-1"},
		{Value: 750_000, Volatility: 0.22, AssetID: "mixed-fund-1"},
	}

	entries := testCoordinator().RunBatch(assets, domain.DefaultSimulationConfig())

	require.Len(t, entries, 3)
	for _, entry := range entries {
		require.NotNil(t, entry.Result)
		assert.Nil(t, entry.Err)
		assert.Greater(t, entry.Result.Var95, 0.0)
	}
}

func TestRunBatch_PreservesOrder(t *testing.T) {
	assets := []domain.AssetSpec{
		{Value: 1_000_000, Volatility: 0.10, AssetID: "first"},
		{Value: 2_000_000, Volatility: 0.20, AssetID: "second"},
	}

	entries := testCoordinator().RunBatch(assets, domain.DefaultSimulationConfig())

	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Result.AssetID)
	assert.Equal(t, 0, entries[0].Result.AssetIndex)
	assert.Equal(t, "second", entries[1].Result.AssetID)
	assert.Equal(t, 1, entries[1].Result.AssetIndex)
}

func TestRunBatch_SeedOffsetPerOrdinal(t *testing.T) {
	assetA := domain.AssetSpec{Value: 1_000_000, Volatility: 0.15, AssetID: "a"}
	assetB := domain.AssetSpec{Value: 500_000, Volatility: 0.20, AssetID: "b"}

	cfg := domain.DefaultSimulationConfig()
	entries := testCoordinator().RunBatch([]domain.AssetSpec{assetA, assetB}, cfg)

	// Asset 0 evaluates with the base seed, asset 1 with base+1
	standalone, err := Evaluate(assetA, cfg)
	require.NoError(t, err)
	assert.Equal(t, standalone.Var95, entries[0].Result.Var95)

	cfgB := cfg
	cfgB.Seed = cfg.Seed + 1
	standaloneB, err := Evaluate(assetB, cfgB)
	require.NoError(t, err)
	assert.Equal(t, standaloneB.Var95, entries[1].Result.Var95)
}

func TestRunBatch_SiblingsDoNotInterfere(t *testing.T) {
	assetA := domain.AssetSpec{Value: 1_000_000, Volatility: 0.15, AssetID: "a"}
	cfg := domain.DefaultSimulationConfig()

	withB := testCoordinator().RunBatch([]domain.AssetSpec{
		assetA,
		{Value: 2_000_000, Volatility: 0.30, AssetID: "b"},
	}, cfg)
	withC := testCoordinator().RunBatch([]domain.AssetSpec{
		assetA,
		{Value: 10, Volatility: 0.01, AssetID: "c"},
	}, cfg)

	assert.Equal(t, withB[0].Result.Var95, withC[0].Result.Var95)
	assert.Equal(t, withB[0].Result.SafeLtvBps, withC[0].Result.SafeLtvBps)
}

func TestRunBatch_IndependentSeedsForIdenticalAssets(t *testing.T) {
	assets := []domain.AssetSpec{
		{Value: 1_000_000, Volatility: 0.15},
		{Value: 1_000_000, Volatility: 0.15},
	}

	entries := testCoordinator().RunBatch(assets, domain.DefaultSimulationConfig())

	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].Result.Var95, entries[1].Result.Var95)
}

func TestRunBatch_PositionalAssetIDs(t *testing.T) {
	assets := []domain.AssetSpec{
		{Value: 1_000_000, Volatility: 0.15},
		{Value: 500_000, Volatility: 0.10},
	}

	entries := testCoordinator().RunBatch(assets, domain.DefaultSimulationConfig())

	assert.Equal(t, "asset_0", entries[0].Result.AssetID)
	assert.Equal(t, "asset_1", entries[1].Result.AssetID)
}

func TestRunBatch_PartialFailureIsolation(t *testing.T) {
	assets := []domain.AssetSpec{
		{Value: 1_000_000, Volatility: 0.15, AssetID: "valid-1"},
		{Value: -100, Volatility: 0.15, AssetID: "invalid"},
		{Value: 500_000, Volatility: 0.10, AssetID: "valid-2"},
	}

	entries := testCoordinator().RunBatch(assets, domain.DefaultSimulationConfig())

	require.Len(t, entries, 3)

	require.NotNil(t, entries[0].Result)
	assert.Nil(t, entries[0].Err)

	require.NotNil(t, entries[1].Err)
	assert.Nil(t, entries[1].Result)
	assert.Equal(t, CodeInvalidValue, entries[1].Err.Code)
	assert.Equal(t, "invalid", entries[1].Err.AssetID)
	assert.Equal(t, 1, entries[1].Err.AssetIndex)

	require.NotNil(t, entries[2].Result)
	assert.Nil(t, entries[2].Err)
}

func TestRunBatch_CustomIterations(t *testing.T) {
	cfg := domain.DefaultSimulationConfig()
	cfg.Iterations = 10000

	entries := testCoordinator().RunBatch([]domain.AssetSpec{
		{Value: 1_000_000, Volatility: 0.15},
	}, cfg)

	require.Len(t, entries, 1)
	assert.Equal(t, 10000, entries[0].Result.Iterations)
}

func TestRunBatch_EmptyList(t *testing.T) {
	entries := testCoordinator().RunBatch(nil, domain.DefaultSimulationConfig())
	assert.Empty(t, entries)
}
