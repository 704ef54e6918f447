// Package risk implements single-asset Monte Carlo VaR evaluation and the
// deterministic batch coordinator that drives it across multiple assets.
package risk

import (
	"math"

	"github.com/aegisprime/risk-engine/internal/domain"
	"github.com/aegisprime/risk-engine/internal/modules/simulation"
	"github.com/aegisprime/risk-engine/pkg/formulas"
)

// SafetyBuffer is subtracted from the VaR-adjusted LTV ceiling. Fixed by the
// lending contract, not configurable.
const SafetyBuffer = 0.05

// Evaluate computes VaR and a safe loan-to-value figure for a single asset
// using Monte Carlo simulation over a fixed 10-day horizon.
//
// Algorithm:
//  1. Validate inputs (value > 0, volatility in (0, 1], iterations >= 5000)
//  2. Draw mean-0 return samples at 10-day horizon volatility
//  3. Losses = value - value*(1+r), positive = money lost
//  4. VaR = percentile of losses at each confidence level
//  5. Safe LTV = 1 - VaR% - safety buffer, clamped to [0, 1], in basis points
//
// The generator is seeded exactly once from seed, so identical arguments
// always return bit-identical results.
func Evaluate(asset domain.AssetSpec, cfg domain.SimulationConfig) (*domain.RiskResult, error) {
	if asset.Value <= 0 {
		return nil, invalidValue()
	}
	if asset.Volatility <= 0 || asset.Volatility > 1 {
		return nil, invalidVolatility()
	}
	if cfg.Iterations < domain.MinIterations {
		return nil, insufficientIterations()
	}

	primary, secondary := confidences(cfg)

	horizonVol := simulation.HorizonVolatility(asset.Volatility, domain.HorizonDays)

	sampler := simulation.New(cfg.Seed)
	returns := sampler.Normal(0, horizonVol, cfg.Iterations)

	// Simulated terminal values and losses from current value.
	losses := make([]float64, len(returns))
	for i, r := range returns {
		terminal := asset.Value * (1 + r)
		losses[i] = asset.Value - terminal
	}

	var95 := formulas.Percentile(losses, primary*100)
	var99 := formulas.Percentile(losses, secondary*100)

	var95Pct := var95 / asset.Value

	// Safe LTV = 1 - VaR% - safety buffer, clamped so the basis-point value
	// stays within [0, 10000] even under extreme volatility.
	safeLtv := math.Min(1, math.Max(0, 1-var95Pct-SafetyBuffer))
	safeLtvBps := int(math.Round(safeLtv * domain.MaxLtvBps))

	return &domain.RiskResult{
		Var95:      var95,
		Var99:      var99,
		Var95Bps:   int(var95Pct * domain.MaxLtvBps),
		SafeLtvBps: safeLtvBps,
		Iterations: cfg.Iterations,
		Confidence: primary,
		AssetID:    asset.AssetID,
	}, nil
}

// confidences resolves the configured confidence levels, applying the
// 0.95 / 0.99 defaults when one or both are absent.
func confidences(cfg domain.SimulationConfig) (primary, secondary float64) {
	primary = domain.DefaultConfidence
	secondary = domain.DefaultSecondaryConfidence
	if len(cfg.Confidences) > 0 {
		primary = cfg.Confidences[0]
	}
	if len(cfg.Confidences) > 1 {
		secondary = cfg.Confidences[1]
	}
	return primary, secondary
}
