// Package domain contains the core risk engine types.
// Domain types are pure data: constructed fresh per invocation, never mutated
// after construction, and never persisted between runs.
package domain

// Engine-wide constants. The iteration floor and the fixed base seed are part
// of the TEE reproducibility contract: identical asset list + identical base
// seed must yield byte-identical numeric output on every platform.
const (
	DefaultIterations = 5000
	MinIterations     = 5000
	DefaultSeed       = int64(42)
	MaxLtvBps         = 10000

	// Fixed 10-day liquidation window for single-asset VaR.
	HorizonDays = 10

	// Defaults applied to portfolio assets that omit these fields.
	DefaultVolatility     = 0.15
	DefaultExpectedReturn = 0.05
)

// Default confidence levels for the two reported VaR figures.
const (
	DefaultConfidence          = 0.95
	DefaultSecondaryConfidence = 0.99
)

// AssetSpec describes one asset under risk assessment.
type AssetSpec struct {
	Value          float64 // Current market value (must be > 0)
	Volatility     float64 // Annualized standard deviation of returns, in (0, 1]
	ExpectedReturn float64 // Annualized drift (portfolio mode only)
	AssetID        string  // Opaque identifier; positional label when absent
}

// SimulationConfig holds run-wide Monte Carlo parameters.
type SimulationConfig struct {
	Iterations  int
	Seed        int64
	Confidences []float64 // One or two levels in (0,1); defaults 0.95 and 0.99
}

// DefaultSimulationConfig returns the configuration used when the input
// provider supplies no overrides.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Iterations:  DefaultIterations,
		Seed:        DefaultSeed,
		Confidences: []float64{DefaultConfidence, DefaultSecondaryConfidence},
	}
}

// RiskResult is the output of one asset's evaluation.
type RiskResult struct {
	Var95      float64 // Potential loss at the primary confidence level
	Var99      float64 // Potential loss at the secondary confidence level
	Var95Bps   int     // Var95 as basis points of asset value (truncated)
	SafeLtvBps int     // Safe loan-to-value in basis points, always in [0, 10000]
	Iterations int
	Confidence float64 // Primary confidence level echo
	AssetID    string
	AssetIndex int // Ordinal position in the batch (0 for single-asset runs)
}

// RiskLevel is a qualitative portfolio risk classification.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// Classification thresholds on var95 / totalValue.
const (
	HighRiskRatio   = 0.05
	MediumRiskRatio = 0.02
)

// ClassifyRisk maps a var95/totalValue ratio to a risk level.
func ClassifyRisk(ratio float64) RiskLevel {
	switch {
	case ratio > HighRiskRatio:
		return RiskLevelHigh
	case ratio > MediumRiskRatio:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// PortfolioResult is the output of a portfolio-level aggregation.
// Currency fields are rounded to 2 decimals and DailyVarPercent to 4 by the
// aggregator, matching the result-file contract.
type PortfolioResult struct {
	TotalValue      float64
	Var95           float64
	Var99           float64
	CVar95          float64 // Expected loss in the worst 5% of outcomes, >= Var95
	AssetCount      int
	Simulations     int
	RiskLevel       RiskLevel
	DailyVarPercent float64
}
