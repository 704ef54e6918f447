// Package simulation provides deterministic normal-return sampling for the
// Monte Carlo risk engine.
package simulation

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// TradingDaysPerYear is the annualization basis for daily returns.
const TradingDaysPerYear = 252

// Sampler draws pseudo-random return scenarios from an explicitly seeded
// generator. Each Sampler owns its own PCG source, so unrelated calls can
// never interfere with each other's draw sequences. A PCG seeded from the
// same value produces the same sequence on every platform, which is what
// makes TEE re-execution bit-identical.
type Sampler struct {
	src *rand.PCG
}

// New creates a Sampler seeded exactly once from seed.
func New(seed int64) *Sampler {
	return &Sampler{src: rand.NewPCG(uint64(seed), uint64(seed))}
}

// Normal draws count samples from N(drift, volatility).
// Draw order is part of the observable contract: consecutive calls continue
// the same generator sequence.
func (s *Sampler) Normal(drift, volatility float64, count int) []float64 {
	dist := distuv.Normal{Mu: drift, Sigma: volatility, Src: s.src}

	samples := make([]float64, count)
	for i := range samples {
		samples[i] = dist.Rand()
	}
	return samples
}

// DailyVolatility converts annualized volatility to per-day volatility.
// Daily volatility = annual volatility / sqrt(252).
func DailyVolatility(annual float64) float64 {
	return annual / math.Sqrt(TradingDaysPerYear)
}

// HorizonVolatility scales annualized volatility to an n-day horizon.
// Horizon volatility = daily volatility * sqrt(horizonDays).
func HorizonVolatility(annual float64, horizonDays int) float64 {
	return DailyVolatility(annual) * math.Sqrt(float64(horizonDays))
}

// DailyDrift converts an annualized expected return to per-day drift.
func DailyDrift(annual float64) float64 {
	return annual / TradingDaysPerYear
}
