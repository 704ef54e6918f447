// Package portfolio implements portfolio-level Monte Carlo VaR aggregation.
package portfolio

import (
	"errors"

	"github.com/aegisprime/risk-engine/internal/domain"
	"github.com/aegisprime/risk-engine/internal/modules/simulation"
	"github.com/aegisprime/risk-engine/pkg/formulas"
	"github.com/shopspring/decimal"
)

// Structural failures, fatal to the whole aggregation call.
var (
	ErrEmptyPortfolio     = errors.New("no assets in portfolio")
	ErrZeroValuePortfolio = errors.New("portfolio value is zero")
)

// Aggregate combines the assets' simulated daily returns, weighted by asset
// value, into one portfolio-level return series and derives aggregate
// VaR/CVaR and a qualitative risk classification.
//
// One shared generator is seeded once for the whole call and assets are
// iterated in input order. The same iteration index corresponds to the same
// simulated day across assets: scenarios are coupled by index, not by true
// inter-asset correlation. Asset order is therefore part of the observable
// contract.
func Aggregate(assets []domain.AssetSpec, cfg domain.SimulationConfig) (*domain.PortfolioResult, error) {
	if len(assets) == 0 {
		return nil, ErrEmptyPortfolio
	}

	totalValue := 0.0
	for _, a := range assets {
		totalValue += a.Value
	}
	if totalValue == 0 {
		return nil, ErrZeroValuePortfolio
	}

	sampler := simulation.New(cfg.Seed)

	portfolioReturns := make([]float64, cfg.Iterations)
	for _, a := range assets {
		weight := a.Value / totalValue

		volatility := a.Volatility
		if volatility == 0 {
			volatility = domain.DefaultVolatility
		}
		expectedReturn := a.ExpectedReturn
		if expectedReturn == 0 {
			expectedReturn = domain.DefaultExpectedReturn
		}

		dailyReturns := sampler.Normal(
			simulation.DailyDrift(expectedReturn),
			simulation.DailyVolatility(volatility),
			cfg.Iterations,
		)
		for i, r := range dailyReturns {
			portfolioReturns[i] += weight * r
		}
	}

	// Returns are losses when negative: the 5th-percentile return is the
	// 95%-confidence loss, hence the sign flip.
	var95 := -formulas.Percentile(portfolioReturns, 5) * totalValue
	var99 := -formulas.Percentile(portfolioReturns, 1) * totalValue
	cvar95 := -formulas.TailMean(portfolioReturns, 5) * totalValue

	riskRatio := var95 / totalValue

	return &domain.PortfolioResult{
		TotalValue:      round2(totalValue),
		Var95:           round2(var95),
		Var99:           round2(var99),
		CVar95:          round2(cvar95),
		AssetCount:      len(assets),
		Simulations:     cfg.Iterations,
		RiskLevel:       domain.ClassifyRisk(riskRatio),
		DailyVarPercent: round4(riskRatio * 100),
	}, nil
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func round4(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}
