// Package main is the TEE entry point for portfolio-level aggregate VaR.
//
// Near-duplicate of cmd/risk-engine: same host I/O contract, but one
// aggregation call over the whole portfolio instead of a per-asset batch.
package main

import (
	"os"
	"strconv"

	"github.com/aegisprime/risk-engine/internal/config"
	"github.com/aegisprime/risk-engine/internal/domain"
	"github.com/aegisprime/risk-engine/internal/iexec"
	"github.com/aegisprime/risk-engine/internal/modules/portfolio"
	"github.com/aegisprime/risk-engine/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})

	runID := uuid.New().String()
	log = log.With().Str("run_id", runID).Logger()

	log.Info().Msg("AEGIS VaR Calculator - TEE-SGX execution")

	simulations := domain.DefaultIterations
	if len(os.Args) > 1 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil {
			simulations = n
			log.Info().Int("simulations", simulations).Msg("Using simulation count from args")
		} else {
			log.Warn().Str("arg", os.Args[1]).Msg("Invalid simulation count, using default")
		}
	}
	if simulations < domain.MinIterations {
		log.Warn().
			Int("requested", simulations).
			Int("floor", domain.MinIterations).
			Msg("Raising simulations to the minimum")
		simulations = domain.MinIterations
	}

	data, err := iexec.ReadPortfolio(cfg.InputDir, cfg.InputFileName1)
	if err != nil {
		log.Info().Err(err).Msg("No portfolio input available, using demo portfolio")
		data = demoPortfolio()
	}

	if cfg.AppSecretSet {
		log.Info().Int("length", cfg.AppSecretLen).Msg("App secret available")
	}

	simCfg := domain.DefaultSimulationConfig()
	simCfg.Iterations = simulations

	log.Info().Msg("Computing Value-at-Risk...")
	result, err := portfolio.Aggregate(data.ToAssets(), simCfg)
	if err != nil {
		log.Error().Err(err).Msg("Aggregation failed")
		writeFailure(cfg.OutputDir, err, log)
		os.Exit(1)
	}

	portfolioID := data.PortfolioID
	if portfolioID == "" {
		portfolioID = "unknown"
	}

	log.Info().
		Str("portfolio_id", portfolioID).
		Float64("total_value", result.TotalValue).
		Int("asset_count", result.AssetCount).
		Int("simulations", result.Simulations).
		Msg("Portfolio")
	log.Info().
		Float64("var_95", result.Var95).
		Float64("var_99", result.Var99).
		Float64("cvar_95", result.CVar95).
		Float64("daily_var_percent", result.DailyVarPercent).
		Str("risk_level", string(result.RiskLevel)).
		Msg("Results")

	path, err := iexec.WriteResult(cfg.OutputDir, iexec.NewPortfolioOutput(result, portfolioID, runID))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to write result")
	}
	if err := iexec.WriteComputed(cfg.OutputDir, path, ""); err != nil {
		log.Fatal().Err(err).Msg("Failed to write computed manifest")
	}

	log.Info().Str("path", path).Msg("Result written")
}

// demoPortfolio is the built-in RWA portfolio used when no input is mounted,
// for local testing.
func demoPortfolio() *iexec.PortfolioData {
	value := func(v float64) *float64 { return &v }

	return &iexec.PortfolioData{
		PortfolioID: "demo-rwa-001",
		Owner:       "0xDemo",
		Assets: []iexec.AssetRecord{
			{Name: "Tokenized Real Estate - NYC", Value: value(150000), Volatility: value(0.12), ExpectedReturn: value(0.08)},
			{Name: "Invoice Factoring NFT", Value: value(75000), Volatility: value(0.08), ExpectedReturn: value(0.06)},
			{Name: "Commodity Token - Gold", Value: value(50000), Volatility: value(0.18), ExpectedReturn: value(0.10)},
			{Name: "Carbon Credit Token", Value: value(25000), Volatility: value(0.25), ExpectedReturn: value(0.15)},
		},
	}
}

func writeFailure(outputDir string, runErr error, log zerolog.Logger) {
	path, err := iexec.WriteResult(outputDir, iexec.PortfolioFailureOutput{
		Status:     "error",
		Error:      runErr.Error(),
		ComputedIn: "TEE-SGX",
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to write failure result")
		return
	}
	if err := iexec.WriteComputed(outputDir, path, runErr.Error()); err != nil {
		log.Error().Err(err).Msg("Failed to write computed manifest")
	}
}
