// Package main is the TEE entry point for bulk and single-asset risk scoring.
//
// Flow:
//  1. Read protected data from the DataProtector mount
//  2. Run the Monte Carlo VaR batch over the asset list
//  3. Write result.json / computed.json and optional contract callback data
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/aegisprime/risk-engine/internal/calldata"
	"github.com/aegisprime/risk-engine/internal/config"
	"github.com/aegisprime/risk-engine/internal/domain"
	"github.com/aegisprime/risk-engine/internal/iexec"
	"github.com/aegisprime/risk-engine/internal/modules/risk"
	"github.com/aegisprime/risk-engine/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})

	runID := uuid.New().String()
	log = log.With().Str("run_id", runID).Logger()

	log.Info().Msg("Aegis Prime TEE Risk Engine")
	log.Info().Msg("Monte Carlo VaR computation (5000+ iterations)")

	if err := run(cfg, log, runID); err != nil {
		log.Error().Err(err).Msg("Computation failed")
		writeFailure(cfg.OutputDir, runID, err, log)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger, runID string) error {
	log.Info().Msg("Reading protected data...")
	data, err := iexec.ReadProtectedData(cfg.InputDir)
	if err != nil {
		return err
	}

	assets := data.ToAssets()
	if data.IsBulk() {
		log.Info().Int("assets", len(assets)).Msg("Found assets for bulk processing")
	} else {
		log.Info().Msg("Processing single asset")
	}

	simCfg := data.SimulationConfig()
	if simCfg.Iterations < domain.MinIterations {
		log.Warn().
			Int("requested", simCfg.Iterations).
			Int("floor", domain.MinIterations).
			Msg("Raising iterations to the minimum")
		simCfg.Iterations = domain.MinIterations
	}

	log.Info().Int("iterations", simCfg.Iterations).Msg("Running Monte Carlo simulation...")
	entries := risk.NewCoordinator(log).RunBatch(assets, simCfg)

	results := make([]iexec.ResultEntry, len(entries))
	var successful []domain.RiskResult
	for i, entry := range entries {
		results[i] = iexec.NewResultEntry(entry)

		if entry.Err != nil {
			log.Warn().
				Str("asset_id", entry.Err.AssetID).
				Str("error", entry.Err.Msg).
				Msg("Asset evaluation failed")
			continue
		}

		successful = append(successful, *entry.Result)
		log.Info().
			Str("asset_id", entry.Result.AssetID).
			Float64("var_95", entry.Result.Var95).
			Int("var_95_bps", entry.Result.Var95Bps).
			Int("safe_ltv_bps", entry.Result.SafeLtvBps).
			Msg("Asset evaluated")
	}

	output := iexec.BulkOutput{
		Success:                true,
		Results:                results,
		TotalAssets:            len(assets),
		SuccessfulComputations: len(successful),
		Iterations:             simCfg.Iterations,
		RunID:                  runID,
	}

	// Contract callback data is only attached when the input names an owner
	// and a task id.
	if data.Owner != "" && data.TaskID != "" {
		packed, err := calldata.Encode(successful, data.Owner, data.TaskID, simCfg.Iterations)
		if err != nil {
			return fmt.Errorf("failed to encode callback data: %w", err)
		}
		output.CallbackData = hex.EncodeToString(packed)
	}

	log.Info().Msg("Writing results...")
	path, err := iexec.WriteResult(cfg.OutputDir, output)
	if err != nil {
		return err
	}
	if err := iexec.WriteComputed(cfg.OutputDir, path, ""); err != nil {
		return err
	}

	log.Info().Msg("Computation complete")
	return nil
}

// writeFailure records the error in the result files so the host still gets
// a deterministic output path for the failed run.
func writeFailure(outputDir, runID string, runErr error, log zerolog.Logger) {
	path, err := iexec.WriteResult(outputDir, iexec.FailureOutput{
		Success: false,
		Error:   runErr.Error(),
		RunID:   runID,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to write failure result")
		return
	}
	if err := iexec.WriteComputed(outputDir, path, runErr.Error()); err != nil {
		log.Error().Err(err).Msg("Failed to write computed manifest")
	}
}
