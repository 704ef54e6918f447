package risk

import (
	"errors"
	"fmt"

	"github.com/aegisprime/risk-engine/internal/domain"
	"github.com/rs/zerolog"
)

// BatchEntry is the outcome for one asset in a batch run: exactly one of
// Result or Err is set. Callers pattern-match on the two fields instead of
// relying on error propagation across component boundaries.
type BatchEntry struct {
	Result *domain.RiskResult
	Err    *ValidationError
}

// Coordinator runs the single-asset evaluator over an ordered list of assets.
type Coordinator struct {
	log zerolog.Logger
}

// NewCoordinator creates a batch coordinator.
func NewCoordinator(log zerolog.Logger) *Coordinator {
	return &Coordinator{log: log.With().Str("component", "batch").Logger()}
}

// RunBatch evaluates each asset with a deterministic per-asset seed offset:
// asset i uses seed = cfg.Seed + i. The offset keeps sibling simulations
// statistically independent while the whole batch stays reproducible from the
// base seed alone.
//
// Output order matches input order, one entry per asset. A validation failure
// for asset i produces an error entry at position i and never prevents
// evaluation of assets i+1..n; the batch as a whole still succeeds.
func (c *Coordinator) RunBatch(assets []domain.AssetSpec, cfg domain.SimulationConfig) []BatchEntry {
	entries := make([]BatchEntry, 0, len(assets))

	for i, asset := range assets {
		if asset.AssetID == "" {
			asset.AssetID = fmt.Sprintf("asset_%d", i)
		}

		assetCfg := cfg
		assetCfg.Seed = cfg.Seed + int64(i)

		result, err := Evaluate(asset, assetCfg)
		if err != nil {
			verr := asValidation(err)
			verr.AssetID = asset.AssetID
			verr.AssetIndex = i
			c.log.Warn().
				Str("asset_id", asset.AssetID).
				Int("asset_index", i).
				Str("code", string(verr.Code)).
				Msg("Asset failed validation, continuing batch")
			entries = append(entries, BatchEntry{Err: verr})
			continue
		}

		result.AssetIndex = i
		entries = append(entries, BatchEntry{Result: result})
	}

	return entries
}

// asValidation converts an evaluator error into a *ValidationError.
// Evaluate only returns validation failures, so the fallback path exists for
// safety rather than any known input.
func asValidation(err error) *ValidationError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return &ValidationError{Code: CodeInvalidValue, Msg: err.Error()}
}
