package iexec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aegisprime/risk-engine/internal/domain"
	"github.com/aegisprime/risk-engine/internal/modules/risk"
)

// Result file names mandated by the hosting platform.
const (
	ResultFile   = "result.json"
	ComputedFile = "computed.json"
)

// ResultEntry is the serialized outcome for one asset of a bulk run.
// Successful entries carry the numeric fields; failed entries carry "error".
type ResultEntry struct {
	AssetIndex int      `json:"asset_index"`
	AssetID    string   `json:"asset_id"`
	Var95      *float64 `json:"var_95,omitempty"`
	Var99      *float64 `json:"var_99,omitempty"`
	Var95Bps   *int     `json:"var_95_bps,omitempty"`
	SafeLtvBps *int     `json:"safe_ltv_bps,omitempty"`
	Iterations int      `json:"iterations,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// NewResultEntry converts a batch entry into its serialized form.
func NewResultEntry(entry risk.BatchEntry) ResultEntry {
	if entry.Err != nil {
		return ResultEntry{
			AssetIndex: entry.Err.AssetIndex,
			AssetID:    entry.Err.AssetID,
			Error:      entry.Err.Msg,
		}
	}

	r := entry.Result
	return ResultEntry{
		AssetIndex: r.AssetIndex,
		AssetID:    r.AssetID,
		Var95:      &r.Var95,
		Var99:      &r.Var99,
		Var95Bps:   &r.Var95Bps,
		SafeLtvBps: &r.SafeLtvBps,
		Iterations: r.Iterations,
		Confidence: r.Confidence,
	}
}

// BulkOutput is the result payload of the batch risk-engine binary.
type BulkOutput struct {
	Success                bool          `json:"success"`
	Results                []ResultEntry `json:"results"`
	TotalAssets            int           `json:"total_assets"`
	SuccessfulComputations int           `json:"successful_computations"`
	Iterations             int           `json:"iterations"`
	RunID                  string        `json:"run_id,omitempty"`
	CallbackData           string        `json:"callback_data,omitempty"`
}

// FailureOutput is written when a run fails before producing results.
type FailureOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	RunID   string `json:"run_id,omitempty"`
}

// PortfolioOutput is the result payload of the portfolio-var binary.
type PortfolioOutput struct {
	TotalValue      float64          `json:"totalValue"`
	Var95           float64          `json:"var95"`
	Var99           float64          `json:"var99"`
	CVar95          float64          `json:"cvar95"`
	AssetCount      int              `json:"assetCount"`
	Simulations     int              `json:"simulations"`
	RiskLevel       domain.RiskLevel `json:"riskLevel"`
	DailyVarPercent float64          `json:"dailyVarPercent"`
	Status          string           `json:"status"`
	ComputedIn      string           `json:"computedIn"`
	PortfolioID     string           `json:"portfolioId"`
	RunID           string           `json:"runId,omitempty"`
}

// PortfolioFailureOutput is the portfolio-var error payload.
type PortfolioFailureOutput struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	ComputedIn string `json:"computedIn"`
}

// NewPortfolioOutput builds the serialized portfolio result.
func NewPortfolioOutput(r *domain.PortfolioResult, portfolioID, runID string) PortfolioOutput {
	return PortfolioOutput{
		TotalValue:      r.TotalValue,
		Var95:           r.Var95,
		Var99:           r.Var99,
		CVar95:          r.CVar95,
		AssetCount:      r.AssetCount,
		Simulations:     r.Simulations,
		RiskLevel:       r.RiskLevel,
		DailyVarPercent: r.DailyVarPercent,
		Status:          "success",
		ComputedIn:      "TEE-SGX",
		PortfolioID:     portfolioID,
		RunID:           runID,
	}
}

// WriteResult serializes payload to result.json inside outputDir, creating
// the directory if needed. Returns the path written.
func WriteResult(outputDir string, payload any) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	path := filepath.Join(outputDir, ResultFile)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write result: %w", err)
	}
	return path, nil
}

// WriteComputed writes the computed.json manifest pointing at the
// deterministic output. errMsg, when non-empty, is included for failed runs.
func WriteComputed(outputDir, resultPath, errMsg string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	computed := map[string]string{"deterministic-output-path": resultPath}
	if errMsg != "" {
		computed["error-message"] = errMsg
	}

	raw, err := json.Marshal(computed)
	if err != nil {
		return fmt.Errorf("failed to marshal computed manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outputDir, ComputedFile), raw, 0o644); err != nil {
		return fmt.Errorf("failed to write computed manifest: %w", err)
	}
	return nil
}
