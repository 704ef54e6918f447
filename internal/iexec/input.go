// Package iexec handles the host-side I/O contract of the TEE container:
// protected input data under IEXEC_IN and result files under IEXEC_OUT.
package iexec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aegisprime/risk-engine/internal/domain"
)

// ProtectedDataFile is the well-known name of the DataProtector payload
// inside the input directory.
const ProtectedDataFile = "protected-data.json"

// LocalTestDataFile is checked in the current directory when no protected
// data is mounted, for local development runs.
const LocalTestDataFile = "test-data.json"

// AssetRecord is one asset as it appears in input JSON. Two formats are
// accepted: raw ("value" in currency units, "volatility" as a decimal) and
// encoded ("assetValue" in cents, "assetVolatility" in basis points).
type AssetRecord struct {
	Value           *float64 `json:"value,omitempty"`
	Volatility      *float64 `json:"volatility,omitempty"`
	ExpectedReturn  *float64 `json:"expectedReturn,omitempty"`
	AssetID         string   `json:"asset_id,omitempty"`
	Name            string   `json:"name,omitempty"`
	AssetValue      *float64 `json:"assetValue,omitempty"`
	AssetVolatility *float64 `json:"assetVolatility,omitempty"`
}

// ProtectedData is the decoded protected input payload. A payload carries
// either a single asset (top-level fields) or a bulk list under "assets".
type ProtectedData struct {
	Value           *float64      `json:"value,omitempty"`
	Volatility      *float64      `json:"volatility,omitempty"`
	AssetValue      *float64      `json:"assetValue,omitempty"`
	AssetVolatility *float64      `json:"assetVolatility,omitempty"`
	AssetID         string        `json:"asset_id,omitempty"`
	Assets          []AssetRecord `json:"assets,omitempty"`
	Iterations      *int          `json:"iterations,omitempty"`
	Seed            *int64        `json:"seed,omitempty"`
	Owner           string        `json:"owner,omitempty"`
	TaskID          string        `json:"task_id,omitempty"`
	Portfolio       string        `json:"portfolio,omitempty"` // portfolio JSON as a string
}

// ReadProtectedData reads and decodes the protected data payload from
// inputDir, falling back to a local test-data.json for development runs.
// Encoded-format fields are converted to decimals on read.
func ReadProtectedData(inputDir string) (*ProtectedData, error) {
	path := filepath.Join(inputDir, ProtectedDataFile)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		raw, err = os.ReadFile(LocalTestDataFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read protected data: %w", err)
	}

	var data ProtectedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse protected data: %w", err)
	}

	data.normalize()
	return &data, nil
}

// normalize converts encoded values (cents / basis points) into the decimal
// representation the engine computes with.
func (d *ProtectedData) normalize() {
	if d.AssetValue != nil {
		v := *d.AssetValue / 100
		d.Value = &v
	}
	if d.AssetVolatility != nil {
		v := *d.AssetVolatility / 10000
		d.Volatility = &v
	}
	for i := range d.Assets {
		d.Assets[i].normalize()
	}
}

func (r *AssetRecord) normalize() {
	if r.AssetValue != nil {
		v := *r.AssetValue / 100
		r.Value = &v
	}
	if r.AssetVolatility != nil {
		v := *r.AssetVolatility / 10000
		r.Volatility = &v
	}
}

// IsBulk reports whether the payload carries a bulk asset list.
func (d *ProtectedData) IsBulk() bool {
	return len(d.Assets) > 0
}

// ToAssets converts the payload to the engine's asset list. Single-asset
// payloads become a one-element list with asset id "default" when unset.
// Missing numeric fields stay zero and are rejected by engine validation
// rather than here.
func (d *ProtectedData) ToAssets() []domain.AssetSpec {
	if d.IsBulk() {
		assets := make([]domain.AssetSpec, len(d.Assets))
		for i, rec := range d.Assets {
			assets[i] = rec.toAssetSpec()
		}
		return assets
	}

	assetID := d.AssetID
	if assetID == "" {
		assetID = "default"
	}
	asset := domain.AssetSpec{AssetID: assetID}
	if d.Value != nil {
		asset.Value = *d.Value
	}
	if d.Volatility != nil {
		asset.Volatility = *d.Volatility
	}
	return []domain.AssetSpec{asset}
}

// SimulationConfig resolves iteration and seed overrides against defaults.
func (d *ProtectedData) SimulationConfig() domain.SimulationConfig {
	cfg := domain.DefaultSimulationConfig()
	if d.Iterations != nil {
		cfg.Iterations = *d.Iterations
	}
	if d.Seed != nil {
		cfg.Seed = *d.Seed
	}
	return cfg
}

// PortfolioData is the decoded portfolio payload for aggregate VaR runs.
type PortfolioData struct {
	PortfolioID string        `json:"portfolioId,omitempty"`
	Owner       string        `json:"owner,omitempty"`
	Assets      []AssetRecord `json:"assets"`
}

// ReadPortfolio loads a portfolio description. It tries the protected data
// payload first (portfolio JSON carried as a string under "portfolio"), then
// the first plain input file. Returns an error when neither source yields a
// portfolio; the caller decides on a fallback.
func ReadPortfolio(inputDir, inputFileName string) (*PortfolioData, error) {
	if data, err := ReadProtectedData(inputDir); err == nil && data.Portfolio != "" {
		var p PortfolioData
		if err := json.Unmarshal([]byte(data.Portfolio), &p); err != nil {
			return nil, fmt.Errorf("failed to parse portfolio from protected data: %w", err)
		}
		p.normalize()
		return &p, nil
	}

	if inputFileName != "" {
		raw, err := os.ReadFile(filepath.Join(inputDir, inputFileName))
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		var p PortfolioData
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to parse input file: %w", err)
		}
		p.normalize()
		return &p, nil
	}

	return nil, fmt.Errorf("no portfolio data available")
}

func (p *PortfolioData) normalize() {
	for i := range p.Assets {
		p.Assets[i].normalize()
	}
}

// ToAssets converts the portfolio records to engine assets.
func (p *PortfolioData) ToAssets() []domain.AssetSpec {
	assets := make([]domain.AssetSpec, len(p.Assets))
	for i, rec := range p.Assets {
		assets[i] = rec.toAssetSpec()
	}
	return assets
}

func (r AssetRecord) toAssetSpec() domain.AssetSpec {
	asset := domain.AssetSpec{AssetID: r.AssetID}
	if asset.AssetID == "" {
		asset.AssetID = r.Name
	}
	if r.Value != nil {
		asset.Value = *r.Value
	}
	if r.Volatility != nil {
		asset.Volatility = *r.Volatility
	}
	if r.ExpectedReturn != nil {
		asset.ExpectedReturn = *r.ExpectedReturn
	}
	return asset
}
