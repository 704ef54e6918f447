package risk

import (
	"fmt"

	"github.com/aegisprime/risk-engine/internal/domain"
)

// Code identifies a validation failure class.
type Code string

const (
	CodeInvalidValue           Code = "InvalidValue"
	CodeInvalidVolatility      Code = "InvalidVolatility"
	CodeInsufficientIterations Code = "InsufficientIterations"
)

// ValidationError reports an input that failed validation for one asset.
// It is scoped to the offending asset: in batch mode a ValidationError
// becomes that asset's entry and never aborts sibling evaluations.
type ValidationError struct {
	Code       Code
	AssetID    string
	AssetIndex int
	Msg        string
}

func (e *ValidationError) Error() string {
	if e.AssetID != "" {
		return fmt.Sprintf("%s: %s", e.AssetID, e.Msg)
	}
	return e.Msg
}

func invalidValue() *ValidationError {
	return &ValidationError{Code: CodeInvalidValue, Msg: "asset value must be positive"}
}

func invalidVolatility() *ValidationError {
	return &ValidationError{Code: CodeInvalidVolatility, Msg: "volatility must be between 0 and 1"}
}

func insufficientIterations() *ValidationError {
	return &ValidationError{
		Code: CodeInsufficientIterations,
		Msg:  fmt.Sprintf("minimum %d iterations required for TEE computation", domain.MinIterations),
	}
}
