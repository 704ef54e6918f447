// Package calldata encodes risk results for the on-chain callback.
package calldata

import (
	"fmt"
	"math/big"

	"github.com/aegisprime/risk-engine/internal/domain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// score mirrors the BulkScoreData tuple of
// submitBulkRiskScores(address owner, BulkScoreData[] scores, bytes32 teeTaskId, uint256 iterations).
type score struct {
	AssetId    [32]byte
	Var95Bps   *big.Int
	SafeLtvBps *big.Int
}

// Encode builds the ABI-encoded calldata arguments for the risk-score
// callback. Failed assets are skipped; asset ids are keccak-hashed to
// bytes32 the same way the contract derives its keys.
func Encode(results []domain.RiskResult, owner, taskID string, iterations int) ([]byte, error) {
	if !common.IsHexAddress(owner) {
		return nil, fmt.Errorf("invalid owner address: %q", owner)
	}

	scores := make([]score, 0, len(results))
	for _, r := range results {
		scores = append(scores, score{
			AssetId:    [32]byte(crypto.Keccak256Hash([]byte(r.AssetID))),
			Var95Bps:   big.NewInt(int64(r.Var95Bps)),
			SafeLtvBps: big.NewInt(int64(r.SafeLtvBps)),
		})
	}

	args, err := arguments()
	if err != nil {
		return nil, err
	}

	packed, err := args.Pack(
		common.HexToAddress(owner),
		scores,
		common.HexToHash(taskID),
		big.NewInt(int64(iterations)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to pack callback data: %w", err)
	}
	return packed, nil
}

func arguments() (abi.Arguments, error) {
	addressType, err := abi.NewType("address", "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build address type: %w", err)
	}
	scoresType, err := abi.NewType("tuple[]", "", []abi.ArgumentMarshaling{
		{Name: "assetId", Type: "bytes32"},
		{Name: "var95Bps", Type: "uint256"},
		{Name: "safeLtvBps", Type: "uint256"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build scores type: %w", err)
	}
	bytes32Type, err := abi.NewType("bytes32", "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build bytes32 type: %w", err)
	}
	uint256Type, err := abi.NewType("uint256", "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build uint256 type: %w", err)
	}

	return abi.Arguments{
		{Type: addressType},
		{Type: scoresType},
		{Type: bytes32Type},
		{Type: uint256Type},
	}, nil
}
