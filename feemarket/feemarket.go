// Package feemarket implements the FeeMarket and GasLimitCalculator rule
// families: the legacy sender-offered-price market, the EIP-1559 base-fee
// market London introduces (and the zero-base-fee variant some private
// networks use instead), and the Cancun variant that adds a second,
// blob-gas price dimension. Grounded in go-ethereum's
// params/protocol_params.go constants (DefaultBaseFeeChangeDenominator,
// DefaultElasticityMultiplier, InitialBaseFee, the EIP-4844 blob constants).
package feemarket

import (
	"github.com/holiman/uint256"

	"github.com/kevinbogner/besu/protocolspec"
)

const (
	BaseFeeChangeDenominator = 8
	ElasticityMultiplier     = 2
	InitialBaseFee           = 1_000_000_000
	GasLimitBoundDivisor     = 1024

	BlobGasPerBlob              = 1 << 17
	MinBlobGasPrice             = 1
	BlobBaseFeeUpdateFraction   = 3338477 // Cancun's target-3-blobs-per-block fraction
	CancunTargetBlobGasPerBlock = 3 * BlobGasPerBlob
)

// Legacy is the pre-London fee market: there is no base fee, every
// transaction pays exactly the price the sender offered.
type Legacy struct{}

func (Legacy) Name() string                                  { return "legacy" }
func (Legacy) NextBaseFee(*protocolspec.Header) *uint256.Int { return nil }
func (Legacy) NextExcessBlobGas(*protocolspec.Header) uint64 { return 0 }

// London is the EIP-1559 base-fee market. If the parent is already
// post-London, the base fee adjusts by up to 1/8th per block toward keeping
// gas usage at the elasticity-scaled target; at the London activation block
// itself there is no EIP-1559 parent to derive from, so the base fee seeds
// from genesis configuration (InitialBaseFee if unset).
type London struct {
	// SeedBaseFee is used only when the parent predates London (i.e. this is
	// the activation block); it is the chain's configured starting base fee.
	SeedBaseFee *uint256.Int
}

func (London) Name() string { return "london" }

func (m London) NextBaseFee(parent *protocolspec.Header) *uint256.Int {
	if parent.BaseFeePerGas == nil {
		if m.SeedBaseFee != nil {
			return m.SeedBaseFee.Clone()
		}
		return uint256.NewInt(InitialBaseFee)
	}
	target := parent.GasLimit / ElasticityMultiplier
	parentBaseFee := parent.BaseFeePerGas

	switch {
	case parent.GasUsed == target:
		return parentBaseFee.Clone()
	case parent.GasUsed > target:
		gasDelta := parent.GasUsed - target
		delta := baseFeeDelta(parentBaseFee, gasDelta, target)
		if delta.IsZero() {
			delta = uint256.NewInt(1)
		}
		return new(uint256.Int).Add(parentBaseFee, delta)
	default:
		gasDelta := target - parent.GasUsed
		delta := baseFeeDelta(parentBaseFee, gasDelta, target)
		if parentBaseFee.Cmp(delta) < 0 {
			return new(uint256.Int) // floor at zero, never negative
		}
		return new(uint256.Int).Sub(parentBaseFee, delta)
	}
}

func baseFeeDelta(baseFee *uint256.Int, gasDelta, target uint64) *uint256.Int {
	if target == 0 {
		return new(uint256.Int)
	}
	d := new(uint256.Int).Mul(baseFee, uint256.NewInt(gasDelta))
	d.Div(d, uint256.NewInt(target))
	d.Div(d, uint256.NewInt(BaseFeeChangeDenominator))
	return d
}

func (London) NextExcessBlobGas(*protocolspec.Header) uint64 { return 0 }

// ZeroBaseFee is London's fee market with the base fee pinned to zero —
// used by private networks that want EIP-1559's accounting shape without
// charging for it (genesis.Options.ZeroBaseFee).
type ZeroBaseFee struct{}

func (ZeroBaseFee) Name() string                                  { return "zero-base-fee" }
func (ZeroBaseFee) NextBaseFee(*protocolspec.Header) *uint256.Int { return new(uint256.Int) }
func (ZeroBaseFee) NextExcessBlobGas(*protocolspec.Header) uint64 { return 0 }

// Cancun extends London's base-fee market with EIP-4844's excess-blob-gas
// accumulator, the input to the blob base fee.
type Cancun struct {
	London London
}

func (Cancun) Name() string { return "cancun" }

func (m Cancun) NextBaseFee(parent *protocolspec.Header) *uint256.Int {
	return m.London.NextBaseFee(parent)
}

func (Cancun) NextExcessBlobGas(parent *protocolspec.Header) uint64 {
	if parent.ExcessBlobGas == nil || parent.BlobGasUsed == nil {
		return 0
	}
	excess := *parent.ExcessBlobGas + *parent.BlobGasUsed
	if excess < CancunTargetBlobGasPerBlock {
		return 0
	}
	return excess - CancunTargetBlobGasPerBlock
}

// GasLimitCalculator bounds how far the next block's gas limit may drift
// from its parent's (GasLimitBoundDivisor), and at the London activation
// block only, doubles the usable elasticity target so miners transitioning
// into EIP-1559 aren't forced to immediately halve effective throughput.
type GasLimitCalculator struct {
	// ElasticityAware enables the London-era doubling-at-activation rule;
	// false for pre-London forks, where the gas limit simply drifts by
	// bound-divisor steps toward whatever the miner/validator desires.
	ElasticityAware bool
}

func (c GasLimitCalculator) Name() string { return "bound-divisor" }

func (c GasLimitCalculator) NextGasLimit(desired, parentGasLimit, parentGasUsed uint64, londonActivationBoundary bool) uint64 {
	bound := parentGasLimit / GasLimitBoundDivisor
	if bound == 0 {
		bound = 1
	}
	min, max := parentGasLimit-bound+1, parentGasLimit+bound-1

	limit := parentGasLimit
	if c.ElasticityAware && londonActivationBoundary {
		// At the activation boundary, parentGasLimit is still pre-London
		// (unelasticized); double it so the post-London target equals the
		// pre-London limit.
		limit = parentGasLimit * ElasticityMultiplier
		min, max = parentGasLimit, limit+bound-1
	}

	if desired == 0 {
		return limit
	}
	switch {
	case desired < min:
		return min
	case desired > max:
		return max
	default:
		return desired
	}
}
