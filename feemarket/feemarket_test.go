package feemarket

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/kevinbogner/besu/protocolspec"
)

func TestLegacy_NeverProducesBaseFee(t *testing.T) {
	assert.Nil(t, Legacy{}.NextBaseFee(&protocolspec.Header{}))
	assert.Zero(t, Legacy{}.NextExcessBlobGas(&protocolspec.Header{}))
}

func TestLondon_SeedsInitialBaseFeeAtActivation(t *testing.T) {
	parent := &protocolspec.Header{GasLimit: 30_000_000, GasUsed: 15_000_000}
	got := London{}.NextBaseFee(parent)
	assert.Equal(t, uint256.NewInt(InitialBaseFee), got)
}

func TestLondon_SeedsConfiguredBaseFeeAtActivation(t *testing.T) {
	seed := uint256.NewInt(7_000_000_000)
	parent := &protocolspec.Header{GasLimit: 30_000_000, GasUsed: 15_000_000}
	got := London{SeedBaseFee: seed}.NextBaseFee(parent)
	assert.Equal(t, seed, got)
}

func TestLondon_HoldsSteadyAtTarget(t *testing.T) {
	parent := &protocolspec.Header{
		GasLimit: 30_000_000, GasUsed: 15_000_000,
		BaseFeePerGas: uint256.NewInt(1_000_000_000),
	}
	got := London{}.NextBaseFee(parent)
	assert.Equal(t, parent.BaseFeePerGas, got)
}

func TestLondon_RisesWhenAboveTarget(t *testing.T) {
	parent := &protocolspec.Header{
		GasLimit: 30_000_000, GasUsed: 30_000_000,
		BaseFeePerGas: uint256.NewInt(1_000_000_000),
	}
	got := London{}.NextBaseFee(parent)
	assert.True(t, got.Cmp(parent.BaseFeePerGas) > 0)
}

func TestLondon_FallsWhenBelowTarget(t *testing.T) {
	parent := &protocolspec.Header{
		GasLimit: 30_000_000, GasUsed: 0,
		BaseFeePerGas: uint256.NewInt(1_000_000_000),
	}
	got := London{}.NextBaseFee(parent)
	// target = 15,000,000; gasDelta = 15,000,000; delta = baseFee * gasDelta / target / 8 = baseFee/8.
	assert.Equal(t, uint256.NewInt(875_000_000), got)
}

func TestLondon_NeverGoesNegative(t *testing.T) {
	parent := &protocolspec.Header{
		GasLimit: 30_000_000, GasUsed: 0,
		BaseFeePerGas: uint256.NewInt(1),
	}
	got := London{}.NextBaseFee(parent)
	assert.False(t, got.Sign() < 0)
}

func TestZeroBaseFee_AlwaysZero(t *testing.T) {
	parent := &protocolspec.Header{GasLimit: 30_000_000, GasUsed: 30_000_000, BaseFeePerGas: uint256.NewInt(5)}
	got := ZeroBaseFee{}.NextBaseFee(parent)
	assert.True(t, got.IsZero())
}

func TestCancun_ExcessBlobGasAccumulatesAboveTarget(t *testing.T) {
	excess := uint64(2 * BlobGasPerBlob)
	used := uint64(2 * BlobGasPerBlob)
	parent := &protocolspec.Header{ExcessBlobGas: &excess, BlobGasUsed: &used}

	got := Cancun{}.NextExcessBlobGas(parent)
	want := excess + used - CancunTargetBlobGasPerBlock
	assert.Equal(t, want, got)
}

func TestCancun_ExcessBlobGasFloorsAtZero(t *testing.T) {
	excess := uint64(0)
	used := uint64(BlobGasPerBlob)
	parent := &protocolspec.Header{ExcessBlobGas: &excess, BlobGasUsed: &used}

	got := Cancun{}.NextExcessBlobGas(parent)
	assert.Zero(t, got)
}

func TestCancun_MissingFieldsDefaultToZero(t *testing.T) {
	assert.Zero(t, Cancun{}.NextExcessBlobGas(&protocolspec.Header{}))
}

func TestGasLimitCalculator_PreLondonDriftIsBounded(t *testing.T) {
	c := GasLimitCalculator{}
	got := c.NextGasLimit(100_000_000, 30_000_000, 15_000_000, false)
	bound := uint64(30_000_000) / GasLimitBoundDivisor
	assert.Equal(t, 30_000_000+bound-1, got)
}

func TestGasLimitCalculator_DoublesAtLondonActivation(t *testing.T) {
	c := GasLimitCalculator{ElasticityAware: true}
	got := c.NextGasLimit(0, 30_000_000, 15_000_000, true)
	assert.Equal(t, uint64(60_000_000), got)
}

func TestGasLimitCalculator_NoDoublingAwayFromActivation(t *testing.T) {
	c := GasLimitCalculator{ElasticityAware: true}
	got := c.NextGasLimit(0, 30_000_000, 15_000_000, false)
	assert.Equal(t, uint64(30_000_000), got)
}
