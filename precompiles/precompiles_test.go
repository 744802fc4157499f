package precompiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinbogner/besu/common"
)

// generatorPoint is bn254's canonical generator (1, 2): 2^2 = 1^3 + 3.
func generatorPoint() []byte {
	p := make([]byte, 64)
	p[31] = 1
	p[63] = 2
	return p
}

func TestAddresses_GrowPerFork(t *testing.T) {
	assert.Len(t, Frontier.Addresses(), 4)
	assert.Len(t, Byzantium.Addresses(), 8)
	assert.Len(t, Istanbul.Addresses(), 9)
	assert.Len(t, NewCancun().Addresses(), 10)
}

func TestRun_UnwiredAddressReportsNotServed(t *testing.T) {
	_, _, ok, err := Byzantium.Run(ecrecoverAddr, []byte{})
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestRun_Bn256AddNotServedBeforeByzantium(t *testing.T) {
	_, _, ok, err := Frontier.Run(bn256AddAddr, append(generatorPoint(), generatorPoint()...))
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestRun_Bn256AddOnValidPointsSucceeds(t *testing.T) {
	input := append(generatorPoint(), generatorPoint()...)
	out, gas, ok, err := Byzantium.Run(bn256AddAddr, input)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(150), gas)
	assert.Len(t, out, 64)
}

func TestRun_Bn256AddOnInvalidPointFails(t *testing.T) {
	notOnCurve := make([]byte, 128)
	notOnCurve[31] = 1
	notOnCurve[63] = 1 // y^2=1, x^3+3=4: not on curve
	_, _, ok, err := Byzantium.Run(bn256AddAddr, notOnCurve)
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestRun_Bn256ScalarMulOnValidPointSucceeds(t *testing.T) {
	input := append(generatorPoint(), byte(2))
	out, gas, ok, err := Byzantium.Run(bn256ScalarMulAddr, input)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(6000), gas)
	assert.Len(t, out, 64)
}

func TestRun_PointEvaluationNotServedBeforeCancun(t *testing.T) {
	_, _, ok, err := Istanbul.Run(pointEvaluationAddr, make([]byte, 192))
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestRun_PointEvaluationRejectsWrongInputLength(t *testing.T) {
	cancun := NewCancun()
	_, _, ok, err := cancun.Run(pointEvaluationAddr, make([]byte, 10))
	assert.True(t, ok)
	assert.ErrorIs(t, err, errInvalidPointEvaluationInput)
}

func TestNewCancun_ProvidesAKZGContext(t *testing.T) {
	cancun := NewCancun()
	assert.NotNil(t, cancun.kzgCtx)
}

func TestRightPad(t *testing.T) {
	assert.Equal(t, []byte{1, 0, 0}, rightPad([]byte{1}, 3))
	assert.Equal(t, []byte{1, 2}, rightPad([]byte{1, 2, 3}, 2))
}

func TestAddresses_AreDistinctWithinAFork(t *testing.T) {
	seen := map[common.Address]bool{}
	for _, a := range Byzantium.Addresses() {
		assert.False(t, seen[a], "duplicate address in Byzantium registry")
		seen[a] = true
	}
}
