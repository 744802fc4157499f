package protocolspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinbogner/besu/genesis"
)

type stubGasCalculator struct{}

func (stubGasCalculator) Name() string                    { return "stub" }
func (stubGasCalculator) Cost(op string, n uint64) uint64 { return n }

func TestBuilder_IncompleteSpecReportsFirstMissingField(t *testing.T) {
	b := NewBuilder("stub")
	b.SetGasCalculator(stubGasCalculator{})

	_, err := b.Build(genesis.Options{})
	require.Error(t, err)

	var incomplete *IncompleteSpec
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "GasLimitCalculator", incomplete.Field)
}

func TestBuilder_NegativeStackSizeRejected(t *testing.T) {
	b := NewBuilder("stub")
	_, err := b.Build(genesis.Options{StackSizeLimit: -1})
	require.Error(t, err)

	var invalid *InvalidConfig
	require.ErrorAs(t, err, &invalid)
}

func TestBuilder_CloneIsIndependent(t *testing.T) {
	base := NewBuilder("base")
	base.SetGasCalculator(stubGasCalculator{})

	clone := base.Clone("clone")
	clone.SetGasCalculator(stubGasCalculator{})

	assert.Equal(t, "base", base.Name())
	assert.Equal(t, "clone", clone.Name())
}

func TestBuilder_ResolveBlockProcessorResolvesFactoryOnce(t *testing.T) {
	b := NewBuilder("stub")
	calls := 0
	b.SetBlockProcessorFunc(func(*Builder) BlockProcessor {
		calls++
		return fakeBlockProcessor{}
	})

	first := b.ResolveBlockProcessor()
	second := b.ResolveBlockProcessor()

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

type fakeBlockProcessor struct{}

func (fakeBlockProcessor) Name() string { return "fake" }
func (fakeBlockProcessor) ProcessBlock(*Header, WorldStateUpdater) (uint64, error) {
	return 0, nil
}
