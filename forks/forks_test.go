package forks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinbogner/besu/daofork"
	"github.com/kevinbogner/besu/execution"
	"github.com/kevinbogner/besu/genesis"
	"github.com/kevinbogner/besu/validation"
)

func TestBuildAll_ProducesACompleteSpecForEveryFork(t *testing.T) {
	specs, err := BuildAll(genesis.Options{}, nil, nil)
	require.NoError(t, err)

	for _, name := range genesis.Order {
		spec, ok := specs[name]
		require.Truef(t, ok, "missing spec for fork %s", name)
		assert.NotNil(t, spec.GasCalculator, "fork %s", name)
		assert.NotNil(t, spec.EVM, "fork %s", name)
		assert.NotNil(t, spec.PrecompileRegistry, "fork %s", name)
		assert.NotNil(t, spec.DifficultyCalculator, "fork %s", name)
		assert.NotNil(t, spec.FeeMarket, "fork %s", name)
	}
}

func TestBuildAll_DAOForkWrapsThenUnwrapsBlockProcessor(t *testing.T) {
	specs, err := BuildAll(genesis.Options{}, nil, nil)
	require.NoError(t, err)

	initSpec := specs[genesis.DAORecoveryInit]
	_, ok := initSpec.BlockProcessor.(*daofork.Processor)
	assert.True(t, ok, "DAO fork block must wrap the block processor")

	transitionSpec := specs[genesis.DAORecoveryTransition]
	_, stillWrapped := transitionSpec.BlockProcessor.(*daofork.Processor)
	assert.False(t, stillWrapped, "post-DAO-fork blocks must not repeat the drain")
}

func TestBuildAll_ParisEntersProofOfStake(t *testing.T) {
	specs, err := BuildAll(genesis.Options{}, nil, nil)
	require.NoError(t, err)
	assert.True(t, specs[genesis.Paris].IsProofOfStake)
	assert.False(t, specs[genesis.Frontier].IsProofOfStake)
}

func TestBuildAll_ShanghaiWiresWithdrawals(t *testing.T) {
	specs, err := BuildAll(genesis.Options{}, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, specs[genesis.Shanghai].WithdrawalsValidator)
	assert.NotNil(t, specs[genesis.Shanghai].WithdrawalsProcessor)
	assert.Nil(t, specs[genesis.London].WithdrawalsValidator)
}

func TestBuildAll_PrivacyModeRewiresProcessorAndValidator(t *testing.T) {
	specs, err := BuildAll(genesis.Options{PrivacyMode: true}, nil, nil)
	require.NoError(t, err)

	spec := specs[genesis.Berlin]
	assert.Equal(t, execution.Quorum, spec.PrivateTransactionProcessor)
	assert.Equal(t, validation.Private, spec.BlockValidator)
}

func TestBuildAll_ContractSizeLimitOverridePropagates(t *testing.T) {
	specs, err := BuildAll(genesis.Options{ContractSizeLimit: 1000}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), specs[genesis.London].ContractCreationProcessor.MaxCodeSize())
}
