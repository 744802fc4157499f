package schedule

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinbogner/besu/genesis"
	"github.com/kevinbogner/besu/protocolspec"
)

func mainnetSchedule(t *testing.T) *ProtocolSchedule {
	t.Helper()
	fs := genesis.ForkSchedule{
		genesis.Frontier:              0,
		genesis.Homestead:             1150000,
		genesis.DAORecoveryInit:       1920000,
		genesis.DAORecoveryTransition: 1920010,
		genesis.TangerineWhistle:      2463000,
		genesis.SpuriousDragon:        2675000,
		genesis.Byzantium:             4370000,
		genesis.Constantinople:        7280000,
		genesis.Istanbul:              9069000,
		genesis.Berlin:                12244000,
		genesis.London:                12965000,
		genesis.Paris:                 0, // keyed by total difficulty instead
		genesis.Shanghai:              1681338455,
		genesis.Cancun:                1710338135,
	}
	opts := genesis.Options{TerminalTotalDifficulty: big.NewInt(58750000000000000)}
	s, err := New(fs, opts, nil, nil)
	require.NoError(t, err)
	return s
}

func TestByBlockHeader_SelectsGreatestActivationKeyBelowQuery(t *testing.T) {
	s := mainnetSchedule(t)

	spec, err := s.ByBlockHeader(&protocolspec.Header{Number: 4370001}, big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, string(genesis.Byzantium), spec.Name)
}

func TestByBlockHeader_ExactActivationBlockSelectsThatFork(t *testing.T) {
	s := mainnetSchedule(t)

	spec, err := s.ByBlockHeader(&protocolspec.Header{Number: 12965000}, big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, string(genesis.London), spec.Name)
}

func TestNew_RejectsUnknownForkInSchedule(t *testing.T) {
	fs := genesis.ForkSchedule{
		genesis.Frontier:                  0,
		genesis.ForkName("frontier-typo"): 100,
	}
	_, err := New(fs, genesis.Options{}, nil, nil)
	require.Error(t, err)
	var unknown *UnknownFork
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, genesis.ForkName("frontier-typo"), unknown.Name)
}

func TestByBlockHeader_BeforeFirstConfiguredForkReportsNoSpec(t *testing.T) {
	fs := genesis.ForkSchedule{genesis.Byzantium: 4370000}
	s, err := New(fs, genesis.Options{}, nil, nil)
	require.NoError(t, err)

	_, err = s.ByBlockHeader(&protocolspec.Header{Number: 100}, nil)
	require.Error(t, err)
	var notFound *NoSpecAtHeight
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint64(100), notFound.Height)
}

func TestByBlockHeader_PostMergeSelectsByTimestamp(t *testing.T) {
	s := mainnetSchedule(t)
	ttd := big.NewInt(58750000000000000)

	spec, err := s.ByBlockHeader(&protocolspec.Header{Number: 17000000, Timestamp: 1680000000}, ttd)
	require.NoError(t, err)
	assert.Equal(t, string(genesis.Paris), spec.Name)
}

func TestByBlockHeader_PostMergeAdvancesToShanghaiAtItsTimestamp(t *testing.T) {
	s := mainnetSchedule(t)
	ttd := big.NewInt(58750000000000000)

	spec, err := s.ByBlockHeader(&protocolspec.Header{Number: 21000000, Timestamp: 1681338455}, ttd)
	require.NoError(t, err)
	assert.Equal(t, string(genesis.Shanghai), spec.Name)
}

func TestByBlockHeader_PostMergeAdvancesToCancunAtItsTimestamp(t *testing.T) {
	s := mainnetSchedule(t)
	ttd := big.NewInt(58750000000000000)

	spec, err := s.ByBlockHeader(&protocolspec.Header{Number: 22000000, Timestamp: 1710338135}, ttd)
	require.NoError(t, err)
	assert.Equal(t, string(genesis.Cancun), spec.Name)
}

func TestByBlockHeader_DAOForkRangeSelectsInitSpecAndRequiresMarker(t *testing.T) {
	s := mainnetSchedule(t)

	// Every header in [1920000, 1920010) resolves to the dao-init spec,
	// since dao-transition's key (1920010) is strictly greater.
	spec, err := s.ByBlockHeader(&protocolspec.Header{Number: 1920005}, big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, string(genesis.DAORecoveryInit), spec.Name)

	parent := &protocolspec.Header{Number: 1920004}
	missingMarker := &protocolspec.Header{Number: 1920005}
	assert.Error(t, spec.BlockHeaderValidator.ValidateHeader(missingMarker, parent))

	withMarker := &protocolspec.Header{Number: 1920005, ExtraData: []byte("dao-hard-fork")}
	assert.NoError(t, spec.BlockHeaderValidator.ValidateHeader(withMarker, parent))
}

func TestByBlockHeader_DAOForkTransitionSpecDoesNotRequireMarker(t *testing.T) {
	s := mainnetSchedule(t)

	spec, err := s.ByBlockHeader(&protocolspec.Header{Number: 1920010}, big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, string(genesis.DAORecoveryTransition), spec.Name)

	parent := &protocolspec.Header{Number: 1920009}
	noMarker := &protocolspec.Header{Number: 1920010}
	assert.NoError(t, spec.BlockHeaderValidator.ValidateHeader(noMarker, parent))
}

func TestByBlockHeader_BelowTerminalDifficultyStaysPreMerge(t *testing.T) {
	s := mainnetSchedule(t)
	belowTTD := big.NewInt(1000)

	spec, err := s.ByBlockHeader(&protocolspec.Header{Number: 15000000}, belowTTD)
	require.NoError(t, err)
	assert.Equal(t, string(genesis.London), spec.Name)
}
