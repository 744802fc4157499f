package validation

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/kevinbogner/besu/protocolspec"
	"github.com/kevinbogner/besu/protoparams"
)

func TestTransactionValidator_AcceptedTypesGrowMonotonically(t *testing.T) {
	assert.Equal(t, []byte{TxTypeLegacy}, FrontierTx.AcceptedTypes())
	assert.Contains(t, BerlinTx.AcceptedTypes(), byte(TxTypeAccessList))
	assert.Contains(t, LondonTx.AcceptedTypes(), byte(TxTypeDynamicFee))
	assert.Contains(t, CancunTx.AcceptedTypes(), byte(TxTypeBlob))
	assert.NotContains(t, LondonTx.AcceptedTypes(), byte(TxTypeBlob))
}

func TestTransactionValidator_InitCodeSizeUnboundedBeforeShanghai(t *testing.T) {
	assert.NoError(t, LondonTx.ValidateInitCodeSize(1<<20))
}

func TestTransactionValidator_InitCodeSizeEnforcedFromShanghai(t *testing.T) {
	assert.NoError(t, ShanghaiTx.ValidateInitCodeSize(protoparams.ShanghaiInitCodeSizeLimit))
	assert.Error(t, ShanghaiTx.ValidateInitCodeSize(protoparams.ShanghaiInitCodeSizeLimit+1))
}

func TestContractCreation_NonceProgression(t *testing.T) {
	assert.Equal(t, uint64(0), FrontierCreate.InitialNonce())
	assert.Equal(t, uint64(1), SpuriousDragonCreate.InitialNonce())
}

func TestContractCreation_CodeSizeCapIntroducedAtSpuriousDragon(t *testing.T) {
	assert.Equal(t, uint64(protoparams.SpuriousDragonContractSizeLimit), SpuriousDragonCreate.MaxCodeSize())
}

func TestContractCreation_RejectsEFPrefixFromLondon(t *testing.T) {
	assert.NoError(t, SpuriousDragonCreate.ValidateCode([]byte{0xEF, 0x01}))
	assert.Error(t, LondonCreate.ValidateCode([]byte{0xEF, 0x01}))
	assert.NoError(t, LondonCreate.ValidateCode([]byte{0x60, 0x01}))
}

func TestContractCreation_WithMaxCodeSizeReturnsIndependentCopy(t *testing.T) {
	overridden := SpuriousDragonCreate.WithMaxCodeSize(1000)
	assert.Equal(t, uint64(1000), overridden.MaxCodeSize())
	assert.Equal(t, uint64(protoparams.SpuriousDragonContractSizeLimit), SpuriousDragonCreate.MaxCodeSize())
}

func TestBlockHeader_RejectsNonSequentialParent(t *testing.T) {
	parent := &protocolspec.Header{Number: 10}
	header := &protocolspec.Header{Number: 12}
	assert.ErrorIs(t, FrontierHeader.ValidateHeader(header, parent), errMissingParent)
}

func TestBlockHeader_ForbidsBaseFeePreLondon(t *testing.T) {
	parent := &protocolspec.Header{Number: 10}
	header := &protocolspec.Header{Number: 11, BaseFeePerGas: uint256.NewInt(1)}
	assert.ErrorIs(t, FrontierHeader.ValidateHeader(header, parent), errUnexpectedBaseFee)
}

func TestBlockHeader_RequiresBaseFeeFromLondon(t *testing.T) {
	parent := &protocolspec.Header{Number: 10}
	header := &protocolspec.Header{Number: 11}
	assert.ErrorIs(t, LondonHeader.ValidateHeader(header, parent), errMissingBaseFee)
}

func TestBlockHeader_DAOWindowRequiresMarker(t *testing.T) {
	v := DAORecoveryTransitionHeader(1920000)
	parent := &protocolspec.Header{Number: 1920000}
	header := &protocolspec.Header{Number: 1920001}
	assert.ErrorIs(t, v.ValidateHeader(header, parent), errBadDAOExtraData)

	header.ExtraData = protoparams.DAOChildDAOExtraData
	assert.NoError(t, v.ValidateHeader(header, parent))
}

func TestBlockHeader_DAOWindowDoesNotApplyOutsideRange(t *testing.T) {
	v := DAORecoveryTransitionHeader(1920000)
	parent := &protocolspec.Header{Number: 1920010}
	header := &protocolspec.Header{Number: 1920011}
	assert.NoError(t, v.ValidateHeader(header, parent))
}

func TestOmmerHeader_ParisForbidsOmmers(t *testing.T) {
	assert.NoError(t, PreMergeOmmer.ValidateOmmer(&protocolspec.Header{}, &protocolspec.Header{}))
	assert.ErrorIs(t, ParisOmmer.ValidateOmmer(&protocolspec.Header{}, &protocolspec.Header{}), errOmmersNotAllowed)
}
