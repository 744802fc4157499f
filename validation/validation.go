// Package validation implements the TransactionValidator,
// ContractCreationProcessor, BlockHeaderValidator, OmmerHeaderValidator,
// and BlockBodyValidator/BlockValidator rule families. Grounded in
// go-ethereum's core/block_validator.go header-validation shape (parent-linkage,
// gas-limit-drift, difficulty checks) and params/config.go's per-era
// acceptance gates, generalized across forks.
package validation

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/kevinbogner/besu/protocolspec"
	"github.com/kevinbogner/besu/protoparams"
)

// Transaction types, per EIP-2718.
const (
	TxTypeLegacy     = byte(0x00)
	TxTypeAccessList = byte(0x01)
	TxTypeDynamicFee = byte(0x02)
	TxTypeBlob       = byte(0x03)
)

var (
	errInitCodeTooLarge  = errors.New("validation: init code exceeds the per-fork size limit")
	errMissingParent     = errors.New("validation: header does not chain from parent")
	errBadDAOExtraData   = errors.New("validation: block within the DAO fork range carries the wrong extraData marker")
	errOmmersNotAllowed  = errors.New("validation: block carries an ommer after the merge")
	errMissingBaseFee    = errors.New("validation: London+ header must carry a base fee")
	errUnexpectedBaseFee = errors.New("validation: pre-London header must not carry a base fee")
	errEFPrefix          = errors.New("validation: deployed code begins with the reserved 0xEF byte (EIP-3541)")
)

// TransactionValidator is the static, fork-gated transaction acceptance
// rule: which EIP-2718 types are legal, and (Shanghai+) how large init code
// may be (EIP-3860).
type TransactionValidator struct {
	name            string
	acceptedTypes   []byte
	maxInitCodeSize int // 0 = unbounded
	requireChainID  bool
}

func (v TransactionValidator) Name() string          { return v.name }
func (v TransactionValidator) AcceptedTypes() []byte { return v.acceptedTypes }

func (v TransactionValidator) ValidateInitCodeSize(initCodeLen int) error {
	if v.maxInitCodeSize > 0 && initCodeLen > v.maxInitCodeSize {
		return errInitCodeTooLarge
	}
	return nil
}

var (
	// FrontierTx accepts only legacy transactions; EIP-155 chain-id
	// binding does not exist yet, so replay protection is absent.
	FrontierTx = TransactionValidator{name: "Frontier", acceptedTypes: []byte{TxTypeLegacy}}

	// SpuriousDragonTx adds EIP-155: legacy transactions may now bind a
	// chain ID in their signature's v value.
	SpuriousDragonTx = TransactionValidator{name: "Spurious Dragon", acceptedTypes: []byte{TxTypeLegacy}, requireChainID: true}

	// BerlinTx adds the EIP-2930 access-list transaction type.
	BerlinTx = TransactionValidator{name: "Berlin", acceptedTypes: []byte{TxTypeLegacy, TxTypeAccessList}, requireChainID: true}

	// LondonTx adds the EIP-1559 dynamic-fee transaction type.
	LondonTx = TransactionValidator{name: "London", acceptedTypes: []byte{TxTypeLegacy, TxTypeAccessList, TxTypeDynamicFee}, requireChainID: true}

	// ShanghaiTx enforces EIP-3860's init-code size cap on top of
	// London's accepted types.
	ShanghaiTx = TransactionValidator{
		name: "Shanghai", acceptedTypes: []byte{TxTypeLegacy, TxTypeAccessList, TxTypeDynamicFee},
		requireChainID: true, maxInitCodeSize: protoparams.ShanghaiInitCodeSizeLimit,
	}

	// CancunTx adds the EIP-4844 blob transaction type.
	CancunTx = TransactionValidator{
		name: "Cancun", acceptedTypes: []byte{TxTypeLegacy, TxTypeAccessList, TxTypeDynamicFee, TxTypeBlob},
		requireChainID: true, maxInitCodeSize: protoparams.ShanghaiInitCodeSizeLimit,
	}
)

// ContractCreation is the CREATE/CREATE2 rule family: code-size limits,
// the starting nonce of a freshly created account, and static code
// validation (the EIP-3541 0xEF prefix ban; EOF structural validation is a
// later, experimental addition this models as a no-op pass-through).
type ContractCreation struct {
	name            string
	maxCodeSize     uint64
	maxInitCodeSize uint64
	initialNonce    uint64
	rejectEFPrefix  bool

	// failOnCodeDepositCost is Homestead's flip of Frontier's legacy
	// behavior (EIP-2): when the creating transaction runs out of gas
	// during the code-deposit step, Frontier still deploys the (now empty)
	// contract, while Homestead onward fails the creation outright.
	failOnCodeDepositCost bool
}

func (c ContractCreation) Name() string            { return c.name }
func (c ContractCreation) MaxCodeSize() uint64     { return c.maxCodeSize }
func (c ContractCreation) MaxInitCodeSize() uint64 { return c.maxInitCodeSize }
func (c ContractCreation) InitialNonce() uint64    { return c.initialNonce }

// FailOnCodeDepositCost reports whether running out of gas during the
// code-deposit step fails the contract creation (Homestead onward) rather
// than silently deploying empty code (Frontier's legacy semantics).
func (c ContractCreation) FailOnCodeDepositCost() bool { return c.failOnCodeDepositCost }

func (c ContractCreation) ValidateCode(code []byte) error {
	if c.rejectEFPrefix && len(code) > 0 && code[0] == 0xEF {
		return errEFPrefix
	}
	return nil
}

// WithMaxCodeSize returns a copy of c with its deployed-code size limit
// replaced by limit (genesis.Options.ContractSizeLimit).
func (c ContractCreation) WithMaxCodeSize(limit uint64) ContractCreation {
	c.maxCodeSize = limit
	return c
}

var (
	// FrontierCreate: no code-size limit, freshly created accounts start
	// at nonce 0, and running out of gas during the code-deposit step
	// deploys empty code rather than failing the creation (legacy
	// semantics, reverted at Homestead).
	FrontierCreate = ContractCreation{name: "Frontier", maxCodeSize: protoparams.FrontierContractSizeLimit, initialNonce: 0}

	// HomesteadCreate enables EIP-2's code-deposit-cost failure: a creation
	// that runs out of gas depositing its code now fails outright.
	HomesteadCreate = ContractCreation{name: "Homestead", maxCodeSize: protoparams.FrontierContractSizeLimit, initialNonce: 0, failOnCodeDepositCost: true}

	// SpuriousDragonCreate introduces EIP-170's 24KB code-size cap and
	// EIP-161's nonce-starts-at-1 rule.
	SpuriousDragonCreate = ContractCreation{name: "Spurious Dragon", maxCodeSize: protoparams.SpuriousDragonContractSizeLimit, initialNonce: 1, failOnCodeDepositCost: true}

	// LondonCreate adds EIP-3541: deployed code beginning with 0xEF is
	// rejected, reserving the byte for a future container format.
	LondonCreate = ContractCreation{name: "London", maxCodeSize: protoparams.SpuriousDragonContractSizeLimit, initialNonce: 1, rejectEFPrefix: true, failOnCodeDepositCost: true}

	// ShanghaiCreate adds EIP-3860's init-code size cap.
	ShanghaiCreate = ContractCreation{
		name: "Shanghai", maxCodeSize: protoparams.SpuriousDragonContractSizeLimit,
		maxInitCodeSize: protoparams.ShanghaiInitCodeSizeLimit, initialNonce: 1, rejectEFPrefix: true, failOnCodeDepositCost: true,
	}
)

// BlockHeader validates header-level consensus rules: parent linkage, the
// DAO fork's extraData marker, base-fee presence/absence at the London
// boundary. Parent-hash linkage against the real wire encoding is checked
// by the caller's block importer; this validator only owns the fields
// this package owns.
type BlockHeader struct {
	name string

	// daoForkBlock is non-zero for the one fork whose header range (the
	// fork block and the nine following it) must carry
	// protoparams.DAOChildDAOExtraData.
	daoForkBlock uint64

	requireBaseFee bool
	forbidBaseFee  bool
}

func (v BlockHeader) Name() string { return v.name }

func (v BlockHeader) ValidateHeader(header, parent *protocolspec.Header) error {
	if header.Number != parent.Number+1 {
		return errMissingParent
	}
	if v.daoForkBlock != 0 && header.Number >= v.daoForkBlock && header.Number < v.daoForkBlock+10 {
		if !bytes.Equal(header.ExtraData, protoparams.DAOChildDAOExtraData) {
			return errBadDAOExtraData
		}
	}
	if v.requireBaseFee && header.BaseFeePerGas == nil {
		return errMissingBaseFee
	}
	if v.forbidBaseFee && header.BaseFeePerGas != nil {
		return errUnexpectedBaseFee
	}
	return nil
}

// FrontierHeader is the pre-London header validator: no base fee field
// permitted.
var FrontierHeader = BlockHeader{name: "Frontier", forbidBaseFee: true}

// DAORecoveryTransitionHeader builds the one header validator that enforces
// the DAO extraData marker, for the ten blocks starting at forkBlock.
func DAORecoveryTransitionHeader(forkBlock uint64) BlockHeader {
	return BlockHeader{name: "DAO Recovery Transition", daoForkBlock: forkBlock, forbidBaseFee: true}
}

// LondonHeader requires every header to carry a base fee.
var LondonHeader = BlockHeader{name: "London", requireBaseFee: true}

// OmmerHeader validates uncle headers. Post-Paris, proof-of-stake blocks
// have no ommers at all, so Paris's validator rejects any non-empty ommer
// list outright instead of validating individual headers.
type OmmerHeader struct {
	name         string
	forbidOmmers bool
}

func (v OmmerHeader) Name() string { return v.name }

func (v OmmerHeader) ValidateOmmer(ommer, parent *protocolspec.Header) error {
	if v.forbidOmmers {
		return errOmmersNotAllowed
	}
	return nil
}

var (
	PreMergeOmmer = OmmerHeader{name: "pre-merge"}
	ParisOmmer    = OmmerHeader{name: "Paris", forbidOmmers: true}
)

// BlockBody validates that a block's transactions/ommers/withdrawals are
// consistent with the roots its header declares. Root computation itself
// (trie hashing) is an external collaborator; this names the rule.
type BlockBody struct {
	name              string
	expectWithdrawals bool
}

func (v BlockBody) Name() string { return v.name }

var (
	PreShanghaiBody = BlockBody{name: "pre-Shanghai"}
	ShanghaiBody    = BlockBody{name: "Shanghai", expectWithdrawals: true}
)

// Block validates a fully processed block's declared receipts root, state
// root and gas-used against what was actually computed. Root computation is
// an external collaborator; the BlockValidator rule family has no
// per-fork behavioral delta, so one shared value serves every fork.
type Block struct {
	name string
}

func (v Block) Name() string { return v.name }

var Default = Block{name: "default"}

// Private is PrivacyMode's block validator: named distinctly so a
// quorum-compatible chain's validated blocks are identifiable in
// diagnostics. Private-transaction-specific checks live in the external
// private-transaction subsystem; the check performed here is identical to
// Default.
var Private = Block{name: "private"}
