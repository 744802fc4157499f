// Package protocolspec defines the ProtocolSpec value — the fully bound rule
// bundle that governs execution of blocks within one fork, expressed as a
// set of interfaces — and the Builder that assembles bindings into one.
//
// Every interface below is an interface boundary onto an external
// collaborator (the EVM interpreter, the precompile set, the block importer,
// …); this package only names the contract each fork binds, it never
// implements the rule itself except where this subsystem is the natural
// owner (gas calculators, receipt factories, difficulty calculators, fee
// markets, rewards).
package protocolspec

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/kevinbogner/besu/common"
)

// Header is the minimal block-header view every rule in this package reads.
// It is not the wire header type (RLP/SSZ encoding is an external
// collaborator) — just the fields consensus-rule selection and validation
// need.
type Header struct {
	Number          uint64
	Timestamp       uint64
	ParentHash      common.Hash
	Coinbase        common.Address
	Difficulty      *big.Int
	GasLimit        uint64
	GasUsed         uint64
	BaseFeePerGas   *uint256.Int
	MixHash         common.Hash // post-Paris: carries RANDAO instead of the PoW mix digest
	OmmersHash      common.Hash // canonical empty-ommers hash when the block has no uncles
	ExtraData       []byte
	WithdrawalsRoot *common.Hash
	Withdrawals     []Withdrawal // nil pre-Shanghai; the list WithdrawalsRoot commits to
	BlobGasUsed     *uint64
	ExcessBlobGas   *uint64
}

// EmptyOmmersHash is the keccak256 hash of the RLP encoding of an empty
// ommers list — the value Header.OmmersHash carries on any block with no
// uncles (every block, post-Paris).
var EmptyOmmersHash = common.HexToHash("0x1dcc4de8dec75d7aab85b567b6ccd41ad312451b948a7413f0a142fd40d49347")

// GasCalculator prices EVM operations and resource use for one fork.
type GasCalculator interface {
	// Name identifies which fork's gas schedule this is, for diagnostics.
	Name() string
	// Cost returns the gas price of a named operation, given the number of
	// words/bytes/accesses the caller measured (the EVM interpreter is
	// responsible for measuring; this only prices).
	Cost(op string, n uint64) uint64
}

// EVM names the opcode set/interpreter variant a fork activates. The
// interpreter implementation itself is an external collaborator; this is
// only the factory reference this package exposes.
type EVM interface {
	Name() string
	// Opcodes lists every mnemonic opcode this variant accepts, including
	// those inherited from its predecessors (informational; the interpreter
	// owns the real opcode table).
	Opcodes() []string
}

// PrecompileRegistry names the set of precompiled-contract addresses active
// under one fork. Implementations of the precompiles themselves live behind
// this interface; this registry reports which addresses are active and
// executes the ones it has its own executor for.
type PrecompileRegistry interface {
	Name() string
	Addresses() []common.Address
	// Run executes the precompile at addr; ok is false if this registry does
	// not execute addr itself, either because addr is not active under it or
	// because an active addr is left to the caller's own executor.
	Run(addr common.Address, input []byte) (output []byte, gasUsed uint64, ok bool, err error)
}

// MessageCallProcessor executes a CALL-type message against world state.
// The world-state/VM wiring is an external collaborator; this is the
// interface boundary ProtocolSpec exposes to it.
type MessageCallProcessor interface {
	Name() string
	// ForceDeleteWhenEmpty lists the accounts this fork force-deletes
	// whenever they end up empty at the end of a message call, independent
	// of the call's outcome (EIP-161's bug-compatible RIPEMD-160 exception).
	// Nil pre-Spurious-Dragon.
	ForceDeleteWhenEmpty() []common.Address
}

// ContractCreationProcessor governs CREATE/CREATE2 semantics: code-size
// limits, init-code metering, the EIP-3541 0xEF prefix rule, EOF validation.
type ContractCreationProcessor interface {
	Name() string
	// MaxCodeSize is the deployed-code size limit in bytes.
	MaxCodeSize() uint64
	// MaxInitCodeSize is the init-code size limit in bytes (0 = unbounded,
	// pre-Shanghai).
	MaxInitCodeSize() uint64
	// InitialNonce is the nonce a freshly created contract account starts at
	// (0 pre-Spurious-Dragon, 1 from Spurious Dragon onward).
	InitialNonce() uint64
	// ValidateCode applies this fork's static code-validation rules
	// (0xEF-prefix rejection, EOF structure, …) to freshly deployed code.
	ValidateCode(code []byte) error
	// FailOnCodeDepositCost reports whether running out of gas while
	// depositing a freshly created contract's code fails the creation
	// (Homestead onward, EIP-2) rather than silently deploying empty code
	// (Frontier's legacy semantics).
	FailOnCodeDepositCost() bool
}

// TransactionValidator exposes a transaction's fork-gated acceptance rules:
// the accepted transaction types and the init-code size limit. Signature
// checks (low-s, chain-id binding) are not part of this interface.
type TransactionValidator interface {
	Name() string
	AcceptedTypes() []byte
	ValidateInitCodeSize(initCodeLen int) error
}

// TransactionProcessor executes a validated transaction against world
// state and produces a processing result (gas used, logs, success/revert).
// The actual EVM execution is external; this binds only the warm-coinbase
// policy around it (EIP-3651). Coinbase fee pricing and refund caps are not
// part of this interface.
type TransactionProcessor interface {
	Name() string
	WarmCoinbase() bool
}

// PrivateTransactionProcessor is the optional private-transaction execution
// path; the private-transaction subsystem is an external collaborator, so
// this is always nil on the mainnet path built here.
type PrivateTransactionProcessor interface {
	Name() string
}

// BlockHeaderValidator checks header-level consensus rules: the DAO
// extra-data marker, PoW seal validity, merge no-seal/RANDAO rules,
// base-fee presence and arithmetic.
type BlockHeaderValidator interface {
	Name() string
	ValidateHeader(header, parent *Header) error
}

// OmmerHeaderValidator validates uncle/ommer headers (post-Paris every ommer
// is rejected, since PoS blocks have no ommers).
type OmmerHeaderValidator interface {
	Name() string
	ValidateOmmer(ommer, parent *Header) error
}

// BlockBodyValidator validates transactions-root/ommers-hash/withdrawals-root
// consistency between a block's header and its body.
type BlockBodyValidator interface {
	Name() string
}

// BlockProcessor applies a block's transactions (and, where applicable,
// withdrawals) to world state. The DAO Irregular State Processor is a
// BlockProcessor that wraps another one.
type BlockProcessor interface {
	Name() string
	// ProcessBlock mutates updater for the given header, returning the gas
	// used. world-state types are external collaborators; WorldStateUpdater
	// is the minimal contract the DAO irregular-state processor needs.
	ProcessBlock(header *Header, updater WorldStateUpdater) (gasUsed uint64, err error)
}

// BlockValidator validates a fully processed block against its declared
// receipts root, state root, and gas used.
type BlockValidator interface {
	Name() string
}

// BlockImporterFactory constructs the block-import pipeline for a spec; block
// import orchestration itself is an external collaborator.
type BlockImporterFactory interface {
	Name() string
}

// BlockHeaderFunctions computes derived header fields (e.g. the block hash
// algorithm), which can change across forks (e.g. post-merge, mix digest is
// repurposed).
type BlockHeaderFunctions interface {
	Name() string
}

// TransactionReceiptFactory builds a receipt from a processed transaction's
// result. Four concrete variants implement this across forks.
type TransactionReceiptFactory interface {
	Name() string
	Build(in ReceiptInput) Receipt
}

// ReceiptInput is what a receipt factory consumes.
type ReceiptInput struct {
	TxType            byte
	Success           bool
	RevertReason      []byte
	PostStateRoot     common.Hash
	CumulativeGasUsed uint64
	GasUsed           uint64
	Logs              []Log
}

// Log is a minimal event-log record; log filtering/bloom construction is an
// external collaborator, only the fields a receipt needs are modeled here.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

// Receipt is the pure value a TransactionReceiptFactory returns. Exactly one
// of PostState/Status is meaningful, selected by which factory produced it.
type Receipt struct {
	Variant           string
	Type              byte // meaningful only for the typed (Berlin+) variant
	PostState         []byte
	Status            uint64
	CumulativeGasUsed uint64
	GasUsed           uint64
	Logs              []Log
	RevertReason      []byte // non-nil only if the tx reverted and reasons are enabled
}

// DifficultyCalculator computes the next block's difficulty from its parent.
// Constant-zero after Paris (proof-of-stake).
type DifficultyCalculator interface {
	Name() string
	NextDifficulty(timestamp uint64, parent *Header) *big.Int
}

// FeeMarket computes the economics of a block's gas pricing: legacy
// (gas price is whatever the sender offered), EIP-1559 base fee, or the
// Cancun variant that adds a second, blob-gas price dimension.
type FeeMarket interface {
	Name() string
	// NextBaseFee computes the base fee for the block following parent. Nil
	// for the legacy fee market (no base fee exists).
	NextBaseFee(parent *Header) *uint256.Int
	// NextExcessBlobGas computes the Cancun blob-gas price input for the
	// block following parent; zero value for fee markets predating EIP-4844.
	NextExcessBlobGas(parent *Header) uint64
}

// GasLimitCalculator bounds how far the next block's gas limit may drift
// from its parent's, and (London+) how the elasticity multiplier applies
// across the activation boundary.
type GasLimitCalculator interface {
	Name() string
	NextGasLimit(desired, parentGasLimit, parentGasUsed uint64, londonActivationBoundary bool) uint64
}

// BlockReward computes the miner/validator reward for a block (zero from
// Paris onward). Whether zero-valued rewards are skipped is the separate
// ProtocolSpec.SkipZeroBlockRewards flag, not part of this interface.
type BlockReward interface {
	Name() string
	RewardWei() *uint256.Int
}

// MiningBeneficiaryCalculator resolves which account receives the block
// reward and fees — ordinarily the header's coinbase, but pluggable for
// consensus engines with a different beneficiary rule.
type MiningBeneficiaryCalculator interface {
	Beneficiary(header *Header) common.Address
}

// WithdrawalsValidator validates a Shanghai+ block's withdrawals list
// against its header's withdrawals root.
type WithdrawalsValidator interface {
	Name() string
}

// WithdrawalsProcessor credits validator withdrawal balances (Shanghai+).
type WithdrawalsProcessor interface {
	Name() string
	ProcessWithdrawals(updater WorldStateUpdater, withdrawals []Withdrawal) error
}

// Withdrawal is a single EIP-4895 validator balance withdrawal.
type Withdrawal struct {
	Index          uint64
	ValidatorIndex uint64
	Address        common.Address
	AmountGwei     uint64
}

// DepositsValidator validates a block's EIP-6110 validator deposits
// (experimental fork only).
type DepositsValidator interface {
	Name() string
}

// WorldStateUpdater is the minimal mutation surface the DAO Irregular State
// Processor and WithdrawalsProcessor need. The real state/trie
// implementation is an external collaborator; callers pass an adapter.
type WorldStateUpdater interface {
	// GetBalance returns the wei balance of addr (zero if the account does
	// not exist).
	GetBalance(addr common.Address) *uint256.Int
	// SetBalance sets the wei balance of addr, creating the account if
	// necessary.
	SetBalance(addr common.Address, balance *uint256.Int)
	// Commit finalizes accumulated mutations. Implementations backed by a
	// journaled state database use this to flush the current batch before
	// further processing resumes.
	Commit() error
}
