// Package genesis defines the configuration a caller supplies when assembling
// a protocol schedule: which fork activates at which key, the chain id, and
// the handful of per-chain overrides the fork deltas read (contract/stack
// size limits, revert-reason visibility, EVM tuning). Nothing in this
// package touches a file format — config loading is an external
// collaborator; this is the already-parsed shape it hands us.
package genesis

import "math/big"

// ActivationKind says which header field governs a fork's activation key.
// Pre-Paris forks key off the block number; Shanghai and later key off the
// block timestamp; the one-time Paris transition keys off cumulative
// proof-of-work difficulty.
type ActivationKind int

const (
	ActivationByBlockNumber ActivationKind = iota
	ActivationByTimestamp
	ActivationByTotalDifficulty
)

// ForkName identifies one entry in the fork delta registry. Values are
// the canonical lowercase-hyphen names used throughout this module and in
// logs/errors.
type ForkName string

const (
	Frontier              ForkName = "frontier"
	Homestead             ForkName = "homestead"
	DAORecoveryInit       ForkName = "dao-init"
	DAORecoveryTransition ForkName = "dao-transition"
	TangerineWhistle      ForkName = "tangerine"
	SpuriousDragon        ForkName = "spurious-dragon"
	Byzantium             ForkName = "byzantium"
	Constantinople        ForkName = "constantinople"
	Petersburg            ForkName = "petersburg"
	Istanbul              ForkName = "istanbul"
	MuirGlacier           ForkName = "muir-glacier"
	Berlin                ForkName = "berlin"
	London                ForkName = "london"
	ArrowGlacier          ForkName = "arrow-glacier"
	GrayGlacier           ForkName = "gray-glacier"
	Paris                 ForkName = "paris"
	Shanghai              ForkName = "shanghai"
	Cancun                ForkName = "cancun"
	Future                ForkName = "future"
	Experimental          ForkName = "experimental"
)

// Order is the total order forks are declared in; each fork's definition
// invokes its immediate predecessor (the previous entry) before applying its
// own delta. DAORecoveryInit and DAORecoveryTransition are ordinary entries
// in this chain, not a branch — the DAO fork is two adjacent forks, ten
// blocks apart on mainnet (1,920,000 and 1,920,010).
var Order = []ForkName{
	Frontier, Homestead, DAORecoveryInit, DAORecoveryTransition, TangerineWhistle,
	SpuriousDragon, Byzantium, Constantinople, Petersburg, Istanbul, MuirGlacier,
	Berlin, London, ArrowGlacier, GrayGlacier, Paris, Shanghai, Cancun, Future, Experimental,
}

// ActivationKindOf returns the activation-key kind a given fork uses.
func ActivationKindOf(name ForkName) ActivationKind {
	switch name {
	case Paris:
		return ActivationByTotalDifficulty
	case Shanghai, Cancun, Future, Experimental:
		return ActivationByTimestamp
	default:
		return ActivationByBlockNumber
	}
}

// ForkSchedule maps fork name to activation key. A nil entry (fork name
// absent from the map) means that fork never activates on this chain.
type ForkSchedule map[ForkName]uint64

// Options carries the per-chain configuration the fork deltas read while
// building rule bindings. Every field is optional; zero values mean "use
// the fork's default".
type Options struct {
	ChainID *big.Int `json:"chainId"`

	// ContractSizeLimit overrides the default contract code-size limit
	// (Frontier: unbounded; Spurious Dragon+: 24576). Zero means "use the
	// fork default".
	ContractSizeLimit uint64 `json:"contractSizeLimit,omitempty"`
	// StackSizeLimit overrides the EVM operand stack depth limit (default 1024).
	StackSizeLimit int `json:"stackSizeLimit,omitempty"`

	// EnableRevertReason controls whether Byzantium+ receipts carry the
	// REVERT reason string (off by default on mainnet; useful for private
	// networks and debugging).
	EnableRevertReason bool `json:"enableRevertReason,omitempty"`

	// TerminalTotalDifficulty is the cumulative proof-of-work difficulty at
	// which Paris activates. Nil means no header is ever treated as
	// post-merge: the schedule then selects by block number only, so Paris
	// and the timestamp-keyed forks are never selected.
	TerminalTotalDifficulty *big.Int `json:"terminalTotalDifficulty,omitempty"`

	// BaseFeePerGas seeds the London fee market when the genesis block
	// itself is post-London (no parent block to derive a base fee from).
	BaseFeePerGas *big.Int `json:"baseFeePerGas,omitempty"`
	// ZeroBaseFee selects the zero-base-fee London fee-market variant used
	// by some private networks instead of requiring BaseFeePerGas.
	ZeroBaseFee bool `json:"zeroBaseFee,omitempty"`

	// PrivacyMode selects the quorum-compatible block processor/validator
	// variant. Orthogonal to fork selection: it never changes which fork
	// delta applies, only which BlockProcessor/BlockValidator the builder
	// binds.
	PrivacyMode bool `json:"privacyMode,omitempty"`

	// EVMTuning carries interpreter-level knobs consumed by the external
	// EVM factory (e.g. jump-destination cache policy); this registry
	// treats it as an opaque pass-through.
	EVMTuning EVMTuning `json:"evmTuning,omitempty"`
}

// EVMTuning is opaque configuration handed to the external EVM interpreter
// factory; this registry never interprets it.
type EVMTuning struct {
	JumpDestCachePolicy string `json:"jumpDestCachePolicy,omitempty"`
}
