// Package execution implements the remaining rule families that bind an
// interface boundary without owning complex per-fork formulas: message-call
// and transaction processing, block import/header-function naming,
// withdrawals (EIP-4895) and deposits (EIP-6110, experimental). The actual
// EVM execution, trie commitment, and block-import orchestration are
// external collaborators; these types are the minimal,
// named bindings the builder needs to satisfy ProtocolSpec's required
// fields. Grounded in go-ethereum's core/state_processor.go shape: one
// block processor walks transactions in order, applies withdrawals last.
package execution

import (
	"github.com/holiman/uint256"

	"github.com/kevinbogner/besu/common"
	"github.com/kevinbogner/besu/protoparams"
	"github.com/kevinbogner/besu/protocolspec"
)

// MessageCallProcessor names the CALL-execution binding. Most per-fork
// behavioral differences are expressed through evmset.Set and
// gascost.table instead; the one piece of real rule state this type does
// own is the post-Spurious-Dragon force-delete-when-empty set (EIP-161): the
// accounts that are force-deleted whenever they end up empty at the end of
// a message call, regardless of whether the call itself succeeded — a known,
// permanent consensus bug (RIPEMD-160's precompile account) that must be
// reproduced bit-for-bit rather than "fixed".
type MessageCallProcessor struct {
	name               string
	forceDeleteWhenEmpty []common.Address
}

func (p MessageCallProcessor) Name() string { return p.name }

// ForceDeleteWhenEmpty lists the accounts this fork force-deletes whenever
// they end up empty at the end of a message call, independent of the call's
// outcome. Nil pre-Spurious-Dragon, where no such set exists.
func (p MessageCallProcessor) ForceDeleteWhenEmpty() []common.Address { return p.forceDeleteWhenEmpty }

var Default = MessageCallProcessor{name: "default"}

// SpuriousDragon additionally force-deletes protoparams.ForceDeleteWhenEmpty
// (the RIPEMD-160 precompile) whenever it ends up empty, regardless of
// whether the triggering call succeeded (EIP-161's state-clearing rule,
// applied bug-compatibly to the one account every transaction touches
// unconditionally).
var SpuriousDragon = MessageCallProcessor{name: "spurious-dragon", forceDeleteWhenEmpty: protoparams.ForceDeleteWhenEmpty}

// TransactionProcessor binds the fee/refund/coinbase policy around
// transaction execution: whether the coinbase account is pre-warmed into
// the access list (EIP-3651, Shanghai+), which changes its gas cost on
// first touch within a block.
type TransactionProcessor struct {
	name         string
	warmCoinbase bool
}

func (p TransactionProcessor) Name() string       { return p.name }
func (p TransactionProcessor) WarmCoinbase() bool { return p.warmCoinbase }

var (
	Legacy       = TransactionProcessor{name: "legacy"}
	ShanghaiProc = TransactionProcessor{name: "shanghai", warmCoinbase: true}
)

// BlockProcessor is the mainline block processor: every fork's
// ProtocolSpec binds one (the DAO-affected height wraps it in
// daofork.Processor instead). Actual transaction execution against world
// state happens through the externally-wired EVM and state database; this
// type is the named interface boundary every fork must
// bind, plus the one piece of real logic this layer owns — crediting
// Shanghai+ withdrawals after transaction execution completes.
type BlockProcessor struct {
	name        string
	withdrawals protocolspec.WithdrawalsProcessor // nil pre-Shanghai
}

func NewBlockProcessor(name string, withdrawals protocolspec.WithdrawalsProcessor) *BlockProcessor {
	return &BlockProcessor{name: name, withdrawals: withdrawals}
}

func (p *BlockProcessor) Name() string { return p.name }

// WithPrivacy returns a processor named distinctly for a quorum-compatible
// (genesis.Options.PrivacyMode) chain. Private-transaction execution itself
// happens through the externally-wired PrivateTransactionProcessor; this
// layer never inspects transaction contents, so the behavior here is
// unchanged, only the name differs for diagnostics.
func (p *BlockProcessor) WithPrivacy() *BlockProcessor {
	return &BlockProcessor{name: p.name + ":quorum", withdrawals: p.withdrawals}
}

// ProcessBlock applies this block's withdrawals, if any are configured for
// this fork. Transaction execution itself is the caller's responsibility
// (the externally-wired EVM updates updater directly); by the time
// ProcessBlock runs, only the withdrawals step — which this registry does
// own as Shanghai's delta — remains.
func (p *BlockProcessor) ProcessBlock(header *protocolspec.Header, updater protocolspec.WorldStateUpdater) (uint64, error) {
	if p.withdrawals == nil {
		return header.GasUsed, nil
	}
	if err := p.withdrawals.ProcessWithdrawals(updater, header.Withdrawals); err != nil {
		return 0, err
	}
	return header.GasUsed, nil
}

// BlockImporterFactory names the block-import pipeline variant; pipeline
// orchestration itself is an external collaborator.
type BlockImporterFactory struct{ name string }

func (f BlockImporterFactory) Name() string { return f.name }

var DefaultImporter = BlockImporterFactory{name: "default"}

// BlockHeaderFunctions names the derived-header-field variant; post-Paris
// the mix-digest field is repurposed to carry RANDAO instead of a PoW
// mix hash, which changes how a header hash's auxiliary fields are
// interpreted but not the hash algorithm itself.
type BlockHeaderFunctions struct{ name string }

func (f BlockHeaderFunctions) Name() string { return f.name }

var (
	PreMergeHeaderFunctions = BlockHeaderFunctions{name: "pow-mix-digest"}
	ParisHeaderFunctions    = BlockHeaderFunctions{name: "randao-mix-digest"}
)

// WithdrawalsValidator checks a Shanghai+ block's withdrawals list against
// its header's withdrawals root. Root computation is an external
// collaborator; this names the rule.
type WithdrawalsValidator struct{ name string }

func (v WithdrawalsValidator) Name() string { return v.name }

var Shanghai = WithdrawalsValidator{name: "shanghai"}

// WithdrawalsProcessorImpl credits each withdrawal's amount, converted from
// gwei to wei, to its target account.
type WithdrawalsProcessorImpl struct{ name string }

func (p WithdrawalsProcessorImpl) Name() string { return p.name }

const weiPerGwei = 1_000_000_000

func (p WithdrawalsProcessorImpl) ProcessWithdrawals(updater protocolspec.WorldStateUpdater, withdrawals []protocolspec.Withdrawal) error {
	for _, w := range withdrawals {
		amountWei := new(uint256.Int).Mul(uint256.NewInt(w.AmountGwei), uint256.NewInt(weiPerGwei))
		balance := updater.GetBalance(w.Address)
		updater.SetBalance(w.Address, new(uint256.Int).Add(balance, amountWei))
	}
	return updater.Commit()
}

var ShanghaiWithdrawals = WithdrawalsProcessorImpl{name: "shanghai"}

// PrivateTransactionProcessor is the quorum-compatible private-transaction
// execution path bound when genesis.Options.PrivacyMode is set. The
// private-transaction subsystem itself — transaction manager lookups,
// private-state isolation — is an external collaborator; this is only the
// named interface boundary.
type PrivateTransactionProcessor struct{ name string }

func (p PrivateTransactionProcessor) Name() string { return p.name }

var Quorum = PrivateTransactionProcessor{name: "quorum-private-tx-processor"}

// DepositsValidator checks a block's EIP-6110 validator deposit list
// (experimental fork only); deposit-contract log parsing is an external
// collaborator.
type DepositsValidator struct{ name string }

func (v DepositsValidator) Name() string { return v.name }

var Experimental = DepositsValidator{name: "experimental"}
