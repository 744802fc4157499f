// Package forks implements the fork delta registry: one definition per
// fork name in genesis.Order, each built by taking its immediate
// predecessor's Builder and applying only its own delta.
// Grounded in go-ethereum's params/config.go layering (each successive
// fork's ChainConfig embeds and extends the previous fork's activation
// block), generalized into an explicit builder chain.
package forks

import (
	"github.com/holiman/uint256"

	"github.com/kevinbogner/besu/daofork"
	"github.com/kevinbogner/besu/difficulty"
	"github.com/kevinbogner/besu/evmset"
	"github.com/kevinbogner/besu/execution"
	"github.com/kevinbogner/besu/feemarket"
	"github.com/kevinbogner/besu/gascost"
	"github.com/kevinbogner/besu/genesis"
	"github.com/kevinbogner/besu/precompiles"
	"github.com/kevinbogner/besu/protocolspec"
	"github.com/kevinbogner/besu/receipts"
	"github.com/kevinbogner/besu/reward"
	"github.com/kevinbogner/besu/validation"
)

// Override carries an explicit, caller-supplied delta for the Future and
// Experimental forks — the two entries in genesis.Order with no fixed
// mainnet shape. Passed as an argument rather than stored on
// genesis.Options, so genesis need not depend on protocolspec's rule
// interfaces.
type Override struct {
	GasCalculator      protocolspec.GasCalculator
	EVM                protocolspec.EVM
	PrecompileRegistry protocolspec.PrecompileRegistry
}

// BuildAll walks genesis.Order in sequence, building one *protocolspec.Builder
// per fork from its predecessor, then resolves every entry into a
// ProtocolSpec. futureOverride/experimentalOverride may be nil, in which
// case Future/Experimental simply carry Cancun's bindings forward.
func BuildAll(opts genesis.Options, futureOverride, experimentalOverride *Override) (map[genesis.ForkName]*protocolspec.ProtocolSpec, error) {
	builders := make(map[genesis.ForkName]*protocolspec.Builder, len(genesis.Order))

	var prev *protocolspec.Builder
	for _, name := range genesis.Order {
		b := define(name, prev, opts, futureOverride, experimentalOverride)
		if opts.PrivacyMode {
			b = applyPrivacyMode(b)
		}
		builders[name] = b
		prev = b
	}

	specs := make(map[genesis.ForkName]*protocolspec.ProtocolSpec, len(builders))
	for name, b := range builders {
		spec, err := b.Build(opts)
		if err != nil {
			return nil, err
		}
		specs[name] = spec
	}
	return specs, nil
}

func applyPrivacyMode(b *protocolspec.Builder) *protocolspec.Builder {
	b.SetPrivateTransactionProcessor(execution.Quorum)
	b.SetBlockValidator(validation.Private)
	if bp, ok := b.ResolveBlockProcessor().(*execution.BlockProcessor); ok {
		b.SetBlockProcessor(bp.WithPrivacy())
	}
	return b
}

func define(name genesis.ForkName, prev *protocolspec.Builder, opts genesis.Options, futureOverride, experimentalOverride *Override) *protocolspec.Builder {
	switch name {
	case genesis.Frontier:
		return frontier(opts)
	case genesis.Homestead:
		return homestead(prev)
	case genesis.DAORecoveryInit:
		return daoRecoveryInit(prev)
	case genesis.DAORecoveryTransition:
		return daoRecoveryTransition(prev, opts)
	case genesis.TangerineWhistle:
		return tangerineWhistle(prev)
	case genesis.SpuriousDragon:
		return spuriousDragon(prev, opts)
	case genesis.Byzantium:
		return byzantium(prev, opts)
	case genesis.Constantinople:
		return constantinople(prev)
	case genesis.Petersburg:
		return petersburg(prev)
	case genesis.Istanbul:
		return istanbul(prev)
	case genesis.MuirGlacier:
		return muirGlacier(prev)
	case genesis.Berlin:
		return berlin(prev, opts)
	case genesis.London:
		return london(prev, opts)
	case genesis.ArrowGlacier:
		return arrowGlacier(prev)
	case genesis.GrayGlacier:
		return grayGlacier(prev)
	case genesis.Paris:
		return paris(prev)
	case genesis.Shanghai:
		return shanghai(prev)
	case genesis.Cancun:
		return cancun(prev, opts)
	case genesis.Future:
		return future(prev, futureOverride)
	case genesis.Experimental:
		return experimental(prev, experimentalOverride)
	default:
		panic("forks: unknown fork name " + string(name))
	}
}

func frontier(opts genesis.Options) *protocolspec.Builder {
	b := protocolspec.NewBuilder(string(genesis.Frontier))
	b.SetGasCalculator(gascost.Frontier).
		SetGasLimitCalculator(feemarket.GasLimitCalculator{}).
		SetEVM(evmset.Frontier).
		SetPrecompileRegistry(precompiles.Frontier).
		SetMessageCallProcessor(execution.Default).
		SetContractCreationProcessor(validation.FrontierCreate).
		SetTransactionValidator(validation.FrontierTx).
		SetTransactionProcessor(execution.Legacy).
		SetBlockHeaderValidator(validation.FrontierHeader).
		SetOmmerHeaderValidator(validation.PreMergeOmmer).
		SetBlockBodyValidator(validation.PreShanghaiBody).
		SetBlockProcessor(execution.NewBlockProcessor("frontier", nil)).
		SetBlockValidator(validation.Default).
		SetBlockImporterFactory(execution.DefaultImporter).
		SetBlockHeaderFunctions(execution.PreMergeHeaderFunctions).
		SetTransactionReceiptFactory(receipts.StateRootFactory{}).
		SetDifficultyCalculator(difficulty.Frontier).
		SetFeeMarket(feemarket.Legacy{}).
		SetBlockReward(reward.Frontier).
		SetMiningBeneficiaryCalculator(reward.CoinbaseBeneficiary{})
	return b
}

func homestead(prev *protocolspec.Builder) *protocolspec.Builder {
	b := prev.Clone(string(genesis.Homestead))
	b.SetEVM(evmset.Homestead).
		SetContractCreationProcessor(validation.HomesteadCreate).
		SetDifficultyCalculator(difficulty.Homestead)
	return b
}

// daoRecoveryInit is the fork block that executes the one-shot DAO balance
// migration: the underlying block processor is captured and wrapped, never
// replaced. Its own block — and the nine following it, still governed by
// this spec under the schedule's greatest-activation-key-not-exceeding
// lookup since daoRecoveryTransition's key is ten blocks later — must carry
// the DAO extraData marker, so the marker-checking header validator is
// bound here, not on the transition fork.
//
// The DAO fork activated at block 1,920,000 on mainnet. Callers targeting a
// different chain configure when this spec takes effect through the
// schedule's ForkSchedule; the header validator's marker range stays fixed
// at the ten blocks starting at 1,920,000 whatever key is configured.
func daoRecoveryInit(prev *protocolspec.Builder) *protocolspec.Builder {
	b := prev.Clone(string(genesis.DAORecoveryInit))
	wrapped := b.ResolveBlockProcessor()
	b.SetBlockProcessor(daofork.Wrap(wrapped))
	b.SetBlockHeaderValidator(validation.DAORecoveryTransitionHeader(1920000))
	return b
}

// daoRecoveryTransition is the nine blocks following the DAO fork block:
// they must carry the extraData marker but must not repeat the drain, so
// the wrapped processor from daoRecoveryInit is unwrapped back to its
// underlying form. The header validator bound at daoRecoveryInit carries
// forward unchanged; its range check still covers these blocks.
func daoRecoveryTransition(prev *protocolspec.Builder, opts genesis.Options) *protocolspec.Builder {
	b := prev.Clone(string(genesis.DAORecoveryTransition))
	wrapped := b.ResolveBlockProcessor()
	if dp, ok := wrapped.(*daofork.Processor); ok {
		b.SetBlockProcessor(dp.Unwrap())
	}
	return b
}

func tangerineWhistle(prev *protocolspec.Builder) *protocolspec.Builder {
	b := prev.Clone(string(genesis.TangerineWhistle))
	b.SetGasCalculator(gascost.Tangerine).
		SetEVM(evmset.TangerineWhistle)
	return b
}

func spuriousDragon(prev *protocolspec.Builder, opts genesis.Options) *protocolspec.Builder {
	b := prev.Clone(string(genesis.SpuriousDragon))
	b.SetGasCalculator(gascost.SpuriousDragon).
		SetEVM(evmset.SpuriousDragon).
		SetMessageCallProcessor(execution.SpuriousDragon).
		SetContractCreationProcessor(withSizeOverride(validation.SpuriousDragonCreate, opts.ContractSizeLimit)).
		SetTransactionValidator(validation.SpuriousDragonTx).
		SetBlockHeaderValidator(validation.FrontierHeader). // DAO marker no longer required past the transition window
		SetSkipZeroBlockRewards(true)
	return b
}

func byzantium(prev *protocolspec.Builder, opts genesis.Options) *protocolspec.Builder {
	b := prev.Clone(string(genesis.Byzantium))
	b.SetGasCalculator(gascost.Byzantium).
		SetEVM(evmset.Byzantium).
		SetPrecompileRegistry(precompiles.Byzantium).
		SetTransactionReceiptFactory(receipts.StatusWithReasonFactory{EnableRevertReason: opts.EnableRevertReason}).
		SetDifficultyCalculator(difficulty.Byzantium).
		SetBlockReward(reward.Byzantium)
	return b
}

func constantinople(prev *protocolspec.Builder) *protocolspec.Builder {
	b := prev.Clone(string(genesis.Constantinople))
	b.SetGasCalculator(gascost.Constantinople).
		SetEVM(evmset.Constantinople).
		SetDifficultyCalculator(difficulty.Constantinople).
		SetBlockReward(reward.Constantinople)
	return b
}

func petersburg(prev *protocolspec.Builder) *protocolspec.Builder {
	b := prev.Clone(string(genesis.Petersburg))
	// EIP-1283's net-metered SSTORE is reverted (a reentrancy subtlety
	// surfaced days before Constantinople's mainnet activation); the
	// opcode set and reward are otherwise unchanged.
	b.SetGasCalculator(gascost.Petersburg).
		SetEVM(evmset.Petersburg).
		SetDifficultyCalculator(difficulty.Petersburg)
	return b
}

func istanbul(prev *protocolspec.Builder) *protocolspec.Builder {
	b := prev.Clone(string(genesis.Istanbul))
	b.SetGasCalculator(gascost.Istanbul).
		SetEVM(evmset.Istanbul).
		SetPrecompileRegistry(precompiles.Istanbul).
		SetDifficultyCalculator(difficulty.Istanbul)
	return b
}

func muirGlacier(prev *protocolspec.Builder) *protocolspec.Builder {
	b := prev.Clone(string(genesis.MuirGlacier))
	b.SetGasCalculator(gascost.MuirGlacier).
		SetEVM(evmset.MuirGlacier).
		SetDifficultyCalculator(difficulty.MuirGlacier)
	return b
}

func berlin(prev *protocolspec.Builder, opts genesis.Options) *protocolspec.Builder {
	b := prev.Clone(string(genesis.Berlin))
	b.SetGasCalculator(gascost.Berlin).
		SetEVM(evmset.Berlin).
		SetTransactionValidator(validation.BerlinTx).
		SetTransactionProcessor(execution.Legacy).
		SetTransactionReceiptFactory(receipts.TypedFactory{EnableRevertReason: opts.EnableRevertReason}).
		SetDifficultyCalculator(difficulty.Berlin)
	return b
}

func london(prev *protocolspec.Builder, opts genesis.Options) *protocolspec.Builder {
	b := prev.Clone(string(genesis.London))
	var seed *uint256.Int
	if opts.BaseFeePerGas != nil {
		seed = uint256.MustFromBig(opts.BaseFeePerGas)
	}
	var market protocolspec.FeeMarket
	if opts.ZeroBaseFee {
		market = feemarket.ZeroBaseFee{}
	} else {
		market = feemarket.London{SeedBaseFee: seed}
	}
	b.SetGasCalculator(gascost.London).
		SetEVM(evmset.London).
		SetContractCreationProcessor(withSizeOverride(validation.LondonCreate, opts.ContractSizeLimit)).
		SetTransactionValidator(validation.LondonTx).
		SetFeeMarket(market).
		SetGasLimitCalculator(feemarket.GasLimitCalculator{ElasticityAware: true}).
		SetBlockHeaderValidator(validation.LondonHeader).
		SetDifficultyCalculator(difficulty.London)
	return b
}

func arrowGlacier(prev *protocolspec.Builder) *protocolspec.Builder {
	b := prev.Clone(string(genesis.ArrowGlacier))
	b.SetEVM(evmset.ArrowGlacier).
		SetDifficultyCalculator(difficulty.ArrowGlacier)
	return b
}

func grayGlacier(prev *protocolspec.Builder) *protocolspec.Builder {
	b := prev.Clone(string(genesis.GrayGlacier))
	b.SetEVM(evmset.GrayGlacier).
		SetDifficultyCalculator(difficulty.GrayGlacier)
	return b
}

func paris(prev *protocolspec.Builder) *protocolspec.Builder {
	b := prev.Clone(string(genesis.Paris))
	b.SetEVM(evmset.Paris).
		SetDifficultyCalculator(difficulty.Paris).
		SetBlockReward(reward.Paris).
		SetOmmerHeaderValidator(validation.ParisOmmer).
		SetBlockHeaderFunctions(execution.ParisHeaderFunctions).
		SetProofOfStake(true)
	return b
}

func shanghai(prev *protocolspec.Builder) *protocolspec.Builder {
	b := prev.Clone(string(genesis.Shanghai))
	withdrawals := execution.ShanghaiWithdrawals
	b.SetGasCalculator(gascost.Shanghai).
		SetEVM(evmset.Shanghai).
		SetContractCreationProcessor(validation.ShanghaiCreate).
		SetTransactionValidator(validation.ShanghaiTx).
		SetTransactionProcessor(execution.ShanghaiProc).
		SetBlockBodyValidator(validation.ShanghaiBody).
		SetBlockProcessor(execution.NewBlockProcessor("shanghai", withdrawals)).
		SetWithdrawalsValidator(execution.Shanghai).
		SetWithdrawalsProcessor(withdrawals)
	return b
}

func cancun(prev *protocolspec.Builder, opts genesis.Options) *protocolspec.Builder {
	b := prev.Clone(string(genesis.Cancun))
	b.SetGasCalculator(gascost.Cancun).
		SetEVM(evmset.Cancun).
		SetPrecompileRegistryFunc(func(*protocolspec.Builder) protocolspec.PrecompileRegistry {
			return precompiles.NewCancun()
		}).
		SetTransactionValidator(validation.CancunTx).
		SetTransactionReceiptFactory(receipts.TypedFactory{EnableRevertReason: opts.EnableRevertReason}).
		SetFeeMarketFunc(func(*protocolspec.Builder) protocolspec.FeeMarket {
			return feemarket.Cancun{London: feemarket.London{}}
		})
	return b
}

func future(prev *protocolspec.Builder, override *Override) *protocolspec.Builder {
	b := prev.Clone(string(genesis.Future))
	if override == nil {
		return b
	}
	if override.GasCalculator != nil {
		b.SetGasCalculator(override.GasCalculator)
	}
	if override.EVM != nil {
		b.SetEVM(override.EVM)
	}
	if override.PrecompileRegistry != nil {
		b.SetPrecompileRegistry(override.PrecompileRegistry)
	}
	return b
}

func experimental(prev *protocolspec.Builder, override *Override) *protocolspec.Builder {
	b := prev.Clone(string(genesis.Experimental))
	b.SetDepositsValidator(execution.Experimental)
	if override == nil {
		return b
	}
	if override.GasCalculator != nil {
		b.SetGasCalculator(override.GasCalculator)
	}
	if override.EVM != nil {
		b.SetEVM(override.EVM)
	}
	if override.PrecompileRegistry != nil {
		b.SetPrecompileRegistry(override.PrecompileRegistry)
	}
	return b
}

// withSizeOverride returns c with its code-size limit replaced by limit,
// unless limit is zero (meaning "use the fork default").
func withSizeOverride(c validation.ContractCreation, limit uint64) validation.ContractCreation {
	if limit == 0 {
		return c
	}
	return c.WithMaxCodeSize(limit)
}
