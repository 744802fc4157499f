package protocolspec

import (
	"github.com/kevinbogner/besu/genesis"
	"github.com/kevinbogner/besu/internal/xlog"
)

var log = xlog.Root().New("pkg", "protocolspec")

// binding holds either a direct value or a factory that derives one from the
// builder-so-far. A factory is resolved exactly once, at Build() time, in
// the dependency order Build() walks.
type binding[T any] struct {
	value   T
	factory func(*Builder) T
	set     bool
}

func (b *binding[T]) setValue(v T) { b.value, b.set, b.factory = v, true, nil }
func (b *binding[T]) setFactory(f func(*Builder) T) {
	b.factory, b.set, b.value = f, true, *new(T)
}
func (b *binding[T]) resolve(builder *Builder) T {
	if b.factory != nil {
		b.value = b.factory(builder)
		b.factory = nil
	}
	return b.value
}

// Builder is the mutable accumulator of rule bindings. Each fork
// definition receives one pre-populated with its predecessor's bindings and
// calls the Set* methods to apply its own delta; Build() resolves any
// factories in dependency order and emits an immutable ProtocolSpec.
//
// Dependency order for factory resolution:
// gas_calculator → evm → precompile_registry → message_call_processor →
// contract_creation_processor → transaction_validator → transaction_processor
// → private_transaction_processor; header/body/block validators depend only
// on the fee market and configuration and resolve after that chain.
type Builder struct {
	name string

	gasCalculator      binding[GasCalculator]
	gasLimitCalculator binding[GasLimitCalculator]
	evm                binding[EVM]
	precompileRegistry binding[PrecompileRegistry]

	messageCallProcessor        binding[MessageCallProcessor]
	contractCreationProcessor   binding[ContractCreationProcessor]
	transactionValidator        binding[TransactionValidator]
	transactionProcessor        binding[TransactionProcessor]
	privateTransactionProcessor binding[PrivateTransactionProcessor]

	blockHeaderValidator binding[BlockHeaderValidator]
	ommerHeaderValidator binding[OmmerHeaderValidator]
	blockBodyValidator   binding[BlockBodyValidator]
	blockProcessor       binding[BlockProcessor]
	blockValidator       binding[BlockValidator]
	blockImporterFactory binding[BlockImporterFactory]
	blockHeaderFunctions binding[BlockHeaderFunctions]

	transactionReceiptFactory binding[TransactionReceiptFactory]

	difficultyCalculator        binding[DifficultyCalculator]
	feeMarket                   binding[FeeMarket]
	blockReward                 binding[BlockReward]
	skipZeroBlockRewards        bool
	miningBeneficiaryCalculator binding[MiningBeneficiaryCalculator]

	withdrawalsValidator binding[WithdrawalsValidator]
	withdrawalsProcessor binding[WithdrawalsProcessor]
	depositsValidator    binding[DepositsValidator]

	isProofOfStake bool
}

// NewBuilder starts an empty builder for the named fork. Fork definitions
// normally don't call this directly — they call their predecessor's
// definition, which returns a *Builder already carrying every prior
// binding, and only then apply their own delta.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Clone returns a copy of b so a fork delta can override fields without
// mutating the builder instance its predecessor returned (each fork's
// ProtocolSpec must be independently resolvable even though forks share a
// lineage of Set calls).
func (b *Builder) Clone(name string) *Builder {
	c := *b
	c.name = name
	return &c
}

func (b *Builder) Name() string { return b.name }

func (b *Builder) SetGasCalculator(v GasCalculator) *Builder { b.gasCalculator.setValue(v); return b }
func (b *Builder) SetGasLimitCalculator(v GasLimitCalculator) *Builder {
	b.gasLimitCalculator.setValue(v)
	return b
}
func (b *Builder) SetEVM(v EVM) *Builder { b.evm.setValue(v); return b }
func (b *Builder) SetPrecompileRegistry(v PrecompileRegistry) *Builder {
	b.precompileRegistry.setValue(v)
	return b
}
func (b *Builder) SetPrecompileRegistryFunc(f func(*Builder) PrecompileRegistry) *Builder {
	b.precompileRegistry.setFactory(f)
	return b
}
func (b *Builder) SetMessageCallProcessor(v MessageCallProcessor) *Builder {
	b.messageCallProcessor.setValue(v)
	return b
}
func (b *Builder) SetContractCreationProcessor(v ContractCreationProcessor) *Builder {
	b.contractCreationProcessor.setValue(v)
	return b
}
func (b *Builder) SetTransactionValidator(v TransactionValidator) *Builder {
	b.transactionValidator.setValue(v)
	return b
}
func (b *Builder) SetTransactionProcessor(v TransactionProcessor) *Builder {
	b.transactionProcessor.setValue(v)
	return b
}
func (b *Builder) SetPrivateTransactionProcessor(v PrivateTransactionProcessor) *Builder {
	b.privateTransactionProcessor.setValue(v)
	return b
}
func (b *Builder) SetBlockHeaderValidator(v BlockHeaderValidator) *Builder {
	b.blockHeaderValidator.setValue(v)
	return b
}
func (b *Builder) SetBlockHeaderValidatorFunc(f func(*Builder) BlockHeaderValidator) *Builder {
	b.blockHeaderValidator.setFactory(f)
	return b
}
func (b *Builder) SetOmmerHeaderValidator(v OmmerHeaderValidator) *Builder {
	b.ommerHeaderValidator.setValue(v)
	return b
}
func (b *Builder) SetBlockBodyValidator(v BlockBodyValidator) *Builder {
	b.blockBodyValidator.setValue(v)
	return b
}
func (b *Builder) SetBlockProcessor(v BlockProcessor) *Builder {
	b.blockProcessor.setValue(v)
	return b
}
func (b *Builder) SetBlockProcessorFunc(f func(*Builder) BlockProcessor) *Builder {
	b.blockProcessor.setFactory(f)
	return b
}
func (b *Builder) SetBlockValidator(v BlockValidator) *Builder {
	b.blockValidator.setValue(v)
	return b
}
func (b *Builder) SetBlockImporterFactory(v BlockImporterFactory) *Builder {
	b.blockImporterFactory.setValue(v)
	return b
}
func (b *Builder) SetBlockHeaderFunctions(v BlockHeaderFunctions) *Builder {
	b.blockHeaderFunctions.setValue(v)
	return b
}
func (b *Builder) SetTransactionReceiptFactory(v TransactionReceiptFactory) *Builder {
	b.transactionReceiptFactory.setValue(v)
	return b
}
func (b *Builder) SetDifficultyCalculator(v DifficultyCalculator) *Builder {
	b.difficultyCalculator.setValue(v)
	return b
}
func (b *Builder) SetFeeMarket(v FeeMarket) *Builder { b.feeMarket.setValue(v); return b }
func (b *Builder) SetFeeMarketFunc(f func(*Builder) FeeMarket) *Builder {
	b.feeMarket.setFactory(f)
	return b
}
func (b *Builder) SetBlockReward(v BlockReward) *Builder   { b.blockReward.setValue(v); return b }
func (b *Builder) SetSkipZeroBlockRewards(v bool) *Builder { b.skipZeroBlockRewards = v; return b }
func (b *Builder) SetMiningBeneficiaryCalculator(v MiningBeneficiaryCalculator) *Builder {
	b.miningBeneficiaryCalculator.setValue(v)
	return b
}
func (b *Builder) SetWithdrawalsValidator(v WithdrawalsValidator) *Builder {
	b.withdrawalsValidator.setValue(v)
	return b
}
func (b *Builder) SetWithdrawalsProcessor(v WithdrawalsProcessor) *Builder {
	b.withdrawalsProcessor.setValue(v)
	return b
}
func (b *Builder) SetDepositsValidator(v DepositsValidator) *Builder {
	b.depositsValidator.setValue(v)
	return b
}
func (b *Builder) SetProofOfStake(v bool) *Builder { b.isProofOfStake = v; return b }

// ResolveBlockProcessor forces and returns the currently-bound block
// processor, resolving any pending factory. The DAO Irregular State
// Processor fork definitions use this to capture their predecessor's
// processor before wrapping (or unwrapping) it.
func (b *Builder) ResolveBlockProcessor() BlockProcessor {
	return b.blockProcessor.resolve(b)
}

// Build resolves any unresolved factories in their documented dependency
// order and emits an immutable ProtocolSpec. It fails with
// *IncompleteSpec if any required field is unbound after resolution.
func (b *Builder) Build(opts genesis.Options) (*ProtocolSpec, error) {
	if opts.StackSizeLimit < 0 {
		return nil, &InvalidConfig{Reason: "stack size limit must not be negative"}
	}

	s := &ProtocolSpec{Name: b.name}

	// gas_calculator → evm → precompile_registry → message_call_processor →
	// contract_creation_processor → transaction_validator →
	// transaction_processor → private_transaction_processor
	s.GasCalculator = b.gasCalculator.resolve(b)
	s.EVM = b.evm.resolve(b)
	s.PrecompileRegistry = b.precompileRegistry.resolve(b)
	s.MessageCallProcessor = b.messageCallProcessor.resolve(b)
	s.ContractCreationProcessor = b.contractCreationProcessor.resolve(b)
	s.TransactionValidator = b.transactionValidator.resolve(b)
	s.TransactionProcessor = b.transactionProcessor.resolve(b)
	s.PrivateTransactionProcessor = b.privateTransactionProcessor.resolve(b)

	// fee market resolves before the header/body/block validators that read it
	s.FeeMarket = b.feeMarket.resolve(b)
	s.GasLimitCalculator = b.gasLimitCalculator.resolve(b)

	s.BlockHeaderValidator = b.blockHeaderValidator.resolve(b)
	s.OmmerHeaderValidator = b.ommerHeaderValidator.resolve(b)
	s.BlockBodyValidator = b.blockBodyValidator.resolve(b)
	s.BlockProcessor = b.blockProcessor.resolve(b)
	s.BlockValidator = b.blockValidator.resolve(b)
	s.BlockImporterFactory = b.blockImporterFactory.resolve(b)
	s.BlockHeaderFunctions = b.blockHeaderFunctions.resolve(b)

	s.TransactionReceiptFactory = b.transactionReceiptFactory.resolve(b)

	s.DifficultyCalculator = b.difficultyCalculator.resolve(b)
	s.BlockRewardRule = b.blockReward.resolve(b)
	s.SkipZeroBlockRewards = b.skipZeroBlockRewards
	s.MiningBeneficiaryCalculator = b.miningBeneficiaryCalculator.resolve(b)

	s.WithdrawalsValidator = b.withdrawalsValidator.resolve(b)
	s.WithdrawalsProcessor = b.withdrawalsProcessor.resolve(b)
	s.DepositsValidator = b.depositsValidator.resolve(b)

	s.IsProofOfStake = b.isProofOfStake

	for _, field := range requiredFields {
		if s.missingField(field) {
			return nil, &IncompleteSpec{Field: field}
		}
	}
	log.Debug("built protocol spec", "fork", s.Name)
	return s, nil
}
