package protocolspec

// ProtocolSpec is the immutable, fully-bound rule bundle for one fork.
// It is a plain value: safe to share across any number of concurrent
// readers without synchronization, and never mutated after
// Builder.Build returns it.
type ProtocolSpec struct {
	Name string

	GasCalculator      GasCalculator
	GasLimitCalculator GasLimitCalculator
	EVM                EVM
	PrecompileRegistry PrecompileRegistry

	MessageCallProcessor        MessageCallProcessor
	ContractCreationProcessor   ContractCreationProcessor
	TransactionValidator        TransactionValidator
	TransactionProcessor        TransactionProcessor
	PrivateTransactionProcessor PrivateTransactionProcessor // optional; nil when absent

	BlockHeaderValidator BlockHeaderValidator
	OmmerHeaderValidator OmmerHeaderValidator
	BlockBodyValidator   BlockBodyValidator
	BlockProcessor       BlockProcessor
	BlockValidator       BlockValidator
	BlockImporterFactory BlockImporterFactory
	BlockHeaderFunctions BlockHeaderFunctions

	TransactionReceiptFactory TransactionReceiptFactory

	DifficultyCalculator        DifficultyCalculator
	FeeMarket                   FeeMarket
	BlockRewardRule             BlockReward
	SkipZeroBlockRewards        bool
	MiningBeneficiaryCalculator MiningBeneficiaryCalculator

	WithdrawalsValidator WithdrawalsValidator // optional
	WithdrawalsProcessor WithdrawalsProcessor // optional
	DepositsValidator    DepositsValidator    // optional

	IsProofOfStake bool
}

// requiredFields lists, by name, the fields build() must find populated.
// PrivateTransactionProcessor, WithdrawalsValidator, WithdrawalsProcessor,
// and DepositsValidator are documented-optional and are
// deliberately excluded.
var requiredFields = []string{
	"GasCalculator", "GasLimitCalculator", "EVM", "PrecompileRegistry",
	"MessageCallProcessor", "ContractCreationProcessor", "TransactionValidator",
	"TransactionProcessor", "BlockHeaderValidator", "OmmerHeaderValidator",
	"BlockBodyValidator", "BlockProcessor", "BlockValidator", "BlockImporterFactory",
	"BlockHeaderFunctions", "TransactionReceiptFactory", "DifficultyCalculator",
	"FeeMarket", "BlockRewardRule", "MiningBeneficiaryCalculator",
}

func (s *ProtocolSpec) missingField(name string) bool {
	switch name {
	case "GasCalculator":
		return s.GasCalculator == nil
	case "GasLimitCalculator":
		return s.GasLimitCalculator == nil
	case "EVM":
		return s.EVM == nil
	case "PrecompileRegistry":
		return s.PrecompileRegistry == nil
	case "MessageCallProcessor":
		return s.MessageCallProcessor == nil
	case "ContractCreationProcessor":
		return s.ContractCreationProcessor == nil
	case "TransactionValidator":
		return s.TransactionValidator == nil
	case "TransactionProcessor":
		return s.TransactionProcessor == nil
	case "BlockHeaderValidator":
		return s.BlockHeaderValidator == nil
	case "OmmerHeaderValidator":
		return s.OmmerHeaderValidator == nil
	case "BlockBodyValidator":
		return s.BlockBodyValidator == nil
	case "BlockProcessor":
		return s.BlockProcessor == nil
	case "BlockValidator":
		return s.BlockValidator == nil
	case "BlockImporterFactory":
		return s.BlockImporterFactory == nil
	case "BlockHeaderFunctions":
		return s.BlockHeaderFunctions == nil
	case "TransactionReceiptFactory":
		return s.TransactionReceiptFactory == nil
	case "DifficultyCalculator":
		return s.DifficultyCalculator == nil
	case "FeeMarket":
		return s.FeeMarket == nil
	case "BlockRewardRule":
		return s.BlockRewardRule == nil
	case "MiningBeneficiaryCalculator":
		return s.MiningBeneficiaryCalculator == nil
	default:
		return false
	}
}
