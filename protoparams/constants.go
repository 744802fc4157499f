// Package protoparams holds the bit-exact consensus constants:
// contract-size limits, block rewards, and the handful of hardcoded
// addresses consensus rules key off. Grounded in go-ethereum's
// params/protocol_params.go and params/config.go constant tables.
package protoparams

import "github.com/kevinbogner/besu/common"

const (
	// FrontierContractSizeLimit is the effectively-unbounded deployed-code
	// size limit in force from Frontier until Spurious Dragon.
	FrontierContractSizeLimit = (1 << 31) - 1

	// SpuriousDragonContractSizeLimit is EIP-170's 24KB deployed-code cap,
	// in force from Spurious Dragon onward.
	SpuriousDragonContractSizeLimit = 24576

	// ShanghaiInitCodeSizeLimit is EIP-3860's init-code size cap, twice the
	// deployed-code cap, in force from Shanghai onward.
	ShanghaiInitCodeSizeLimit = 2 * SpuriousDragonContractSizeLimit
)

// Block rewards, in wei, by era. Reward drops to zero at Paris because
// consensus rewards move to the beacon chain.
var (
	FrontierBlockRewardWei       = weiEther(5)
	ByzantiumBlockRewardWei      = weiEther(3)
	ConstantinopleBlockRewardWei = weiEther(2)
	ParisBlockRewardWei          = uint64(0)
)

func weiEther(n uint64) uint64 { return n * 1_000_000_000_000_000_000 }

// RIPEMD160Precompile is the address of the RIPEMD-160 precompiled contract —
// the one account that, post-Spurious-Dragon, is force-deleted whenever it
// ends up empty, regardless of whether the triggering call succeeded. A
// known, permanent consensus bug: the account is touched by every
// transaction (it's invoked unconditionally by the repricing test suite that
// shipped with EIP-161) and must stay force-deleted bit-for-bit forever.
var RIPEMD160Precompile = common.HexToAddress("0x0000000000000000000000000000000000000003")

// DAOChildDAOExtraData is the marker ("dao-hard-fork", ASCII, unpadded)
// mainnet nodes required in the extraData field of the DAO fork block and
// the nine blocks following it.
var DAOChildDAOExtraData = []byte("dao-hard-fork")

// DAORefundContract is the single contract every drained DAO account's
// balance is moved into.
var DAORefundContract = common.HexToAddress("0xbf4ed7b27f1d666546e30d74d50d173d20bca754")

// ForceDeleteWhenEmpty is the post-Spurious-Dragon set of accounts that are
// force-deleted when they end up empty at the end of a message call,
// regardless of execution outcome — currently just the RIPEMD-160
// precompile.
var ForceDeleteWhenEmpty = []common.Address{RIPEMD160Precompile}
