// Package reward implements the BlockReward and MiningBeneficiaryCalculator
// rule families: the per-era miner reward (5/3/2/0 ETH, bit-exact constants) and the default coinbase-is-beneficiary rule.
package reward

import (
	"github.com/holiman/uint256"

	"github.com/kevinbogner/besu/common"
	"github.com/kevinbogner/besu/protocolspec"
	"github.com/kevinbogner/besu/protoparams"
)

// Fixed is a constant-valued block reward.
type Fixed struct {
	name string
	wei  uint64
}

func (f Fixed) Name() string            { return f.name }
func (f Fixed) RewardWei() *uint256.Int { return uint256.NewInt(f.wei) }

var (
	Frontier       = Fixed{name: "Frontier", wei: protoparams.FrontierBlockRewardWei}
	Byzantium      = Fixed{name: "Byzantium", wei: protoparams.ByzantiumBlockRewardWei}
	Constantinople = Fixed{name: "Constantinople", wei: protoparams.ConstantinopleBlockRewardWei}
	Paris          = Fixed{name: "Paris", wei: protoparams.ParisBlockRewardWei}
)

// CoinbaseBeneficiary resolves the header's coinbase field as the reward and
// fee recipient — the default for every mainnet fork.
type CoinbaseBeneficiary struct{}

func (CoinbaseBeneficiary) Beneficiary(header *protocolspec.Header) common.Address {
	return header.Coinbase
}
