package reward

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/kevinbogner/besu/common"
	"github.com/kevinbogner/besu/protocolspec"
)

func TestFixed_RewardValuesMatchEachEra(t *testing.T) {
	five := new(uint256.Int).Mul(uint256.NewInt(5), uint256.NewInt(1_000_000_000_000_000_000))
	three := new(uint256.Int).Mul(uint256.NewInt(3), uint256.NewInt(1_000_000_000_000_000_000))
	two := new(uint256.Int).Mul(uint256.NewInt(2), uint256.NewInt(1_000_000_000_000_000_000))

	assert.Equal(t, five, Frontier.RewardWei())
	assert.Equal(t, three, Byzantium.RewardWei())
	assert.Equal(t, two, Constantinople.RewardWei())
	assert.True(t, Paris.RewardWei().IsZero())
}

func TestFixed_Name(t *testing.T) {
	assert.Equal(t, "Byzantium", Byzantium.Name())
}

func TestCoinbaseBeneficiary_ReturnsHeaderCoinbase(t *testing.T) {
	addr := common.HexToAddress("0x00000000000000000000000000000000001234")
	header := &protocolspec.Header{Coinbase: addr}
	assert.Equal(t, addr, CoinbaseBeneficiary{}.Beneficiary(header))
}
