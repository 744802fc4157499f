package evmset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func contains(opcodes []string, name string) bool {
	for _, op := range opcodes {
		if op == name {
			return true
		}
	}
	return false
}

func TestOpcodeSetsAreAdditive(t *testing.T) {
	chain := []*Set{Frontier, Homestead, TangerineWhistle, SpuriousDragon, Byzantium,
		Constantinople, Petersburg, Istanbul, MuirGlacier, Berlin, London, ArrowGlacier,
		GrayGlacier, Paris, Shanghai, Cancun, Future, Experimental}

	for i := 1; i < len(chain); i++ {
		prev, cur := chain[i-1], chain[i]
		for _, op := range prev.Opcodes() {
			assert.Truef(t, contains(cur.Opcodes(), op),
				"%s dropped opcode %s present in %s", cur.Name(), op, prev.Name())
		}
	}
}

func TestHomestead_AddsDelegateCall(t *testing.T) {
	assert.False(t, contains(Frontier.Opcodes(), "DELEGATECALL"))
	assert.True(t, contains(Homestead.Opcodes(), "DELEGATECALL"))
}

func TestByzantium_AddsRevertAndStaticcall(t *testing.T) {
	for _, op := range []string{"REVERT", "RETURNDATASIZE", "RETURNDATACOPY", "STATICCALL"} {
		assert.False(t, contains(SpuriousDragon.Opcodes(), op))
		assert.True(t, contains(Byzantium.Opcodes(), op))
	}
}

func TestConstantinople_AddsShiftsAndCreate2(t *testing.T) {
	for _, op := range []string{"CREATE2", "EXTCODEHASH", "SHL", "SHR", "SAR"} {
		assert.True(t, contains(Constantinople.Opcodes(), op))
	}
}

func TestIstanbul_AddsChainIDAndSelfBalance(t *testing.T) {
	assert.True(t, contains(Istanbul.Opcodes(), "CHAINID"))
	assert.True(t, contains(Istanbul.Opcodes(), "SELFBALANCE"))
}

func TestLondon_AddsBaseFee(t *testing.T) {
	assert.False(t, contains(Berlin.Opcodes(), "BASEFEE"))
	assert.True(t, contains(London.Opcodes(), "BASEFEE"))
}

func TestShanghai_AddsPush0(t *testing.T) {
	assert.True(t, contains(Shanghai.Opcodes(), "PUSH0"))
}

func TestCancun_AddsTransientStorageAndMcopy(t *testing.T) {
	for _, op := range []string{"TLOAD", "TSTORE", "MCOPY", "BLOBHASH", "BLOBBASEFEE"} {
		assert.True(t, contains(Cancun.Opcodes(), op))
	}
}

func TestFutureAndExperimental_InheritCancun(t *testing.T) {
	assert.ElementsMatch(t, Cancun.Opcodes(), Future.Opcodes())
	assert.ElementsMatch(t, Cancun.Opcodes(), Experimental.Opcodes())
}
