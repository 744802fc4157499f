// Package gascost implements the GasCalculator rule family, one
// concrete value per fork era, grounded in go-ethereum's
// params/protocol_params.go constant table. Every gas price mentioned in
// every fork's per-fork gas delta is bound here; constants that do not
// call out to change for a given fork are inherited by sharing the
// predecessor's table.
package gascost

import "github.com/kevinbogner/besu/protocolspec"

// table is a named, immutable gas-price table. Every era's GasCalculator is
// a table plus the fork name; tables compose by copying the predecessor and
// overwriting only the prices the fork delta changes, exactly mirroring
// protocol_params.go's layered "…Frontier / …EIP150 / …EIP2929" constant
// naming.
type table struct {
	name string
	cost map[string]uint64
}

func (t *table) Name() string { return t.name }

func (t *table) Cost(op string, n uint64) uint64 {
	base, ok := t.cost[op]
	if !ok {
		return 0
	}
	switch op {
	case "SHA3WORD", "COPYWORD", "MCOPYWORD", "LOGDATA", "INITCODEWORD":
		return base * n
	default:
		return base
	}
}

var _ protocolspec.GasCalculator = (*table)(nil)

func clone(name string, parent *table, overrides map[string]uint64) *table {
	t := &table{name: name, cost: make(map[string]uint64, len(parent.cost)+len(overrides))}
	for k, v := range parent.cost {
		t.cost[k] = v
	}
	for k, v := range overrides {
		t.cost[k] = v
	}
	return t
}

// Frontier is the original 2015 gas schedule.
var Frontier = &table{name: "Frontier", cost: map[string]uint64{
	"SSTORE_SET": 20000, "SSTORE_RESET": 5000, "SSTORE_CLEAR_REFUND": 15000,
	"SLOAD": 50, "SHA3": 30, "SHA3WORD": 6, "BALANCE": 20, "EXTCODESIZE": 20,
	"EXTCODECOPY_BASE": 20, "CALL": 40, "SELFDESTRUCT": 0, "CREATE": 32000,
	"JUMPDEST": 1, "EXP": 10, "EXPBYTE": 10, "LOG": 375, "LOGTOPIC": 375,
	"LOGDATA": 8, "COPYWORD": 3, "MEMORY": 3, "TX": 21000, "TXCREATE": 53000,
	"TXDATAZERO": 4, "TXDATANONZERO": 68, "CALLSTIPEND": 2300,
}}

// Homestead adds nothing to the gas table itself; EIP-2's change is the
// code-deposit-cost-failure flag, modeled on validation.ContractCreation
// (validation.HomesteadCreate), not a gas price.
var Homestead = Frontier

// Tangerine is EIP-150: CALL-family and state-access operations repriced.
var Tangerine = clone("Tangerine Whistle", Frontier, map[string]uint64{
	"SLOAD": 200, "BALANCE": 400, "EXTCODESIZE": 700, "EXTCODECOPY_BASE": 700,
	"CALL": 700, "SELFDESTRUCT": 5000, "CREATE_BY_SELFDESTRUCT": 25000,
})

// SpuriousDragon inherits Tangerine's prices unchanged (EIP-158/170 are
// state-clearing and code-size rules, not gas prices).
var SpuriousDragon = Tangerine

// Byzantium adds the REVERT/STATICCALL/RETURNDATACOPY cost model, all priced
// like their CALL/COPY cousins, so the table itself is unchanged from
// Spurious Dragon.
var Byzantium = SpuriousDragon

// Constantinople is EIP-1283's net-metering SSTORE schedule.
var Constantinople = clone("Constantinople", Byzantium, map[string]uint64{
	"SSTORE_NOOP": 200, "SSTORE_INIT": 20000, "SSTORE_CLEAN": 5000, "SSTORE_DIRTY": 200,
	"SSTORE_CLEAR_REFUND": 15000, "SSTORE_RESET_REFUND": 4800, "SSTORE_RESET_CLEAR_REFUND": 19800,
	"EXTCODEHASH": 400,
})

// Petersburg reverts EIP-1283, otherwise identical to Constantinople.
var Petersburg = clone("Petersburg", Constantinople, map[string]uint64{
	"SSTORE_NOOP": 0, "SSTORE_INIT": 0, "SSTORE_CLEAN": 0, "SSTORE_DIRTY": 0,
	"SSTORE_SET": 20000, "SSTORE_RESET": 5000, "SSTORE_CLEAR_REFUND": 15000,
})

// Istanbul is EIP-1884 (state-access repricing) + EIP-2200 (SSTORE
// net-metering redux) + EIP-2028 (calldata repricing).
var Istanbul = clone("Istanbul", Petersburg, map[string]uint64{
	"SLOAD": 800, "BALANCE": 700, "EXTCODEHASH": 700,
	"SSTORE_SENTRY": 2300, "SSTORE_SET": 20000, "SSTORE_RESET": 5000, "SSTORE_CLEAR_REFUND": 15000,
	"TXDATANONZERO": 16,
})

// MuirGlacier changes only the difficulty bomb schedule (see difficulty package).
var MuirGlacier = Istanbul

// Berlin is EIP-2929/2930: cold/warm access-list accounting.
var Berlin = clone("Berlin", Istanbul, map[string]uint64{
	"SLOAD": 2100, "BALANCE": 2600, "EXTCODESIZE": 2600, "EXTCODECOPY_BASE": 2600,
	"CALL": 2600, "SLOAD_WARM": 100, "CALL_WARM": 100, "COLD_ACCOUNT_ACCESS": 2600,
	"COLD_SLOAD": 2100, "WARM_STORAGE_READ": 100,
	"SSTORE_RESET": 2900, "SSTORE_CLEAR_REFUND": 4800,
	"ACCESS_LIST_ADDRESS": 2400, "ACCESS_LIST_STORAGE_KEY": 1900,
})

// London adds EIP-3529 (lower refund cap, handled in the refund policy, not
// priced here) and no new opcode prices of its own.
var London = Berlin

// ArrowGlacier, GrayGlacier: difficulty-bomb-only forks.
var ArrowGlacier = London
var GrayGlacier = ArrowGlacier

// Paris: PREVRANDAO replaces DIFFICULTY; no gas price changes.
var Paris = GrayGlacier

// Shanghai adds EIP-3860 init-code metering and EIP-3651 warm coinbase
// (modeled in validation.ContractCreation and execution.TransactionProcessor
// respectively); PUSH0 is priced at the base opcode cost of 2.
var Shanghai = clone("Shanghai", Paris, map[string]uint64{
	"INITCODEWORD": 2, "PUSH0": 2,
})

// Cancun adds EIP-1153 transient storage (priced like warm SLOAD/SSTORE)
// and EIP-5656 MCOPY (priced like a COPY word); blob-gas accounting lives in
// the fee market, not this table.
var Cancun = clone("Cancun", Shanghai, map[string]uint64{
	"TLOAD": 100, "TSTORE": 100, "MCOPYWORD": 3,
})

// Future/Experimental: unstable, parameterized via the forks.Override the
// caller passes to forks.BuildAll rather than frozen here.
var Future = Cancun
var Experimental = Future
