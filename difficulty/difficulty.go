// Package difficulty implements the DifficultyCalculator rule family: the
// proof-of-work difficulty adjustment algorithm, which changed shape at
// Homestead and again at Byzantium, then accreted a string of "bomb delay"
// constant adjustments through Gray Glacier before going constant-zero at
// Paris. Grounded in go-ethereum's core/block_validator.go CalcDifficulty
// shape (bound-divisor adjustment, minimum-difficulty floor, exponential
// ice-age term) generalized to each era's exact formula.
package difficulty

import (
	"math/big"

	"github.com/kevinbogner/besu/protocolspec"
)

var (
	boundDivisor  = big.NewInt(2048)
	minimum       = big.NewInt(131072)
	big1          = big.NewInt(1)
	big2          = big.NewInt(2)
	big9          = big.NewInt(9)
	big10         = big.NewInt(10)
	bigMinus99    = big.NewInt(-99)
	expDiffPeriod = big.NewInt(100000)
)

// Calculator computes the next block's difficulty from its parent.
type Calculator struct {
	name string
	fn   func(timestamp uint64, parent *protocolspec.Header) *big.Int
}

func (c *Calculator) Name() string { return c.name }

func (c *Calculator) NextDifficulty(timestamp uint64, parent *protocolspec.Header) *big.Int {
	return c.fn(timestamp, parent)
}

func floor(x *big.Int) *big.Int {
	if x.Cmp(minimum) < 0 {
		return new(big.Int).Set(minimum)
	}
	return x
}

// bombExponent returns the ice-age term 2^((blockNumber/100000)-2), clamped
// to zero for small block numbers, optionally shifted back by delayBlocks
// (each bomb-delay fork subtracts a fixed number of blocks from the
// "fake block number" used only for this term).
func bombExponent(blockNumber uint64, delayBlocks uint64) *big.Int {
	if blockNumber < delayBlocks {
		return new(big.Int)
	}
	fakeNumber := blockNumber - delayBlocks
	periodCount := new(big.Int).Div(new(big.Int).SetUint64(fakeNumber), expDiffPeriod)
	periodCount.Sub(periodCount, big2)
	if periodCount.Sign() < 0 {
		return new(big.Int)
	}
	return new(big.Int).Lsh(big1, uint(periodCount.Uint64()))
}

func hadUncles(parent *protocolspec.Header) bool {
	return parent.OmmersHash != protocolspec.EmptyOmmersHash
}

// Frontier is the original difficulty adjustment: a fixed-fraction
// bound-divisor step, up when the block came less than 13 seconds after its
// parent and down otherwise, plus the ice age.
var Frontier = &Calculator{name: "Frontier", fn: func(timestamp uint64, parent *protocolspec.Header) *big.Int {
	diff := new(big.Int).Set(parent.Difficulty)
	adjust := new(big.Int).Div(parent.Difficulty, boundDivisor)
	if timestamp-parent.Timestamp < 13 {
		diff.Add(diff, adjust)
	} else {
		diff.Sub(diff, adjust)
	}
	diff = floor(diff)
	diff.Add(diff, bombExponent(parent.Number+1, 0))
	return diff
}}

// Homestead changes the adjustment term from a fixed 13-second threshold to
// a continuous function of the time delta (EIP-2).
var Homestead = &Calculator{name: "Homestead", fn: func(timestamp uint64, parent *protocolspec.Header) *big.Int {
	x := new(big.Int).SetUint64(timestamp - parent.Timestamp)
	x.Div(x, big10)
	x.Sub(big1, x)
	if x.Cmp(bigMinus99) < 0 {
		x.Set(bigMinus99)
	}
	y := new(big.Int).Div(parent.Difficulty, boundDivisor)
	x.Mul(y, x)
	diff := floor(new(big.Int).Add(parent.Difficulty, x))
	diff.Add(diff, bombExponent(parent.Number+1, 0))
	return diff
}}

// byzantiumLike is Homestead's adjustment term with the uncle-count-aware
// divisor from EIP-100 (2 if the parent had uncles, 1 otherwise) and the
// ice age pushed back by delayBlocks.
func byzantiumLike(name string, delayBlocks uint64) *Calculator {
	return &Calculator{name: name, fn: func(timestamp uint64, parent *protocolspec.Header) *big.Int {
		x := new(big.Int).SetUint64(timestamp - parent.Timestamp)
		x.Div(x, big9)
		uncleAdjust := big1
		if hadUncles(parent) {
			uncleAdjust = big2
		}
		x.Sub(uncleAdjust, x)
		if x.Cmp(bigMinus99) < 0 {
			x.Set(bigMinus99)
		}
		y := new(big.Int).Div(parent.Difficulty, boundDivisor)
		x.Mul(y, x)
		diff := floor(new(big.Int).Add(parent.Difficulty, x))
		diff.Add(diff, bombExponent(parent.Number+1, delayBlocks))
		return diff
	}}
}

// Byzantium introduces EIP-100's uncle-aware adjustment and EIP-649's
// 3,000,000-block ice-age delay.
var Byzantium = byzantiumLike("Byzantium", 3000000)

// Constantinople (and the gas-schedule-reverting Petersburg, which inherits
// this unchanged) extends the delay to 5,000,000 blocks (EIP-1234).
var Constantinople = byzantiumLike("Constantinople", 5000000)
var Petersburg = Constantinople

// Istanbul carries Constantinople's difficulty rule forward unchanged.
var Istanbul = Constantinople

// MuirGlacier extends the delay to 9,000,000 blocks (EIP-2384).
var MuirGlacier = byzantiumLike("Muir Glacier", 9000000)

// Berlin carries Muir Glacier's difficulty rule forward unchanged.
var Berlin = MuirGlacier

// London extends the delay to 9,700,000 blocks (EIP-3554).
var London = byzantiumLike("London", 9700000)

// ArrowGlacier extends the delay to 10,700,000 blocks (EIP-4345).
var ArrowGlacier = byzantiumLike("Arrow Glacier", 10700000)

// GrayGlacier extends the delay to 11,400,000 blocks (EIP-5133), the last
// bomb-delay adjustment before Paris retires proof-of-work entirely.
var GrayGlacier = byzantiumLike("Gray Glacier", 11400000)

// Paris is constant zero: proof-of-work difficulty has no meaning once
// consensus moves to proof-of-stake.
var Paris = &Calculator{name: "Paris", fn: func(uint64, *protocolspec.Header) *big.Int {
	return new(big.Int)
}}
