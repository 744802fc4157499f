// Package schedule implements the Schedule Selector: given a header,
// resolve which fork's ProtocolSpec governs it. Grounded in go-ethereum's
// params/config.go Rules/IsXXX fork-gate pattern, generalized into an
// explicit "greatest activation key not exceeding the queried value"
// lookup across the three activation kinds this registry supports (block number,
// timestamp, total difficulty).
package schedule

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math/big"
	"sort"

	bloomfilter "github.com/holiman/bloomfilter/v2"
	"github.com/pkg/errors"

	"github.com/kevinbogner/besu/forks"
	"github.com/kevinbogner/besu/genesis"
	"github.com/kevinbogner/besu/internal/xlog"
	"github.com/kevinbogner/besu/protocolspec"
)

var log = xlog.Root().New("pkg", "schedule")

// NoSpecAtHeight is returned when no configured fork's activation key is
// at or below the queried header — e.g. a chain configured to start at
// Byzantium queried with a block before Byzantium's activation height.
type NoSpecAtHeight struct {
	Height uint64
}

func (e *NoSpecAtHeight) Error() string {
	return "schedule: no protocol spec configured at or below height/timestamp " + bigUint(e.Height)
}

func bigUint(n uint64) string { return new(big.Int).SetUint64(n).String() }

// UnknownFork is returned when a genesis.ForkSchedule names a fork that is
// not part of the fork delta registry's genesis.Order — e.g. a typo'd or
// stale fork name surviving in a chain's configuration.
type UnknownFork struct {
	Name genesis.ForkName
}

func (e *UnknownFork) Error() string {
	return "schedule: genesis fork schedule references unknown fork " + string(e.Name)
}

type keyedEntry struct {
	name genesis.ForkName
	key  uint64
}

// ProtocolSchedule resolves a header to the ProtocolSpec governing it. Safe
// for concurrent use after construction: all state is read-only.
type ProtocolSchedule struct {
	specs map[genesis.ForkName]*protocolspec.ProtocolSpec

	blockNumberEntries []keyedEntry // sorted ascending by key
	timestampEntries   []keyedEntry // sorted ascending by key

	terminalTotalDifficulty *big.Int

	// activationBloom offers a fast, approximate "is this exactly a
	// configured activation key" check for diagnostics: a positive result
	// emits a debug log and is not confirmed against the keys (bloom filters
	// admit false positives, never false negatives). Fork selection never
	// consults it.
	activationBloom *bloomfilter.Filter
}

// New builds a ProtocolSchedule from a configured activation schedule, the
// chain's genesis options, and optional Future/Experimental overrides.
func New(fs genesis.ForkSchedule, opts genesis.Options, futureOverride, experimentalOverride *forks.Override) (*ProtocolSchedule, error) {
	known := make(map[genesis.ForkName]bool, len(genesis.Order))
	for _, name := range genesis.Order {
		known[name] = true
	}
	for name := range fs {
		if !known[name] {
			return nil, &UnknownFork{Name: name}
		}
	}

	specs, err := forks.BuildAll(opts, futureOverride, experimentalOverride)
	if err != nil {
		return nil, errors.Wrap(err, "schedule: building fork delta registry")
	}

	s := &ProtocolSchedule{specs: specs, terminalTotalDifficulty: opts.TerminalTotalDifficulty}

	var activationKeys []uint64
	for _, name := range genesis.Order {
		key, ok := fs[name]
		if !ok {
			continue
		}
		activationKeys = append(activationKeys, key)
		switch genesis.ActivationKindOf(name) {
		case genesis.ActivationByTimestamp:
			s.timestampEntries = append(s.timestampEntries, keyedEntry{name: name, key: key})
		case genesis.ActivationByTotalDifficulty:
			// Paris has no block/timestamp key of its own; its activation
			// key lives in opts.TerminalTotalDifficulty and is handled by
			// ByBlockHeader directly, not by either sorted slice.
		default:
			s.blockNumberEntries = append(s.blockNumberEntries, keyedEntry{name: name, key: key})
		}
	}
	sort.Slice(s.blockNumberEntries, func(i, j int) bool { return s.blockNumberEntries[i].key < s.blockNumberEntries[j].key })
	sort.Slice(s.timestampEntries, func(i, j int) bool { return s.timestampEntries[i].key < s.timestampEntries[j].key })

	if len(activationKeys) > 0 {
		bloom, err := bloomfilter.NewOptimal(uint64(len(activationKeys)), 0.01)
		if err == nil {
			for _, k := range activationKeys {
				bloom.Add(hashKey(k))
			}
			s.activationBloom = bloom
		}
	}

	return s, nil
}

// hashKey adapts a uint64 activation key to the hash.Hash64 the bloom
// filter library hashes against.
func hashKey(key uint64) hash.Hash64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], key)
	h.Write(buf[:])
	return h
}

// ByBlockHeader resolves the ProtocolSpec governing header. totalDifficulty
// is the chain's cumulative proof-of-work difficulty through header itself
// (the terminal PoW block's own total difficulty is what crosses
// Options.TerminalTotalDifficulty and activates Paris on that block). A nil
// totalDifficulty, or a schedule built with no TerminalTotalDifficulty,
// selects by block number only: Paris and the timestamp-keyed forks are
// then never selected.
// Implements the PRE_MERGE -> TERMINAL_POW_BLOCK -> POS
// state machine: once cumulative difficulty reaches
// Options.TerminalTotalDifficulty, every subsequent header is governed by
// Paris or a later, timestamp-keyed fork, never reverting to a
// block-number-keyed one even if this call is later replayed against an
// older header (the schedule does not track "have we crossed yet"
// per-call; callers must supply the correct totalDifficulty for the header
// being validated, matching the monotonic-once-crossed invariant).
func (s *ProtocolSchedule) ByBlockHeader(header *protocolspec.Header, totalDifficulty *big.Int) (*protocolspec.ProtocolSpec, error) {
	postMerge := s.terminalTotalDifficulty != nil && totalDifficulty != nil &&
		totalDifficulty.Cmp(s.terminalTotalDifficulty) >= 0

	if postMerge {
		if name, ok := selectByKey(s.timestampEntries, header.Timestamp); ok {
			s.logActivationHit(header.Timestamp)
			return s.specs[name], nil
		}
		return s.specs[genesis.Paris], nil
	}

	name, ok := selectByKey(s.blockNumberEntries, header.Number)
	if !ok {
		return nil, &NoSpecAtHeight{Height: header.Number}
	}
	s.logActivationHit(header.Number)
	return s.specs[name], nil
}

func (s *ProtocolSchedule) logActivationHit(value uint64) {
	if s.activationBloom == nil {
		return
	}
	if s.activationBloom.Contains(hashKey(value)) {
		log.Debug("header lands on a configured activation boundary", "value", value)
	}
}

// selectByKey returns the name bound to the greatest key not exceeding
// value: the "greatest activation key not exceeding the queried value" rule.
// entries must be sorted ascending by key.
func selectByKey(entries []keyedEntry, value uint64) (genesis.ForkName, bool) {
	idx := sort.Search(len(entries), func(i int) bool { return entries[i].key > value })
	if idx == 0 {
		return "", false
	}
	return entries[idx-1].name, true
}
