// Package daofork implements the DAO Irregular State Processor: the
// one-block, one-shot balance migration from a fixed list of accounts into a
// single refund contract, applied before the wrapped BlockProcessor runs.
// Grounded in go-ethereum's params/dao_list.go (the embedded drain-list
// asset and its parse-once-at-startup pattern).
package daofork

import (
	_ "embed"
	"encoding/json"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/kevinbogner/besu/common"
	"github.com/kevinbogner/besu/internal/xlog"
	"github.com/kevinbogner/besu/protocolspec"
	"github.com/kevinbogner/besu/protoparams"
)

var log = xlog.Root().New("pkg", "daofork")

//go:embed assets/daoAddresses.json
var daoAddressesJSON []byte

// DrainList is the ordered set of DAO-affected addresses, parsed once at
// package init from the embedded asset. Order matches the embedded JSON
// array.
var DrainList []common.Address

// DrainSet is DrainList as a set, for fast membership checks elsewhere
// (e.g. an external collaborator wanting to know "was this account part of
// the DAO rewrite").
var DrainSet mapset.Set[common.Address]

func init() {
	list, err := parseDrainList(daoAddressesJSON)
	if err != nil {
		// The embedded asset is compiled into the binary; a parse failure here
		// means the module itself is corrupt, not a runtime condition. Panic
		// at init matches go-ethereum's dao_list.go, which does the same for
		// its embedded JSON.
		panic(errors.Wrap(err, "daofork: embedded DAO address list is corrupt"))
	}
	DrainList = list
	DrainSet = mapset.NewSet(list...)
}

func parseDrainList(raw []byte) ([]common.Address, error) {
	var hexAddrs []string
	if err := json.Unmarshal(raw, &hexAddrs); err != nil {
		return nil, err
	}
	addrs := make([]common.Address, len(hexAddrs))
	for i, h := range hexAddrs {
		addrs[i] = common.HexToAddress(h)
	}
	return addrs, nil
}

// StateRewriteUnavailable is raised when the DAO address list cannot be
// loaded. Fatal to block processing: there is no safe way to process the DAO
// fork block without it.
type StateRewriteUnavailable struct {
	cause error
}

func (e *StateRewriteUnavailable) Error() string {
	return "daofork: DAO address list unavailable: " + e.cause.Error()
}
func (e *StateRewriteUnavailable) Unwrap() error { return e.cause }

// Processor wraps an underlying BlockProcessor and performs the DAO balance
// migration before delegating to it. The schedule only binds a *Processor at
// the one DAO-init fork height; every other height uses the
// unwrapped form, so there is no per-block branching in the mainline.
type Processor struct {
	wrapped protocolspec.BlockProcessor
}

// Wrap returns a BlockProcessor that performs the one-shot DAO balance
// migration, then delegates to wrapped.
func Wrap(wrapped protocolspec.BlockProcessor) *Processor {
	return &Processor{wrapped: wrapped}
}

func (p *Processor) Name() string { return "dao-irregular-state:" + p.wrapped.Name() }

// Unwrap returns the processor this one wraps, for the fork immediately
// following the DAO fork block, whose blocks carry the required extraData
// marker but must not repeat the one-shot drain.
func (p *Processor) Unwrap() protocolspec.BlockProcessor { return p.wrapped }

// ProcessBlock performs the migration:
//  1. for each address in DrainList, in list order, move its full balance
//     into protoparams.DAORefundContract;
//  2. commit the resulting mutation;
//  3. only then delegate to the wrapped processor.
func (p *Processor) ProcessBlock(header *protocolspec.Header, updater protocolspec.WorldStateUpdater) (uint64, error) {
	if len(DrainList) == 0 {
		return 0, &StateRewriteUnavailable{cause: errors.New("drain list is empty")}
	}

	refund := protoparams.DAORefundContract
	for _, addr := range DrainList {
		balance := updater.GetBalance(addr)
		if balance.IsZero() {
			continue
		}
		current := updater.GetBalance(refund)
		next := new(uint256.Int).Add(current, balance)
		if next.Lt(current) {
			// Overflow is impossible under the total-supply invariant
			// a hit here means the supplied WorldStateUpdater
			// is feeding us corrupt balances, which we surface rather than
			// silently wrap.
			return 0, errors.Errorf("daofork: balance overflow moving %s into refund contract", addr)
		}
		updater.SetBalance(addr, new(uint256.Int))
		updater.SetBalance(refund, next)
		log.Info("drained DAO account", "address", addr, "wei", balance.String())
	}
	if err := updater.Commit(); err != nil {
		return 0, errors.Wrap(err, "daofork: committing drain before block processing")
	}

	return p.wrapped.ProcessBlock(header, updater)
}
