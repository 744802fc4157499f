// Package receipts implements the four transaction-receipt encodings
// that have existed on mainnet, selected per-fork by the builder. Grounded
// in go-ethereum's core/types receipt status constants
// (ReceiptStatusFailed/ReceiptStatusSuccessful) and the pre/post-Byzantium
// PostState/Status split.
package receipts

import "github.com/kevinbogner/besu/protocolspec"

const (
	StatusFailed     = uint64(0)
	StatusSuccessful = uint64(1)
)

// StateRootFactory is the pre-Byzantium receipt variant: the receipt carries
// the post-transaction state root instead of a status code, because
// Byzantium's status byte (EIP-658) didn't exist yet.
type StateRootFactory struct{}

func (StateRootFactory) Name() string { return "state-root" }

func (StateRootFactory) Build(in protocolspec.ReceiptInput) protocolspec.Receipt {
	return protocolspec.Receipt{
		Variant:           "state-root",
		PostState:         in.PostStateRoot[:],
		CumulativeGasUsed: in.CumulativeGasUsed,
		GasUsed:           in.GasUsed,
		Logs:              in.Logs,
	}
}

// StatusWithReasonFactory is the Byzantium variant (EIP-658): a 0/1 status
// byte replaces the state root. A REVERT's reason string is carried only
// when the transaction failed and the chain's genesis options enabled
// revert reasons; with EnableRevertReason false this degrades to plain
// status-byte behavior.
type StatusWithReasonFactory struct {
	EnableRevertReason bool
}

func (StatusWithReasonFactory) Name() string { return "status-with-reason" }

func (f StatusWithReasonFactory) Build(in protocolspec.ReceiptInput) protocolspec.Receipt {
	r := protocolspec.Receipt{
		Variant:           "status-with-reason",
		Status:            statusOf(in.Success),
		CumulativeGasUsed: in.CumulativeGasUsed,
		GasUsed:           in.GasUsed,
		Logs:              in.Logs,
	}
	if !in.Success && f.EnableRevertReason {
		r.RevertReason = in.RevertReason
	}
	return r
}

// TypedFactory is the Berlin+ variant (EIP-2718): the receipt additionally
// carries the transaction type byte, so a typed transaction's receipt can be
// told apart from a legacy one on the wire.
type TypedFactory struct {
	EnableRevertReason bool
}

func (TypedFactory) Name() string { return "typed" }

func (f TypedFactory) Build(in protocolspec.ReceiptInput) protocolspec.Receipt {
	r := protocolspec.Receipt{
		Variant:           "typed",
		Type:              in.TxType,
		Status:            statusOf(in.Success),
		CumulativeGasUsed: in.CumulativeGasUsed,
		GasUsed:           in.GasUsed,
		Logs:              in.Logs,
	}
	if !in.Success && f.EnableRevertReason {
		r.RevertReason = in.RevertReason
	}
	return r
}

func statusOf(success bool) uint64 {
	if success {
		return StatusSuccessful
	}
	return StatusFailed
}
