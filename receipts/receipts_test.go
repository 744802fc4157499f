package receipts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevinbogner/besu/common"
	"github.com/kevinbogner/besu/protocolspec"
)

func sampleInput(success bool) protocolspec.ReceiptInput {
	return protocolspec.ReceiptInput{
		TxType:            0x02,
		Success:           success,
		RevertReason:      []byte("out of gas"),
		PostStateRoot:     common.HexToHash("0x01"),
		CumulativeGasUsed: 100000,
		GasUsed:           21000,
	}
}

func TestStateRootFactory_CarriesPostStateNotStatus(t *testing.T) {
	r := StateRootFactory{}.Build(sampleInput(true))
	assert.Equal(t, "state-root", r.Variant)
	assert.NotEmpty(t, r.PostState)
	assert.Zero(t, r.Status)
	assert.Nil(t, r.RevertReason)
}

func TestStatusWithReasonFactory_CarriesReasonOnlyWhenEnabledAndFailed(t *testing.T) {
	enabled := StatusWithReasonFactory{EnableRevertReason: true}

	failed := enabled.Build(sampleInput(false))
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, []byte("out of gas"), failed.RevertReason)

	succeeded := enabled.Build(sampleInput(true))
	assert.Equal(t, StatusSuccessful, succeeded.Status)
	assert.Nil(t, succeeded.RevertReason)

	disabled := StatusWithReasonFactory{EnableRevertReason: false}
	failedDisabled := disabled.Build(sampleInput(false))
	assert.Nil(t, failedDisabled.RevertReason)
}

func TestTypedFactory_CarriesTransactionType(t *testing.T) {
	r := TypedFactory{EnableRevertReason: true}.Build(sampleInput(false))
	assert.Equal(t, byte(0x02), r.Type)
	assert.Equal(t, "typed", r.Variant)
	assert.Equal(t, []byte("out of gas"), r.RevertReason)
}
