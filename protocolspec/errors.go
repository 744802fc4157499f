package protocolspec

import "fmt"

// IncompleteSpec is raised by Builder.Build when a required ProtocolSpec
// field was never bound.
type IncompleteSpec struct {
	Field string
}

func (e *IncompleteSpec) Error() string {
	return fmt.Sprintf("protocolspec: incomplete spec, missing required field %q", e.Field)
}

// InvalidConfig is raised when a configuration value is out of range. The
// one check Build makes is for a negative stack size limit; a London fee
// market with no configured base fee and zero-base-fee not set is not
// rejected, it seeds from feemarket.InitialBaseFee.
type InvalidConfig struct {
	Reason string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("protocolspec: invalid config: %s", e.Reason)
}
