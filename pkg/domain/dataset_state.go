package domain

import dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"

// DatasetState is the lifecycle stage a dataset passes through. States carry
// no ordering; access rules use membership only.
type DatasetState string

const (
	StateRaw       DatasetState = "RAW"
	StateInput     DatasetState = "INPUT"
	StateProcessed DatasetState = "PROCESSED"
	StateOutput    DatasetState = "OUTPUT"
	StateOther     DatasetState = "OTHER"
)

// validDatasetStates is the single source of truth for valid states.
var validDatasetStates = map[DatasetState]bool{
	StateRaw:       true,
	StateInput:     true,
	StateProcessed: true,
	StateOutput:    true,
	StateOther:     true,
}

// ParseDatasetState constructs a DatasetState from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseDatasetState(s string) (DatasetState, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "dataset state cannot be empty")
	}
	st := DatasetState(s)
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid dataset state")
	}
	return st, nil
}

// IsValid checks if the state is one of the supported enum values.
func (s DatasetState) IsValid() bool {
	return validDatasetStates[s]
}

// String returns the string representation of the state.
func (s DatasetState) String() string {
	return string(s)
}
