package domain

import dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"

// Valuation is a dataset's sensitivity classification. Valuations form a
// strict total order: OPEN < INTERNAL < SHIELDED < SENSITIVE. A role whose
// ceiling is X may access any dataset classified at or below X.
type Valuation string

const (
	ValuationOpen      Valuation = "OPEN"
	ValuationInternal  Valuation = "INTERNAL"
	ValuationShielded  Valuation = "SHIELDED"
	ValuationSensitive Valuation = "SENSITIVE"
)

// valuationLevels is the single source of truth for the ordering. Zero means
// unknown, which grants nothing and is granted by nothing.
var valuationLevels = map[Valuation]int{
	ValuationOpen:      1,
	ValuationInternal:  2,
	ValuationShielded:  3,
	ValuationSensitive: 4,
}

// ParseValuation constructs a Valuation from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseValuation(s string) (Valuation, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "valuation cannot be empty")
	}
	v := Valuation(s)
	if !v.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid valuation")
	}
	return v, nil
}

// IsValid checks if the valuation is one of the supported enum values.
func (v Valuation) IsValid() bool {
	return valuationLevels[v] != 0
}

// Level returns the position of the valuation in the total order, or 0 for an
// unknown valuation.
func (v Valuation) Level() int {
	return valuationLevels[v]
}

// Grants reports whether a role with ceiling v may access a dataset classified
// as requested. It is reflexive: every valid valuation grants itself.
func (v Valuation) Grants(requested Valuation) bool {
	max, req := valuationLevels[v], valuationLevels[requested]
	if max == 0 || req == 0 {
		return false
	}
	return max >= req
}

// String returns the string representation of the valuation.
func (v Valuation) String() string {
	return string(v)
}
