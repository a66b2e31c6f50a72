package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
//   - ErrNotFound: document does not exist in the store. This is a normal
//     branch, never a failure: the decision engine treats a missing user or
//     role as data.
//   - ErrUnavailable: backing store unreachable; also drives the readiness
//     monitor's passive unhealthy signal.
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
