package audit

import "time"

// AccessEvent is the audit record emitted for every completed access
// decision. It carries the full request descriptor plus the outcome and the
// role cited by the first-match evaluation.
type AccessEvent struct {
	EventID     string    `json:"eventId"`
	UserID      string    `json:"userId"`
	Privilege   string    `json:"privilege"`
	Path        string    `json:"path"`
	Valuation   string    `json:"valuation"`
	State       string    `json:"state"`
	Allowed     bool      `json:"allowed"`
	MatchedRole string    `json:"matchedRole,omitempty"`
	ObservedAt  time.Time `json:"observedAt"`
}
