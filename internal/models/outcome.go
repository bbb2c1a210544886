package models

import "time"

// Resolution outcome constants
const (
	OutcomeModel                = "model"
	OutcomeSearch               = "search"
	OutcomeSearchEmpty          = "search_empty"
	OutcomeSearchStatusError    = "search_status_error"
	OutcomeSearchTransportError = "search_transport_error"
)

// Channels a question can arrive on.
const (
	ChannelHTTP  = "http"
	ChannelQueue = "queue"
	ChannelCLI   = "cli"
)

// Outcomes lists every resolution outcome in a stable order.
var Outcomes = []string{
	OutcomeModel,
	OutcomeSearch,
	OutcomeSearchEmpty,
	OutcomeSearchStatusError,
	OutcomeSearchTransportError,
}

// ResolutionOutcome is a per-channel count of resolutions ending in one outcome.
type ResolutionOutcome struct {
	Outcome    string
	Channel    string
	Count      int64
	LastSeenAt time.Time
}

// IsFallback reports whether the outcome came from the search fallback path.
func (o *ResolutionOutcome) IsFallback() bool {
	return o.Outcome != OutcomeModel
}
