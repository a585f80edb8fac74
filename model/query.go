package model

// LegalQueryRequest is the inbound payload shared by every /legal endpoint.
type LegalQueryRequest struct {
	Text      string `json:"text" binding:"required"`
	Context   string `json:"context,omitempty"`   // optional supplementary background
	TurnLimit int    `json:"turnLimit,omitempty"` // caps concatenated provider increments, default 2
}

// DefaultTurnLimit applies when the caller omits turnLimit.
const DefaultTurnLimit = 2

// EffectiveTurnLimit returns the caller-supplied limit, or def when absent or
// non-positive.
func (r LegalQueryRequest) EffectiveTurnLimit(def int) int {
	if r.TurnLimit > 0 {
		return r.TurnLimit
	}
	return def
}

// LegalQueryResponse is the envelope returned for every completed query.
type LegalQueryResponse struct {
	QueryID               string  `json:"queryId"`
	Status                string  `json:"status"`
	ResponseText          string  `json:"responseText"`
	ProcessingTimeSeconds float64 `json:"processingTimeSeconds"`
	Timestamp             string  `json:"timestamp"` // RFC 3339 completion time
}

// StatusCompleted is the only status the relay ever produces; failures are
// surfaced through the response body, not this field.
const StatusCompleted = "completed"

// StreamEvent is the data payload of a single SSE frame on /legal/stream.
type StreamEvent struct {
	Content string `json:"content,omitempty"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}
