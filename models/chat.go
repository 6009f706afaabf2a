package models

// ChatRequest is the payload coming from the presentation layer into /api/chat.
type ChatRequest struct {
	SessionID string `json:"session_id"` // empty on the first turn
	Text      string `json:"text"`
}

// Response kinds returned by the dialogue service.
const (
	KindQuestion     = "question"
	KindConfirmation = "confirmation"
	KindResults      = "results"
	KindError        = "error"
)

// ChatResponse is what one dialogue turn returns to the presentation layer.
type ChatResponse struct {
	SessionID        string         `json:"session_id"`
	Kind             string         `json:"kind"`
	Reply            string         `json:"reply"`
	State            SessionState   `json:"state"`
	Intent           TravelIntent   `json:"intent"`
	Missing          []Slot         `json:"missing,omitempty"`
	Flights          []FlightOption `json:"flights,omitempty"`
	ProviderFailures []string       `json:"provider_failures,omitempty"`
}
