package models

import "time"

// ProviderDescriptor identifies one searchable content provider for a route.
type ProviderDescriptor struct {
	ID        string    `json:"id"`
	Route     string    `json:"route"`
	FetchedAt time.Time `json:"fetched_at"`
}

// SearchOutcome is the raw result of one provider search call. Failures are
// recorded, never raised; a failed outcome is excluded from aggregation but
// does not abort the batch.
type SearchOutcome struct {
	ProviderID string `json:"provider_id"`
	StatusCode int    `json:"status_code"`
	Payload    []byte `json:"-"`
	Err        string `json:"error,omitempty"`
}

// OK reports whether the outcome carries usable data.
func (o SearchOutcome) OK() bool {
	return o.Err == "" && o.StatusCode == 200
}
