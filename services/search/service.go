// File: services/search/service.go
package search

import (
	"context"

	"farewise/models"
	"farewise/utils"

	"go.uber.org/zap"
)

// Service is the entry point the dialogue and HTTP layers use to run a
// flight search.
type Service interface {
	ExecuteSearch(ctx context.Context, intent models.TravelIntent) (*Result, error)
}

// Result is an aggregated search answer: the merged flight list plus the
// providers that failed to contribute.
type Result struct {
	Flights          []models.FlightOption `json:"flights"`
	ProviderFailures []string              `json:"provider_failures,omitempty"`
}

// DefaultService wires the orchestrator to the normalizer and aggregator.
type DefaultService struct {
	Orchestrator SearchOrchestrator
}

// ExecuteSearch runs the full pipeline. Partial provider failure degrades
// the result; only a batch where nothing succeeded becomes
// ErrNoProvidersAvailable.
func (s *DefaultService) ExecuteSearch(ctx context.Context, intent models.TravelIntent) (*Result, error) {
	outcomes, err := s.Orchestrator.Orchestrate(ctx, intent)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	var batches [][]models.FlightOption
	succeeded := 0
	for _, outcome := range outcomes {
		if !outcome.OK() {
			result.ProviderFailures = append(result.ProviderFailures, outcome.ProviderID)
			continue
		}
		flights, err := ParseOutcome(outcome)
		if err != nil {
			utils.GetLogger().Warn("discarding malformed provider payload",
				zap.String("provider", outcome.ProviderID), zap.Error(err))
			result.ProviderFailures = append(result.ProviderFailures, outcome.ProviderID)
			continue
		}
		succeeded++
		batches = append(batches, flights)
	}

	if succeeded == 0 {
		return nil, ErrNoProvidersAvailable
	}

	result.Flights = Aggregate(batches)
	return result, nil
}
