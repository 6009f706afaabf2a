// File: services/search/orchestrator.go
package search

import (
	"context"
	"sync"
	"time"

	"farewise/models"
	"farewise/utils"

	"go.uber.org/zap"
)

// SearchOrchestrator discovers providers for an intent and fans the search
// out across them.
type SearchOrchestrator interface {
	Orchestrate(ctx context.Context, intent models.TravelIntent) ([]models.SearchOutcome, error)
}

// DefaultSearchOrchestrator implements SearchOrchestrator with a bounded
// worker fan-out: at most MaxConcurrency provider searches run at once, each
// under its own timeout.
type DefaultSearchOrchestrator struct {
	Directory       ProviderDirectory
	Gateway         FlightGateway
	MaxConcurrency  int
	ProviderTimeout time.Duration
}

// Orchestrate validates the intent, resolves the provider set and runs the
// searches. One failing provider never aborts the batch; its failure is
// recorded in the outcome. Cancelling ctx stops the batch early.
func (s *DefaultSearchOrchestrator) Orchestrate(ctx context.Context, intent models.TravelIntent) ([]models.SearchOutcome, error) {
	if missing := intent.MissingSlots(); len(missing) > 0 {
		return nil, NewPreconditionError(missing)
	}
	intent.ApplyDefaults()

	providerIDs, err := s.resolveProviders(ctx, intent)
	if err != nil {
		return nil, err
	}

	limit := s.MaxConcurrency
	if limit < 1 {
		limit = 1
	}
	sem := make(chan struct{}, limit)
	results := make(chan models.SearchOutcome, len(providerIDs))

	var wg sync.WaitGroup
	for _, id := range providerIDs {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(providerID string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results <- models.SearchOutcome{ProviderID: providerID, Err: ctx.Err().Error()}
				return
			}

			callCtx, cancel := context.WithTimeout(ctx, s.ProviderTimeout)
			defer cancel()
			results <- s.Gateway.Search(callCtx, intent, providerID)
		}(id)
	}
	wg.Wait()
	close(results)

	outcomes := make([]models.SearchOutcome, 0, len(providerIDs))
	for outcome := range results {
		if !outcome.OK() {
			utils.GetLogger().Warn("provider search failed",
				zap.String("provider", outcome.ProviderID),
				zap.Int("status", outcome.StatusCode),
				zap.String("error", outcome.Err))
		}
		outcomes = append(outcomes, outcome)
	}
	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// resolveProviders picks the provider set for the batch. A pinned airline
// searches only that provider; empty discovery falls back to one unpinned
// search so a thin route still gets an answer.
func (s *DefaultSearchOrchestrator) resolveProviders(ctx context.Context, intent models.TravelIntent) ([]string, error) {
	if intent.Airline != "" {
		return []string{intent.Airline}, nil
	}

	descriptors, err := s.Directory.Providers(ctx, intent)
	if err != nil {
		utils.GetLogger().Warn("provider discovery failed, searching unpinned", zap.Error(err))
		return []string{""}, nil
	}
	if len(descriptors) == 0 {
		return []string{""}, nil
	}

	ids := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		ids = append(ids, d.ID)
	}
	return ids, nil
}
