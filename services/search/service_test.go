package search

import (
	"context"
	"errors"
	"testing"

	"farewise/models"
)

type fakeOrchestrator struct {
	outcomes []models.SearchOutcome
	err      error
}

func (f *fakeOrchestrator) Orchestrate(context.Context, models.TravelIntent) ([]models.SearchOutcome, error) {
	return f.outcomes, f.err
}

func TestExecuteSearch_AllProvidersFail(t *testing.T) {
	svc := &DefaultService{Orchestrator: &fakeOrchestrator{
		outcomes: []models.SearchOutcome{
			{ProviderID: "pia", StatusCode: 500, Err: "provider returned status 500"},
			{ProviderID: "airblue", Err: "connection refused"},
		},
	}}

	_, err := svc.ExecuteSearch(context.Background(), completeIntent())
	if !errors.Is(err, ErrNoProvidersAvailable) {
		t.Fatalf("err = %v, want ErrNoProvidersAvailable", err)
	}
}

func TestExecuteSearch_PartialFailureDegrades(t *testing.T) {
	svc := &DefaultService{Orchestrator: &fakeOrchestrator{
		outcomes: []models.SearchOutcome{
			{ProviderID: "airblue", StatusCode: 200, Payload: []byte(samplePayload)},
			{ProviderID: "pia", StatusCode: 500, Err: "provider returned status 500"},
		},
	}}

	result, err := svc.ExecuteSearch(context.Background(), completeIntent())
	if err != nil {
		t.Fatalf("ExecuteSearch: %v", err)
	}
	if len(result.Flights) != 1 {
		t.Errorf("len(Flights) = %d, want 1", len(result.Flights))
	}
	if len(result.ProviderFailures) != 1 || result.ProviderFailures[0] != "pia" {
		t.Errorf("ProviderFailures = %v, want [pia]", result.ProviderFailures)
	}
}

func TestExecuteSearch_MalformedPayloadCountsAsFailure(t *testing.T) {
	svc := &DefaultService{Orchestrator: &fakeOrchestrator{
		outcomes: []models.SearchOutcome{
			{ProviderID: "airblue", StatusCode: 200, Payload: []byte(`garbage`)},
			{ProviderID: "pia", StatusCode: 200, Payload: []byte(`{"Itineraries":[]}`)},
		},
	}}

	result, err := svc.ExecuteSearch(context.Background(), completeIntent())
	if err != nil {
		t.Fatalf("ExecuteSearch: %v", err)
	}
	if len(result.ProviderFailures) != 1 || result.ProviderFailures[0] != "airblue" {
		t.Errorf("ProviderFailures = %v, want [airblue]", result.ProviderFailures)
	}
	if len(result.Flights) != 0 {
		t.Errorf("len(Flights) = %d, want 0", len(result.Flights))
	}
}

func TestExecuteSearch_OrchestratorErrorPropagates(t *testing.T) {
	wantErr := NewPreconditionError([]models.Slot{models.SlotSource})
	svc := &DefaultService{Orchestrator: &fakeOrchestrator{err: wantErr}}

	_, err := svc.ExecuteSearch(context.Background(), models.TravelIntent{})
	var precondition *PreconditionError
	if !errors.As(err, &precondition) {
		t.Fatalf("err = %v, want PreconditionError", err)
	}
}
