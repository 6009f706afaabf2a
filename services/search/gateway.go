// File: services/search/gateway.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"farewise/config"
	"farewise/models"
	"farewise/utils"

	"go.uber.org/zap"
)

// ProviderDirectory lists the content providers able to serve a route.
type ProviderDirectory interface {
	Providers(ctx context.Context, intent models.TravelIntent) ([]models.ProviderDescriptor, error)
}

// FlightGateway runs one provider-pinned search against the partner API.
type FlightGateway interface {
	Search(ctx context.Context, intent models.TravelIntent, providerID string) models.SearchOutcome
}

// SkyGateway talks to the partner flight API. It fetches a bearer token
// lazily and refreshes it when a call comes back unauthorized.
type SkyGateway struct {
	AuthURL      string
	SearchURL    string
	ProvidersURL string
	Username     string
	Password     string
	Client       *http.Client

	mu    sync.Mutex
	token string
}

func NewSkyGateway(cfg *config.Config) *SkyGateway {
	return &SkyGateway{
		AuthURL:      cfg.SkyAuthURL,
		SearchURL:    cfg.SkySearchURL,
		ProvidersURL: cfg.SkyProvidersURL,
		Username:     cfg.SkyUsername,
		Password:     cfg.SkyPassword,
		Client:       &http.Client{Timeout: config.ProviderTimeout()},
	}
}

type skyLocation struct {
	IATA string `json:"IATA"`
	Type string `json:"Type"`
}

type skyTraveler struct {
	Type  string `json:"Type"`
	Count int    `json:"Count"`
}

type skySearchPayload struct {
	Locations       []skyLocation `json:"Locations"`
	Currency        string        `json:"Currency"`
	TravelClass     string        `json:"TravelClass"`
	TripType        string        `json:"TripType"`
	TravelingDates  []string      `json:"TravelingDates"`
	Travelers       []skyTraveler `json:"Travelers"`
	ContentProvider string        `json:"ContentProvider,omitempty"`
}

type skyProvidersPayload struct {
	Locations   []skyLocation `json:"Locations"`
	TravelClass string        `json:"TravelClass"`
}

// buildSearchPayload maps a complete intent onto the partner wire format.
// Values travel in the partner's lowercase vocabulary.
func buildSearchPayload(intent models.TravelIntent, providerID string) skySearchPayload {
	intent.ApplyDefaults()

	payload := skySearchPayload{
		Locations: []skyLocation{
			{IATA: intent.Source, Type: "airport"},
			{IATA: intent.Destination, Type: "airport"},
		},
		Currency:        "PKR",
		TravelClass:     string(intent.FlightClass),
		TripType:        string(intent.FlightType),
		TravelingDates:  []string{intent.DepartureDate},
		ContentProvider: providerID,
	}
	if intent.ReturnDate != "" {
		payload.TravelingDates = append(payload.TravelingDates, intent.ReturnDate)
	}
	p := intent.Passengers
	if p.Adults > 0 {
		payload.Travelers = append(payload.Travelers, skyTraveler{Type: "adult", Count: p.Adults})
	}
	if p.Children > 0 {
		payload.Travelers = append(payload.Travelers, skyTraveler{Type: "child", Count: p.Children})
	}
	if p.Infants > 0 {
		payload.Travelers = append(payload.Travelers, skyTraveler{Type: "infant", Count: p.Infants})
	}
	return payload
}

// Providers fetches the content providers able to serve the intent's route
// and cabin. A non-200 answer yields an empty list, not an error; the caller
// falls back to an unpinned search.
func (g *SkyGateway) Providers(ctx context.Context, intent models.TravelIntent) ([]models.ProviderDescriptor, error) {
	intent.ApplyDefaults()
	payload := skyProvidersPayload{
		Locations: []skyLocation{
			{IATA: intent.Source, Type: "airport"},
			{IATA: intent.Destination, Type: "airport"},
		},
		TravelClass: string(intent.FlightClass),
	}

	status, body, err := g.post(ctx, g.ProvidersURL, payload)
	if err != nil {
		return nil, fmt.Errorf("fetch content providers: %w", err)
	}
	if status != http.StatusOK {
		utils.GetLogger().Warn("content provider listing failed",
			zap.Int("status", status))
		return nil, nil
	}

	var entries []struct {
		ContentProvider string `json:"ContentProvider"`
		Name            string `json:"name"`
		Code            string `json:"code"`
	}
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode content providers: %w", err)
	}

	route := intent.Source + "-" + intent.Destination
	now := time.Now()
	var out []models.ProviderDescriptor
	for _, e := range entries {
		id := e.ContentProvider
		if id == "" {
			id = e.Name
		}
		if id == "" {
			id = e.Code
		}
		if id != "" {
			out = append(out, models.ProviderDescriptor{ID: id, Route: route, FetchedAt: now})
		}
	}
	return out, nil
}

// Search runs one pinned search. Failures land in the outcome rather than an
// error so the orchestrator can aggregate partial results.
func (g *SkyGateway) Search(ctx context.Context, intent models.TravelIntent, providerID string) models.SearchOutcome {
	outcome := models.SearchOutcome{ProviderID: providerID}

	status, body, err := g.post(ctx, g.SearchURL, buildSearchPayload(intent, providerID))
	if err != nil {
		outcome.Err = err.Error()
		return outcome
	}
	outcome.StatusCode = status
	if status != http.StatusOK {
		outcome.Err = fmt.Sprintf("provider returned status %d", status)
		return outcome
	}
	outcome.Payload = body
	return outcome
}

// post sends an authenticated JSON request, refreshing the token once on a
// 401 before giving up.
func (g *SkyGateway) post(ctx context.Context, url string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode payload: %w", err)
	}

	token, err := g.bearerToken(ctx, false)
	if err != nil {
		return 0, nil, err
	}

	status, respBody, err := g.doPost(ctx, url, body, token)
	if err != nil {
		return 0, nil, err
	}
	if status == http.StatusUnauthorized {
		token, err = g.bearerToken(ctx, true)
		if err != nil {
			return 0, nil, err
		}
		return g.doPost(ctx, url, body, token)
	}
	return status, respBody, nil
}

func (g *SkyGateway) doPost(ctx context.Context, url string, body []byte, token string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.Client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// bearerToken returns the cached token, fetching or refetching it as needed.
func (g *SkyGateway) bearerToken(ctx context.Context, force bool) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.token != "" && !force {
		return g.token, nil
	}

	creds, err := json.Marshal(map[string]string{
		"username": g.Username,
		"password": g.Password,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.AuthURL, bytes.NewReader(creds))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth failed with status %d", resp.StatusCode)
	}

	var auth struct {
		Token string `json:"Token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("decode auth response: %w", err)
	}
	if auth.Token == "" {
		return "", fmt.Errorf("auth response carried no token")
	}
	g.token = auth.Token
	return g.token, nil
}
