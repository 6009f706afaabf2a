package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farewise/config"
	"farewise/models"
)

func TestNewSkyGateway(t *testing.T) {
	prev := config.AppConfig.ProviderTimeoutSecs
	config.AppConfig.ProviderTimeoutSecs = 30
	t.Cleanup(func() { config.AppConfig.ProviderTimeoutSecs = prev })

	cfg := &config.Config{
		SkyAuthURL:      "https://partner.example/auth",
		SkySearchURL:    "https://partner.example/search",
		SkyProvidersURL: "https://partner.example/providers",
		SkyUsername:     "partner",
		SkyPassword:     "secret",
	}
	gw := NewSkyGateway(cfg)

	if gw.AuthURL != cfg.SkyAuthURL || gw.SearchURL != cfg.SkySearchURL || gw.Username != "partner" {
		t.Errorf("gateway endpoints = %+v", gw)
	}
	if gw.Client.Timeout != 30*time.Second {
		t.Errorf("Client.Timeout = %v, want 30s", gw.Client.Timeout)
	}
}

func newTestGateway(t *testing.T) (*SkyGateway, *int) {
	t.Helper()
	authCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		authCalls++
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode auth body: %v", err)
		}
		if creds["username"] != "partner" || creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"Token": "tok-123"})
	})
	mux.HandleFunc("/providers", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]map[string]string{
			{"ContentProvider": "airblue"},
			{"ContentProvider": "pia"},
			{"name": "serene_air"},
		})
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var payload skySearchPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode search body: %v", err)
		}
		if payload.Currency != "PKR" || len(payload.Locations) != 2 {
			t.Errorf("unexpected payload: %+v", payload)
		}
		w.Write([]byte(`{"Itineraries":[]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &SkyGateway{
		AuthURL:      srv.URL + "/auth",
		SearchURL:    srv.URL + "/search",
		ProvidersURL: srv.URL + "/providers",
		Username:     "partner",
		Password:     "secret",
		Client:       &http.Client{Timeout: 5 * time.Second},
	}, &authCalls
}

func TestSkyGateway_Providers(t *testing.T) {
	gw, authCalls := newTestGateway(t)

	providers, err := gw.Providers(context.Background(), completeIntent())
	if err != nil {
		t.Fatalf("Providers: %v", err)
	}
	if len(providers) != 3 {
		t.Fatalf("len(providers) = %d, want 3", len(providers))
	}
	if providers[0].ID != "airblue" || providers[2].ID != "serene_air" {
		t.Errorf("providers = %+v", providers)
	}
	if providers[0].Route != "LHE-KHI" {
		t.Errorf("Route = %q, want LHE-KHI", providers[0].Route)
	}
	if *authCalls != 1 {
		t.Errorf("auth called %d times, want 1", *authCalls)
	}
}

func TestSkyGateway_SearchReusesToken(t *testing.T) {
	gw, authCalls := newTestGateway(t)

	for i := 0; i < 3; i++ {
		outcome := gw.Search(context.Background(), completeIntent(), "airblue")
		if !outcome.OK() {
			t.Fatalf("outcome = %+v, want success", outcome)
		}
	}
	if *authCalls != 1 {
		t.Errorf("auth called %d times, want 1", *authCalls)
	}
}

func TestSkyGateway_RefreshesTokenOnUnauthorized(t *testing.T) {
	gw, authCalls := newTestGateway(t)
	gw.token = "stale-token"

	outcome := gw.Search(context.Background(), completeIntent(), "airblue")
	if !outcome.OK() {
		t.Fatalf("outcome = %+v, want success after token refresh", outcome)
	}
	if *authCalls != 1 {
		t.Errorf("auth called %d times, want 1", *authCalls)
	}
}

func TestSkyGateway_FailureRecordedInOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth" {
			json.NewEncoder(w).Encode(map[string]string{"Token": "tok-123"})
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	gw := &SkyGateway{
		AuthURL:   srv.URL + "/auth",
		SearchURL: srv.URL + "/search",
		Username:  "partner",
		Password:  "secret",
		Client:    &http.Client{Timeout: 5 * time.Second},
	}

	outcome := gw.Search(context.Background(), completeIntent(), "pia")
	if outcome.OK() {
		t.Fatalf("outcome = %+v, want failure", outcome)
	}
	if outcome.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", outcome.StatusCode)
	}
}

func TestBuildSearchPayload(t *testing.T) {
	intent := models.TravelIntent{
		Source:        "ISB",
		Destination:   "LHE",
		FlightType:    models.FlightTypeReturn,
		FlightClass:   models.ClassBusiness,
		DepartureDate: "2025-08-15",
		ReturnDate:    "2025-08-20",
		Passengers:    &models.PassengerCount{Adults: 2, Children: 1},
	}

	payload := buildSearchPayload(intent, "pia")

	if payload.TripType != "return" || payload.TravelClass != "business" {
		t.Errorf("trip/class = (%q, %q), want (return, business)", payload.TripType, payload.TravelClass)
	}
	if len(payload.TravelingDates) != 2 || payload.TravelingDates[1] != "2025-08-20" {
		t.Errorf("TravelingDates = %v", payload.TravelingDates)
	}
	if len(payload.Travelers) != 2 {
		t.Fatalf("Travelers = %v, want adult and child entries", payload.Travelers)
	}
	if payload.Travelers[0].Type != "adult" || payload.Travelers[0].Count != 2 {
		t.Errorf("Travelers[0] = %+v", payload.Travelers[0])
	}
	if payload.ContentProvider != "pia" {
		t.Errorf("ContentProvider = %q, want pia", payload.ContentProvider)
	}
}

func TestBuildSearchPayload_Defaults(t *testing.T) {
	intent := models.TravelIntent{
		Source:        "LHE",
		Destination:   "KHI",
		DepartureDate: "2025-08-15",
	}

	payload := buildSearchPayload(intent, "")

	if payload.TripType != "one_way" || payload.TravelClass != "economy" {
		t.Errorf("defaults = (%q, %q), want (one_way, economy)", payload.TripType, payload.TravelClass)
	}
	if len(payload.Travelers) != 1 || payload.Travelers[0].Count != 1 {
		t.Errorf("Travelers = %v, want one adult", payload.Travelers)
	}
	if payload.ContentProvider != "" {
		t.Errorf("ContentProvider = %q, want empty", payload.ContentProvider)
	}
}
