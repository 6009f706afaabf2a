// File: services/search/adapter.go
package search

import (
	"encoding/json"
	"fmt"
	"time"

	"farewise/models"

	"github.com/shopspring/decimal"
)

// Partner wire shapes. Only the fields the normalizer reads are declared.
type skyResponse struct {
	Itineraries []skyItinerary `json:"Itineraries"`
}

type skyItinerary struct {
	Flights []skyFlight `json:"Flights"`
}

type skyFlight struct {
	Segments []skySegment `json:"Segments"`
	Fares    []skyFare    `json:"Fares"`
}

type skySegment struct {
	OperatingCarrier skyCarrier `json:"OperatingCarrier"`
	FlightNumber     string     `json:"FlightNumber"`
	From             skyAirport `json:"From"`
	To               skyAirport `json:"To"`
	DepartureAt      string     `json:"DepartureAt"`
	ArrivalAt        string     `json:"ArrivalAt"`
	FlightTime       int        `json:"FlightTime"`
}

type skyCarrier struct {
	IATA string `json:"iata"`
	Name string `json:"name"`
}

type skyAirport struct {
	IATA string `json:"iata"`
}

type skyFare struct {
	Name              string          `json:"Name"`
	Currency          string          `json:"Currency"`
	ChargedBasePrice  decimal.Decimal `json:"ChargedBasePrice"`
	ChargedTotalPrice decimal.Decimal `json:"ChargedTotalPrice"`
	BaggagePolicy     []skyBaggage    `json:"BaggagePolicy"`
	Policies          []skyPolicy     `json:"Policies"`
}

type skyBaggage struct {
	Type        string  `json:"Type"`
	WeightLimit float64 `json:"WeightLimit"`
}

type skyPolicy struct {
	Type    string          `json:"Type"`
	Charges decimal.Decimal `json:"Charges"`
}

// ParseOutcome normalizes one successful provider payload into flight
// options. Flights without segments are skipped; an itinerary-free payload
// is an empty result, not an error.
func ParseOutcome(outcome models.SearchOutcome) ([]models.FlightOption, error) {
	var resp skyResponse
	if err := json.Unmarshal(outcome.Payload, &resp); err != nil {
		return nil, fmt.Errorf("decode provider %q payload: %w", outcome.ProviderID, err)
	}

	var flights []models.FlightOption
	for _, itin := range resp.Itineraries {
		for _, f := range itin.Flights {
			if len(f.Segments) == 0 {
				continue
			}
			seg := f.Segments[0]
			opt := models.FlightOption{
				ProviderID:      outcome.ProviderID,
				Airline:         seg.OperatingCarrier.Name,
				FlightNumber:    seg.OperatingCarrier.IATA + "-" + seg.FlightNumber,
				Origin:          seg.From.IATA,
				Destination:     seg.To.IATA,
				DepartureAt:     parseSkyTime(seg.DepartureAt),
				ArrivalAt:       parseSkyTime(seg.ArrivalAt),
				DurationMinutes: seg.FlightTime,
			}
			for _, fare := range f.Fares {
				opt.Fares = append(opt.Fares, normalizeFare(fare))
			}
			flights = append(flights, opt)
		}
	}
	return flights, nil
}

func normalizeFare(fare skyFare) models.FareOption {
	out := models.FareOption{
		Name:       fare.Name,
		BasePrice:  fare.ChargedBasePrice,
		TotalPrice: fare.ChargedTotalPrice,
		Currency:   fare.Currency,
	}
	if out.Currency == "" {
		out.Currency = "PKR"
	}
	for _, b := range fare.BaggagePolicy {
		switch b.Type {
		case "carry":
			out.HandBaggageKg = b.WeightLimit
		case "checked":
			out.CheckedBaggageKg = b.WeightLimit
		}
	}
	for _, p := range fare.Policies {
		if p.Type == "refund" {
			out.RefundFee = p.Charges
			out.Refundable = p.Charges.GreaterThan(decimal.Zero)
			break
		}
	}
	return out
}

// parseSkyTime reads the partner's RFC 3339 timestamps. Unparseable values
// become the zero time rather than dropping the flight.
func parseSkyTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
