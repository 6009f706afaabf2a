package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FareOption is one priced product attached to a flight. Monetary values
// always carry the currency they were quoted in.
type FareOption struct {
	Name             string          `json:"name"`
	BasePrice        decimal.Decimal `json:"base_price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	Currency         string          `json:"currency"`
	HandBaggageKg    float64         `json:"hand_baggage_kg"`
	CheckedBaggageKg float64         `json:"checked_baggage_kg"`
	Refundable       bool            `json:"refundable"`
	RefundFee        decimal.Decimal `json:"refund_fee"`
}

// FlightOption is one flight with its fare ladder, normalized from whatever
// shape the provider returned.
type FlightOption struct {
	ProviderID      string       `json:"provider_id"`
	Airline         string       `json:"airline"`
	FlightNumber    string       `json:"flight_number"`
	Origin          string       `json:"origin"`
	Destination     string       `json:"destination"`
	DepartureAt     time.Time    `json:"departure_at"`
	ArrivalAt       time.Time    `json:"arrival_at"`
	DurationMinutes int          `json:"duration_minutes"`
	Fares           []FareOption `json:"fares"`
}

// LowestTotal returns the cheapest total fare on the flight, and false when
// the flight carries no fares at all.
func (f FlightOption) LowestTotal() (decimal.Decimal, bool) {
	if len(f.Fares) == 0 {
		return decimal.Zero, false
	}
	lowest := f.Fares[0].TotalPrice
	for _, fare := range f.Fares[1:] {
		if fare.TotalPrice.LessThan(lowest) {
			lowest = fare.TotalPrice
		}
	}
	return lowest, true
}
