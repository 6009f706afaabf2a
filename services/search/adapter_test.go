package search

import (
	"testing"
	"time"

	"farewise/models"

	"github.com/shopspring/decimal"
)

const samplePayload = `{
  "Itineraries": [
    {
      "Flights": [
        {
          "Segments": [
            {
              "OperatingCarrier": {"iata": "PA", "name": "Airblue"},
              "FlightNumber": "200",
              "From": {"iata": "LHE"},
              "To": {"iata": "KHI"},
              "DepartureAt": "2025-08-15T08:00:00+05:00",
              "ArrivalAt": "2025-08-15T09:45:00+05:00",
              "FlightTime": 105
            }
          ],
          "Fares": [
            {
              "Name": "Value",
              "ChargedBasePrice": 18500,
              "ChargedTotalPrice": 21300,
              "BaggagePolicy": [
                {"Type": "carry", "WeightLimit": 7},
                {"Type": "checked", "WeightLimit": 20}
              ],
              "Policies": [
                {"Type": "refund", "Charges": 2500}
              ]
            },
            {
              "Name": "Flexi",
              "ChargedBasePrice": 24000,
              "ChargedTotalPrice": 27600,
              "BaggagePolicy": [],
              "Policies": []
            }
          ]
        },
        {
          "Segments": [],
          "Fares": []
        }
      ]
    }
  ]
}`

func TestParseOutcome(t *testing.T) {
	outcome := models.SearchOutcome{ProviderID: "airblue", StatusCode: 200, Payload: []byte(samplePayload)}

	flights, err := ParseOutcome(outcome)
	if err != nil {
		t.Fatalf("ParseOutcome: %v", err)
	}
	if len(flights) != 1 {
		t.Fatalf("len(flights) = %d, want 1 (segment-less flight skipped)", len(flights))
	}

	f := flights[0]
	if f.ProviderID != "airblue" {
		t.Errorf("ProviderID = %q, want airblue", f.ProviderID)
	}
	if f.FlightNumber != "PA-200" {
		t.Errorf("FlightNumber = %q, want PA-200", f.FlightNumber)
	}
	if f.Airline != "Airblue" {
		t.Errorf("Airline = %q, want Airblue", f.Airline)
	}
	if f.Origin != "LHE" || f.Destination != "KHI" {
		t.Errorf("route = %s-%s, want LHE-KHI", f.Origin, f.Destination)
	}
	if f.DurationMinutes != 105 {
		t.Errorf("DurationMinutes = %d, want 105", f.DurationMinutes)
	}
	wantDep := time.Date(2025, time.August, 15, 8, 0, 0, 0, time.FixedZone("", 5*3600))
	if !f.DepartureAt.Equal(wantDep) {
		t.Errorf("DepartureAt = %v, want %v", f.DepartureAt, wantDep)
	}

	if len(f.Fares) != 2 {
		t.Fatalf("len(Fares) = %d, want 2", len(f.Fares))
	}
	value := f.Fares[0]
	if !value.TotalPrice.Equal(decimal.NewFromInt(21300)) {
		t.Errorf("TotalPrice = %v, want 21300", value.TotalPrice)
	}
	if value.Currency != "PKR" {
		t.Errorf("Currency = %q, want PKR default", value.Currency)
	}
	if value.HandBaggageKg != 7 || value.CheckedBaggageKg != 20 {
		t.Errorf("baggage = (%v, %v), want (7, 20)", value.HandBaggageKg, value.CheckedBaggageKg)
	}
	if !value.Refundable || !value.RefundFee.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("refund = (%v, %v), want refundable with fee 2500", value.Refundable, value.RefundFee)
	}

	flexi := f.Fares[1]
	if flexi.Refundable {
		t.Errorf("fare without refund policy reported refundable")
	}

	lowest, ok := f.LowestTotal()
	if !ok || !lowest.Equal(decimal.NewFromInt(21300)) {
		t.Errorf("LowestTotal = (%v, %v), want 21300", lowest, ok)
	}
}

func TestParseOutcome_EmptyItineraries(t *testing.T) {
	outcome := models.SearchOutcome{ProviderID: "pia", StatusCode: 200, Payload: []byte(`{"Itineraries":[]}`)}
	flights, err := ParseOutcome(outcome)
	if err != nil {
		t.Fatalf("ParseOutcome: %v", err)
	}
	if len(flights) != 0 {
		t.Errorf("len(flights) = %d, want 0", len(flights))
	}
}

func TestParseOutcome_Malformed(t *testing.T) {
	outcome := models.SearchOutcome{ProviderID: "pia", StatusCode: 200, Payload: []byte(`not json`)}
	if _, err := ParseOutcome(outcome); err == nil {
		t.Error("expected error for malformed payload")
	}
}
