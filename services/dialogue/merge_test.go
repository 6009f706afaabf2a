package dialogue

import (
	"testing"

	"farewise/models"
)

func TestIsCorrection(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"actually make that business class", true},
		{"no, not karachi, multan instead", true},
		{"change the date", true},
		{"from lahore to karachi", false},
		{"tomorrow please", false},
	}
	for _, tt := range tests {
		if got := isCorrection(tt.text); got != tt.want {
			t.Errorf("isCorrection(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestMergeIntent(t *testing.T) {
	prior := models.TravelIntent{
		Source:        "LHE",
		Destination:   "KHI",
		FlightType:    models.FlightTypeOneWay,
		DepartureDate: "2025-08-15",
		Passengers:    &models.PassengerCount{Adults: 2},
	}

	t.Run("settled slots pinned without correction", func(t *testing.T) {
		extracted := prior.Clone()
		extracted.Source = "ISB"
		extracted.DepartureDate = "2025-08-20"

		got := mergeIntent(prior, extracted, false)
		if got.Source != "LHE" || got.DepartureDate != "2025-08-15" {
			t.Errorf("merged = %+v, want prior slots kept", got)
		}
	})

	t.Run("correction lets extraction win", func(t *testing.T) {
		extracted := prior.Clone()
		extracted.Source = "ISB"

		got := mergeIntent(prior, extracted, true)
		if got.Source != "ISB" {
			t.Errorf("Source = %q, want ISB", got.Source)
		}
	})

	t.Run("empty slots always fill", func(t *testing.T) {
		open := models.TravelIntent{Source: "LHE"}
		extracted := open.Clone()
		extracted.Destination = "KHI"

		got := mergeIntent(open, extracted, false)
		if got.Destination != "KHI" {
			t.Errorf("Destination = %q, want KHI", got.Destination)
		}
	})

	t.Run("passengers survive when extraction silent", func(t *testing.T) {
		extracted := prior.Clone()
		extracted.Passengers = nil

		got := mergeIntent(prior, extracted, false)
		if got.Passengers == nil || got.Passengers.Adults != 2 {
			t.Errorf("Passengers = %+v, want prior 2 adults", got.Passengers)
		}
	})
}
