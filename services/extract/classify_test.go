package extract

import (
	"testing"

	"farewise/models"
)

func TestExtractFlightType(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     models.FlightType
		explicit bool
	}{
		{"round trip", "round trip to karachi", models.FlightTypeReturn, true},
		{"return keyword", "and return on friday", models.FlightTypeReturn, true},
		{"coming back", "coming back next week", models.FlightTypeReturn, true},
		{"both ways", "book both ways", models.FlightTypeReturn, true},
		{"plain request defaults one way", "from lahore to karachi tomorrow", models.FlightTypeOneWay, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, explicit := extractFlightType(tt.text)
			if got != tt.want || explicit != tt.explicit {
				t.Errorf("extractFlightType(%q) = (%v, %v), want (%v, %v)",
					tt.text, got, explicit, tt.want, tt.explicit)
			}
		})
	}
}

func TestExtractFlightClass(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		prior models.FlightClass
		want  models.FlightClass
	}{
		{"business", "business class please", "", models.ClassBusiness},
		{"executive", "executive cabin", "", models.ClassBusiness},
		{"economy", "cheapest economy fare", "", models.ClassEconomy},
		{"coach", "coach is fine", "", models.ClassEconomy},
		{"first", "first class", "", models.ClassFirst},
		{"luxury", "something luxury", "", models.ClassFirst},
		{"premium economy beats economy", "premium economy please", "", models.ClassPremiumEconomy},
		{"premium alone", "premium cabin", "", models.ClassPremiumEconomy},
		{"business trip context", "flying out for a business trip", "", models.ClassBusiness},
		{"context does not override prior", "it's for work trip purposes", models.ClassEconomy, ""},
		{"no class", "from lahore to karachi", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractFlightClass(tt.text, tt.prior); got != tt.want {
				t.Errorf("extractFlightClass(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractAirline(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"pia", "only pia flights please", "PIA"},
		{"full name", "pakistan international please", "PIA"},
		{"airblue", "prefer airblue", "Airblue"},
		{"serene spaced", "on serene air", "SereneAir"},
		{"none", "any airline works", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractAirline(tt.text); got != tt.want {
				t.Errorf("extractAirline(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
