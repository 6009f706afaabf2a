package extract

import (
	"context"
	"testing"
)

func TestExtractCities(t *testing.T) {
	e := NewExtractor(RuleCounter{})

	tests := []struct {
		name    string
		text    string
		wantSrc string
		wantDst string
	}{
		{"from to markers", "from lahore to karachi", "LHE", "KHI"},
		{"reversed markers", "to karachi from lahore", "LHE", "KHI"},
		{"iata codes", "from isb to lhe", "ISB", "LHE"},
		{"positional fallback", "lahore karachi please", "LHE", "KHI"},
		{"single city going", "i am going to multan", "", "MUX"},
		{"single city bare", "peshawar", "PEW", ""},
		{"multi word city", "from rahim yar khan to karachi", "RYK", "KHI"},
		{"rawalpindi aliases islamabad", "from rawalpindi to karachi", "ISB", "KHI"},
		{"fuzzy typo", "from lahor to karachi", "LHE", "KHI"},
		{"same city both sides", "from lahore to lahore", "LHE", ""},
		{"no cities", "next friday please", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dst := e.extractCities(tt.text)
			if src != tt.wantSrc || dst != tt.wantDst {
				t.Errorf("extractCities(%q) = (%q, %q), want (%q, %q)",
					tt.text, src, dst, tt.wantSrc, tt.wantDst)
			}
		})
	}
}

func TestExtractCities_DirectionalBeatsOrder(t *testing.T) {
	e := NewExtractor(RuleCounter{})
	// Destination named first; the markers must still bind roles correctly.
	src, dst := e.extractCities("i need to get to skardu leaving from islamabad")
	if src != "ISB" || dst != "KDU" {
		t.Errorf("got (%q, %q), want (ISB, KDU)", src, dst)
	}
}

func TestExtract_CitiesViaService(t *testing.T) {
	e := NewExtractor(RuleCounter{})
	intent, err := e.Extract(context.Background(), "From Lahore to Karachi", emptyIntent())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if intent.Source != "LHE" || intent.Destination != "KHI" {
		t.Errorf("intent = (%q, %q), want (LHE, KHI)", intent.Source, intent.Destination)
	}
}
