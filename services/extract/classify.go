package extract

import (
	"strings"

	"farewise/models"
)

// returnMarkers identify a round trip. Anything else stays one-way, which is
// the cheaper assumption to correct in a later turn.
var returnMarkers = []string{
	"round trip", "round-trip", "roundtrip", "return",
	"back to", "come back", "coming back", "two way", "two-way",
	"both ways", "and back", "return journey",
}

// classMarkers are checked in order: the premium-economy phrases contain the
// words "premium" and "economy", so they must win before either plain class.
var classMarkers = []struct {
	class   models.FlightClass
	phrases []string
}{
	{models.ClassPremiumEconomy, []string{"premium economy", "economy plus", "extra comfort", "premium", "w class"}},
	{models.ClassFirst, []string{"first class", "first-class", "f class", "luxury"}},
	{models.ClassBusiness, []string{"business", "executive", "j class"}},
	{models.ClassEconomy, []string{"economy", "cheapest", "coach", "y class"}},
}

// businessContext phrases imply business class without naming it.
var businessContext = []string{"business trip", "work trip", "corporate", "professional"}

func extractFlightType(text string) (models.FlightType, bool) {
	if containsAny(text, returnMarkers) {
		return models.FlightTypeReturn, true
	}
	return models.FlightTypeOneWay, false
}

func extractFlightClass(text string, prior models.FlightClass) models.FlightClass {
	for _, m := range classMarkers {
		if containsAny(text, m.phrases) {
			return m.class
		}
	}
	if prior == "" && containsAny(text, businessContext) {
		return models.ClassBusiness
	}
	return ""
}

// extractAirline pulls a preferred-carrier mention, if any.
var airlinesByMention = map[string]string{
	"pia":                    "PIA",
	"pakistan international": "PIA",
	"airblue":                "Airblue",
	"air blue":               "Airblue",
	"serene":                 "SereneAir",
	"serene air":             "SereneAir",
	"airsial":                "AirSial",
	"air sial":               "AirSial",
	"fly jinnah":             "Fly Jinnah",
	"flyjinnah":              "Fly Jinnah",
}

func extractAirline(text string) string {
	best := ""
	for mention := range airlinesByMention {
		if strings.Contains(text, mention) && len(mention) > len(best) {
			best = mention
		}
	}
	if best == "" {
		return ""
	}
	return airlinesByMention[best]
}
