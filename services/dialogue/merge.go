// File: services/dialogue/merge.go
package dialogue

import (
	"strings"

	"farewise/models"
)

// correctionSignals mark an utterance as revising something already agreed.
// Without one, a settled slot keeps its value and only empty slots accept
// newly extracted values.
var correctionSignals = []string{
	"actually", "instead", "change", "make that", "not ", "rather", "switch",
}

func isCorrection(utterance string) bool {
	text := strings.ToLower(utterance)
	for _, signal := range correctionSignals {
		if strings.Contains(text, signal) {
			return true
		}
	}
	return false
}

// mergeIntent reconciles what extraction produced against what the session
// already holds. Extraction overlays prior state, so extracted is a superset
// of prior; when the turn is not a correction, slots prior had settled are
// pinned back to their prior values.
func mergeIntent(prior, extracted models.TravelIntent, correction bool) models.TravelIntent {
	if correction {
		return extracted
	}

	out := extracted
	if prior.Source != "" {
		out.Source = prior.Source
	}
	if prior.Destination != "" {
		out.Destination = prior.Destination
	}
	if prior.DepartureDate != "" {
		out.DepartureDate = prior.DepartureDate
	}
	if prior.ReturnDate != "" {
		out.ReturnDate = prior.ReturnDate
	}
	// Cabin class and passengers keep whatever extraction decided; users
	// rarely flag cabin or headcount changes with "actually".
	if prior.Passengers != nil && extracted.Passengers == nil {
		p := *prior.Passengers
		out.Passengers = &p
	}
	return out
}
