// File: services/extract/extractor.go
package extract

import (
	"context"
	"time"

	"farewise/models"
	"farewise/utils"

	"go.uber.org/zap"
)

// Extractor turns a free-text utterance into structured travel intent,
// layered on whatever a prior turn already resolved. Running it again over
// the same utterance and intent yields the same intent.
type Extractor struct {
	Gazetteer *Gazetteer
	Corrector *Corrector
	Counter   PassengerCounter
	Now       func() time.Time
}

func NewExtractor(counter PassengerCounter) *Extractor {
	g := NewGazetteer()
	return &Extractor{
		Gazetteer: g,
		Corrector: NewCorrector(g),
		Counter:   counter,
		Now:       time.Now,
	}
}

// Extract parses utterance and overlays anything it resolves onto prior.
// Fields the utterance says nothing about keep their prior value; an empty
// utterance returns prior unchanged.
func (e *Extractor) Extract(ctx context.Context, utterance string, prior models.TravelIntent) (models.TravelIntent, error) {
	out := prior.Clone()
	text := normalize(utterance)
	if text == "" {
		return out, nil
	}
	text = e.Corrector.CorrectText(text)

	if src, dst := e.extractCities(text); src != "" || dst != "" {
		if src != "" {
			out.Source = src
		}
		if dst != "" && dst != out.Source {
			out.Destination = dst
		}
	}

	if ft, explicit := extractFlightType(text); explicit {
		out.FlightType = ft
	} else if out.FlightType == "" {
		out.FlightType = models.FlightTypeOneWay
	}

	if fc := extractFlightClass(text, prior.FlightClass); fc != "" {
		out.FlightClass = fc
	}

	if airline := extractAirline(text); airline != "" {
		out.Airline = airline
	}

	wantReturn := out.FlightType == models.FlightTypeReturn
	dep, ret := extractDates(text, e.Now(), out.DepartureDate != "", wantReturn)
	if dep != "" {
		out.DepartureDate = dep
	}
	if ret != "" && out.DepartureDate != "" {
		out.ReturnDate = ret
		if out.FlightType != models.FlightTypeReturn {
			out.FlightType = models.FlightTypeReturn
		}
	}
	// A return that does not follow the departure is a misparse; drop it
	// rather than send the partner API an impossible window.
	if out.ReturnDate != "" && out.ReturnDate <= out.DepartureDate {
		out.ReturnDate = ""
	}

	if hasPassengerSignal(text) {
		pc, ok, err := e.Counter.CountPassengers(ctx, text)
		if err != nil {
			utils.GetLogger().Warn("passenger count unresolved", zap.Error(err))
		}
		if ok && pc.Total() > 0 {
			out.Passengers = &pc
		}
	}

	return out, nil
}
