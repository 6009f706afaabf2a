// File: services/ai/counter.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"farewise/models"
)

const passengerPrompt = `Count the travellers in this flight request.
Reply with only a JSON object like {"adults":2,"children":1,"infants":0}.
Adults are 12 or older, children 2 to 11, infants under 2.
If the text does not mention travellers at all, reply {"adults":0,"children":0,"infants":0}.

Text: %q`

// GeminiPassengerCounter asks the model for a passenger breakdown when the
// rule pass could not resolve one.
type GeminiPassengerCounter struct {
	Gen TextGenerator
}

func (g *GeminiPassengerCounter) CountPassengers(ctx context.Context, text string) (models.PassengerCount, bool, error) {
	raw, err := g.Gen.GenerateContent(ctx, fmt.Sprintf(passengerPrompt, text))
	if err != nil {
		return models.PassengerCount{}, false, err
	}

	var pc models.PassengerCount
	if err := json.Unmarshal([]byte(stripFences(raw)), &pc); err != nil {
		return models.PassengerCount{}, false, fmt.Errorf("parse passenger count: %w", err)
	}
	if pc.Total() <= 0 {
		return models.PassengerCount{}, false, nil
	}
	return pc, true, nil
}

// stripFences removes the markdown code fences the model sometimes wraps
// JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
