// File: services/dialogue/questions.go
package dialogue

import (
	"fmt"
	"strings"

	"farewise/models"
)

// slotQuestions are the first-ask phrasings per missing slot.
var slotQuestions = map[models.Slot]string{
	models.SlotSource:        "Which city are you flying from?",
	models.SlotDestination:   "Where would you like to fly to?",
	models.SlotDepartureDate: "What date do you want to depart?",
	models.SlotReturnDate:    "What date would you like to return?",
}

// slotClarifications rephrase a question that was already asked and not
// answered, so the dialogue never repeats itself verbatim.
var slotClarifications = map[models.Slot]string{
	models.SlotSource:        "I still need your departure city. You can name the city or its airport code, like LHE for Lahore.",
	models.SlotDestination:   "I didn't catch your destination. Which city should I search flights to?",
	models.SlotDepartureDate: "Sorry, I couldn't read that as a date. When do you want to leave? Something like '15th August' or 'tomorrow' works.",
	models.SlotReturnDate:    "I still need your return date. When would you like to come back?",
}

// questionFor picks the next question, varying the phrasing when the same
// slot was asked about on the previous turn.
func questionFor(slot, lastAsked models.Slot) string {
	if slot == lastAsked {
		return slotClarifications[slot]
	}
	return slotQuestions[slot]
}

// summarizeIntent renders a complete intent for the confirmation turn.
func summarizeIntent(intent models.TravelIntent) string {
	filled := intent.Clone()
	filled.ApplyDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "Here's what I have: %s flight from %s to %s departing %s",
		strings.ReplaceAll(string(filled.FlightType), "_", "-"),
		filled.Source, filled.Destination, filled.DepartureDate)
	if filled.ReturnDate != "" {
		fmt.Fprintf(&b, ", returning %s", filled.ReturnDate)
	}
	fmt.Fprintf(&b, ", %s class", strings.ReplaceAll(string(filled.FlightClass), "_", " "))
	fmt.Fprintf(&b, ", %s", describePassengers(*filled.Passengers))
	if filled.Airline != "" {
		fmt.Fprintf(&b, ", on %s", filled.Airline)
	}
	b.WriteString(". Shall I search?")
	return b.String()
}

func describePassengers(p models.PassengerCount) string {
	var parts []string
	if p.Adults > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", p.Adults, plural(p.Adults, "adult", "adults")))
	}
	if p.Children > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", p.Children, plural(p.Children, "child", "children")))
	}
	if p.Infants > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", p.Infants, plural(p.Infants, "infant", "infants")))
	}
	if len(parts) == 0 {
		return "1 adult"
	}
	return strings.Join(parts, " and ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// summarizeResults renders the headline of a presented result set.
func summarizeResults(count int, failures []string) string {
	var b strings.Builder
	if count == 1 {
		b.WriteString("I found 1 flight for you.")
	} else {
		fmt.Fprintf(&b, "I found %d flights for you.", count)
	}
	if len(failures) > 0 {
		fmt.Fprintf(&b, " (%d %s didn't respond.)",
			len(failures), plural(len(failures), "airline", "airlines"))
	}
	b.WriteString(" Say something like 'only morning flights' or 'change the date' to adjust.")
	return b.String()
}
