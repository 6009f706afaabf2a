package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"farewise/models"
)

// PassengerCounter resolves passenger counts from an utterance. The boolean
// reports whether the text carried enough signal to resolve anything.
type PassengerCounter interface {
	CountPassengers(ctx context.Context, text string) (models.PassengerCount, bool, error)
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
	"a": 1, "an": 1,
}

const countAlt = `\d{1,2}|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|a|an`

var (
	adultRe   = regexp.MustCompile(`\b(` + countAlt + `)\s+adults?\b`)
	childRe   = regexp.MustCompile(`\b(` + countAlt + `)\s+(?:child(?:ren)?|kids?)\b`)
	infantRe  = regexp.MustCompile(`\b(` + countAlt + `)\s+(?:infants?|bab(?:y|ies))\b`)
	genericRe = regexp.MustCompile(`\b(` + countAlt + `)\s+(?:passengers?|people|persons?|travell?ers?|tickets?|seats?)\b`)
	ageRe     = regexp.MustCompile(`\b(\d{1,2})\s*(?:years?|yrs?)\s*old\b`)
	selfRe    = regexp.MustCompile(`\b(?:i|me|myself)\b`)
)

// Companion nouns each add one traveler of the given kind.
var (
	adultNouns = []string{"wife", "husband", "partner", "spouse", "friend", "colleague", "mother", "father", "brother", "sister"}
	childNouns = []string{"son", "daughter"}
)

// RuleCounter resolves passenger counts from explicit numbers, companion
// nouns and stated ages, without any model call.
type RuleCounter struct{}

func (RuleCounter) CountPassengers(_ context.Context, text string) (models.PassengerCount, bool, error) {
	var pc models.PassengerCount
	resolved := false

	if n, ok := firstCount(adultRe, text); ok {
		pc.Adults += n
		resolved = true
	}
	if n, ok := firstCount(childRe, text); ok {
		pc.Children += n
		resolved = true
	}
	if n, ok := firstCount(infantRe, text); ok {
		pc.Infants += n
		resolved = true
	}

	// "3 passengers" with no breakdown counts everyone as an adult.
	if !resolved {
		if n, ok := firstCount(genericRe, text); ok {
			pc.Adults = n
			resolved = true
		}
	}

	// "with my wife and two kids" style phrasing.
	if !resolved {
		companions := 0
		for _, noun := range adultNouns {
			if strings.Contains(text, noun) {
				companions++
			}
		}
		for _, noun := range childNouns {
			if strings.Contains(text, noun) {
				pc.Children++
				resolved = true
			}
		}
		if companions > 0 {
			pc.Adults += companions
			resolved = true
		}
		if resolved && selfRe.MatchString(text) {
			pc.Adults++
		}
	}

	// Stated ages are a last resort so a companion noun that also carries
	// an age is never counted twice. Under 2 is an infant, under 12 a child.
	if !resolved {
		for _, m := range ageRe.FindAllStringSubmatch(text, -1) {
			age, _ := strconv.Atoi(m[1])
			switch {
			case age < 2:
				pc.Infants++
			case age < 12:
				pc.Children++
			default:
				pc.Adults++
			}
			resolved = true
		}
	}

	if !resolved {
		return models.PassengerCount{}, false, nil
	}
	if pc.Adults == 0 {
		// Children never travel alone on these routes.
		pc.Adults = 1
	}
	return pc, true, nil
}

func firstCount(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	if n, err := strconv.Atoi(m[1]); err == nil {
		return n, true
	}
	return numberWords[m[1]], true
}

// hasPassengerSignal reports whether the utterance talks about travelers at
// all. It must cover at least the vocabulary the rule tiers can resolve,
// companion nouns and stated ages included; a signal the rules cannot resolve
// leaves the slot open for a follow-up counter instead of silently defaulting.
var passengerSignalRe = regexp.MustCompile(`\b(?:adults?|child(?:ren)?|kids?|infants?|bab(?:y|ies)|passengers?|people|persons?|travell?(?:ers?|ing)|famil(?:y|ies)|wife|husband|partner|spouse|sons?|daughters?|friends?|colleagues?|mother|father|brothers?|sisters?|tickets?|seats?)\b|\b\d{1,2}\s*(?:years?|yrs?)\s*old\b`)

func hasPassengerSignal(text string) bool {
	return passengerSignalRe.MatchString(text)
}

// FallbackCounter tries each counter in order and returns the first resolved
// count. Errors from earlier counters are swallowed so a flaky model call
// never blocks rule-based resolution behind it.
type FallbackCounter struct {
	Counters []PassengerCounter
}

func (f FallbackCounter) CountPassengers(ctx context.Context, text string) (models.PassengerCount, bool, error) {
	var lastErr error
	for _, c := range f.Counters {
		pc, ok, err := c.CountPassengers(ctx, text)
		if err != nil {
			lastErr = err
			continue
		}
		if ok {
			return pc, true, nil
		}
	}
	return models.PassengerCount{}, false, lastErr
}
