package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var weekdaysByName = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

const monthAlt = `january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec`

var (
	isoDateRe  = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	dayMonthRe = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?(?:\s+of)?\s+(` + monthAlt + `)\b`)
	monthDayRe = regexp.MustCompile(`\b(` + monthAlt + `)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	numericRe  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	bareDayRe  = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)\b`)
	weekdayRe  = regexp.MustCompile(`\b(?:next\s+)?(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
	relativeRe = regexp.MustCompile(`\bday after tomorrow\b|\btomorrow\b|\btoday\b`)

	returnMarkRe = regexp.MustCompile(`\breturn\w*\b|\bcom(?:e|ing)\s+back\b|\bback\b`)
)

// returnBindWindow is how close (in characters) a date must follow a return
// marker to bind to the return slot.
const returnBindWindow = 25

type dateMention struct {
	date time.Time
	pos  int
}

// extractDates resolves the departure and, when appropriate, return dates in
// text. Relative phrases resolve against now; a bare day-of-month rolls to
// the nearest future occurrence; a day with an explicit month that already
// passed this year rolls to next year. A date is bound to the return slot
// only when it follows a return marker and a departure is already resolved
// (from a prior turn, via departureKnown, or earlier in this utterance);
// any other date is reported as the departure and the caller decides
// whether it replaces an existing one.
func extractDates(text string, now time.Time, departureKnown, wantReturn bool) (departure, ret string) {
	now = truncateToDay(now)
	mentions := collectDateMentions(text, now)
	if len(mentions) == 0 {
		return "", ""
	}

	markers := returnMarkRe.FindAllStringIndex(text, -1)
	isReturnBound := func(pos int) bool {
		for _, m := range markers {
			if m[1] <= pos && pos-m[1] <= returnBindWindow {
				return true
			}
		}
		return false
	}

	var depDate, retDate time.Time
	var spare []time.Time
	for _, m := range mentions {
		switch {
		case isReturnBound(m.pos) && retDate.IsZero() && (departureKnown || !depDate.IsZero()):
			retDate = m.date
		case depDate.IsZero():
			depDate = m.date
		default:
			spare = append(spare, m.date)
		}
	}
	// Return trips phrased as "between X and Y" carry no marker before the
	// second date; spend a spare date on the return slot.
	if wantReturn && retDate.IsZero() && len(spare) > 0 {
		retDate = spare[0]
	}

	if !depDate.IsZero() {
		departure = depDate.Format(dateLayout)
	}
	if !retDate.IsZero() {
		ret = retDate.Format(dateLayout)
	}
	return departure, ret
}

// collectDateMentions runs the pattern passes in precedence order, masking
// each match so a broader pattern cannot be re-matched by a narrower one
// ("15th august" must not also yield a bare "15th").
func collectDateMentions(text string, now time.Time) []dateMention {
	consumed := make([]bool, len(text))
	var mentions []dateMention

	claim := func(start, end int) bool {
		for i := start; i < end; i++ {
			if consumed[i] {
				return false
			}
		}
		for i := start; i < end; i++ {
			consumed[i] = true
		}
		return true
	}

	add := func(d time.Time, pos int) {
		if !d.IsZero() {
			mentions = append(mentions, dateMention{date: d, pos: pos})
		}
	}

	for _, loc := range isoDateRe.FindAllStringSubmatchIndex(text, -1) {
		if !claim(loc[0], loc[1]) {
			continue
		}
		y, _ := strconv.Atoi(text[loc[2]:loc[3]])
		mo, _ := strconv.Atoi(text[loc[4]:loc[5]])
		d, _ := strconv.Atoi(text[loc[6]:loc[7]])
		add(validDate(y, time.Month(mo), d), loc[0])
	}

	for _, loc := range relativeRe.FindAllStringIndex(text, -1) {
		if !claim(loc[0], loc[1]) {
			continue
		}
		switch text[loc[0]:loc[1]] {
		case "day after tomorrow":
			add(now.AddDate(0, 0, 2), loc[0])
		case "tomorrow":
			add(now.AddDate(0, 0, 1), loc[0])
		case "today":
			add(now, loc[0])
		}
	}

	for _, loc := range dayMonthRe.FindAllStringSubmatchIndex(text, -1) {
		if !claim(loc[0], loc[1]) {
			continue
		}
		day, _ := strconv.Atoi(text[loc[2]:loc[3]])
		add(resolveDayMonth(day, monthsByName[text[loc[4]:loc[5]]], now), loc[0])
	}

	for _, loc := range monthDayRe.FindAllStringSubmatchIndex(text, -1) {
		if !claim(loc[0], loc[1]) {
			continue
		}
		day, _ := strconv.Atoi(text[loc[4]:loc[5]])
		add(resolveDayMonth(day, monthsByName[text[loc[2]:loc[3]]], now), loc[0])
	}

	for _, loc := range numericRe.FindAllStringSubmatchIndex(text, -1) {
		if !claim(loc[0], loc[1]) {
			continue
		}
		day, _ := strconv.Atoi(text[loc[2]:loc[3]])
		mo, _ := strconv.Atoi(text[loc[4]:loc[5]])
		if mo < 1 || mo > 12 {
			continue
		}
		if loc[6] >= 0 {
			year, _ := strconv.Atoi(text[loc[6]:loc[7]])
			if year < 100 {
				year += 2000
			}
			add(validDate(year, time.Month(mo), day), loc[0])
		} else {
			add(resolveDayMonth(day, time.Month(mo), now), loc[0])
		}
	}

	for _, loc := range weekdayRe.FindAllStringSubmatchIndex(text, -1) {
		if !claim(loc[0], loc[1]) {
			continue
		}
		add(nextWeekday(weekdaysByName[text[loc[2]:loc[3]]], now), loc[0])
	}

	for _, loc := range bareDayRe.FindAllStringSubmatchIndex(text, -1) {
		if !claim(loc[0], loc[1]) {
			continue
		}
		day, _ := strconv.Atoi(text[loc[2]:loc[3]])
		add(resolveBareDay(day, now), loc[0])
	}

	sort.SliceStable(mentions, func(i, j int) bool { return mentions[i].pos < mentions[j].pos })
	return mentions
}

// resolveBareDay maps a day-of-month with no month to its nearest future
// occurrence: this month unless the day has already passed, else next month.
func resolveBareDay(day int, now time.Time) time.Time {
	if day < 1 || day > 31 {
		return time.Time{}
	}
	year, month := now.Year(), now.Month()
	if day < now.Day() {
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	for i := 0; i < 12; i++ {
		if d := validDate(year, month, day); !d.IsZero() {
			return d
		}
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return time.Time{}
}

// resolveDayMonth maps an explicit day+month to this year, rolling to next
// year when the date has already passed.
func resolveDayMonth(day int, month time.Month, now time.Time) time.Time {
	d := validDate(now.Year(), month, day)
	if d.IsZero() {
		return time.Time{}
	}
	if d.Before(now) {
		d = validDate(now.Year()+1, month, day)
	}
	return d
}

// nextWeekday returns the soonest strictly-future occurrence of wd.
func nextWeekday(wd time.Weekday, now time.Time) time.Time {
	ahead := (int(wd) - int(now.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return now.AddDate(0, 0, ahead)
}

// validDate builds a date and rejects overflowed inputs such as February 31,
// which time.Date would silently normalize into March.
func validDate(year int, month time.Month, day int) time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month {
		return time.Time{}
	}
	return d
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// containsAny reports whether text contains any of the given phrases.
func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
