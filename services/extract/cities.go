package extract

import (
	"regexp"
	"sort"
	"strings"
)

type cityMention struct {
	iata string
	pos  int
}

var tokenPattern = regexp.MustCompile(`[a-zA-Z]+`)

var (
	fromWords = map[string]bool{"from": true, "leaving": true, "departing": true, "starting": true}
	toWords   = map[string]bool{"to": true, "towards": true, "toward": true, "arriving": true, "destination": true}
)

// extractCities resolves the origin and destination mentioned in text.
// Explicit IATA codes win over name matches, which win over fuzzy matches;
// directional markers bind cities to roles, with position order as fallback.
func (e *Extractor) extractCities(text string) (source, destination string) {
	mentions := e.scanCities(text)
	if len(mentions) == 0 {
		return "", ""
	}

	// Bind cities appearing after directional markers.
	for _, loc := range tokenPattern.FindAllStringIndex(text, -1) {
		word := text[loc[0]:loc[1]]
		switch {
		case fromWords[word]:
			for _, m := range mentions {
				if m.pos > loc[0] && source == "" {
					source = m.iata
					break
				}
			}
		case toWords[word]:
			for _, m := range mentions {
				if m.pos > loc[0] && destination == "" {
					destination = m.iata
					break
				}
			}
		}
	}

	// No markers matched: fall back to mention order.
	if source == "" && destination == "" {
		if len(mentions) == 1 {
			if strings.Contains(text, "going") || strings.Contains(text, "want to go") {
				destination = mentions[0].iata
			} else {
				source = mentions[0].iata
			}
		} else {
			source = mentions[0].iata
			destination = mentions[1].iata
		}
	}

	// One side bound, the other city unclaimed.
	if source != "" && destination == "" {
		for _, m := range mentions {
			if m.iata != source {
				destination = m.iata
				break
			}
		}
	} else if destination != "" && source == "" {
		for _, m := range mentions {
			if m.iata != destination {
				source = m.iata
				break
			}
		}
	}

	if source == destination {
		if len(mentions) > 1 {
			source = mentions[0].iata
			destination = mentions[1].iata
		} else {
			destination = ""
		}
	}
	return source, destination
}

// scanCities finds every city mention with its character position. The text
// is expected lowercased; matched names are blanked out so component words of
// a multi-word city cannot match twice.
func (e *Extractor) scanCities(text string) []cityMention {
	var found []cityMention

	// Explicit IATA codes first.
	for _, loc := range tokenPattern.FindAllStringIndex(text, -1) {
		tok := text[loc[0]:loc[1]]
		if len(tok) == 3 && e.Gazetteer.IsIATA(tok) {
			found = append(found, cityMention{iata: strings.ToUpper(tok), pos: loc[0]})
		}
	}

	// Exact city names, longest first.
	scratch := text
	for _, name := range e.Gazetteer.NamesLongestFirst() {
		idx := strings.Index(scratch, name)
		if idx < 0 {
			continue
		}
		startOK := idx == 0 || !isAlnum(scratch[idx-1])
		end := idx + len(name)
		endOK := end == len(scratch) || !isAlnum(scratch[end])
		if startOK && endOK {
			code, _ := e.Gazetteer.Lookup(name)
			found = append(found, cityMention{iata: code, pos: idx})
			scratch = scratch[:idx] + strings.Repeat(" ", len(name)) + scratch[end:]
		}
	}

	// Fuzzy pass over the leftovers. Exact matches were blanked out of
	// scratch above, so only unmatched tokens are considered.
	for _, loc := range tokenPattern.FindAllStringIndex(scratch, -1) {
		tok := scratch[loc[0]:loc[1]]
		if len(tok) < 4 || fromWords[tok] || toWords[tok] {
			continue
		}
		if code, ok := e.Gazetteer.Fuzzy(tok); ok {
			found = append(found, cityMention{iata: code, pos: loc[0]})
		}
	}

	// Dedupe by code, keeping the earliest mention, ordered by position.
	seen := make(map[string]bool)
	var unique []cityMention
	for _, m := range sortedByPos(found) {
		if !seen[m.iata] {
			seen[m.iata] = true
			unique = append(unique, m)
		}
	}
	return unique
}

func sortedByPos(mentions []cityMention) []cityMention {
	out := append([]cityMention(nil), mentions...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].pos < out[j].pos })
	return out
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
