package extract

import (
	"sort"
	"strings"

	"github.com/xrash/smetrics"
)

// cityToIATA is the domestic network the partner API can search. Rawalpindi
// shares the Islamabad airport.
var cityToIATA = map[string]string{
	"lahore":          "LHE",
	"karachi":         "KHI",
	"islamabad":       "ISB",
	"rawalpindi":      "ISB",
	"multan":          "MUX",
	"peshawar":        "PEW",
	"quetta":          "UET",
	"faisalabad":      "LYP",
	"sialkot":         "SKT",
	"skardu":          "KDU",
	"gilgit":          "GIL",
	"sukkur":          "SKZ",
	"gwadar":          "GWD",
	"turbat":          "TUK",
	"bahawalpur":      "BHV",
	"dera ghazi khan": "DEA",
	"chitral":         "CJL",
	"panjgur":         "PJG",
	"moenjodaro":      "MJD",
	"parachinar":      "PAJ",
	"zhob":            "PZH",
	"dalbandin":       "DBA",
	"muzaffarabad":    "MFG",
	"rahim yar khan":  "RYK",
	"nawabshah":       "WNS",
}

// fuzzyThreshold is the minimum Jaro-Winkler similarity a token must reach
// before it is accepted as a city mention.
const fuzzyThreshold = 0.88

// Gazetteer resolves free-text city mentions to IATA codes.
type Gazetteer struct {
	cities      map[string]string
	iata        map[string]bool
	names       []string // alphabetical, for deterministic fuzzy ties
	longestName []string // longest-first, for multi-word scanning
}

func NewGazetteer() *Gazetteer {
	g := &Gazetteer{
		cities: cityToIATA,
		iata:   make(map[string]bool, len(cityToIATA)),
	}
	for name, code := range cityToIATA {
		g.iata[code] = true
		g.names = append(g.names, name)
	}
	sort.Strings(g.names)
	g.longestName = append(g.longestName, g.names...)
	sort.SliceStable(g.longestName, func(i, j int) bool {
		return len(g.longestName[i]) > len(g.longestName[j])
	})
	return g
}

// IsIATA reports whether code is a known airport code.
func (g *Gazetteer) IsIATA(code string) bool {
	return g.iata[strings.ToUpper(code)]
}

// Lookup resolves an exact city name.
func (g *Gazetteer) Lookup(name string) (string, bool) {
	code, ok := g.cities[strings.ToLower(name)]
	return code, ok
}

// Fuzzy resolves a possibly misspelt token to a city. The best candidate is
// the one with the highest similarity; ties fall to the shortest edit
// distance and finally to alphabetical order, so the result is deterministic.
func (g *Gazetteer) Fuzzy(token string) (string, bool) {
	token = strings.ToLower(token)
	var bestName string
	bestSim := 0.0
	bestDist := 0
	for _, name := range g.names {
		sim := smetrics.JaroWinkler(token, name, 0.7, 4)
		if sim < fuzzyThreshold {
			continue
		}
		dist := smetrics.WagnerFischer(token, name, 1, 1, 2)
		if bestName == "" || sim > bestSim || (sim == bestSim && dist < bestDist) {
			bestName, bestSim, bestDist = name, sim, dist
		}
	}
	if bestName == "" {
		return "", false
	}
	return g.cities[bestName], true
}

// NamesLongestFirst returns city names ordered so multi-word names are
// scanned before their component words.
func (g *Gazetteer) NamesLongestFirst() []string {
	return g.longestName
}
