package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/xrash/smetrics"
)

var wordPattern = regexp.MustCompile(`[a-z]+`)

// normalize folds case and collapses whitespace.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// scheduleWords are non-city words worth rescuing from typos.
var scheduleWords = []string{
	"today", "tomorrow", "return", "returning", "round", "trip",
	"business", "economy", "premium", "first", "class", "flight",
	"adults", "children", "infants", "passengers",
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// Corrector repairs misspelt tokens against a small vocabulary, bounded by
// edit distance so unrelated words are left alone.
type Corrector struct {
	vocab map[string]bool
	words []string // alphabetical, for deterministic ties
}

func NewCorrector(g *Gazetteer) *Corrector {
	c := &Corrector{vocab: make(map[string]bool)}
	for _, name := range g.NamesLongestFirst() {
		for _, w := range strings.Fields(name) {
			c.vocab[w] = true
		}
	}
	for _, w := range scheduleWords {
		c.vocab[w] = true
	}
	for w := range c.vocab {
		c.words = append(c.words, w)
	}
	sort.Strings(c.words)
	return c
}

// maxCorrectionDistance bounds how far a token may drift from a vocabulary
// word and still be corrected. Substitutions count double under the metric
// used, so this allows one substitution or two insertions/deletions.
const maxCorrectionDistance = 2

// Correct returns the vocabulary word closest to token, or the token itself
// when nothing is close enough. Short tokens are never touched; three-letter
// tokens may be airport codes.
func (c *Corrector) Correct(token string) string {
	if len(token) < 5 || c.vocab[token] {
		return token
	}
	best := ""
	bestDist := maxCorrectionDistance + 1
	for _, w := range c.words {
		if abs(len(w)-len(token)) > maxCorrectionDistance {
			continue
		}
		if d := smetrics.WagnerFischer(token, w, 1, 1, 2); d < bestDist {
			best, bestDist = w, d
		}
	}
	if best == "" {
		return token
	}
	return best
}

// CorrectText applies Correct to every alphabetic token of a normalized string.
func (c *Corrector) CorrectText(text string) string {
	return wordPattern.ReplaceAllStringFunc(text, c.Correct)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
