// Package cabin resolves the requested travel class from free text.
package cabin

import (
	"regexp"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/bookmesky/skyparse/internal/lexicon"
	"github.com/bookmesky/skyparse/internal/normalize"
)

type Class = string

const (
	Economy        Class = lexicon.ClassEconomy
	Business       Class = lexicon.ClassBusiness
	First          Class = lexicon.ClassFirst
	PremiumEconomy Class = lexicon.ClassPremiumEconomy
)

// contextNouns anchor layer two: a vague quality word only counts when
// it sits near one of these.
var contextNouns = map[string]bool{
	"class": true, "cabin": true, "seat": true, "seating": true, "service": true,
}

var (
	classAfterPattern  = regexp.MustCompile(`\b(\w+)\s+(?:class|seat|ticket|flight|cabin)\b`)
	classBeforePattern = regexp.MustCompile(`\b(?:class|seat|ticket|flight|cabin)\s+(\w+)\b`)
	fareLetterPattern  = regexp.MustCompile(`\b([fjcwy])\s+class\b`)
	flightVocabPattern = regexp.MustCompile(`\b(flight|fly|flying|travel|trip|ticket|book|booking)\b`)
)

// classTokenFragments gate the fuzzy pass to tokens that plausibly
// mean a travel class.
var classTokenFragments = []string{"class", "eco", "biz", "prem", "bus"}

type Resolver struct {
	metric *metrics.Levenshtein
}

func NewResolver() *Resolver {
	return &Resolver{metric: metrics.NewLevenshtein()}
}

// Resolve returns the travel class for text. Layers run in order of
// confidence and the first hit wins; nothing matching means economy.
func (r *Resolver) Resolve(text string) Class {
	lower := strings.ToLower(text)

	if c, ok := r.keywordScan(lower); ok {
		return c
	}
	if c, ok := r.contextWindow(lower); ok {
		return c
	}
	if c, ok := r.nounAdjacent(lower); ok {
		return c
	}
	if c, ok := r.fuzzyTokens(lower); ok {
		return c
	}
	if c, ok := r.contextualLuxury(lower); ok {
		return c
	}
	if c, ok := fareLetter(lower); ok {
		return c
	}
	return Economy
}

// keywordScan matches known class phrases longest first, word bounded.
// Longer phrases claim their span so "premium economy" is never read as
// plain economy; among the remaining mentions the last one wins, which
// lets a follow-up correction override an earlier class.
func (r *Resolver) keywordScan(lower string) (Class, bool) {
	working := lower
	best := -1
	var bestClass Class
	for _, phrase := range lexicon.CabinPhrases() {
		for {
			off, ok := normalize.ContainsPhrase(working, phrase)
			if !ok {
				break
			}
			if off > best {
				best = off
				bestClass, _ = lexicon.CabinKeyword(phrase)
			}
			working = working[:off] + strings.Repeat("#", len(phrase)) + working[off+len(phrase):]
		}
	}
	if best < 0 {
		return "", false
	}
	return bestClass, true
}

// contextWindow looks two tokens either side of a cabin noun for a
// quality word like "luxurious" or "corporate".
func (r *Resolver) contextWindow(lower string) (Class, bool) {
	toks := normalize.Tokens(lower)
	for i, tok := range toks {
		if !contextNouns[tok.Text] {
			continue
		}
		lo, hi := i-2, i+2
		if lo < 0 {
			lo = 0
		}
		if hi > len(toks)-1 {
			hi = len(toks) - 1
		}
		for j := lo; j <= hi; j++ {
			if c, ok := lexicon.LuxuryWord(toks[j].Text); ok {
				return c, true
			}
		}
	}
	return "", false
}

// nounAdjacent captures the word directly before or after a cabin noun
// and accepts it when it is, or prefixes, a known class keyword.
func (r *Resolver) nounAdjacent(lower string) (Class, bool) {
	for _, pattern := range []*regexp.Regexp{classAfterPattern, classBeforePattern} {
		for _, m := range pattern.FindAllStringSubmatch(lower, -1) {
			word := m[1]
			if c, ok := lexicon.CabinKeyword(word); ok {
				return c, true
			}
			for _, phrase := range lexicon.CabinPhrases() {
				if strings.HasPrefix(phrase, word) && len(word) >= 3 {
					c, _ := lexicon.CabinKeyword(phrase)
					return c, true
				}
			}
		}
	}
	return "", false
}

// fuzzyTokens spell-tolerantly matches tokens that already look
// class-like ("bussiness", "economey").
func (r *Resolver) fuzzyTokens(lower string) (Class, bool) {
	for _, tok := range normalize.Tokens(lower) {
		if !classLike(tok.Text) {
			continue
		}
		for _, phrase := range lexicon.CabinPhrases() {
			if strings.Contains(phrase, " ") {
				continue
			}
			if strutil.Similarity(tok.Text, phrase, r.metric)*100 > 80 {
				c, _ := lexicon.CabinKeyword(phrase)
				return c, true
			}
		}
	}
	return "", false
}

// contextualLuxury accepts a bare quality word only when the text is
// clearly about flying.
func (r *Resolver) contextualLuxury(lower string) (Class, bool) {
	if !flightVocabPattern.MatchString(lower) {
		return "", false
	}
	for _, tok := range normalize.Tokens(lower) {
		if c, ok := lexicon.LuxuryWord(tok.Text); ok {
			return c, true
		}
	}
	return "", false
}

func fareLetter(lower string) (Class, bool) {
	m := fareLetterPattern.FindStringSubmatch(lower)
	if m == nil {
		return "", false
	}
	return lexicon.FareLetter(m[1])
}

func classLike(tok string) bool {
	for _, frag := range classTokenFragments {
		if strings.Contains(tok, frag) {
			return true
		}
	}
	return false
}
