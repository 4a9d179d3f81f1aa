// Package triptype classifies a request as a one-way or return trip.
package triptype

import (
	"regexp"
	"strings"

	"github.com/bookmesky/skyparse/internal/lexicon"
	"github.com/bookmesky/skyparse/internal/normalize"
)

type Type string

const (
	OneWay Type = "one_way"
	Return Type = "return"
)

var returnPhrases = []string{
	"round trip", "round-trip", "roundtrip", "return trip",
	"return flight", "return ticket", "two way", "two-way",
	"both ways", "and back", "return journey", "there and back",
	"coming back", "come back", "return on", "back on", "then back",
}

var oneWayPhrases = []string{
	"one way", "one-way", "oneway", "single trip", "single journey",
	"no return", "not returning", "not coming back", "just going",
	"only going",
}

var (
	betweenAndPattern = regexp.MustCompile(`\bbetween\b.+\band\b`)
	dateRangePattern  = regexp.MustCompile(`\bfrom\s+(?:the\s+)?\d{1,2}(?:st|nd|rd|th)\b.{0,24}?\bto\s+(?:the\s+)?\d{1,2}(?:st|nd|rd|th)\b`)
	goBackPattern     = regexp.MustCompile(`\b(go|going|there|fly|flying)\b.*\b(back|return)\b`)
	multiLegConnector = regexp.MustCompile(`\b(then|and then|after that|followed by)\b`)
)

// Classify decides the trip type from the normalized request text.
// One-way phrases win over return phrases; absent both, structural
// cues (date ranges, repeated cities, travel-back verbs) imply a
// return trip, and the default is one-way.
func Classify(text string) Type {
	lower := strings.ToLower(text)

	for _, p := range oneWayPhrases {
		if _, ok := normalize.ContainsPhrase(lower, p); ok {
			return OneWay
		}
	}
	for _, p := range returnPhrases {
		if _, ok := normalize.ContainsPhrase(lower, p); ok {
			return Return
		}
	}

	if betweenAndPattern.MatchString(lower) {
		return Return
	}
	if dateRangePattern.MatchString(lower) {
		return Return
	}
	if goBackPattern.MatchString(lower) {
		return Return
	}
	if repeatedOrChainedCities(lower) {
		return Return
	}

	return OneWay
}

// repeatedOrChainedCities reports whether the same city appears twice,
// or at least two cities are joined by a multi-leg connector. Both
// patterns describe travel that comes back.
func repeatedOrChainedCities(lower string) bool {
	working := lower
	counts := make(map[string]int)
	total := 0
	for _, city := range lexicon.CityNames() {
		for {
			idx := strings.Index(working, city)
			if idx < 0 {
				break
			}
			if normalize.WordBounded(working, idx, len(city)) {
				code, _ := lexicon.CityCode(city)
				counts[code]++
				total++
			}
			working = working[:idx] + strings.Repeat(" ", len(city)) + working[idx+len(city):]
		}
	}

	for _, n := range counts {
		if n >= 2 {
			return true
		}
	}
	return total >= 2 && multiLegConnector.MatchString(lower)
}
