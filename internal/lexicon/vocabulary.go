package lexicon

import "strings"

// travelWords are domain words the spelling model should recognize
// beyond the lookup tables, so typos like "tomorow" or "flght" are
// pulled back to known vocabulary instead of being "corrected" away.
var travelWords = []string{
	"flight", "flights", "fly", "flying", "travel", "travelling",
	"ticket", "tickets", "book", "booking", "trip", "return",
	"round", "one", "way", "from", "to", "between", "and", "then",
	"back", "today", "tomorrow", "day", "after", "next", "week",
	"depart", "departing", "departure", "leave", "leaving", "arriving",
	"morning", "evening", "night", "class", "cabin", "seat", "seating",
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
	"monday", "tuesday", "wednesday", "thursday", "friday",
	"saturday", "sunday",
}

// Vocabulary returns every word in the lexicon plus the travel domain
// words, for training the spelling-correction model at startup.
func Vocabulary() []string {
	seen := make(map[string]struct{})
	var words []string
	add := func(w string) {
		w = strings.ToLower(w)
		if _, ok := seen[w]; ok || w == "" {
			return
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}

	for _, name := range cityNames {
		for _, w := range strings.Fields(name) {
			add(w)
		}
	}
	for phrase := range airlineAliases {
		for _, w := range strings.Fields(phrase) {
			add(w)
		}
	}
	for phrase := range cabinKeywords {
		for _, w := range strings.Fields(phrase) {
			add(w)
		}
	}
	for w := range numberWords {
		add(w)
	}
	for w := range roleNouns {
		add(w)
	}
	for w := range pluralRoleNouns {
		add(w)
	}
	for w := range multiAdultNouns {
		add(w)
	}
	for _, w := range travelWords {
		add(w)
	}
	return words
}
