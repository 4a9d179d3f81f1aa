// Package cities finds city and airport mentions in free text and
// assigns them to source and destination slots.
//
// Known limitation: directional assignment honors only the first
// occurrence of each indicator family, so a sentence with two "from"
// clauses silently ignores the second.
package cities

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/jdkato/prose/v2"

	"github.com/bookmesky/skyparse/internal/lexicon"
	"github.com/bookmesky/skyparse/internal/normalize"
)

var iataPattern = regexp.MustCompile(`\b[A-Z]{3}\b`)

var fromIndicators = map[string]bool{
	"from": true, "leaving": true, "departing": true, "starting": true,
}

var toIndicators = map[string]bool{
	"to": true, "towards": true, "arriving": true, "destination": true,
}

// singleCityDestCues decide whether a lone city is a destination.
var singleCityDestCues = []string{
	"to", "towards", "arriving", "destination", "going", "want to go",
}

// Mention is a transient city match: airport code, approximate word
// index, and character offset in the scanned text.
type Mention struct {
	Code       string
	TokenIndex int
	Offset     int
}

type Resolver struct {
	metric *metrics.Levenshtein
	logger *slog.Logger
}

func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{metric: metrics.NewLevenshtein(), logger: logger}
}

// Resolve extracts every city mention from text and assigns source and
// destination. Empty strings mean "not found". Precedence: lexicon and
// IATA scan, then named-entity fuzzy matching, then per-token fuzzy
// matching; directional indicators, then positional fallbacks.
func (r *Resolver) Resolve(text string) (source, destination string) {
	mentions := r.scanLexicon(text)
	if len(mentions) == 0 {
		mentions = r.scanEntities(text)
	}
	if len(mentions) == 0 {
		mentions = r.scanTokens(text)
	}
	mentions = dedupe(mentions)
	sort.Slice(mentions, func(i, j int) bool { return mentions[i].Offset < mentions[j].Offset })

	lower := strings.ToLower(text)

	// Directional pass: the first "from"-family and "to"-family
	// indicator each claim the first mention after their position.
	for _, tok := range normalize.Tokens(lower) {
		switch {
		case fromIndicators[tok.Text] && source == "":
			for _, m := range mentions {
				if m.Offset > tok.Offset {
					source = m.Code
					break
				}
			}
		case toIndicators[tok.Text] && destination == "":
			for _, m := range mentions {
				if m.Offset > tok.Offset {
					destination = m.Code
					break
				}
			}
		}
	}

	// Positional fallback when no indicator matched anything.
	if source == "" && destination == "" && len(mentions) > 0 {
		if len(mentions) == 1 {
			if hasDestCue(lower) {
				destination = mentions[0].Code
			} else {
				source = mentions[0].Code
			}
		} else {
			source = mentions[0].Code
			destination = mentions[1].Code
		}
	}

	// Gap filling: one slot set, more than one distinct mention.
	if source != "" && destination == "" && len(mentions) > 1 {
		for _, m := range mentions {
			if m.Code != source {
				destination = m.Code
				break
			}
		}
	} else if destination != "" && source == "" && len(mentions) > 1 {
		for _, m := range mentions {
			if m.Code != destination {
				source = m.Code
				break
			}
		}
	}

	// A trip from a city to itself is not a trip.
	if source != "" && source == destination {
		if len(mentions) > 1 {
			source = mentions[0].Code
			destination = mentions[1].Code
		} else {
			destination = ""
		}
	}

	return source, destination
}

// scanLexicon finds IATA codes and known city names. City names are
// tried longest first, and each matched span is blanked out so shorter
// names cannot re-match inside it.
func (r *Resolver) scanLexicon(text string) []Mention {
	var found []Mention

	upper := strings.ToUpper(text)
	for _, loc := range iataPattern.FindAllStringIndex(upper, -1) {
		code := upper[loc[0]:loc[1]]
		if lexicon.IsIATACode(code) {
			found = append(found, Mention{
				Code:       code,
				TokenIndex: len(strings.Fields(text[:loc[0]])),
				Offset:     loc[0],
			})
		}
	}

	working := strings.ToLower(text)
	for _, city := range lexicon.CityNames() {
		idx := strings.Index(working, city)
		if idx < 0 || !normalize.WordBounded(working, idx, len(city)) {
			continue
		}
		code, _ := lexicon.CityCode(city)
		found = append(found, Mention{
			Code:       code,
			TokenIndex: len(strings.Fields(working[:idx])),
			Offset:     idx,
		})
		working = working[:idx] + strings.Repeat(" ", len(city)) + working[idx+len(city):]
	}

	return found
}

// scanEntities runs named-entity tagging and fuzzy-matches every
// location-like span against the city lexicon. A tagging failure is
// treated as "nothing found" so the cascade can continue.
func (r *Resolver) scanEntities(text string) []Mention {
	doc, err := prose.NewDocument(strings.ToLower(text))
	if err != nil {
		r.logger.Warn("entity tagging failed", "error", err)
		return nil
	}

	var found []Mention
	for _, ent := range doc.Entities() {
		if ent.Label != "GPE" && ent.Label != "LOC" {
			continue
		}
		name, score := r.bestCity(ent.Text)
		if score <= 85 {
			continue
		}
		code, _ := lexicon.CityCode(name)
		offset := strings.Index(strings.ToLower(text), strings.ToLower(ent.Text))
		if offset < 0 {
			offset = 0
		}
		found = append(found, Mention{
			Code:       code,
			TokenIndex: len(strings.Fields(text[:offset])),
			Offset:     offset,
		})
	}
	return found
}

// scanTokens is the last-resort pass: exact IATA tokens in any case,
// plus strict fuzzy matching of individual tokens.
func (r *Resolver) scanTokens(text string) []Mention {
	var found []Mention
	for i, tok := range normalize.Tokens(text) {
		if len(tok.Text) == 3 && lexicon.IsIATACode(strings.ToUpper(tok.Text)) {
			found = append(found, Mention{
				Code:       strings.ToUpper(tok.Text),
				TokenIndex: i,
				Offset:     tok.Offset,
			})
			continue
		}
		name, score := r.bestCity(tok.Text)
		if score > 90 {
			code, _ := lexicon.CityCode(name)
			found = append(found, Mention{Code: code, TokenIndex: i, Offset: tok.Offset})
		}
	}
	return found
}

// bestCity returns the closest city name and a 0 to 100 similarity score.
func (r *Resolver) bestCity(s string) (string, float64) {
	s = strings.ToLower(s)
	var bestName string
	var bestScore float64
	for _, name := range lexicon.CityNamesSorted() {
		score := strutil.Similarity(s, name, r.metric) * 100
		if score > bestScore {
			bestName, bestScore = name, score
		}
	}
	return bestName, bestScore
}

func dedupe(mentions []Mention) []Mention {
	seen := make(map[string]bool, len(mentions))
	out := mentions[:0]
	for _, m := range mentions {
		if seen[m.Code] {
			continue
		}
		seen[m.Code] = true
		out = append(out, m)
	}
	return out
}

func hasDestCue(lower string) bool {
	for _, cue := range singleCityDestCues {
		if _, ok := normalize.ContainsPhrase(lower, cue); ok {
			return true
		}
	}
	return false
}
