// Package dates resolves departure and return dates from free text.
//
// Natural-language parsing is delegated to the when library; this
// package decides which span of the text belongs to which leg of the
// trip and normalizes the result to YYYY-MM-DD.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/bookmesky/skyparse/internal/normalize"
)

const layout = "2006-01-02"

// specialDates resolve relative to the reference day without going
// through the parser. Longer phrases are listed first so "day after
// tomorrow" is never read as "tomorrow".
var specialDates = []struct {
	phrase string
	days   int
}{
	{"day after tomorrow", 2},
	{"tomorrow", 1},
	{"today", 0},
}

var (
	departIndicator = regexp.MustCompile(`\b(depart|departing|departure|leave|leaving|go|going|travel|travelling|traveling|fly|flying)\b`)
	returnIndicator = regexp.MustCompile(`\b(return|returning|come back|coming back|back)\b`)

	betweenPattern = regexp.MustCompile(`\bbetween\b(.+?)\band\b(.+)`)
	pairConnector  = regexp.MustCompile(`\b(?:and then|then|and|to)\b`)

	monthPattern   = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	ordinalPattern = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\b`)

	// bareOrdinal is a day-of-month with no month attached, like
	// "the 12th" in a follow-up turn.
	bareOrdinal = regexp.MustCompile(`\b(\d{1,2})(st|nd|rd|th)\b`)

	fillerPattern = regexp.MustCompile(`\b(the|a|an|on|of|in|at|flight|flights|trip|travel|dates?)\b`)
)

var monthNumbers = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// returnCues mark a nearby date as the return leg.
var returnCues = []string{"come back", "coming back", "return", "returning", "back"}

// indicatorWindow caps how many tokens after an indicator still belong
// to it, and cueTokenGap is how close a return cue must sit before a
// date to claim it.
const (
	indicatorWindow = 4
	cueTokenGap     = 3
)

type Resolver struct {
	parser *when.Parser
	now    func() time.Time
}

// NewResolver builds a resolver that reads the reference time from
// now once per call.
func NewResolver(now func() time.Time) *Resolver {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	if now == nil {
		now = time.Now
	}
	return &Resolver{parser: w, now: now}
}

// ResolveDeparture finds the departure date in text, or "" when none
// is present. A date claimed by a nearby return cue is left alone.
func (r *Resolver) ResolveDeparture(text string) string {
	base := r.now()
	lower := strings.ToLower(text)

	if start, _, ok := r.betweenRange(lower, base); ok {
		return start
	}
	if d, idx, ok := specialDate(lower, base); ok && !cueNear(lower, idx) {
		return d
	}
	if span, ok := indicatorSpan(lower, departIndicator, returnIndicator); ok {
		if d := r.parse(span, base); d != "" {
			return d
		}
	}
	if d, idx := r.parseAt(lower, base); d != "" && !cueNear(lower, idx) {
		return d
	}
	return ""
}

// ResolveReturn finds the return date in text, or "" when none is
// present. The cascade tries an explicit range, a connected pair of
// dates, an indicator-scoped span, and finally a lone date preceded by
// a return cue.
func (r *Resolver) ResolveReturn(text string) string {
	base := r.now()
	lower := strings.ToLower(text)

	if _, end, ok := r.betweenRange(lower, base); ok {
		return end
	}
	if d, ok := r.connectedPair(lower, base); ok {
		return d
	}
	if span, ok := indicatorSpan(lower, returnIndicator, departIndicator); ok {
		if d := r.parse(span, base); d != "" {
			return d
		}
	}
	if d, idx, ok := specialDate(lower, base); ok && cueNear(lower, idx) {
		return d
	}
	if d, idx := r.parseAt(lower, base); d != "" && cueNear(lower, idx) {
		return d
	}
	return ""
}

// ResolvePair returns both legs in one pass.
func (r *Resolver) ResolvePair(text string) (departure, ret string) {
	return r.ResolveDeparture(text), r.ResolveReturn(text)
}

// betweenRange handles "between the 5th and 12th of September": the
// first side is the departure and the second the return. The second
// side is parsed first so a bare ordinal on the first side can borrow
// its month.
func (r *Resolver) betweenRange(lower string, base time.Time) (start, end string, ok bool) {
	m := betweenPattern.FindStringSubmatch(lower)
	if m == nil {
		return "", "", false
	}
	side1 := cleanSpan(m[1])
	side2 := cleanSpan(m[2])

	end = r.parse(side2, base)
	if end == "" {
		return "", "", false
	}
	if !monthPattern.MatchString(side1) {
		// Bare ordinal on the first side: borrow the month.
		if month := monthPattern.FindString(side2); month != "" {
			if ord := ordinalPattern.FindString(side1); ord != "" {
				side1 = ord + " " + month
			}
		}
	}
	start = r.parse(side1, base)
	if start == "" {
		return "", "", false
	}
	return start, end, true
}

// connectedPair handles "on the 3rd and then the 10th": two parseable
// spans joined by a connector, the second being the return.
func (r *Resolver) connectedPair(lower string, base time.Time) (string, bool) {
	for _, loc := range pairConnector.FindAllStringIndex(lower, -1) {
		left := cleanSpan(lower[:loc[0]])
		right := cleanSpan(lower[loc[1]:])
		if r.parse(left, base) == "" {
			continue
		}
		if d := r.parse(right, base); d != "" {
			return d, true
		}
	}
	return "", false
}

func (r *Resolver) parse(span string, base time.Time) string {
	d, _ := r.parseAt(span, base)
	return d
}

// parseAt parses span and also reports the character offset of the
// matched date phrase.
func (r *Resolver) parseAt(span string, base time.Time) (string, int) {
	span = strings.TrimSpace(span)
	if span == "" {
		return "", -1
	}
	if d, idx, ok := specialDate(span, base); ok {
		return d, idx
	}
	res, err := r.parser.Parse(span, base)
	if err != nil || res == nil {
		return bareOrdinalDate(span, base)
	}
	// "now" is connective in follow-up turns, not a date.
	if strings.EqualFold(strings.TrimSpace(res.Text), "now") {
		return bareOrdinalDate(span, base)
	}
	return res.Time.Format(layout), res.Index
}

// bareOrdinalDate resolves "the 12th" to that day of the current
// month, rolling into the next month when the day has passed, and
// "12th september" to that day of the named month. Requires the
// ordinal suffix so plain counts like "2 adults" never match.
func bareOrdinalDate(span string, base time.Time) (string, int) {
	loc := bareOrdinal.FindStringSubmatchIndex(span)
	if loc == nil {
		return "", -1
	}
	day, err := strconv.Atoi(span[loc[2]:loc[3]])
	if err != nil || day < 1 || day > 31 {
		return "", -1
	}
	if name := monthPattern.FindString(span); name != "" {
		d := time.Date(base.Year(), monthNumbers[name], day, 0, 0, 0, 0, base.Location())
		if d.Before(time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())) {
			d = d.AddDate(1, 0, 0)
		}
		return d.Format(layout), loc[0]
	}
	d := time.Date(base.Year(), base.Month(), day, 0, 0, 0, 0, base.Location())
	if day < base.Day() {
		d = d.AddDate(0, 1, 0)
	}
	return d.Format(layout), loc[0]
}

// indicatorSpan returns the tokens claimed by the first matching
// indicator, cut short at the window limit or at an opposing
// indicator.
func indicatorSpan(lower string, own, opposing *regexp.Regexp) (string, bool) {
	loc := own.FindStringIndex(lower)
	if loc == nil {
		return "", false
	}
	toks := strings.Fields(lower[loc[1]:])
	if len(toks) > indicatorWindow {
		toks = toks[:indicatorWindow]
	}
	var span []string
	for _, t := range toks {
		if opposing.MatchString(t) {
			break
		}
		span = append(span, t)
	}
	if len(span) == 0 {
		return "", false
	}
	return strings.Join(span, " "), true
}

func specialDate(lower string, base time.Time) (string, int, bool) {
	bestIdx := -1
	bestDays := 0
	for _, sd := range specialDates {
		idx, ok := normalize.ContainsPhrase(lower, sd.phrase)
		if !ok {
			continue
		}
		if bestIdx == -1 || idx < bestIdx {
			bestIdx, bestDays = idx, sd.days
		}
	}
	if bestIdx == -1 {
		return "", -1, false
	}
	return base.AddDate(0, 0, bestDays).Format(layout), bestIdx, true
}

// cueNear reports whether a return cue ends within cueTokenGap tokens
// before the date phrase starting at offset.
func cueNear(lower string, offset int) bool {
	if offset < 0 {
		return false
	}
	dateTok := len(strings.Fields(lower[:offset]))
	for _, cue := range returnCues {
		search := lower
		base := 0
		for {
			idx, ok := normalize.ContainsPhrase(search, cue)
			if !ok {
				break
			}
			abs := base + idx
			cueTok := len(strings.Fields(lower[:abs])) + len(strings.Fields(cue)) - 1
			if cueTok < dateTok && dateTok-cueTok <= cueTokenGap {
				return true
			}
			base = abs + len(cue)
			search = lower[base:]
		}
	}
	return false
}

func cleanSpan(span string) string {
	span = fillerPattern.ReplaceAllString(span, " ")
	return strings.Join(strings.Fields(span), " ")
}
