// Package normalize prepares raw utterances for the extraction cascade:
// case folding, spelling correction, and date-phrase rewriting.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sajari/fuzzy"

	"github.com/bookmesky/skyparse/internal/lexicon"
)

// ordinalOf rewrites "5th of December" to "5th December"; the general
// date parser does not accept the "of" infix.
var ordinalOf = regexp.MustCompile(`(\d+)(st|nd|rd|th)\s+of\s+`)

type Normalizer struct {
	spell *fuzzy.Model
	known map[string]struct{}
}

// New builds a normalizer with a spelling model trained on the lexicon
// vocabulary. Training happens once at startup; the model is read-only
// afterwards.
func New() *Normalizer {
	vocab := lexicon.Vocabulary()

	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(2)
	model.Train(vocab)

	known := make(map[string]struct{}, len(vocab))
	for _, w := range vocab {
		known[w] = struct{}{}
	}
	return &Normalizer{spell: model, known: known}
}

// Normalize lowercases and collapses whitespace. It does not touch
// spelling; resolvers that want correction call CorrectSpelling
// explicitly.
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// CorrectSpelling fixes typos in alphabetic tokens using the trained
// model. Tokens already in the vocabulary, short tokens, and anything
// containing digits are left alone.
func (n *Normalizer) CorrectSpelling(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	word := func(w string) string {
		if len(w) < 4 {
			return w
		}
		lw := strings.ToLower(w)
		if _, ok := n.known[lw]; ok {
			return w
		}
		if s := n.spell.SpellCheck(lw); s != "" && s != lw {
			return s
		}
		return w
	}

	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(word(text[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(word(text[start:]))
	}
	return b.String()
}

// RewriteOrdinalOf normalizes "<N>th of <Month>" date phrasing.
func RewriteOrdinalOf(text string) string {
	return ordinalOf.ReplaceAllString(text, "$1$2 ")
}

// WordBounded reports whether text[pos:pos+length] is bounded by
// non-alphanumeric characters (or the string edges) on both sides.
func WordBounded(text string, pos, length int) bool {
	if pos > 0 && isAlnum(rune(text[pos-1])) {
		return false
	}
	end := pos + length
	if end < len(text) && isAlnum(rune(text[end])) {
		return false
	}
	return true
}

// ContainsPhrase reports whether phrase occurs in text bounded by word
// boundaries, and returns the position of the first such occurrence.
func ContainsPhrase(text, phrase string) (int, bool) {
	from := 0
	for {
		idx := strings.Index(text[from:], phrase)
		if idx < 0 {
			return -1, false
		}
		pos := from + idx
		if WordBounded(text, pos, len(phrase)) {
			return pos, true
		}
		from = pos + 1
	}
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Token is a word with its character offset in the source text.
type Token struct {
	Text   string
	Offset int
}

// Tokens splits text into lowercase word tokens with offsets,
// treating any non-alphanumeric run as a separator.
func Tokens(text string) []Token {
	var toks []Token
	start := -1
	for i, r := range text {
		if isAlnum(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			toks = append(toks, Token{Text: strings.ToLower(text[start:i]), Offset: start})
			start = -1
		}
	}
	if start >= 0 {
		toks = append(toks, Token{Text: strings.ToLower(text[start:]), Offset: start})
	}
	return toks
}
