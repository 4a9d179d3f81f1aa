// Package airline detects a preferred carrier in free text.
package airline

import (
	"strings"

	"github.com/bookmesky/skyparse/internal/lexicon"
	"github.com/bookmesky/skyparse/internal/normalize"
)

// Detect returns the canonical carrier identifier mentioned in text,
// or "" when no known carrier appears. Aliases are matched longest
// first so "pakistan international airlines" never resolves through
// a shorter alias inside it.
func Detect(text string) string {
	lower := strings.ToLower(text)
	for _, alias := range lexicon.AirlinePhrases() {
		if _, ok := normalize.ContainsPhrase(lower, alias); ok {
			code, _ := lexicon.AirlineCode(alias)
			return code
		}
	}
	return ""
}
