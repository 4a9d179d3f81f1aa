package lexicon

import "strconv"

// numberWords maps spelled-out quantities to integers.
var numberWords = map[string]int{
	"one":       1,
	"two":       2,
	"three":     3,
	"four":      4,
	"five":      5,
	"six":       6,
	"seven":     7,
	"eight":     8,
	"nine":      9,
	"ten":       10,
	"eleven":    11,
	"twelve":    12,
	"single":    1,
}

// NumberWord resolves a token to an integer, accepting both numerals
// ("3") and number words ("three").
func NumberWord(token string) (int, bool) {
	if n, err := strconv.Atoi(token); err == nil && n >= 0 {
		return n, true
	}
	n, ok := numberWords[token]
	return n, ok
}
