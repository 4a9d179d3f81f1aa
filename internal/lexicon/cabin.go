package lexicon

import "sort"

// Cabin class identifiers shared between the cabin tables below and the
// classifier package.
const (
	ClassEconomy        = "economy"
	ClassBusiness       = "business"
	ClassFirst          = "first"
	ClassPremiumEconomy = "premium_economy"
)

// cabinKeywords maps keyword phrases to a cabin class. Matching is done
// longest phrase first so "premium economy" wins over "premium" and
// "economy plus" over "economy".
var cabinKeywords = map[string]string{
	"economy":       ClassEconomy,
	"economy class": ClassEconomy,
	"eco":           ClassEconomy,
	"coach":         ClassEconomy,
	"cheap":         ClassEconomy,
	"cheapest":      ClassEconomy,
	"budget":        ClassEconomy,
	"standard":      ClassEconomy,
	"basic":         ClassEconomy,

	"business":       ClassBusiness,
	"business class": ClassBusiness,
	"business trip":  ClassBusiness,
	"biz":            ClassBusiness,
	"executive":      ClassBusiness,

	"first class": ClassFirst,
	"first-class": ClassFirst,
	"first":       ClassFirst,
	"luxury":      ClassFirst,
	"luxurious":   ClassFirst,

	"premium economy": ClassPremiumEconomy,
	"premium eco":     ClassPremiumEconomy,
	"premium":         ClassPremiumEconomy,
	"premium class":   ClassPremiumEconomy,
	"economy plus":    ClassPremiumEconomy,
	"extra comfort":   ClassPremiumEconomy,
	"comfort plus":    ClassPremiumEconomy,
}

// fareLetters maps single-letter fare codes, as in "J class".
var fareLetters = map[string]string{
	"f": ClassFirst,
	"j": ClassBusiness,
	"c": ClassBusiness,
	"w": ClassPremiumEconomy,
	"y": ClassEconomy,
}

// luxuryVocab are free-standing comfort/price words mapped to a class,
// used by the contextual layers of the cabin classifier.
var luxuryVocab = map[string]string{
	"luxury":       ClassFirst,
	"luxurious":    ClassFirst,
	"vip":          ClassFirst,
	"posh":         ClassFirst,
	"expensive":    ClassBusiness,
	"corporate":    ClassBusiness,
	"professional": ClassBusiness,
	"upgrade":      ClassBusiness,
	"comfortable":  ClassPremiumEconomy,
	"spacious":     ClassPremiumEconomy,
}

var cabinPhrases []string // cabinKeywords keys, longest first

func init() {
	cabinPhrases = make([]string, 0, len(cabinKeywords))
	for k := range cabinKeywords {
		cabinPhrases = append(cabinPhrases, k)
	}
	sort.Slice(cabinPhrases, func(i, j int) bool {
		if len(cabinPhrases[i]) != len(cabinPhrases[j]) {
			return len(cabinPhrases[i]) > len(cabinPhrases[j])
		}
		return cabinPhrases[i] < cabinPhrases[j]
	})
}

// CabinPhrases returns all cabin keyword phrases, longest first. The
// returned slice must not be modified.
func CabinPhrases() []string {
	return cabinPhrases
}

// CabinKeyword resolves a keyword phrase to its cabin class.
func CabinKeyword(phrase string) (string, bool) {
	c, ok := cabinKeywords[phrase]
	return c, ok
}

// FareLetter resolves a single-letter fare code to its cabin class.
func FareLetter(letter string) (string, bool) {
	c, ok := fareLetters[letter]
	return c, ok
}

// LuxuryWord resolves comfort/price vocabulary to a cabin class.
func LuxuryWord(token string) (string, bool) {
	c, ok := luxuryVocab[token]
	return c, ok
}
