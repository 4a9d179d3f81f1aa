package lexicon

import "sort"

// airlineAliases maps airline names and common spellings to the content
// provider codes the booking API understands.
var airlineAliases = map[string]string{
	"pia":                             "pia",
	"pakistan international":          "pia",
	"pakistan international airlines": "pia",
	"airblue":                         "airblue",
	"air blue":                        "airblue",
	"airsial":                         "airsial",
	"air sial":                        "airsial",
	"serene":                          "serene_air",
	"serene air":                      "serene_air",
	"fly jinnah":                      "fly_jinnah",
	"flyjinnah":                       "fly_jinnah",
}

var airlinePhrases []string // alias keys, longest first

func init() {
	airlinePhrases = make([]string, 0, len(airlineAliases))
	for k := range airlineAliases {
		airlinePhrases = append(airlinePhrases, k)
	}
	sort.Slice(airlinePhrases, func(i, j int) bool {
		if len(airlinePhrases[i]) != len(airlinePhrases[j]) {
			return len(airlinePhrases[i]) > len(airlinePhrases[j])
		}
		return airlinePhrases[i] < airlinePhrases[j]
	})
}

// AirlinePhrases returns all airline aliases, longest first. The
// returned slice must not be modified.
func AirlinePhrases() []string {
	return airlinePhrases
}

// AirlineCode resolves an alias to its content provider code.
func AirlineCode(alias string) (string, bool) {
	c, ok := airlineAliases[alias]
	return c, ok
}
