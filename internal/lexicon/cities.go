// Package lexicon holds the static lookup tables the extraction cascade
// runs against: city names, IATA codes, airline aliases, cabin keywords,
// number words, and passenger role nouns. All tables are built at package
// init and never mutated afterwards, so they are safe for concurrent
// reads without locking.
package lexicon

import "sort"

// cityToIATA maps lowercase city names to their airport codes.
// Rawalpindi shares the Islamabad airport.
var cityToIATA = map[string]string{
	"lahore":          "LHE",
	"karachi":         "KHI",
	"islamabad":       "ISB",
	"rawalpindi":      "ISB",
	"multan":          "MUX",
	"peshawar":        "PEW",
	"quetta":          "UET",
	"faisalabad":      "LYP",
	"sialkot":         "SKT",
	"skardu":          "KDU",
	"gilgit":          "GIL",
	"sukkur":          "SKZ",
	"gwadar":          "GWD",
	"turbat":          "TUK",
	"bahawalpur":      "BHV",
	"dera ghazi khan": "DEA",
	"chitral":         "CJL",
	"panjgur":         "PJG",
	"moenjodaro":      "MJD",
	"parachinar":      "PAJ",
	"zhob":            "PZH",
	"dalbandin":       "DBA",
	"muzaffarabad":    "MFG",
	"rahim yar khan":  "RYK",
	"nawabshah":       "WNS",
}

var (
	iataCodes  map[string]struct{}
	cityNames  []string // sorted longest first, then alphabetical
	shortNames []string // alphabetical, for fuzzy matching
)

func init() {
	iataCodes = make(map[string]struct{}, len(cityToIATA))
	cityNames = make([]string, 0, len(cityToIATA))
	for name, code := range cityToIATA {
		iataCodes[code] = struct{}{}
		cityNames = append(cityNames, name)
	}
	sort.Slice(cityNames, func(i, j int) bool {
		if len(cityNames[i]) != len(cityNames[j]) {
			return len(cityNames[i]) > len(cityNames[j])
		}
		return cityNames[i] < cityNames[j]
	})
	shortNames = append(shortNames, cityNames...)
	sort.Strings(shortNames)
}

// CityCode returns the airport code for a lowercase city name.
func CityCode(name string) (string, bool) {
	code, ok := cityToIATA[name]
	return code, ok
}

// CityNames returns all known city names, longest first so multi-word
// cities are matched before single-word substrings. The returned slice
// must not be modified.
func CityNames() []string {
	return cityNames
}

// CityNamesSorted returns city names in alphabetical order, for
// deterministic fuzzy-match iteration.
func CityNamesSorted() []string {
	return shortNames
}

// IsIATACode reports whether code is a known 3-letter airport code.
func IsIATACode(code string) bool {
	_, ok := iataCodes[code]
	return ok
}
