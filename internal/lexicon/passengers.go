package lexicon

// Traveler buckets used by the passenger role tables. Plain strings so
// the consuming package owns its own typed enum.
const (
	BucketAdult  = "adult"
	BucketChild  = "child"
	BucketInfant = "infant"
)

// roleNouns maps singular passenger role nouns to a traveler bucket.
var roleNouns = map[string]string{
	"adult":     BucketAdult,
	"person":    BucketAdult,
	"passenger": BucketAdult,
	"traveler":  BucketAdult,
	"traveller": BucketAdult,
	"man":       BucketAdult,
	"woman":     BucketAdult,
	"lady":      BucketAdult,
	"gentleman": BucketAdult,
	"wife":      BucketAdult,
	"husband":   BucketAdult,
	"spouse":    BucketAdult,
	"partner":   BucketAdult,
	"friend":    BucketAdult,
	"colleague": BucketAdult,
	"brother":   BucketAdult,
	"sister":    BucketAdult,
	"mother":    BucketAdult,
	"father":    BucketAdult,
	"mom":       BucketAdult,
	"dad":       BucketAdult,

	"child":     BucketChild,
	"kid":       BucketChild,
	"boy":       BucketChild,
	"girl":      BucketChild,
	"teen":      BucketChild,
	"teenager":  BucketChild,
	"son":       BucketChild,
	"daughter":  BucketChild,

	"infant":  BucketInfant,
	"baby":    BucketInfant,
	"toddler": BucketInfant,
	"newborn": BucketInfant,
}

// pluralRoleNouns maps plural role nouns to their bucket.
var pluralRoleNouns = map[string]string{
	"adults":     BucketAdult,
	"persons":    BucketAdult,
	"people":     BucketAdult,
	"passengers": BucketAdult,
	"travelers":  BucketAdult,
	"travellers": BucketAdult,
	"men":        BucketAdult,
	"women":      BucketAdult,
	"ladies":     BucketAdult,
	"friends":    BucketAdult,
	"colleagues": BucketAdult,
	"brothers":   BucketAdult,
	"sisters":    BucketAdult,

	"children":  BucketChild,
	"childrens": BucketChild,
	"kids":      BucketChild,
	"boys":      BucketChild,
	"girls":     BucketChild,
	"teens":     BucketChild,
	"teenagers": BucketChild,
	"sons":      BucketChild,
	"daughters": BucketChild,

	"infants":  BucketInfant,
	"babies":   BucketInfant,
	"toddlers": BucketInfant,
	"newborns": BucketInfant,
}

// multiAdultNouns are nouns that stand for a fixed number of adults.
var multiAdultNouns = map[string]int{
	"couple":  2,
	"parents": 2,
	"pair":    2,
}

// RoleNoun resolves a singular role noun to its bucket.
func RoleNoun(token string) (string, bool) {
	b, ok := roleNouns[token]
	return b, ok
}

// PluralRoleNoun resolves a plural role noun to its bucket.
func PluralRoleNoun(token string) (string, bool) {
	b, ok := pluralRoleNouns[token]
	return b, ok
}

// AnyRoleNoun resolves either a singular or plural role noun.
func AnyRoleNoun(token string) (string, bool) {
	if b, ok := roleNouns[token]; ok {
		return b, ok
	}
	b, ok := pluralRoleNouns[token]
	return b, ok
}

// MultiAdultNoun resolves nouns like "couple" to a fixed adult count.
func MultiAdultNoun(token string) (int, bool) {
	n, ok := multiAdultNouns[token]
	return n, ok
}
