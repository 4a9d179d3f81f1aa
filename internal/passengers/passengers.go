// Package passengers counts travelers by age bucket from free text.
//
// The counter runs ordered passes over the token list; every pass
// claims the tokens it consumed so later, vaguer passes cannot count
// the same people twice.
package passengers

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"

	"github.com/bookmesky/skyparse/internal/lexicon"
	"github.com/bookmesky/skyparse/internal/normalize"
)

// Counts is the resolved traveler breakdown. Adults defaults to one
// when nothing in the text mentions people.
type Counts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func (c Counts) Total() int { return c.Adults + c.Children + c.Infants }

// Policy holds the tunable defaults for vague group words and the age
// thresholds that bucket "N year old" phrases.
type Policy struct {
	// PluralDefault is the floor for an unnumbered plural noun
	// ("kids", "babies").
	PluralDefault int
	// PeopleDefault is the floor for unnumbered "people" or
	// "passengers".
	PeopleDefault int
	// FewCount is the exact size of "a few people".
	FewCount int
	// SeveralFloor is the minimum size of "several people".
	SeveralFloor int
	// WeCount is the floor implied by "we" or "us".
	WeCount int
	// InfantMaxAge and ChildMaxAge bucket explicit ages; anyone older
	// than ChildMaxAge counts as an adult.
	InfantMaxAge int
	ChildMaxAge  int
}

func DefaultPolicy() Policy {
	return Policy{
		PluralDefault: 2,
		PeopleDefault: 3,
		FewCount:      3,
		SeveralFloor:  4,
		WeCount:       2,
		InfantMaxAge:  2,
		ChildMaxAge:   17,
	}
}

var (
	negationPattern = regexp.MustCompile(`\b(no|without|not\s+bringing|zero)\s+(kids|children|child|infants|babies|baby)\b`)
	agePattern      = regexp.MustCompile(`\b(\w+)[\s-]+years?[\s-]+old\b(?:\s+(\w+))?`)
	groupOfPattern  = regexp.MustCompile(`\b(family|group|party)\s+of\s+(\w+)\b`)
	triplePattern   = regexp.MustCompile(`\b(\w+)\s+adults?\b.*?\b(\w+)\s+(?:children|child|kids?)\b.*?\b(\w+)\s+(?:infants?|babies|baby)\b`)
	meAndPattern    = regexp.MustCompile(`\b(?:me|myself|i)\s+and\b|\bwith\s+me\b|\bwith\s+my\b`)
	justMePattern   = regexp.MustCompile(`\b(?:just|only)\s+(?:me|myself)\b|\btraveling\s+alone\b|\btravelling\s+alone\b|\bby\s+myself\b|\bsolo\b`)
	fewPattern      = regexp.MustCompile(`\b(?:a\s+)?few\s+(people|passengers|travellers|travelers|friends|adults)\b`)
	severalPattern  = regexp.MustCompile(`\bseveral\s+(people|passengers|travellers|travelers|friends|adults)\b`)
	wePattern       = regexp.MustCompile(`\b(we|us)\b`)
)

// numberLookahead is how many tokens past a numeral a role noun may
// still sit ("3 little children").
const numberLookahead = 3

type Counter struct {
	policy  Policy
	persons func(string) int
}

func NewCounter(policy Policy) *Counter {
	return &Counter{policy: policy, persons: personEntities}
}

// Count resolves the traveler breakdown for text. Explicit numbers
// beat vague group words, and vague words act as floors rather than
// overrides.
func (c *Counter) Count(text string) Counts {
	lower := strings.ToLower(text)
	toks := normalize.Tokens(lower)
	claimed := make([]bool, len(toks))

	var counts Counts
	counted := false
	familyTotal := false
	negated := negatedBuckets(lower)

	// Explicit ages bucket by the age, not by the noun that follows.
	for _, m := range agePattern.FindAllStringSubmatch(lower, -1) {
		n, ok := lexicon.NumberWord(m[1])
		if !ok {
			continue
		}
		addBucket(&counts, c.ageBucket(n), 1)
		counted = true
		claimAll(toks, claimed, lower, m[0])
	}

	// "family of N" is a total count; "group of N" and "party of N"
	// floor the adult bucket.
	for _, m := range groupOfPattern.FindAllStringSubmatch(lower, -1) {
		n, ok := lexicon.NumberWord(m[2])
		if !ok || n < 2 {
			continue
		}
		if m[1] == "family" {
			counts.Adults = n
			familyTotal = true
		} else if counts.Adults < n {
			counts.Adults = n
		}
		counted = true
		claimAll(toks, claimed, lower, m[0])
	}

	// Explicit "N adults ... N children ... N infants" row overrides
	// everything else.
	if m := triplePattern.FindStringSubmatch(lower); m != nil {
		a, okA := lexicon.NumberWord(m[1])
		ch, okC := lexicon.NumberWord(m[2])
		in, okI := lexicon.NumberWord(m[3])
		if okA && okC && okI {
			counts = Counts{Adults: a, Children: ch, Infants: in}
			applyNegation(&counts, negated)
			if counts.Adults == 0 && counts.Total() > 0 {
				counts.Adults = 1
			}
			if counts.Total() == 0 {
				counts.Adults = 1
			}
			return counts
		}
	}

	// "just me", "solo": exactly one adult, nothing else counts.
	if justMePattern.MatchString(lower) {
		return Counts{Adults: 1}
	}

	// Numbers claim the first role noun within reach: "2 adults",
	// "three kids", "3 little children", "2 couple" multiplies.
	for i := 0; i < len(toks); i++ {
		if claimed[i] {
			continue
		}
		n, ok := lexicon.NumberWord(toks[i].Text)
		if !ok {
			continue
		}
		for j := i + 1; j <= i+numberLookahead && j < len(toks); j++ {
			if claimed[j] {
				continue
			}
			if bucket, ok := lexicon.AnyRoleNoun(toks[j].Text); ok {
				addBucket(&counts, bucket, n)
				counted = true
				claimed[i], claimed[j] = true, true
				break
			}
			if mult, ok := lexicon.MultiAdultNoun(toks[j].Text); ok {
				counts.Adults += n * mult
				counted = true
				claimed[i], claimed[j] = true, true
				break
			}
		}
	}

	// Multi-adult nouns: "a couple", "my parents".
	for i, tok := range toks {
		if claimed[i] {
			continue
		}
		if n, ok := lexicon.MultiAdultNoun(tok.Text); ok {
			counts.Adults += n
			counted = true
			claimed[i] = true
		}
	}

	// Bare singular nouns: "my wife", "a child", "an infant".
	for i, tok := range toks {
		if claimed[i] {
			continue
		}
		if bucket, ok := lexicon.RoleNoun(tok.Text); ok {
			addBucket(&counts, bucket, 1)
			counted = true
			claimed[i] = true
		}
	}

	// "a few people" is an exact size, "several" is a floor.
	if m := fewPattern.FindStringSubmatch(lower); m != nil {
		if counts.Adults < c.policy.FewCount {
			counts.Adults = c.policy.FewCount
		}
		counted = true
		claimAll(toks, claimed, lower, m[0])
	}
	if m := severalPattern.FindStringSubmatch(lower); m != nil {
		if counts.Adults < c.policy.SeveralFloor {
			counts.Adults = c.policy.SeveralFloor
		}
		counted = true
		claimAll(toks, claimed, lower, m[0])
	}

	// Unnumbered plurals floor their bucket at the policy default.
	for i, tok := range toks {
		if claimed[i] {
			continue
		}
		bucket, ok := lexicon.PluralRoleNoun(tok.Text)
		if !ok {
			continue
		}
		floor := c.policy.PluralDefault
		if tok.Text == "people" || tok.Text == "passengers" {
			floor = c.policy.PeopleDefault
		}
		cur := bucketValue(counts, bucket)
		if cur < floor {
			setBucket(&counts, bucket, floor)
		}
		counted = true
		claimed[i] = true
	}

	// Named people each travel as one adult.
	if n := c.persons(text); n > 0 {
		counts.Adults += n
		counted = true
	}

	// "me and my wife", "with me": the speaker travels too, unless
	// "family of N" already counted the whole group.
	if !familyTotal && meAndPattern.MatchString(lower) {
		counts.Adults++
		counted = true
	}

	// "we"/"us" floors the group at two, but only when no smaller
	// group was spelled out.
	if !counted && wePattern.MatchString(lower) {
		counts.Adults = c.policy.WeCount
		counted = true
	} else if counted && wePattern.MatchString(lower) && counts.Total() < c.policy.WeCount &&
		counts.Children == 0 && counts.Infants == 0 {
		counts.Adults = c.policy.WeCount
	}

	applyNegation(&counts, negated)

	if !counted || counts.Total() == 0 {
		return Counts{Adults: 1}
	}
	// Children cannot fly without an adult.
	if counts.Adults == 0 {
		counts.Adults = 1
	}
	return counts
}

func (c *Counter) ageBucket(age int) string {
	switch {
	case age <= c.policy.InfantMaxAge:
		return lexicon.BucketInfant
	case age <= c.policy.ChildMaxAge:
		return lexicon.BucketChild
	default:
		return lexicon.BucketAdult
	}
}

// personEntities counts proper-noun person entities. Lowercased input
// yields none; known city names never count as people.
func personEntities(text string) int {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return 0
	}
	n := 0
	for _, ent := range doc.Entities() {
		if ent.Label != "PERSON" {
			continue
		}
		runes := []rune(ent.Text)
		if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
			continue
		}
		if _, ok := lexicon.CityCode(strings.ToLower(ent.Text)); ok {
			continue
		}
		n++
	}
	return n
}

func negatedBuckets(lower string) map[string]bool {
	out := make(map[string]bool)
	for _, m := range negationPattern.FindAllStringSubmatch(lower, -1) {
		switch m[2] {
		case "kids", "children", "child":
			out[lexicon.BucketChild] = true
		case "infants", "babies", "baby":
			out[lexicon.BucketInfant] = true
		}
	}
	return out
}

func applyNegation(c *Counts, negated map[string]bool) {
	if negated[lexicon.BucketChild] {
		c.Children = 0
	}
	if negated[lexicon.BucketInfant] {
		c.Infants = 0
	}
}

func addBucket(c *Counts, bucket string, n int) {
	switch bucket {
	case lexicon.BucketAdult:
		c.Adults += n
	case lexicon.BucketChild:
		c.Children += n
	case lexicon.BucketInfant:
		c.Infants += n
	}
}

func setBucket(c *Counts, bucket string, n int) {
	switch bucket {
	case lexicon.BucketAdult:
		c.Adults = n
	case lexicon.BucketChild:
		c.Children = n
	case lexicon.BucketInfant:
		c.Infants = n
	}
}

func bucketValue(c Counts, bucket string) int {
	switch bucket {
	case lexicon.BucketAdult:
		return c.Adults
	case lexicon.BucketChild:
		return c.Children
	case lexicon.BucketInfant:
		return c.Infants
	}
	return 0
}

// claimAll marks every token inside the matched phrase as consumed.
func claimAll(toks []normalize.Token, claimed []bool, lower, phrase string) {
	idx := strings.Index(lower, phrase)
	if idx < 0 {
		return
	}
	end := idx + len(phrase)
	for i, tok := range toks {
		if tok.Offset >= idx && tok.Offset < end {
			claimed[i] = true
		}
	}
}
