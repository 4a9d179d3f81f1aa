package passengers

import "testing"

func testCounter() *Counter {
	return NewCounter(DefaultPolicy())
}

func TestCount_Default(t *testing.T) {
	c := testCounter()
	got := c.Count("flight from Lahore to Karachi")
	if got != (Counts{Adults: 1}) {
		t.Errorf("got %+v, want 1 adult", got)
	}
}

func TestCount_NumberNounPairs(t *testing.T) {
	tests := []struct {
		query string
		want  Counts
	}{
		{"2 adults flying to Karachi", Counts{Adults: 2}},
		{"three kids and 2 adults", Counts{Adults: 2, Children: 3}},
		{"one infant and two adults", Counts{Adults: 2, Infants: 1}},
		{"4 passengers to Islamabad", Counts{Adults: 4}},
		{"2 adults, 1 child and 1 infant", Counts{Adults: 2, Children: 1, Infants: 1}},
	}

	c := testCounter()
	for _, tt := range tests {
		if got := c.Count(tt.query); got != tt.want {
			t.Errorf("Count(%q) = %+v, want %+v", tt.query, got, tt.want)
		}
	}
}

func TestCount_RoleNouns(t *testing.T) {
	tests := []struct {
		query string
		want  Counts
	}{
		{"me and my wife", Counts{Adults: 2}},
		{"traveling with my husband and son", Counts{Adults: 2, Children: 1}},
		{"a couple with a baby", Counts{Adults: 2, Infants: 1}},
		{"my parents are flying", Counts{Adults: 2}},
	}

	c := testCounter()
	for _, tt := range tests {
		if got := c.Count(tt.query); got != tt.want {
			t.Errorf("Count(%q) = %+v, want %+v", tt.query, got, tt.want)
		}
	}
}

func TestCount_FamilyOf(t *testing.T) {
	tests := []struct {
		query string
		want  Counts
	}{
		// "family of N" is the total head count.
		{"a family of four flying to Skardu", Counts{Adults: 4}},
		{"a family of 5 flying to Skardu", Counts{Adults: 5}},
		{"a group of 6 going to Gilgit", Counts{Adults: 6}},
		{"party of three to Multan", Counts{Adults: 3}},
	}

	c := testCounter()
	for _, tt := range tests {
		if got := c.Count(tt.query); got != tt.want {
			t.Errorf("Count(%q) = %+v, want %+v", tt.query, got, tt.want)
		}
	}
}

func TestCount_FamilyOfSkipsSpeakerBonus(t *testing.T) {
	c := testCounter()
	// The speaker is already inside the family total.
	got := c.Count("me and my family of 4")
	if got != (Counts{Adults: 4}) {
		t.Errorf("got %+v, want 4 adults", got)
	}
}

func TestCount_AgePhrases(t *testing.T) {
	tests := []struct {
		query string
		want  Counts
	}{
		{"traveling with my 2 year old son", Counts{Adults: 1, Infants: 1}},
		{"2 adults and a 5 year old daughter", Counts{Adults: 2, Children: 1}},
		{"with my 19 year old brother", Counts{Adults: 2}},
		{"a 1-year-old baby and his mother", Counts{Adults: 1, Infants: 1}},
	}

	c := testCounter()
	for _, tt := range tests {
		if got := c.Count(tt.query); got != tt.want {
			t.Errorf("Count(%q) = %+v, want %+v", tt.query, got, tt.want)
		}
	}
}

func TestCount_NumberLookahead(t *testing.T) {
	c := testCounter()
	// The role noun can sit a couple of tokens past the number.
	got := c.Count("3 little children and 2 adults")
	want := Counts{Adults: 2, Children: 3}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCount_PersonEntities(t *testing.T) {
	c := testCounter()
	c.persons = func(string) int { return 2 }
	got := c.Count("booking a flight for Ahmed and Sara")
	if got.Adults != 2 {
		t.Errorf("got %+v, want 2 adults", got)
	}
}

func TestCount_JustMe(t *testing.T) {
	queries := []string{
		"just me",
		"traveling alone to Karachi",
		"flying solo",
	}
	c := testCounter()
	for _, q := range queries {
		if got := c.Count(q); got != (Counts{Adults: 1}) {
			t.Errorf("Count(%q) = %+v, want 1 adult", q, got)
		}
	}
}

func TestCount_VagueGroups(t *testing.T) {
	tests := []struct {
		query string
		want  Counts
	}{
		{"a few people going to Multan", Counts{Adults: 3}},
		{"several people flying", Counts{Adults: 4}},
		{"we are going to Lahore", Counts{Adults: 2}},
		{"bringing the kids along", Counts{Adults: 1, Children: 2}},
	}

	c := testCounter()
	for _, tt := range tests {
		if got := c.Count(tt.query); got != tt.want {
			t.Errorf("Count(%q) = %+v, want %+v", tt.query, got, tt.want)
		}
	}
}

func TestCount_ExplicitBeatsVague(t *testing.T) {
	c := testCounter()
	// "we" must not shrink an explicit larger group.
	got := c.Count("we are 4 adults")
	if got.Adults != 4 {
		t.Errorf("got %+v, want 4 adults", got)
	}
}

func TestCount_Negation(t *testing.T) {
	c := testCounter()
	got := c.Count("2 adults, no kids")
	want := Counts{Adults: 2}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCount_ChildrenNeverAlone(t *testing.T) {
	c := testCounter()
	got := c.Count("2 children flying to Lahore")
	if got.Adults != 1 || got.Children != 2 {
		t.Errorf("got %+v, want 1 adult with 2 children", got)
	}
}

func TestCounts_Total(t *testing.T) {
	c := Counts{Adults: 2, Children: 1, Infants: 1}
	if c.Total() != 4 {
		t.Errorf("Total() = %d, want 4", c.Total())
	}
}
