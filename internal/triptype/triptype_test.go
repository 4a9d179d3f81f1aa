package triptype

import "testing"

func TestClassify_ReturnKeywords(t *testing.T) {
	queries := []string{
		"I need a return ticket from Lahore to Karachi",
		"Round trip flight to Islamabad",
		"Book me a round-trip ticket",
		"Return flight from KHI to LHE",
		"Two-way ticket please",
		"flight there and back",
	}
	for _, q := range queries {
		if got := Classify(q); got != Return {
			t.Errorf("Classify(%q) = %q, want return", q, got)
		}
	}
}

func TestClassify_OneWayKeywords(t *testing.T) {
	queries := []string{
		"one way flight to Karachi",
		"one-way ticket please",
		"single trip to Multan",
		"just going to Islamabad",
		"flying to Lahore, not coming back",
	}
	for _, q := range queries {
		if got := Classify(q); got != OneWay {
			t.Errorf("Classify(%q) = %q, want one_way", q, got)
		}
	}
}

func TestClassify_OneWayBeatsReturn(t *testing.T) {
	// An explicit one-way phrase wins even when return vocabulary is
	// also present.
	q := "one way only, no return needed"
	if got := Classify(q); got != OneWay {
		t.Errorf("Classify(%q) = %q, want one_way", q, got)
	}
}

func TestClassify_BetweenRange(t *testing.T) {
	q := "flight between the 5th and the 12th of September"
	if got := Classify(q); got != Return {
		t.Errorf("Classify(%q) = %q, want return", q, got)
	}
}

func TestClassify_TemporalReturnPhrases(t *testing.T) {
	queries := []string{
		"i will be coming back on the 15th",
		"karachi flight, return on friday",
		"leaving monday, back on thursday",
		"there on the 3rd and then back",
	}
	for _, q := range queries {
		if got := Classify(q); got != Return {
			t.Errorf("Classify(%q) = %q, want return", q, got)
		}
	}
}

func TestClassify_DateRange(t *testing.T) {
	q := "flight from Lahore to Karachi from the 10th to the 15th"
	if got := Classify(q); got != Return {
		t.Errorf("Classify(%q) = %q, want return", q, got)
	}
}

func TestClassify_GoingBack(t *testing.T) {
	queries := []string{
		"flying to Karachi and going back on Sunday",
		"go there and return after a week",
	}
	for _, q := range queries {
		if got := Classify(q); got != Return {
			t.Errorf("Classify(%q) = %q, want return", q, got)
		}
	}
}

func TestClassify_RepeatedCity(t *testing.T) {
	q := "Lahore to Karachi and then Karachi again"
	if got := Classify(q); got != Return {
		t.Errorf("Classify(%q) = %q, want return", q, got)
	}
}

func TestClassify_Default(t *testing.T) {
	queries := []string{
		"flight from Lahore to Karachi tomorrow",
		"I need a ticket to Islamabad",
	}
	for _, q := range queries {
		if got := Classify(q); got != OneWay {
			t.Errorf("Classify(%q) = %q, want one_way", q, got)
		}
	}
}
