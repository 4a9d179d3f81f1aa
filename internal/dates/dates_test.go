package dates

import (
	"testing"
	"time"
)

// fixedNow pins the reference time so relative dates are stable.
func fixedNow() time.Time {
	return time.Date(2025, 8, 4, 10, 0, 0, 0, time.UTC)
}

func testResolver() *Resolver {
	return NewResolver(fixedNow)
}

func TestResolveDeparture_SpecialDates(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"flight to Karachi today", "2025-08-04"},
		{"I want to travel tomorrow", "2025-08-05"},
		{"leaving the day after tomorrow", "2025-08-06"},
	}

	r := testResolver()
	for _, tt := range tests {
		if got := r.ResolveDeparture(tt.query); got != tt.want {
			t.Errorf("ResolveDeparture(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestResolveDeparture_ReturnWordFarAway(t *testing.T) {
	// "return" describes the trip type here, not the date.
	r := testResolver()
	got := r.ResolveDeparture("business class return flight from Lahore to Islamabad tomorrow")
	if got != "2025-08-05" {
		t.Errorf("got %q, want 2025-08-05", got)
	}
}

func TestResolveDeparture_IndicatorSpan(t *testing.T) {
	r := testResolver()
	got := r.ResolveDeparture("departing on friday and returning on sunday")
	// 2025-08-04 is a Monday; the coming Friday is the 8th.
	if got != "2025-08-08" {
		t.Errorf("got %q, want 2025-08-08", got)
	}
}

func TestResolveDeparture_None(t *testing.T) {
	r := testResolver()
	if got := r.ResolveDeparture("flight from Lahore to Karachi"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestResolveReturn_SpecialDateWithCue(t *testing.T) {
	r := testResolver()
	if got := r.ResolveReturn("I will come back tomorrow"); got != "2025-08-05" {
		t.Errorf("got %q, want 2025-08-05", got)
	}
}

func TestResolveReturn_NoCue(t *testing.T) {
	r := testResolver()
	if got := r.ResolveReturn("flight to Karachi tomorrow"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	// A distant "return" must not claim the date either.
	if got := r.ResolveReturn("return flight from Lahore to Islamabad tomorrow"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestResolveReturn_IndicatorSpan(t *testing.T) {
	r := testResolver()
	got := r.ResolveReturn("departing on friday and returning on sunday")
	// The Sunday after Friday the 8th.
	if got != "2025-08-10" {
		t.Errorf("got %q, want 2025-08-10", got)
	}
}

func TestResolvePair_BothLegs(t *testing.T) {
	r := testResolver()
	dep, ret := r.ResolvePair("flying out tomorrow and coming back the day after tomorrow")
	if dep != "2025-08-05" {
		t.Errorf("departure = %q, want 2025-08-05", dep)
	}
	if ret != "2025-08-06" {
		t.Errorf("return = %q, want 2025-08-06", ret)
	}
}

func TestResolvePair_BetweenRange(t *testing.T) {
	r := testResolver()
	dep, ret := r.ResolvePair("flight between the 5th and 12th of September from Lahore to Karachi")
	// The first side is the departure and borrows the month from the
	// second.
	if dep != "2025-09-05" {
		t.Errorf("departure = %q, want 2025-09-05", dep)
	}
	if ret != "2025-09-12" {
		t.Errorf("return = %q, want 2025-09-12", ret)
	}
}

func TestResolvePair_OrdinalRange(t *testing.T) {
	r := testResolver()
	dep, ret := r.ResolvePair("flight from Lahore to Karachi from the 10th to the 15th")
	if dep != "2025-08-10" {
		t.Errorf("departure = %q, want 2025-08-10", dep)
	}
	if ret != "2025-08-15" {
		t.Errorf("return = %q, want 2025-08-15", ret)
	}
}

func TestBareOrdinalDate_MonthName(t *testing.T) {
	d, _ := bareOrdinalDate("12th september", fixedNow())
	if d != "2025-09-12" {
		t.Errorf("got %q, want 2025-09-12", d)
	}
	// A day in a month already behind the reference rolls a year ahead.
	d, _ = bareOrdinalDate("20th march", fixedNow())
	if d != "2026-03-20" {
		t.Errorf("got %q, want 2026-03-20", d)
	}
}

func TestIndicatorSpan_CutAtOpposing(t *testing.T) {
	span, ok := indicatorSpan("leaving tomorrow returning friday", departIndicator, returnIndicator)
	if !ok {
		t.Fatal("expected a span")
	}
	if span != "tomorrow" {
		t.Errorf("span = %q, want tomorrow", span)
	}
}

func TestSpecialDate_EarliestWins(t *testing.T) {
	d, _, ok := specialDate("today or tomorrow works", fixedNow())
	if !ok {
		t.Fatal("expected a match")
	}
	if d != "2025-08-04" {
		t.Errorf("got %q, want 2025-08-04", d)
	}
}

func TestSpecialDate_LongestPhraseFirst(t *testing.T) {
	d, _, ok := specialDate("the day after tomorrow", fixedNow())
	if !ok {
		t.Fatal("expected a match")
	}
	if d != "2025-08-06" {
		t.Errorf("got %q, want 2025-08-06", d)
	}
}

func TestCueNear(t *testing.T) {
	tests := []struct {
		text   string
		offset int
		want   bool
	}{
		{"come back tomorrow", 10, true},
		{"returning on the 10th", 17, true},
		{"return flight from lahore to islamabad tomorrow", 39, false},
	}
	for _, tt := range tests {
		if got := cueNear(tt.text, tt.offset); got != tt.want {
			t.Errorf("cueNear(%q, %d) = %v, want %v", tt.text, tt.offset, got, tt.want)
		}
	}
}
