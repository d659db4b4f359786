package cron

import (
	"testing"
	"time"
)

func TestMatchesFieldWildcard(t *testing.T) {
	for _, v := range []int{0, 1, 15, 31} {
		if !MatchesField(v, "*", 1, 31) {
			t.Errorf("MatchesField(%d, \"*\") = false, want true", v)
		}
	}
}

func TestMatchesFieldRangeAndList(t *testing.T) {
	cases := []struct {
		value int
		field string
		want  bool
	}{
		{5, "1-3,5", true},
		{4, "1-3,5", false},
		{2, "1-3,5", true},
		{1, "1-3", true},
		{3, "1-3", true},
		{0, "1-3", false},
		{10, "3,7,10", true},
		{11, "3,7,10", false},
	}
	for _, c := range cases {
		if got := MatchesField(c.value, c.field, 1, 31); got != c.want {
			t.Errorf("MatchesField(%d, %q) = %v, want %v", c.value, c.field, got, c.want)
		}
	}
}

func TestMatchesFieldSteps(t *testing.T) {
	cases := []struct {
		value int
		field string
		want  bool
	}{
		{4, "*/2", true},  // base resolves to min=0
		{3, "*/2", false},
		{0, "*/2", true},
		{5, "1/2", true},
		{4, "1/2", false},
		{0, "1/2", false}, // below base never matches
	}
	for _, c := range cases {
		if got := MatchesField(c.value, c.field, 0, 23); got != c.want {
			t.Errorf("MatchesField(%d, %q) = %v, want %v", c.value, c.field, got, c.want)
		}
	}
}

func TestMatchesFieldMalformed(t *testing.T) {
	// Malformed alternatives fail soft: no match, no panic.
	for _, field := range []string{"a-b", "x", "1/x", "-", "/", ""} {
		if MatchesField(5, field, 1, 31) {
			t.Errorf("MatchesField(5, %q) = true, want false", field)
		}
	}
}

func TestNextOccurrencesTooFewFields(t *testing.T) {
	if got := NextOccurrences("0 9 *", 90, 60, time.Now()); len(got) != 0 {
		t.Fatalf("expected no occurrences for 3-field expression, got %v", got)
	}
}

func TestNextOccurrencesMondays(t *testing.T) {
	// 2026-08-03 is a Monday.
	now := time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)
	got := NextOccurrences("0 9 * * 1", 14, 60, now)
	want := []string{"2026-08-03", "2026-08-10", "2026-08-17"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("occurrence %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNextOccurrencesWithinHorizon(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	horizon := 90
	got := NextOccurrences("0 0 * * *", horizon, 1000, now)
	if len(got) != horizon {
		t.Fatalf("daily expression over %d days returned %d dates", horizon, len(got))
	}
	last := now.AddDate(0, 0, horizon-1).Format("2006-01-02")
	if got[len(got)-1] != last {
		t.Errorf("last occurrence = %s, want %s", got[len(got)-1], last)
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("occurrences not ascending at %d: %s <= %s", i, got[i], got[i-1])
		}
	}
}

func TestNextOccurrencesMaxCount(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	got := NextOccurrences("0 0 * * *", 90, 5, now)
	if len(got) != 5 {
		t.Fatalf("maxCount=5 returned %d dates", len(got))
	}
}

func TestNextOccurrencesFirstOfMonth(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	got := NextOccurrences("30 6 1 * *", 90, 60, now)
	want := []string{"2026-09-01", "2026-10-01", "2026-11-01"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("occurrence %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNextOccurrencesPure(t *testing.T) {
	now := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	a := NextOccurrences("0 9 * * 1,3", 30, 60, now)
	b := NextOccurrences("0 9 * * 1,3", 30, 60, now)
	if len(a) != len(b) {
		t.Fatal("repeated calls disagree")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("repeated calls disagree")
		}
	}
}
