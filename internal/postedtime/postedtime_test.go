package postedtime

import (
	"math"
	"testing"
	"time"
)

func TestParseValid(t *testing.T) {
	cases := []struct {
		in   string
		want Rank
	}{
		{"1 minute", 1},
		{"10 minutes", 10},
		{"1 hour", 60},
		{"2 hours", 120},
		{"1 day", 1440},
		{"3 days", 4320},
		{"0 minutes", 0},
		{"2 HOURS", 120},
		{"5 Days", 7200},
		{"2 hours ago", 120},
		{"  7\tminutes  ", 7},
	}
	for _, tc := range cases {
		if got := Parse(tc.in); got != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseDegradesToUnranked(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"bad",
		"2",
		"two hours",
		"2 weeks",
		"2 hourss",
		"1.5 hours",
		"-3 hours",
		"10abc minutes",
		"9223372036854775807 days",
		"99999999999999999999 minutes",
	}
	for _, in := range cases {
		if got := Parse(in); got != Unranked {
			t.Errorf("Parse(%q) = %d, want Unranked", in, got)
		}
	}
}

func TestUnrankedSortsAfterLargestRank(t *testing.T) {
	largest := Parse("6405119470038038 days")
	if !largest.Ranked() {
		t.Fatalf("expected %q to be ranked", "6405119470038038 days")
	}
	if !(largest < Unranked) {
		t.Fatalf("largest rank %d not below sentinel", largest)
	}
}

func TestRankHelpers(t *testing.T) {
	if got := Rank(90).Duration(); got != 90*time.Minute {
		t.Errorf("Duration = %v", got)
	}
	if got := Unranked.Duration(); got != 0 {
		t.Errorf("Unranked.Duration = %v", got)
	}
	if got := Rank(math.MaxInt64 - 1).Duration(); got != 0 {
		t.Errorf("overflowing Duration = %v", got)
	}
	if got := Rank(15).String(); got != "15m" {
		t.Errorf("String = %q", got)
	}
	if got := Unranked.String(); got != "unranked" {
		t.Errorf("Unranked.String = %q", got)
	}
}
