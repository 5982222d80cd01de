// Package postedtime turns the free-text "posted" value of a job posting
// ("10 minutes", "2 hours ago", "3 Days") into a rank that orders postings by
// recency. Smaller ranks are more recent.
package postedtime

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Rank is the age of a posting in minutes.
type Rank int64

// Unranked is returned for missing or malformed values. It sorts after every
// valid rank.
const Unranked Rank = math.MaxInt64

var unitMinutes = map[string]int64{
	"minute": 1,
	"hour":   60,
	"day":    1440,
}

// Parse never fails: anything it cannot read degrades to Unranked.
func Parse(posted string) Rank {
	fields := strings.Fields(strings.ToLower(posted))
	if len(fields) < 2 {
		return Unranked
	}

	n, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || n < 0 {
		return Unranked
	}

	mult, ok := unitMinutes[strings.TrimSuffix(fields[1], "s")]
	if !ok {
		return Unranked
	}

	// n*mult must stay strictly below the sentinel
	if n > (int64(Unranked)-1)/mult {
		return Unranked
	}
	return Rank(n * mult)
}

func (r Rank) Ranked() bool { return r != Unranked }

// Duration is zero for Unranked.
func (r Rank) Duration() time.Duration {
	if !r.Ranked() || int64(r) > int64(math.MaxInt64/time.Minute) {
		return 0
	}
	return time.Duration(r) * time.Minute
}

func (r Rank) String() string {
	if !r.Ranked() {
		return "unranked"
	}
	return strconv.FormatInt(int64(r), 10) + "m"
}
