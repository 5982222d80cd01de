package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"jobcatalog-engine/internal/domain"
)

type SortKey string

const (
	SortNone  SortKey = "none"
	SortTitle SortKey = "title"
	SortTime  SortKey = "time"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortNone, SortTitle, SortTime:
		return true
	}
	return false
}

// ParseSortKey accepts the option values used by the presentation layer.
// The empty string means no sorting.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortNone, nil
	}
	k := SortKey(s)
	if !k.Valid() {
		return "", invalid("sort", fmt.Sprintf("unknown sort key %q", s), nil)
	}
	return k, nil
}

// Sort returns a stably ordered copy of jobs. The input is not modified.
func Sort(jobs []domain.Job, key SortKey) []domain.Job {
	out := slices.Clone(jobs)
	if out == nil {
		out = []domain.Job{}
	}

	switch key {
	case SortTitle:
		// a Collator keeps internal buffers, so one per call
		coll := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b domain.Job) int {
			return coll.CompareString(a.Title, b.Title)
		})
	case SortTime:
		slices.SortStableFunc(out, func(a, b domain.Job) int {
			return cmp.Compare(a.Rank(), b.Rank())
		})
	}
	return out
}
