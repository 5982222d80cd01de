package catalog

import (
	"fmt"
	"slices"

	"jobcatalog-engine/internal/domain"
)

// Attributes lists the filterable attributes in display order.
var Attributes = []string{domain.AttrLevel, domain.AttrType, domain.AttrSkill}

// Criteria maps an attribute to its selected value. An empty value places no
// constraint on that attribute.
type Criteria map[string]string

func (c Criteria) Validate() error {
	for attr := range c {
		if !slices.Contains(Attributes, attr) {
			return invalid("filter", fmt.Sprintf("unknown attribute %q", attr), nil)
		}
	}
	return nil
}

// Active drops empty values.
func (c Criteria) Active() Criteria {
	out := Criteria{}
	for attr, v := range c {
		if v != "" {
			out[attr] = v
		}
	}
	return out
}

func (c Criteria) clone() Criteria {
	out := make(Criteria, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Filter keeps the jobs matching every non-empty criterion exactly
// (case-sensitive), in input order. An unknown attribute matches nothing.
func Filter(jobs []domain.Job, c Criteria) []domain.Job {
	active := c.Active()
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if matches(j, active) {
			out = append(out, j)
		}
	}
	return out
}

func matches(j domain.Job, c Criteria) bool {
	for attr, want := range c {
		got, ok := j.Attr(attr)
		if !ok || got != want {
			return false
		}
	}
	return true
}
