package catalog

import (
	"errors"
	"testing"

	"jobcatalog-engine/internal/domain"
)

func sampleJobs(t *testing.T) []domain.Job {
	return []domain.Job{
		mustJob(t, "Backend", "1 day", "Full-time", "Mid", "Go"),
		mustJob(t, "Frontend", "2 hours", "Contract", "Junior", "React"),
		mustJob(t, "Platform", "5 minutes", "Full-time", "Senior", "Go"),
		mustJob(t, "Data", "3 days", "Full-time", "Mid", "Python"),
		mustJob(t, "mobile", "1 hour", "Contract", "mid", "Go"),
	}
}

func TestFilterEmptyCriteriaIsIdentity(t *testing.T) {
	jobs := sampleJobs(t)
	for _, c := range []Criteria{nil, {}, {domain.AttrLevel: "", domain.AttrSkill: ""}} {
		got := Filter(jobs, c)
		assertTitles(t, got, titles(jobs)...)
	}
}

func TestFilterExactAndCombined(t *testing.T) {
	jobs := sampleJobs(t)

	assertTitles(t, Filter(jobs, Criteria{domain.AttrLevel: "Mid"}), "Backend", "Data")
	assertTitles(t, Filter(jobs, Criteria{domain.AttrSkill: "Go"}), "Backend", "Platform", "mobile")
	assertTitles(t, Filter(jobs, Criteria{domain.AttrSkill: "Go", domain.AttrType: "Full-time"}), "Backend", "Platform")
	assertTitles(t, Filter(jobs, Criteria{domain.AttrLevel: "Mid", domain.AttrSkill: "Go", domain.AttrType: "Contract"}))
	// no partial or case-folded matches
	assertTitles(t, Filter(jobs, Criteria{domain.AttrLevel: "Mi"}))
	assertTitles(t, Filter(jobs, Criteria{domain.AttrLevel: "mid"}), "mobile")
}

func TestFilterNeverReturnsMismatch(t *testing.T) {
	jobs := sampleJobs(t)
	criteria := []Criteria{
		{domain.AttrLevel: "Mid"},
		{domain.AttrType: "Contract"},
		{domain.AttrSkill: "Go", domain.AttrLevel: "Senior"},
	}
	for _, c := range criteria {
		for _, j := range Filter(jobs, c) {
			for attr, want := range c {
				if got, _ := j.Attr(attr); got != want {
					t.Errorf("criteria %v returned %q with %s=%q", c, j.Title, attr, got)
				}
			}
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	jobs := sampleJobs(t)
	before := titles(jobs)
	_ = Filter(jobs, Criteria{domain.AttrLevel: "Senior"})
	assertTitles(t, jobs, before...)
}

func TestFilterUnknownAttributeMatchesNothing(t *testing.T) {
	assertTitles(t, Filter(sampleJobs(t), Criteria{"title": "Backend"}))
}

func TestCriteriaValidate(t *testing.T) {
	if err := (Criteria{domain.AttrLevel: "x", domain.AttrType: "", domain.AttrSkill: "y"}).Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	err := Criteria{"location": "Remote"}.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
