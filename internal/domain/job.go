package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"jobcatalog-engine/internal/postedtime"
)

// Filterable attribute names, as used by filter criteria and option lists.
const (
	AttrLevel = "level"
	AttrType  = "type"
	AttrSkill = "skill"
)

// RawJob is one element of an uploaded payload. Title is a pointer so an
// absent title can be told apart from an empty one.
type RawJob struct {
	Title  *string `json:"Title"`
	Posted string  `json:"Posted"`
	Type   string  `json:"Type"`
	Level  string  `json:"Level"`
	Skill  string  `json:"Skill"`
	Detail string  `json:"Detail"`
}

// Job is an immutable posting. The rank is computed once in FromRaw and
// never recomputed, so sorting by recency never re-parses Posted.
type Job struct {
	ID     string
	Seq    int
	Title  string
	Posted string
	Type   string
	Level  string
	Skill  string
	Detail string

	rank postedtime.Rank
}

// ValidationError reports a record that cannot become a Job.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

func FromRaw(raw RawJob) (Job, error) {
	if raw.Title == nil {
		return Job{}, &ValidationError{Field: "Title", Value: nil, Message: "is required"}
	}
	return Job{
		ID:     uuid.NewString(),
		Title:  *raw.Title,
		Posted: raw.Posted,
		Type:   raw.Type,
		Level:  raw.Level,
		Skill:  raw.Skill,
		Detail: raw.Detail,
		rank:   postedtime.Parse(raw.Posted),
	}, nil
}

func (j Job) Rank() postedtime.Rank { return j.rank }

// Attr returns the value of a filterable attribute.
func (j Job) Attr(name string) (string, bool) {
	switch name {
	case AttrLevel:
		return j.Level, true
	case AttrType:
		return j.Type, true
	case AttrSkill:
		return j.Skill, true
	}
	return "", false
}

// DetailHTML is the full detail block with every user field escaped.
func (j Job) DetailHTML() string {
	detail := j.Detail
	if detail == "" {
		detail = "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>\n", EscapeHTML(j.Title))
	fmt.Fprintf(&b, "<p><strong>Posted:</strong> %s</p>\n", EscapeHTML(j.Posted))
	fmt.Fprintf(&b, "<p><strong>Type:</strong> %s</p>\n", EscapeHTML(j.Type))
	fmt.Fprintf(&b, "<p><strong>Level:</strong> %s</p>\n", EscapeHTML(j.Level))
	fmt.Fprintf(&b, "<p><strong>Skill:</strong> %s</p>\n", EscapeHTML(j.Skill))
	fmt.Fprintf(&b, "<p><strong>Details:</strong> %s</p>\n", EscapeHTML(detail))
	return b.String()
}

type jobJSON struct {
	ID         string `json:"id"`
	Seq        int    `json:"seq"`
	Title      string `json:"title"`
	Posted     string `json:"posted"`
	Type       string `json:"type"`
	Level      string `json:"level"`
	Skill      string `json:"skill"`
	Detail     string `json:"detail,omitempty"`
	RankMinute *int64 `json:"posted_rank_minutes"`
}

// MarshalJSON writes the rank as null when the posting is unranked.
func (j Job) MarshalJSON() ([]byte, error) {
	out := jobJSON{
		ID:     j.ID,
		Seq:    j.Seq,
		Title:  j.Title,
		Posted: j.Posted,
		Type:   j.Type,
		Level:  j.Level,
		Skill:  j.Skill,
		Detail: j.Detail,
	}
	if j.rank.Ranked() {
		m := int64(j.rank)
		out.RankMinute = &m
	}
	return json.Marshal(out)
}
