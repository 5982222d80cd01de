// Package render produces the HTML presentation of the catalog. Templates
// go through html/template; detail blocks come pre-escaped from domain.Job.
package render

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"jobcatalog-engine/internal/catalog"
	"jobcatalog-engine/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"age":    Age,
	"detail": func(j domain.Job) template.HTML { return template.HTML(j.DetailHTML()) },
}).ParseFS(templateFS, "templates/*.html"))

// FilterOptions backs one filter selector.
type FilterOptions struct {
	Attr     string
	Label    string
	Options  []string
	Selected string
}

type PageData struct {
	Heading  string
	State    string
	Total    int
	Jobs     []domain.Job
	Filters  []FilterOptions
	Sort     catalog.SortKey
	SortKeys []catalog.SortKey
}

var labels = map[string]string{
	domain.AttrLevel: "Level",
	domain.AttrType:  "Type",
	domain.AttrSkill: "Skill",
}

// NewPageData builds the page from one controller snapshot, so the view and
// the filter options always describe the same catalog.
func NewPageData(c *catalog.Controller) PageData {
	snap := c.Snapshot()
	d := PageData{
		Heading:  "Job Catalog",
		State:    snap.State,
		Total:    snap.Total,
		Jobs:     snap.View,
		Sort:     snap.Sort,
		SortKeys: []catalog.SortKey{catalog.SortTime, catalog.SortTitle, catalog.SortNone},
	}
	for _, attr := range catalog.Attributes {
		d.Filters = append(d.Filters, FilterOptions{
			Attr:     attr,
			Label:    labels[attr],
			Options:  snap.Options[attr],
			Selected: snap.Criteria[attr],
		})
	}
	return d
}

func Page(w io.Writer, d PageData) error {
	return templates.ExecuteTemplate(w, "page.html", d)
}

func Detail(w io.Writer, j domain.Job) error {
	return templates.ExecuteTemplate(w, "detail.html", j)
}

// Age renders a rank as a relative time, e.g. "2 hours ago".
func Age(j domain.Job) string {
	if !j.Rank().Ranked() {
		return "unknown"
	}
	now := time.Now()
	return humanize.RelTime(now.Add(-j.Rank().Duration()), now, "ago", "from now")
}
