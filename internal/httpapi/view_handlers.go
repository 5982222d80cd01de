package httpapi

import (
	"net/http"

	"jobcatalog-engine/internal/catalog"
	"jobcatalog-engine/internal/domain"
)

type ViewHandler struct {
	Catalog *catalog.Controller
}

type filterReq struct {
	Level string `json:"level"`
	Type  string `json:"type"`
	Skill string `json:"skill"`
}

func (f filterReq) criteria() catalog.Criteria {
	return catalog.Criteria{
		domain.AttrLevel: f.Level,
		domain.AttrType:  f.Type,
		domain.AttrSkill: f.Skill,
	}
}

type sortReq struct {
	Key string `json:"key"`
}

func (h ViewHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req filterReq
	if err := decodeStrict(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if err := h.Catalog.SetFilter(req.criteria()); err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, h.Catalog.View())
}

func (h ViewHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	var req sortReq
	if err := decodeStrict(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	key, err := catalog.ParseSortKey(req.Key)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if err := h.Catalog.SetSort(key); err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, h.Catalog.View())
}

// Form applies the page's filter and sort selectors in one post. The filter
// is applied first so a bad sort key leaves the new filter in place, the
// same as two separate selector changes would.
func (h ViewHandler) Form(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_form", err.Error())
		return
	}
	req := filterReq{
		Level: r.PostForm.Get(domain.AttrLevel),
		Type:  r.PostForm.Get(domain.AttrType),
		Skill: r.PostForm.Get(domain.AttrSkill),
	}
	if err := h.Catalog.SetFilter(req.criteria()); err != nil {
		writeErr(w, r, err)
		return
	}
	if r.PostForm.Has("sort") {
		key, err := catalog.ParseSortKey(r.PostForm.Get("sort"))
		if err != nil {
			writeErr(w, r, err)
			return
		}
		if err := h.Catalog.SetSort(key); err != nil {
			writeErr(w, r, err)
			return
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Filters returns the option lists for every filterable attribute.
func (h ViewHandler) Filters(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]string, len(catalog.Attributes))
	for _, attr := range catalog.Attributes {
		vals, err := h.Catalog.DistinctValues(attr)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		out[attr] = vals
	}
	writeJSON(w, out)
}
