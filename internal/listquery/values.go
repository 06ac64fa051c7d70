package listquery

import (
	"net/url"
	"strconv"
	"strings"
)

// FilterSpec declares one optional filter control of a list toolbar.
type FilterSpec struct {
	// Param is the name used in the admin UI query string.
	Param string
	// APIKey is the backend parameter name. Defaults to Param.
	APIKey string
	// Multi marks filters that accept several values. The backend expects
	// them as repeated "key[]" parameters.
	Multi bool
}

func (s FilterSpec) apiKey() string {
	key := s.APIKey
	if key == "" {
		key = s.Param
	}
	if s.Multi && !strings.HasSuffix(key, "[]") {
		key += "[]"
	}
	return key
}

// FromValues reads toolbar state from an admin UI query string on top of
// base. Unknown parameters are ignored.
//
// toggleSort=<field> behaves like a click on a column header: it flips the
// order when field is already sorted on and otherwise switches to field with
// its default order. A new limit without an explicit page returns to page 1.
func FromValues(v url.Values, base Query, specs []FilterSpec) Query {
	p := Patch{}
	if s := v.Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			p.Page = Int(n)
		}
	}
	if s := v.Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			p.Limit = Int(n)
		}
	}
	if v.Has("search") {
		p.Search = String(v.Get("search"))
	}
	if s := v.Get("sortField"); s != "" {
		p.SortField = String(s)
		if v.Get("sortOrder") == "" {
			p.SortOrder = String(DefaultOrder(s))
		}
	}
	if s := v.Get("sortOrder"); s != "" {
		p.SortOrder = String(s)
	}

	for _, spec := range specs {
		values := collect(v, spec.Param)
		if len(values) == 0 {
			continue
		}
		if !spec.Multi {
			values = values[:1]
		}
		if p.Filters == nil {
			p.Filters = map[string][]string{}
		}
		p.Filters[spec.apiKey()] = values
	}

	q := base.SetQ(p)
	if p.Page == nil && q.Limit != base.Limit {
		q = q.SetLimit(q.Limit)
	}
	if field := strings.TrimSpace(v.Get("toggleSort")); field != "" {
		q = q.ToggleSort(field)
	}
	return q
}

// collect accepts both "role=a&role=b" and "role[]=a" and "role=a,b".
func collect(v url.Values, param string) []string {
	var out []string
	for _, raw := range append(v[param], v[param+"[]"]...) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Values encodes the query back into the admin UI query string form, e.g.
// for pagination links.
func (q Query) Values(specs []FilterSpec) url.Values {
	out := url.Values{}
	out.Set("page", strconv.Itoa(q.Page))
	out.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		out.Set("search", q.Search)
	}
	if q.SortField != "" {
		out.Set("sortField", q.SortField)
		out.Set("sortOrder", q.SortOrder)
	}
	for _, spec := range specs {
		if values, ok := q.Filters[spec.apiKey()]; ok {
			out[spec.Param] = append([]string(nil), values...)
		}
	}
	return out
}
