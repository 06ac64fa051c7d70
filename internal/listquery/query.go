// Package listquery holds the pagination, sort, search and filter state of a
// list page and derives the parameters sent to the backend from it.
//
// Query is a value type. Every update returns a new Query and leaves the
// receiver untouched, so a Query can be shared between goroutines freely.
package listquery

import (
	"net/url"
	"sort"
	"strings"

	"github.com/google/go-querystring/query"
)

const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"

	// AllValue is the filter value meaning "do not filter".
	AllValue = "all"

	DefaultLimit = 10
	MaxLimit     = 100
)

// Filters holds entity specific filters keyed by backend parameter name.
// Multi-valued backend parameters keep their bracket suffix, e.g. "userRole[]".
type Filters map[string][]string

func (f Filters) clone() Filters {
	if f == nil {
		return nil
	}
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = append([]string(nil), v...)
	}
	return out
}

type Query struct {
	Page      int     `url:"page"`
	Limit     int     `url:"limit"`
	Search    string  `url:"search,omitempty"`
	SortField string  `url:"sortField,omitempty"`
	SortOrder string  `url:"sortOrder,omitempty"`
	Trash     bool    `url:"isDeleted"`
	Filters   Filters `url:"-"`
}

// New returns a first-page query with the given defaults applied.
func New(limit int, sortField, sortOrder string) Query {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := Query{Page: 1, Limit: limit, SortField: sortField, SortOrder: normalizeOrder(sortOrder)}
	if q.SortField != "" && q.SortOrder == "" {
		q.SortOrder = DefaultOrder(sortField)
	}
	return q
}

// Patch is a partial update. Nil fields are left untouched. A filter key
// mapped to a nil or empty slice removes that filter.
type Patch struct {
	Page      *int
	Limit     *int
	Search    *string
	SortField *string
	SortOrder *string
	Trash     *bool
	Filters   map[string][]string
}

func Int(v int) *int          { return &v }
func String(v string) *string { return &v }
func Bool(v bool) *bool       { return &v }

// SetQ applies p. The page is only changed when p sets it.
func (q Query) SetQ(p Patch) Query {
	out := q
	out.Filters = q.Filters.clone()

	if p.Page != nil {
		out.Page = *p.Page
	}
	if p.Limit != nil {
		out.Limit = *p.Limit
	}
	if p.Search != nil {
		out.Search = strings.TrimSpace(*p.Search)
	}
	if p.SortField != nil {
		out.SortField = *p.SortField
	}
	if p.SortOrder != nil {
		out.SortOrder = normalizeOrder(*p.SortOrder)
	}
	if p.Trash != nil {
		out.Trash = *p.Trash
	}
	for k, v := range p.Filters {
		if len(v) == 0 {
			delete(out.Filters, k)
			continue
		}
		if out.Filters == nil {
			out.Filters = Filters{}
		}
		out.Filters[k] = append([]string(nil), v...)
	}
	return out.sanitize()
}

// SetQFunc applies a functional update.
func (q Query) SetQFunc(fn func(Query) Query) Query {
	next := q
	next.Filters = q.Filters.clone()
	return fn(next).sanitize()
}

// SetAndResetPage applies p and forces the first page. Used for every search,
// filter or sort change so pagination stays consistent with the new result set.
func (q Query) SetAndResetPage(p Patch) Query {
	p.Page = Int(1)
	return q.SetQ(p)
}

// SetLimit changes the page size and always returns to the first page.
func (q Query) SetLimit(limit int) Query {
	return q.SetAndResetPage(Patch{Limit: Int(limit)})
}

// ToggleSort flips the order when field is already the sort field, otherwise
// switches to field with its default order. Either way the page resets.
func (q Query) ToggleSort(field string) Query {
	order := DefaultOrder(field)
	if field == q.SortField {
		if q.SortOrder == OrderAsc {
			order = OrderDesc
		} else {
			order = OrderAsc
		}
	}
	return q.SetAndResetPage(Patch{SortField: String(field), SortOrder: String(order)})
}

// WithPage moves to page n without touching anything else.
func (q Query) WithPage(n int) Query {
	return q.SetQ(Patch{Page: Int(n)})
}

// APIParams maps the query to the backend's list parameters. Filters set to
// "all" or empty are omitted and multi-valued filters are emitted sorted, so
// two equal queries always produce identical parameters.
func (q Query) APIParams() url.Values {
	params, err := query.Values(q)
	if err != nil {
		// Query only has scalar fields, encoding cannot fail.
		params = url.Values{}
	}
	for key, values := range q.Filters {
		kept := make([]string, 0, len(values))
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" || strings.EqualFold(v, AllValue) {
				continue
			}
			kept = append(kept, v)
		}
		if len(kept) == 0 {
			continue
		}
		sort.Strings(kept)
		params[key] = kept
	}
	return params
}

// APIKey identifies APIParams. It changes if and only if APIParams changes.
func (q Query) APIKey() string {
	return q.APIParams().Encode()
}

func (q Query) sanitize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

func normalizeOrder(order string) string {
	switch strings.ToUpper(strings.TrimSpace(order)) {
	case OrderAsc:
		return OrderAsc
	case OrderDesc:
		return OrderDesc
	}
	return ""
}

var nameLike = map[string]bool{
	"name": true, "title": true, "code": true, "email": true,
	"fullname": true, "slug": true, "sku": true,
}

// DefaultOrder is ASC for name-like fields and DESC for date-like ones.
func DefaultOrder(field string) string {
	lower := strings.ToLower(field)
	if nameLike[lower] || strings.HasSuffix(lower, "name") {
		return OrderAsc
	}
	if strings.HasSuffix(field, "At") || strings.Contains(lower, "date") {
		return OrderDesc
	}
	return OrderAsc
}
