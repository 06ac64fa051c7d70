package dto

import (
	"github.com/fekuna/omnipos-backoffice/internal/listquery"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/notify"
)

// QueryView echoes the list-query state back to the admin UI.
type QueryView struct {
	Page      int                 `json:"page"`
	Limit     int                 `json:"limit"`
	Search    string              `json:"search,omitempty"`
	SortField string              `json:"sortField,omitempty"`
	SortOrder string              `json:"sortOrder,omitempty"`
	Filters   map[string][]string `json:"filters,omitempty"`
	APIKey    string              `json:"apiKey"`
}

func NewQueryView(q listquery.Query) QueryView {
	return QueryView{
		Page:      q.Page,
		Limit:     q.Limit,
		Search:    q.Search,
		SortField: q.SortField,
		SortOrder: q.SortOrder,
		Filters:   q.Filters,
		APIKey:    q.APIKey(),
	}
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	TotalItems int  `json:"totalItems"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination prefers what the server reported. Missing totalPages is
// derived as ceil(totalItems/limit); missing hasNext/hasPrev from the page
// position.
func NewPagination(q listquery.Query, meta model.Meta, hasNext, hasPrev *bool) Pagination {
	p := Pagination{
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: meta.TotalPages,
		TotalItems: meta.TotalItems,
	}
	if meta.CurrentPage > 0 {
		p.Page = meta.CurrentPage
	}
	if p.TotalPages <= 0 && p.TotalItems > 0 && p.Limit > 0 {
		p.TotalPages = (p.TotalItems + p.Limit - 1) / p.Limit
	}
	if hasPrev != nil {
		p.HasPrev = *hasPrev
	} else {
		p.HasPrev = p.Page > 1
	}
	if hasNext != nil {
		p.HasNext = *hasNext
	} else {
		p.HasNext = p.Page < p.TotalPages
	}
	return p
}

// PageLinks are admin UI query strings for the neighbouring pages. Prev and
// Next are empty when there is no such page.
type PageLinks struct {
	Self string `json:"self"`
	Prev string `json:"prev,omitempty"`
	Next string `json:"next,omitempty"`
}

func NewPageLinks(q listquery.Query, p Pagination, specs []listquery.FilterSpec) PageLinks {
	links := PageLinks{Self: q.Values(specs).Encode()}
	if p.HasPrev && p.Page > 1 {
		links.Prev = q.WithPage(p.Page - 1).Values(specs).Encode()
	}
	if p.HasNext {
		links.Next = q.WithPage(p.Page + 1).Values(specs).Encode()
	}
	return links
}

// ListView is what a list or trash page renders.
type ListView[T any] struct {
	Kind       string     `json:"kind"`
	Trash      bool       `json:"trash"`
	Rows       []T        `json:"rows"`
	Query      QueryView  `json:"query"`
	Pagination Pagination `json:"pagination"`
	Links      PageLinks  `json:"links"`
	TrashCount int        `json:"trashCount"`
	// Error is set when the last fetch failed, so an empty list can be told
	// apart from a failed load.
	Error        string `json:"error,omitempty"`
	EmptyMessage string `json:"emptyMessage,omitempty"`
	// Stale marks a view returned for a request whose own fetch was
	// superseded by a newer one.
	Stale bool `json:"stale,omitempty"`
}

// MutationResult is returned by soft delete, restore and force delete.
type MutationResult[T any] struct {
	ID    string       `json:"id"`
	OK    bool         `json:"ok"`
	Toast notify.Toast `json:"toast"`
	View  *ListView[T] `json:"view,omitempty"`
	Err   error        `json:"-"`
}
