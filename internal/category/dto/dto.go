package dto

import (
	"net/url"
	"strconv"

	"github.com/fekuna/omnipos-backoffice/internal/model"
)

// TreeParams are the tree endpoint's query parameters.
type TreeParams struct {
	Depth     int
	SortField string
	SortOrder string
}

func (p TreeParams) Values() url.Values {
	v := url.Values{}
	v.Set("depth", strconv.Itoa(p.Depth))
	if p.SortField != "" {
		v.Set("sortField", p.SortField)
		v.Set("sortOrder", p.SortOrder)
	}
	return v
}

// ReviewRequest carries the review page controls. Nil fields keep their
// current value.
type ReviewRequest struct {
	Depth     *int    `form:"depth"`
	Status    *string `form:"status"`
	SortField *string `form:"sortField"`
	SortOrder *string `form:"sortOrder"`
	// Refresh refetches even when nothing changed.
	Refresh bool `form:"refresh"`
}

type ReviewView struct {
	Nodes     []model.CategoryNode `json:"nodes"`
	Status    string               `json:"status"`
	SortField string               `json:"sortField"`
	SortOrder string               `json:"sortOrder"`
	// Depth is the display depth, MaxDepth the depth selector's upper bound
	// and FetchedDepth what the last fetch asked the backend for.
	Depth        int `json:"depth"`
	MaxDepth     int `json:"maxDepth"`
	FetchedDepth int `json:"fetchedDepth"`
	// Total counts fetched nodes, Visible those left after pruning.
	Total        int    `json:"total"`
	Visible      int    `json:"visible"`
	Error        string `json:"error,omitempty"`
	EmptyMessage string `json:"emptyMessage,omitempty"`
	Stale        bool   `json:"stale,omitempty"`
}
