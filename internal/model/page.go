package model

// Meta is the pagination block returned by list endpoints. Any field may be
// zero when the backend omits it.
type Meta struct {
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
}

// Page is one page of a list endpoint. HasNext and HasPrev are nil when the
// backend did not report them.
type Page[T any] struct {
	Data    []T   `json:"data"`
	Meta    Meta  `json:"meta"`
	HasNext *bool `json:"hasNext,omitempty"`
	HasPrev *bool `json:"hasPrev,omitempty"`
}
