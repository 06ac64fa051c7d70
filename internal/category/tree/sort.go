package tree

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/fekuna/omnipos-backoffice/internal/model"
)

const (
	SortPriority  = "priority"
	SortCreatedAt = "createdAt"
	SortName      = "name"
	SortLevel     = "level"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// IsSortField reports whether field is one the comparator understands.
func IsSortField(field string) bool {
	switch field {
	case SortPriority, SortCreatedAt, SortName, SortLevel:
		return true
	}
	return false
}

// Comparator orders siblings by field. Strings compare case-insensitively,
// dates by timestamp with missing or invalid dates at the epoch, numbers with
// missing values as 0. Unknown fields fall back to priority.
func Comparator(field, order string) func(a, b model.CategoryNode) int {
	var base func(a, b model.CategoryNode) int
	switch field {
	case SortName:
		base = func(a, b model.CategoryNode) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case SortCreatedAt:
		base = func(a, b model.CategoryNode) int {
			return cmp.Compare(timestamp(a.CreatedAt), timestamp(b.CreatedAt))
		}
	case SortLevel:
		base = func(a, b model.CategoryNode) int {
			return cmp.Compare(a.Level, b.Level)
		}
	default:
		base = func(a, b model.CategoryNode) int {
			return cmp.Compare(priority(a), priority(b))
		}
	}

	if strings.EqualFold(order, "DESC") {
		return func(a, b model.CategoryNode) int { return base(b, a) }
	}
	return base
}

// Sort orders siblings at every level. Ties keep their incoming order.
func Sort(nodes []model.CategoryNode, field, order string) []model.CategoryNode {
	return sortLevel(nodes, Comparator(field, order))
}

func sortLevel(nodes []model.CategoryNode, compare func(a, b model.CategoryNode) int) []model.CategoryNode {
	out := make([]model.CategoryNode, len(nodes))
	for i, n := range nodes {
		clone := n
		if len(n.Children) > 0 {
			clone.Children = sortLevel(n.Children, compare)
		}
		out[i] = clone
	}
	slices.SortStableFunc(out, compare)
	return out
}

func priority(n model.CategoryNode) float64 {
	if n.Priority == nil {
		return 0
	}
	return *n.Priority
}

func timestamp(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}
