// Package tree holds the pure category-tree operations behind the category
// review page: depth bookkeeping, status pruning, sibling sorting and
// depth-limited rendering. None of the functions mutate their input.
package tree

import (
	"strings"

	"github.com/fekuna/omnipos-backoffice/internal/model"
)

// StatusAll disables status pruning.
const StatusAll = "all"

// Levels collects the level of every node in the tree.
func Levels(nodes []model.CategoryNode) []int {
	var out []int
	var walk func([]model.CategoryNode)
	walk = func(ns []model.CategoryNode) {
		for _, n := range ns {
			out = append(out, n.Level)
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}

// ObservedMaxLevel is the deepest level present, 0 for an empty tree.
func ObservedMaxLevel(nodes []model.CategoryNode) int {
	deepest := 0
	for _, l := range Levels(nodes) {
		if l > deepest {
			deepest = l
		}
	}
	return deepest
}

// ClampDepth bounds a requested depth to [0, model.MaxCategoryDepth].
func ClampDepth(depth int) int {
	if depth < 0 {
		return 0
	}
	if depth > model.MaxCategoryDepth {
		return model.MaxCategoryDepth
	}
	return depth
}

// CappedMax is the observed max level clamped to the server cap. It bounds
// the depth selector.
func CappedMax(nodes []model.CategoryNode) int {
	return ClampDepth(ObservedMaxLevel(nodes))
}

// Prune keeps a node when its own status matches (case-insensitively) or at
// least one descendant survives pruning. Kept nodes are shallow clones whose
// children are the pruned children. StatusAll and "" return nodes unchanged.
func Prune(nodes []model.CategoryNode, status string) []model.CategoryNode {
	status = strings.TrimSpace(status)
	if status == "" || strings.EqualFold(status, StatusAll) {
		return nodes
	}
	return prune(nodes, status)
}

func prune(nodes []model.CategoryNode, status string) []model.CategoryNode {
	out := make([]model.CategoryNode, 0, len(nodes))
	for _, n := range nodes {
		children := prune(n.Children, status)
		if !strings.EqualFold(n.CategoryStatus, status) && len(children) == 0 {
			continue
		}
		clone := n
		clone.Children = children
		out = append(out, clone)
	}
	return out
}

// Truncate drops everything below displayDepth, counted from the roots
// (roots are depth 0). Depth 0 shows roots only.
func Truncate(nodes []model.CategoryNode, displayDepth int) []model.CategoryNode {
	return truncate(nodes, 0, displayDepth)
}

func truncate(nodes []model.CategoryNode, depth, limit int) []model.CategoryNode {
	out := make([]model.CategoryNode, len(nodes))
	for i, n := range nodes {
		clone := n
		if depth < limit {
			clone.Children = truncate(n.Children, depth+1, limit)
		} else {
			clone.Children = []model.CategoryNode{}
		}
		out[i] = clone
	}
	return out
}

// Count returns the number of nodes in the tree.
func Count(nodes []model.CategoryNode) int {
	return len(Levels(nodes))
}
