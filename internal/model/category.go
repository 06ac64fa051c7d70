package model

const (
	CategoryStatusDraft       = "draft"
	CategoryStatusPublished   = "published"
	CategoryStatusUnpublished = "unpublished"
)

// MaxCategoryDepth is the deepest level the backend will return.
const MaxCategoryDepth = 5

// CategoryNode is one node of the category tree. A child's Level is always
// its parent's Level+1 and roots sit at level 0.
type CategoryNode struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug,omitempty"`
	Level          int            `json:"level"`
	CategoryStatus string         `json:"categoryStatus"`
	Priority       *float64       `json:"priority,omitempty"`
	CreatedAt      string         `json:"createdAt,omitempty"`
	Children       []CategoryNode `json:"children"`
}
