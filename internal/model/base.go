package model

import "time"

// BaseModel carries the audit fields every backend record has.
type BaseModel struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func (b BaseModel) GetID() string {
	return b.ID
}

// IsDeleted reports whether the record sits in the trash.
func (b BaseModel) IsDeleted() bool {
	return b.DeletedAt != nil
}

// Entity is satisfied by every flat record type.
type Entity interface {
	GetID() string
}
