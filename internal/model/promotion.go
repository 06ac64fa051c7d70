package model

import "time"

type Banner struct {
	BaseModel
	Title    string     `json:"title"`
	ImageURL string     `json:"imageUrl"`
	LinkURL  string     `json:"linkUrl,omitempty"`
	Position int        `json:"position"`
	IsActive bool       `json:"isActive"`
	StartAt  *time.Time `json:"startAt,omitempty"`
	EndAt    *time.Time `json:"endAt,omitempty"`
}

type Discount struct {
	BaseModel
	Name       string     `json:"name"`
	Percentage float64    `json:"percentage"`
	IsActive   bool       `json:"isActive"`
	StartAt    *time.Time `json:"startAt,omitempty"`
	EndAt      *time.Time `json:"endAt,omitempty"`
}

type Voucher struct {
	BaseModel
	Code          string     `json:"code"`
	Description   string     `json:"description,omitempty"`
	VoucherType   string     `json:"voucherType"`
	VoucherStatus string     `json:"voucherStatus"`
	Value         float64    `json:"value"`
	MinOrderValue float64    `json:"minOrderValue"`
	UsageLimit    int        `json:"usageLimit"`
	UsedCount     int        `json:"usedCount"`
	StartAt       *time.Time `json:"startAt,omitempty"`
	EndAt         *time.Time `json:"endAt,omitempty"`
}
