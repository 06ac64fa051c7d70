package dto

import "time"

type CancelInput struct {
	OrderID string `validate:"required"`
	Reason  string `validate:"max=500"`
}

// ScheduleInput sets a discount's active window. Percentage is optional and
// only sent when the schedule also changes the rate.
type ScheduleInput struct {
	DiscountID string    `json:"-" validate:"required"`
	StartAt    time.Time `json:"startAt" validate:"required"`
	EndAt      time.Time `json:"endAt" validate:"required,gtfield=StartAt"`
	Percentage *float64  `json:"percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
}
