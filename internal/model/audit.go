package model

import "time"

// ActionLog records one confirmed state-changing action and its outcome.
type ActionLog struct {
	ID        string    `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"sessionId"`
	Actor     string    `db:"actor" json:"actor"`
	Kind      string    `db:"kind" json:"kind"`
	Action    string    `db:"action" json:"action"`
	TargetID  string    `db:"target_id" json:"targetId"`
	Succeeded bool      `db:"succeeded" json:"succeeded"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
