package dto

import "github.com/fekuna/omnipos-backoffice/internal/model"

type ActionFilters struct {
	Kind      string `form:"kind"`
	Action    string `form:"action"`
	SessionID string `form:"-"`
	TargetID  string `form:"targetId"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

type ActionListResponse struct {
	Data []model.ActionLog `json:"data"`
	Meta model.Meta        `json:"meta"`
}
