package dto

import (
	"github.com/elmparc/plan_go_server/internal/model"
)

// PlanResponse 计划及其训练课
type PlanResponse struct {
	Plan     *model.Plan             `json:"plan"`
	Sessions []model.TrainingSession `json:"sessions"`
}

// FocusRequest 训练重点更新请求
type FocusRequest struct {
	Focus string `json:"focus" binding:"required"`
}

// AutoAdjustRequest 重新生成动作请求
type AutoAdjustRequest struct {
	PlanID int64 `json:"plan_id" binding:"required"`
}

// SessionStartResult 开课判定结果
type SessionStartResult struct {
	Allowed bool
	Reason  string
	Session *SessionInfo
}

// SessionInfo 开课返回给前端的训练课内容
type SessionInfo struct {
	ID              int64               `json:"id"`
	Moves           []model.SessionMove `json:"moves"`
	DurationMinutes int                 `json:"duration_minutes"`
}

// CompleteSessionRequest 完课请求
type CompleteSessionRequest struct {
	CompletedMoves []string `json:"completed_moves,omitempty"`
}

// MatchRequest 比赛登记请求
type MatchRequest struct {
	MatchDatetime string  `json:"match_datetime" binding:"required"`
	LeagueName    *string `json:"league_name,omitempty"`
}
