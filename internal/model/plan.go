package model

import (
	"time"
)

// 训练重点
const (
	FocusLateGame         = "late_game"
	FocusInjuryPrevention = "injury_prevention"
)

// 训练课状态
const (
	SessionScheduled = "scheduled"
	SessionCompleted = "completed"
	SessionSkipped   = "skipped"
)

// SessionMove 单个训练动作
type SessionMove struct {
	Name         string `json:"name"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes,omitempty"`
}

// Plan 周训练计划
type Plan struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	UserID          int64     `gorm:"not null;index" json:"user_id"`
	Focus           string    `gorm:"size:30;not null" json:"focus"` // late_game, injury_prevention
	SessionsPerWeek int       `gorm:"default:2" json:"sessions_per_week"`
	MatchID         *int64    `gorm:"index" json:"match_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// TrainingSession 计划下的单次训练课
type TrainingSession struct {
	ID              int64         `gorm:"primaryKey" json:"id"`
	PlanID          int64         `gorm:"not null;index" json:"plan_id"`
	ScheduledFor    time.Time     `gorm:"not null" json:"scheduled_for"`
	DurationMinutes int           `gorm:"default:8" json:"duration_minutes"`
	Status          string        `gorm:"size:20;default:scheduled;index" json:"status"` // scheduled, completed, skipped
	Moves           []SessionMove `gorm:"serializer:json" json:"moves"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

func (TrainingSession) TableName() string {
	return "sessions"
}

// SessionEvent 训练课事件（开始/完成）
type SessionEvent struct {
	ID        int64                  `gorm:"primaryKey" json:"id"`
	SessionID int64                  `gorm:"not null;index" json:"session_id"`
	EventType string                 `gorm:"size:30;not null" json:"event_type"`
	Payload   map[string]interface{} `gorm:"serializer:json" json:"payload,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func (SessionEvent) TableName() string {
	return "session_events"
}
