package model

import (
	"time"
)

// WeeklyReportRequest 周报提交记录，email 小写存储，用于 7 天限频回查。
type WeeklyReportRequest struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:100;not null;index" json:"email"`
	MatchDay     string    `gorm:"size:20;not null" json:"match_day"`
	TrainingDays int       `gorm:"not null" json:"training_days"`
	LegsStatus   string    `gorm:"size:20;not null" json:"legs_status"`
	TeammateCode *string   `gorm:"size:50" json:"teammate_code,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (WeeklyReportRequest) TableName() string {
	return "weekly_report_requests"
}

// ReportFollowup 后续提醒，到期由 worker 投递。
type ReportFollowup struct {
	ID              int64      `gorm:"primaryKey" json:"id"`
	Email           string     `gorm:"size:100;not null;index" json:"email"`
	ReportRequestID int64      `gorm:"not null;index" json:"report_request_id"`
	SendAt          time.Time  `gorm:"not null;index" json:"send_at"`
	SentAt          *time.Time `json:"sent_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (ReportFollowup) TableName() string {
	return "weekly_report_followups"
}
