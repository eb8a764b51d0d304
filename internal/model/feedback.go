package model

import (
	"time"
)

// ReportFeedback 周报反馈
type ReportFeedback struct {
	ID             int64                  `gorm:"primaryKey" json:"id"`
	FeedbackChoice string                 `gorm:"size:100;not null" json:"feedback_choice"`
	FeedbackOther  *string                `gorm:"size:255" json:"feedback_other,omitempty"`
	ReportContext  map[string]interface{} `gorm:"serializer:json" json:"report_context,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

func (ReportFeedback) TableName() string {
	return "report_feedback"
}
