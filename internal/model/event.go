package model

import (
	"time"
)

// ReportEvent 埋点事件，尽力而为写入，不参与任何业务判定。
type ReportEvent struct {
	ID         int64                  `gorm:"primaryKey" json:"id"`
	UserID     *int64                 `gorm:"index" json:"user_id,omitempty"`
	EventType  string                 `gorm:"size:50;not null;index" json:"event_type"`
	EventProps map[string]interface{} `gorm:"serializer:json" json:"event_props,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

func (ReportEvent) TableName() string {
	return "report_events"
}
