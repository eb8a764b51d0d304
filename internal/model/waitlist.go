package model

import (
	"time"
)

// WaitlistSignup 等待名单登记，email 唯一。
type WaitlistSignup struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (WaitlistSignup) TableName() string {
	return "waitlist_signups"
}
