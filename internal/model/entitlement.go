package model

import (
	"time"
)

// 权益状态（封闭集合）
const (
	EntitlementFree       = "free"
	EntitlementTrial      = "trial"
	EntitlementProMonthly = "pro_monthly"
	EntitlementProSeason  = "pro_season"
	EntitlementPromo      = "promo"
)

// Entitlement 用户权益记录。同一用户保留历史，created_at 最新的一条生效。
type Entitlement struct {
	ID                         int64      `gorm:"primaryKey" json:"id"`
	UserID                     int64      `gorm:"not null;index" json:"user_id"`
	Status                     string     `gorm:"size:20;not null" json:"status"` // free, trial, pro_monthly, pro_season, promo
	StartAt                    *time.Time `json:"start_at,omitempty"`
	EndAt                      *time.Time `gorm:"index" json:"end_at,omitempty"`
	Source                     string     `gorm:"size:100" json:"source,omitempty"`
	WeeklyProSessionsRemaining int        `gorm:"default:0" json:"weekly_pro_sessions_remaining"`
	WeeklySessionsResetAt      time.Time  `json:"weekly_sessions_reset_at"`
	RedemptionAttempts         int        `gorm:"default:0" json:"redemption_attempts"`
	CreatedAt                  time.Time  `json:"created_at"`
}

func (Entitlement) TableName() string {
	return "entitlements"
}
