package model

import (
	"time"
)

// 兑换记录状态
const (
	RedemptionActive    = "active"
	RedemptionExpired   = "expired"
	RedemptionExhausted = "exhausted"
)

// PromoRedemption 兑换码记录。(user_id, code) 唯一，并发首次兑换依赖该约束收敛。
type PromoRedemption struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_redemption_user_code" json:"user_id"`
	Code      string    `gorm:"size:50;not null;uniqueIndex:idx_redemption_user_code" json:"code"`
	Email     string    `gorm:"size:100;not null" json:"email"`
	Attempts  int       `gorm:"default:1" json:"attempts"`
	Status    string    `gorm:"size:20;default:active;index" json:"status"` // active, expired, exhausted
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (PromoRedemption) TableName() string {
	return "promo_redemptions"
}
