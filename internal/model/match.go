package model

import (
	"time"
)

// Match 用户登记的比赛
type Match struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	MatchDatetime time.Time `gorm:"not null" json:"match_datetime"`
	LeagueName    *string   `gorm:"size:100" json:"league_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Match) TableName() string {
	return "matches"
}
