package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/internal/model"
)

type EntitlementRepository struct {
	db *gorm.DB
}

func NewEntitlementRepository(db *gorm.DB) *EntitlementRepository {
	return &EntitlementRepository{db: db}
}

func (r *EntitlementRepository) Create(ent *model.Entitlement) error {
	return r.db.Create(ent).Error
}

// GetLatestByUserID 取用户当前生效的权益记录（created_at 最新）
func (r *EntitlementRepository) GetLatestByUserID(userID int64) (*model.Entitlement, error) {
	var ent model.Entitlement
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&ent).Error
	if err != nil {
		return nil, err
	}
	return &ent, nil
}

// ResetWeeklyQuota 跨周重置周配额。WHERE 条件保证并发调用只有一次生效，
// 已被其他请求重置过的记录不会被重复覆盖。
func (r *EntitlementRepository) ResetWeeklyQuota(id int64, quota int, now, weekStart time.Time) error {
	return r.db.Model(&model.Entitlement{}).
		Where("id = ? AND weekly_sessions_reset_at < ?", id, weekStart).
		Updates(map[string]interface{}{
			"weekly_pro_sessions_remaining": quota,
			"weekly_sessions_reset_at":      now,
		}).Error
}

// ConsumeWeeklySession 原子扣减一次周配额，余额不足时返回 false。
// 单条条件 UPDATE，跨实例并发安全，余额不会为负。
func (r *EntitlementRepository) ConsumeWeeklySession(id int64) (bool, error) {
	result := r.db.Model(&model.Entitlement{}).
		Where("id = ? AND weekly_pro_sessions_remaining > 0", id).
		Update("weekly_pro_sessions_remaining", gorm.Expr("weekly_pro_sessions_remaining - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListExpiredActive 找出 end_at 已过但仍标记 promo 的权益（供后台巡检）
func (r *EntitlementRepository) ListExpiredActive(now time.Time, limit int) ([]model.Entitlement, error) {
	var ents []model.Entitlement
	err := r.db.Where("status = ? AND end_at IS NOT NULL AND end_at < ?", model.EntitlementPromo, now).
		Limit(limit).
		Find(&ents).Error
	return ents, err
}
