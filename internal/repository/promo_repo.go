package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/internal/model"
)

type PromoRepository struct {
	db *gorm.DB
}

func NewPromoRepository(db *gorm.DB) *PromoRepository {
	return &PromoRepository{db: db}
}

func (r *PromoRepository) GetByUserAndCode(userID int64, code string) (*model.PromoRedemption, error) {
	var red model.PromoRedemption
	err := r.db.Where("user_id = ? AND code = ?", userID, code).First(&red).Error
	if err != nil {
		return nil, err
	}
	return &red, nil
}

// Create 插入兑换记录。唯一约束冲突原样返回 gorm.ErrDuplicatedKey，
// 由调用方按"已兑换成功"处理。
func (r *PromoRepository) Create(red *model.PromoRedemption) error {
	return r.db.Create(red).Error
}

func (r *PromoRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&model.PromoRedemption{}).Where("id = ?", id).
		Update("status", status).Error
}

// ExpireByUserAndCode 将用户的激活兑换记录标记为过期
func (r *PromoRepository) ExpireByUserAndCode(userID int64, code string) error {
	return r.db.Model(&model.PromoRedemption{}).
		Where("user_id = ? AND code = ? AND status = ?", userID, code, model.RedemptionActive).
		Update("status", model.RedemptionExpired).Error
}

// ListExpiredActive 找出已过 expires_at 但仍为 active 的记录（供后台巡检）
func (r *PromoRepository) ListExpiredActive(now time.Time, limit int) ([]model.PromoRedemption, error) {
	var reds []model.PromoRedemption
	err := r.db.Where("status = ? AND expires_at < ?", model.RedemptionActive, now).
		Limit(limit).
		Find(&reds).Error
	return reds, err
}
