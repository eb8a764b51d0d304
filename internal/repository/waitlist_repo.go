package repository

import (
	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/internal/model"
)

type WaitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) *WaitlistRepository {
	return &WaitlistRepository{db: db}
}

func (r *WaitlistRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.WaitlistSignup{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Create 唯一约束冲突原样返回 gorm.ErrDuplicatedKey
func (r *WaitlistRepository) Create(signup *model.WaitlistSignup) error {
	return r.db.Create(signup).Error
}
