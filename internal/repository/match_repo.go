package repository

import (
	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/internal/model"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(match *model.Match) error {
	return r.db.Create(match).Error
}

func (r *MatchRepository) GetLatestByUserID(userID int64) (*model.Match, error) {
	var match model.Match
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}
