package repository

import (
	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/internal/model"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(feedback *model.ReportFeedback) error {
	return r.db.Create(feedback).Error
}
