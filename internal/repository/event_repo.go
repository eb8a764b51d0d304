package repository

import (
	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/internal/model"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *model.ReportEvent) error {
	return r.db.Create(event).Error
}
