package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/internal/model"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(plan *model.Plan) error {
	return r.db.Create(plan).Error
}

func (r *PlanRepository) GetByID(id int64) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) GetLatestByUserID(userID int64) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) Touch(id int64, now time.Time) error {
	return r.db.Model(&model.Plan{}).Where("id = ?", id).
		Update("updated_at", now).Error
}

func (r *PlanRepository) CreateSessions(sessions []model.TrainingSession) error {
	return r.db.Create(&sessions).Error
}

func (r *PlanRepository) GetSessionByID(id int64) (*model.TrainingSession, error) {
	var session model.TrainingSession
	err := r.db.Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *PlanRepository) ListSessionsByPlan(planID int64) ([]model.TrainingSession, error) {
	var sessions []model.TrainingSession
	err := r.db.Where("plan_id = ?", planID).
		Order("scheduled_for ASC").
		Find(&sessions).Error
	return sessions, err
}

// ListScheduledSessionIDs 计划下仍为 scheduled 的训练课
func (r *PlanRepository) ListScheduledSessionIDs(planID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.TrainingSession{}).
		Where("plan_id = ? AND status = ?", planID, model.SessionScheduled).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *PlanRepository) UpdateSessionMoves(ids []int64, moves []model.SessionMove) error {
	return r.db.Model(&model.TrainingSession{}).
		Where("id IN ?", ids).
		Update("moves", moves).Error
}

// CompleteSession 条件更新为已完成，已完成的记录不会被二次覆盖
func (r *PlanRepository) CompleteSession(id int64, completedAt time.Time) (bool, error) {
	result := r.db.Model(&model.TrainingSession{}).
		Where("id = ? AND status <> ?", id, model.SessionCompleted).
		Updates(map[string]interface{}{
			"status":       model.SessionCompleted,
			"completed_at": completedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PlanRepository) CreateSessionEvent(event *model.SessionEvent) error {
	return r.db.Create(event).Error
}
