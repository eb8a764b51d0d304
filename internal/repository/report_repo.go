package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/internal/model"
)

// ErrReportRateLimited 存储层限频触发器拒绝了写入
var ErrReportRateLimited = errors.New("report insert rejected by rate-limit trigger")

// 触发器 SIGNAL 消息的固定前缀（见 migrations/001_weekly_report_rate_limit.sql）
const rateLimitSignature = "rate_limited:"

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create 插入周报记录。即使应用层回查通过，存储层触发器仍可能因
// 并发竞态拒绝写入；此时归一化为 ErrReportRateLimited。
func (r *ReportRepository) Create(report *model.WeeklyReportRequest) error {
	err := r.db.Create(report).Error
	if err != nil && strings.Contains(err.Error(), rateLimitSignature) {
		return ErrReportRateLimited
	}
	return err
}

// LatestByEmailSince 回查窗口内该邮箱最近的一条提交
func (r *ReportRepository) LatestByEmailSince(email string, cutoff time.Time) (*model.WeeklyReportRequest, error) {
	var report model.WeeklyReportRequest
	err := r.db.Where("email = ? AND created_at >= ?", email, cutoff).
		Order("created_at DESC").
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// LatestByEmail 该邮箱最近的一条提交（触发器拒绝后重算 daysRemaining 用）
func (r *ReportRepository) LatestByEmail(email string) (*model.WeeklyReportRequest, error) {
	var report model.WeeklyReportRequest
	err := r.db.Where("email = ?", email).
		Order("created_at DESC").
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) CreateFollowup(followup *model.ReportFollowup) error {
	return r.db.Create(followup).Error
}

// DueFollowups 取已到期未投递的后续提醒
func (r *ReportRepository) DueFollowups(now time.Time, limit int) ([]model.ReportFollowup, error) {
	var followups []model.ReportFollowup
	err := r.db.Where("send_at <= ? AND sent_at IS NULL", now).
		Order("send_at ASC").
		Limit(limit).
		Find(&followups).Error
	return followups, err
}

// MarkFollowupSent 条件更新，重复投递时只有第一次生效
func (r *ReportRepository) MarkFollowupSent(id int64, sentAt time.Time) (bool, error) {
	result := r.db.Model(&model.ReportFollowup{}).
		Where("id = ? AND sent_at IS NULL", id).
		Update("sent_at", sentAt)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
