package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	email := fmt.Sprintf("test_%d@example.com", time.Now().UnixNano())
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Username:     fmt.Sprintf("testuser_%d", time.Now().UnixNano()%100000),
		Email:        &email,
		PasswordHash: &passwordHash,
		Focus:        model.FocusLateGame,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithFocus 设置训练重点
func WithFocus(focus string) func(*model.User) {
	return func(u *model.User) {
		u.Focus = focus
	}
}

// TestEntitlement 创建权益记录
func TestEntitlement(t *testing.T, db *gorm.DB, userID int64, status string, opts ...func(*model.Entitlement)) *model.Entitlement {
	t.Helper()

	ent := &model.Entitlement{
		UserID: userID,
		Status: status,
		Source: "test",
	}

	for _, opt := range opts {
		opt(ent)
	}

	if err := db.Create(ent).Error; err != nil {
		t.Fatalf("Failed to create test entitlement: %v", err)
	}

	return ent
}

// WithEndAt 设置权益到期时间
func WithEndAt(endAt time.Time) func(*model.Entitlement) {
	return func(e *model.Entitlement) {
		e.EndAt = &endAt
	}
}

// WithWeeklyQuota 设置周额度与上次重置时间
func WithWeeklyQuota(remaining int, resetAt time.Time) func(*model.Entitlement) {
	return func(e *model.Entitlement) {
		e.WeeklyProSessionsRemaining = remaining
		e.WeeklySessionsResetAt = resetAt
	}
}

// WithRedemptionAttempts 设置兑换尝试次数
func WithRedemptionAttempts(attempts int) func(*model.Entitlement) {
	return func(e *model.Entitlement) {
		e.RedemptionAttempts = attempts
	}
}

// TestRedemption 创建兑换记录
func TestRedemption(t *testing.T, db *gorm.DB, userID int64, code, status string, expiresAt time.Time, opts ...func(*model.PromoRedemption)) *model.PromoRedemption {
	t.Helper()

	red := &model.PromoRedemption{
		UserID:    userID,
		Code:      code,
		Email:     fmt.Sprintf("redeem_%d@example.com", userID),
		Status:    status,
		ExpiresAt: expiresAt,
	}

	for _, opt := range opts {
		opt(red)
	}

	if err := db.Create(red).Error; err != nil {
		t.Fatalf("Failed to create test redemption: %v", err)
	}

	return red
}

// TestReport 创建周报记录
func TestReport(t *testing.T, db *gorm.DB, email string, opts ...func(*model.WeeklyReportRequest)) *model.WeeklyReportRequest {
	t.Helper()

	report := &model.WeeklyReportRequest{
		Email:        email,
		MatchDay:     "Saturday",
		TrainingDays: 2,
		LegsStatus:   "Fresh",
	}

	for _, opt := range opts {
		opt(report)
	}

	if err := db.Create(report).Error; err != nil {
		t.Fatalf("Failed to create test report: %v", err)
	}

	return report
}

// WithCreatedAt 回拨周报创建时间（绕过 gorm 自动填充）
func WithCreatedAt(t *testing.T, db *gorm.DB, report *model.WeeklyReportRequest, createdAt time.Time) {
	t.Helper()

	err := db.Model(report).UpdateColumn("created_at", createdAt).Error
	if err != nil {
		t.Fatalf("Failed to backdate report: %v", err)
	}
	report.CreatedAt = createdAt
}

// WithTeammateCode 设置队友码
func WithTeammateCode(code string) func(*model.WeeklyReportRequest) {
	return func(r *model.WeeklyReportRequest) {
		r.TeammateCode = &code
	}
}

// TestPlan 创建计划及其训练课
func TestPlan(t *testing.T, db *gorm.DB, userID int64, sessionCount int) (*model.Plan, []model.TrainingSession) {
	t.Helper()

	plan := &model.Plan{
		UserID:          userID,
		Focus:           model.FocusLateGame,
		SessionsPerWeek: sessionCount,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}

	sessions := make([]model.TrainingSession, 0, sessionCount)
	for i := 0; i < sessionCount; i++ {
		sessions = append(sessions, model.TrainingSession{
			PlanID:          plan.ID,
			ScheduledFor:    time.Now().AddDate(0, 0, i+1),
			DurationMinutes: 8,
			Status:          model.SessionScheduled,
			Moves: []model.SessionMove{
				{Name: "Tempo runs", Prescription: "4 x 40m strides"},
			},
		})
	}
	if err := db.Create(&sessions).Error; err != nil {
		t.Fatalf("Failed to create test sessions: %v", err)
	}

	return plan, sessions
}
