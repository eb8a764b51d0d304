package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/internal/model"
	"github.com/elmparc/plan_go_server/internal/repository"
	"github.com/elmparc/plan_go_server/internal/testutil"
)

func newTestPlanService(db *gorm.DB) *PlanService {
	cfg := testConfig()
	entService := NewEntitlementService(repository.NewEntitlementRepository(db), repository.NewPromoRepository(db), cfg)
	return NewPlanService(
		repository.NewPlanRepository(db),
		repository.NewUserRepository(db),
		repository.NewMatchRepository(db),
		entService,
		cfg,
	)
}

func TestPlanService_SetFocus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newTestPlanService(db)
	user := testutil.TestUser(t, db)

	require.NoError(t, service.SetFocus(user.ID, model.FocusInjuryPrevention))

	var focus string
	require.NoError(t, db.Model(&model.User{}).
		Where("id = ?", user.ID).
		Select("focus").Scan(&focus).Error)
	assert.Equal(t, model.FocusInjuryPrevention, focus)

	err := service.SetFocus(user.ID, "cardio")
	assert.ErrorIs(t, err, ErrInvalidFocus)
}

func TestPlanService_GetOrGenerate_CreatesPlan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newTestPlanService(db)
	user := testutil.TestUser(t, db, testutil.WithFocus(model.FocusInjuryPrevention))

	result, err := service.GetOrGenerate(user.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Plan)
	assert.Equal(t, model.FocusInjuryPrevention, result.Plan.Focus)
	assert.Len(t, result.Sessions, 2)

	for _, s := range result.Sessions {
		assert.Equal(t, model.SessionScheduled, s.Status)
		assert.Equal(t, 8, s.DurationMinutes)
		assert.NotEmpty(t, s.Moves)
		// 只排工作日
		wd := s.ScheduledFor.UTC().Weekday()
		assert.True(t, wd >= time.Monday && wd <= time.Friday)
	}
}

func TestPlanService_GetOrGenerate_ReturnsExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newTestPlanService(db)
	user := testutil.TestUser(t, db)

	first, err := service.GetOrGenerate(user.ID)
	require.NoError(t, err)

	second, err := service.GetOrGenerate(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Plan.ID, second.Plan.ID)

	var count int64
	require.NoError(t, db.Model(&model.Plan{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPlanService_GetOrGenerate_LinksLatestMatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newTestPlanService(db)
	user := testutil.TestUser(t, db)

	match, err := service.RegisterMatch(user.ID, time.Now().AddDate(0, 0, 5), nil)
	require.NoError(t, err)

	result, err := service.GetOrGenerate(user.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Plan.MatchID)
	assert.Equal(t, match.ID, *result.Plan.MatchID)
}

func TestPlanService_AutoAdjust(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newTestPlanService(db)
	user := testutil.TestUser(t, db)
	plan, sessions := testutil.TestPlan(t, db, user.ID, 2)

	// 其中一节已完成，不应被重排
	require.NoError(t, db.Model(&model.TrainingSession{}).
		Where("id = ?", sessions[0].ID).
		Update("status", model.SessionCompleted).Error)

	adjusted, err := service.AutoAdjust(user.ID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, adjusted)
}

func TestPlanService_AutoAdjust_NotOwned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newTestPlanService(db)
	owner := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	plan, _ := testutil.TestPlan(t, db, owner.ID, 2)

	_, err := service.AutoAdjust(other.ID, plan.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestPlanService_StartSession_ProAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newTestPlanService(db)
	user := testutil.TestUser(t, db)
	testutil.TestEntitlement(t, db, user.ID, model.EntitlementProMonthly,
		testutil.WithEndAt(time.Now().AddDate(0, 1, 0)))
	_, sessions := testutil.TestPlan(t, db, user.ID, 1)

	result, err := service.StartSession(user.ID, sessions[0].ID)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, ReasonProActive, result.Reason)
	require.NotNil(t, result.Session)
	assert.Equal(t, sessions[0].ID, result.Session.ID)
	assert.NotEmpty(t, result.Session.Moves)

	// 开始事件落库
	var event model.SessionEvent
	require.NoError(t, db.Where("session_id = ? AND event_type = ?", sessions[0].ID, "started").First(&event).Error)
}

func TestPlanService_StartSession_FreeDenied(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newTestPlanService(db)
	user := testutil.TestUser(t, db)
	testutil.TestEntitlement(t, db, user.ID, model.EntitlementFree)
	_, sessions := testutil.TestPlan(t, db, user.ID, 1)

	result, err := service.StartSession(user.ID, sessions[0].ID)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonFreeTier, result.Reason)
	assert.Nil(t, result.Session)

	// 被拒的课保持 scheduled
	var status string
	require.NoError(t, db.Model(&model.TrainingSession{}).
		Where("id = ?", sessions[0].ID).
		Select("status").Scan(&status).Error)
	assert.Equal(t, model.SessionScheduled, status)
}

func TestPlanService_StartSession_NotOwned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newTestPlanService(db)
	owner := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	_, sessions := testutil.TestPlan(t, db, owner.ID, 1)

	_, err := service.StartSession(other.ID, sessions[0].ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPlanService_StartSession_AlreadyCompleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newTestPlanService(db)
	user := testutil.TestUser(t, db)
	testutil.TestEntitlement(t, db, user.ID, model.EntitlementProMonthly)
	_, sessions := testutil.TestPlan(t, db, user.ID, 1)

	require.NoError(t, db.Model(&model.TrainingSession{}).
		Where("id = ?", sessions[0].ID).
		Update("status", model.SessionCompleted).Error)

	_, err := service.StartSession(user.ID, sessions[0].ID)
	assert.ErrorIs(t, err, ErrSessionNotStartable)
}

func TestPlanService_CompleteSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newTestPlanService(db)
	user := testutil.TestUser(t, db)
	_, sessions := testutil.TestPlan(t, db, user.ID, 1)

	completedAt, err := service.CompleteSession(user.ID, sessions[0].ID, []string{"Glute bridge hold"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), completedAt, time.Minute)

	var status string
	require.NoError(t, db.Model(&model.TrainingSession{}).
		Where("id = ?", sessions[0].ID).
		Select("status").Scan(&status).Error)
	assert.Equal(t, model.SessionCompleted, status)

	var event model.SessionEvent
	require.NoError(t, db.Where("session_id = ? AND event_type = ?", sessions[0].ID, "completed").First(&event).Error)
	assert.Contains(t, event.Payload, "completed_moves")

	// 重复完课被拒
	_, err = service.CompleteSession(user.ID, sessions[0].ID, nil)
	assert.ErrorIs(t, err, ErrSessionAlreadyCompleted)
}
