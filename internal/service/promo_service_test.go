package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmparc/plan_go_server/internal/model"
	"github.com/elmparc/plan_go_server/internal/repository"
	"github.com/elmparc/plan_go_server/internal/testutil"
)

func TestPromoService_Redeem_InvalidCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewPromoService(repository.NewPromoRepository(db), repository.NewEntitlementRepository(db), testConfig())
	user := testutil.TestUser(t, db)

	_, err := service.Redeem(user.ID, "player@example.com", "WRONGCODE")
	assert.ErrorIs(t, err, ErrInvalidPromoCode)

	// 近似的码也不行，必须完全一致
	_, err = service.Redeem(user.ID, "player@example.com", "ELMPARC2FRE")
	assert.ErrorIs(t, err, ErrInvalidPromoCode)
}

func TestPromoService_Redeem_EmailRequired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewPromoService(repository.NewPromoRepository(db), repository.NewEntitlementRepository(db), testConfig())
	user := testutil.TestUser(t, db)

	_, err := service.Redeem(user.ID, "   ", "ELMPARC2FREE")
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestPromoService_Redeem_FirstRedemption(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	cfg := testConfig()
	service := NewPromoService(repository.NewPromoRepository(db), repository.NewEntitlementRepository(db), cfg)
	user := testutil.TestUser(t, db)

	result, err := service.Redeem(user.ID, "Player@Example.com", "elmparc2free")
	require.NoError(t, err)
	assert.False(t, result.AlreadyRedeemed)
	assert.Equal(t, 3, result.SessionsPerWeek)

	expiresAt, err := time.Parse(time.RFC3339, result.ExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 28), expiresAt, time.Minute)

	// 兑换记录落库，邮箱小写、码归一化为大写
	var red model.PromoRedemption
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&red).Error)
	assert.Equal(t, "ELMPARC2FREE", red.Code)
	assert.Equal(t, "player@example.com", red.Email)
	assert.Equal(t, model.RedemptionActive, red.Status)

	// promo 权益成为最新生效记录
	var ent model.Entitlement
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("created_at DESC, id DESC").First(&ent).Error)
	assert.Equal(t, model.EntitlementPromo, ent.Status)
	assert.Equal(t, 3, ent.WeeklyProSessionsRemaining)
}

func TestPromoService_Redeem_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewPromoService(repository.NewPromoRepository(db), repository.NewEntitlementRepository(db), testConfig())
	user := testutil.TestUser(t, db)

	first, err := service.Redeem(user.ID, "player@example.com", "ELMPARC2FREE")
	require.NoError(t, err)

	second, err := service.Redeem(user.ID, "player@example.com", "ELMPARC2FREE")
	require.NoError(t, err)
	assert.True(t, second.AlreadyRedeemed)
	assert.Equal(t, first.ExpiresAt, second.ExpiresAt)

	// 只有一条兑换记录
	var count int64
	require.NoError(t, db.Model(&model.PromoRedemption{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPromoService_Redeem_MaxAttempts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	cfg := testConfig()
	service := NewPromoService(repository.NewPromoRepository(db), repository.NewEntitlementRepository(db), cfg)
	user := testutil.TestUser(t, db)

	red := testutil.TestRedemption(t, db, user.ID, cfg.Promo.Code, model.RedemptionActive, time.Now().AddDate(0, 0, 14))
	require.NoError(t, db.Model(red).UpdateColumn("attempts", cfg.Promo.MaxAttempts).Error)

	_, err := service.Redeem(user.ID, "player@example.com", cfg.Promo.Code)
	assert.ErrorIs(t, err, ErrMaxAttempts)
}

func TestPromoService_Redeem_Exhausted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	cfg := testConfig()
	service := NewPromoService(repository.NewPromoRepository(db), repository.NewEntitlementRepository(db), cfg)
	user := testutil.TestUser(t, db)

	testutil.TestRedemption(t, db, user.ID, cfg.Promo.Code, model.RedemptionExhausted, time.Now().AddDate(0, 0, 14))

	_, err := service.Redeem(user.ID, "player@example.com", cfg.Promo.Code)
	assert.ErrorIs(t, err, ErrMaxAttempts)
}

func TestPromoService_Redeem_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	cfg := testConfig()
	service := NewPromoService(repository.NewPromoRepository(db), repository.NewEntitlementRepository(db), cfg)
	user := testutil.TestUser(t, db)

	red := testutil.TestRedemption(t, db, user.ID, cfg.Promo.Code, model.RedemptionActive, time.Now().AddDate(0, 0, -1))

	_, err := service.Redeem(user.ID, "player@example.com", cfg.Promo.Code)
	assert.ErrorIs(t, err, ErrPromoExpired)

	// 过期状态被持久化
	var status string
	require.NoError(t, db.Model(&model.PromoRedemption{}).Where("id = ?", red.ID).Select("status").Scan(&status).Error)
	assert.Equal(t, model.RedemptionExpired, status)

	// 再次提交仍然是过期
	_, err = service.Redeem(user.ID, "player@example.com", cfg.Promo.Code)
	assert.ErrorIs(t, err, ErrPromoExpired)
}
