package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmparc/plan_go_server/internal/model"
	"github.com/elmparc/plan_go_server/internal/testutil"
)

func TestEntitlementRepository_ConsumeWeeklySession_NeverNegative(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewEntitlementRepository(db)
	user := testutil.TestUser(t, db)
	ent := testutil.TestEntitlement(t, db, user.ID, model.EntitlementPromo,
		testutil.WithWeeklyQuota(2, time.Now()))

	for i := 0; i < 2; i++ {
		ok, err := repo.ConsumeWeeklySession(ent.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	// 额度耗尽后扣减失败而不是扣成负数
	ok, err := repo.ConsumeWeeklySession(ent.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetLatestByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.WeeklyProSessionsRemaining)
}

func TestEntitlementRepository_ResetWeeklyQuota_Conditional(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewEntitlementRepository(db)
	user := testutil.TestUser(t, db)

	lastWeek := time.Now().AddDate(0, 0, -8)
	ent := testutil.TestEntitlement(t, db, user.ID, model.EntitlementPromo,
		testutil.WithWeeklyQuota(0, lastWeek))

	now := time.Now()
	weekStart := now.Truncate(24 * time.Hour)

	require.NoError(t, repo.ResetWeeklyQuota(ent.ID, 3, now, weekStart))

	got, err := repo.GetLatestByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.WeeklyProSessionsRemaining)

	// 同一周内的重复重置是空操作，不会回填已消耗的额度
	ok, err := repo.ConsumeWeeklySession(ent.ID)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, repo.ResetWeeklyQuota(ent.ID, 3, now, weekStart))

	got, err = repo.GetLatestByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.WeeklyProSessionsRemaining)
}

func TestEntitlementRepository_ConsumeWeeklySession_Concurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewEntitlementRepository(db)
	user := testutil.TestUser(t, db)
	ent := testutil.TestEntitlement(t, db, user.ID, model.EntitlementPromo,
		testutil.WithWeeklyQuota(3, time.Now()))

	var wg sync.WaitGroup
	granted := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.ConsumeWeeklySession(ent.ID)
			if err == nil && ok {
				granted <- true
			}
		}()
	}
	wg.Wait()
	close(granted)

	count := 0
	for range granted {
		count++
	}
	assert.Equal(t, 3, count)

	got, err := repo.GetLatestByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.WeeklyProSessionsRemaining)
}
