package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmparc/plan_go_server/internal/model"
	"github.com/elmparc/plan_go_server/internal/repository"
	"github.com/elmparc/plan_go_server/internal/testutil"
)

func TestEventService_LogUserEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEventService(repository.NewEventRepository(db), nil)
	user := testutil.TestUser(t, db)

	err := service.LogUserEvent(user.ID, "session_started", map[string]interface{}{"session_id": 42})
	require.NoError(t, err)

	var event model.ReportEvent
	require.NoError(t, db.First(&event).Error)
	assert.Equal(t, "session_started", event.EventType)
	require.NotNil(t, event.UserID)
	assert.Equal(t, user.ID, *event.UserID)
}

func TestEventService_LogUserEvent_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEventService(repository.NewEventRepository(db), nil)
	user := testutil.TestUser(t, db)

	err := service.LogUserEvent(user.ID, "   ", nil)
	assert.ErrorIs(t, err, ErrEventTypeRequired)

	// 超过 4KB 的属性拒绝
	big := map[string]interface{}{"blob": strings.Repeat("x", 5000)}
	err = service.LogUserEvent(user.ID, "session_started", big)
	assert.ErrorIs(t, err, ErrEventPropsTooBig)
}

func TestEventService_LogReportEvent_Allowlist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEventService(repository.NewEventRepository(db), nil)

	require.NoError(t, service.LogReportEvent("report_generated", map[string]interface{}{"mode": "auto"}))
	require.NoError(t, service.LogReportEvent("mode_overridden", nil))

	err := service.LogReportEvent("made_up_event", nil)
	assert.ErrorIs(t, err, ErrInvalidEventType)

	var count int64
	require.NoError(t, db.Model(&model.ReportEvent{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestEventService_LogReportEvent_OversizedPayloadDropped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEventService(repository.NewEventRepository(db), nil)

	// 匿名埋点超限 payload 丢弃但事件保留
	big := map[string]interface{}{"blob": strings.Repeat("x", 5000)}
	require.NoError(t, service.LogReportEvent("report_generated", big))

	var event model.ReportEvent
	require.NoError(t, db.First(&event).Error)
	assert.Empty(t, event.EventProps)
}
