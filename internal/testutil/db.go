package testutil

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/elmparc/plan_go_server/internal/model"
)

// SetupTestDB 创建测试数据库（SQLite 内存模式）
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect test database: %v", err)
	}

	// 内存库每个连接各自独立，必须收敛到单连接
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&model.User{},
		&model.Entitlement{},
		&model.PromoRedemption{},
		&model.WeeklyReportRequest{},
		&model.ReportFollowup{},
		&model.Plan{},
		&model.TrainingSession{},
		&model.SessionEvent{},
		&model.Match{},
		&model.WaitlistSignup{},
		&model.ReportEvent{},
		&model.ReportFeedback{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// InstallReportRateLimitTrigger 在测试库装一个等价于线上 MySQL 触发器的
// SQLite 版本：7 天内同邮箱的非队友提交在插入时直接拒绝。
func InstallReportRateLimitTrigger(t *testing.T, db *gorm.DB) {
	t.Helper()

	trigger := `
CREATE TRIGGER IF NOT EXISTS weekly_report_rate_limit
BEFORE INSERT ON weekly_report_requests
FOR EACH ROW
WHEN NEW.teammate_code IS NULL AND EXISTS (
    SELECT 1 FROM weekly_report_requests
    WHERE email = NEW.email
      AND teammate_code IS NULL
      AND created_at > datetime('now', '-7 days')
)
BEGIN
    SELECT RAISE(ABORT, 'rate_limited: one report per 7 days');
END;`
	if err := db.Exec(trigger).Error; err != nil {
		t.Fatalf("Failed to install rate-limit trigger: %v", err)
	}
}

// CleanupTestDB 清理测试数据库
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close test database: %v", err)
	}
}

// TruncateTables 清空所有表数据
func TruncateTables(t *testing.T, db *gorm.DB) {
	t.Helper()

	tables := []string{
		"session_events",
		"sessions",
		"plans",
		"matches",
		"report_events",
		"report_feedback",
		"weekly_report_followups",
		"weekly_report_requests",
		"promo_redemptions",
		"entitlements",
		"waitlist_signups",
		"users",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("Warning: Failed to truncate table %s: %v", table, err)
		}
	}
}
