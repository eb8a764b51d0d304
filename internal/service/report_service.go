package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/config"
	"github.com/elmparc/plan_go_server/internal/model"
	"github.com/elmparc/plan_go_server/internal/model/dto"
	"github.com/elmparc/plan_go_server/internal/pkg/mask"
	"github.com/elmparc/plan_go_server/internal/pkg/planner"
	"github.com/elmparc/plan_go_server/internal/pkg/queue"
	"github.com/elmparc/plan_go_server/internal/repository"
)

const (
	SourcePublic   = "public"
	SourceTeammate = "teammate"
)

type ReportService struct {
	reportRepo    *repository.ReportRepository
	followupQueue *queue.Queue
	cfg           *config.Config
}

func NewReportService(reportRepo *repository.ReportRepository, followupQueue *queue.Queue, cfg *config.Config) *ReportService {
	return &ReportService{
		reportRepo:    reportRepo,
		followupQueue: followupQueue,
		cfg:           cfg,
	}
}

// Submit 处理一次周报提交。
// 非特权邮箱走两层限频：先做 7 天回查（快路径），插入时存储层触发器
// 仍可能因竞态拒绝——触发器才是最终裁决，回查只是优化。
// 特权调用（队友码/开发态标记）完全绕过两层检查。
func (s *ReportService) Submit(req *dto.SubmitReportRequest, privileged bool) (*dto.ReportResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	isTeammate := req.TeammateCode != nil && *req.TeammateCode == s.cfg.Promo.Code
	privileged = privileged || isTeammate

	now := time.Now()
	window := time.Duration(s.cfg.Report.RateLimitDays) * 24 * time.Hour

	if !privileged {
		recent, err := s.reportRepo.LatestByEmailSince(email, now.Add(-window))
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if recent != nil {
			nextAllowed := recent.CreatedAt.Add(window)
			days := daysUntil(nextAllowed, now)
			log.Printf("[rate-limit] blocked %s — %dd remaining", mask.Email(email), days)
			return limitedResult(days, nextAllowed), nil
		}
	}

	report := &model.WeeklyReportRequest{
		Email:        email,
		MatchDay:     req.MatchDay,
		TrainingDays: *req.TrainingDays,
		LegsStatus:   req.LegsStatus,
	}
	if isTeammate {
		code := s.cfg.Promo.Code
		report.TeammateCode = &code
	}

	if err := s.reportRepo.Create(report); err != nil {
		if errors.Is(err, repository.ErrReportRateLimited) {
			// 回查通过但触发器拒绝（并发竞态），按同样的 limit 语义返回
			days := s.cfg.Report.RateLimitDays
			nextAllowed := now.Add(window)
			if last, lerr := s.reportRepo.LatestByEmail(email); lerr == nil {
				nextAllowed = last.CreatedAt.Add(window)
				days = clampDays(daysUntil(nextAllowed, now), 0, s.cfg.Report.RateLimitDays)
			}
			log.Printf("[rate-limit] trigger blocked %s — %dd remaining", mask.Email(email), days)
			return limitedResult(days, nextAllowed), nil
		}
		return nil, err
	}

	// 队友报告默认预约一封后续提醒（可显式关闭）；
	// 提醒失败不回滚也不阻塞主响应
	followupScheduled := false
	if privileged && (req.EmailReminder == nil || *req.EmailReminder) {
		followupScheduled = s.scheduleFollowup(email, report.ID, now)
	}

	source := SourcePublic
	if privileged {
		source = SourceTeammate
	}
	log.Printf("[report] saved for %s — source=%s", mask.Email(email), source)

	plan := planner.BuildReportPlan(req.MatchDay, *req.TrainingDays, req.LegsStatus)

	return &dto.ReportResult{
		Source:            source,
		FollowupScheduled: followupScheduled,
		StatusLine:        plan.StatusLine,
		PlanBullets:       plan.PlanBullets,
		MatchDayCue:       plan.MatchDayCue,
	}, nil
}

func (s *ReportService) scheduleFollowup(email string, reportID int64, now time.Time) bool {
	sendAt := now.Add(time.Duration(s.cfg.Report.FollowupDays) * 24 * time.Hour)
	followup := &model.ReportFollowup{
		Email:           email,
		ReportRequestID: reportID,
		SendAt:          sendAt,
	}
	if err := s.reportRepo.CreateFollowup(followup); err != nil {
		log.Printf("Follow-up insert failed for %s: %v", mask.Email(email), err)
		return false
	}

	if s.followupQueue != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		msg := &queue.FollowupMessage{
			FollowupID:      followup.ID,
			ReportRequestID: reportID,
			Email:           email,
			SendAt:          sendAt.UTC().Format(time.RFC3339),
		}
		if err := s.followupQueue.Push(ctx, msg); err != nil {
			log.Printf("Follow-up enqueue failed for %s: %v", mask.Email(email), err)
		}
	}

	log.Printf("[followup] scheduled for %s — send_at=%s", mask.Email(email), sendAt.UTC().Format(time.RFC3339))
	return true
}

func limitedResult(days int, nextAllowed time.Time) *dto.ReportResult {
	return &dto.ReportResult{
		Source:        SourcePublic,
		Limited:       true,
		DaysRemaining: days,
		LimitMessage: fmt.Sprintf("You already submitted a report recently. You can submit again after %s.",
			nextAllowed.UTC().Format("2006-01-02")),
	}
}

// daysUntil 距下次可提交的剩余天数（向上取整）
func daysUntil(nextAllowed, now time.Time) int {
	return int(math.Ceil(nextAllowed.Sub(now).Hours() / 24))
}

func clampDays(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
