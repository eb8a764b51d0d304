package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/config"
	"github.com/elmparc/plan_go_server/internal/model"
	"github.com/elmparc/plan_go_server/internal/model/dto"
	"github.com/elmparc/plan_go_server/internal/repository"
)

// 判定原因码
const (
	ReasonNoEntitlement      = "no_entitlement"
	ReasonFreeTier           = "free_tier"
	ReasonExpired            = "expired"
	ReasonProActive          = "pro_active"
	ReasonPromoExpired       = "promo_expired"
	ReasonWeeklyLimitReached = "weekly_limit_reached"
	ReasonPromoActive        = "promo_active"
	ReasonUnknownStatus      = "unknown_status"
)

const statusNone = "none"

type EntitlementService struct {
	entRepo   *repository.EntitlementRepository
	promoRepo *repository.PromoRepository
	cfg       *config.Config
}

func NewEntitlementService(entRepo *repository.EntitlementRepository, promoRepo *repository.PromoRepository, cfg *config.Config) *EntitlementService {
	return &EntitlementService{
		entRepo:   entRepo,
		promoRepo: promoRepo,
		cfg:       cfg,
	}
}

// StartOfWeek 返回不晚于 t 的最近周一 00:00 UTC
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	diff := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return time.Date(t.Year(), t.Month(), t.Day()-diff, 0, 0, 0, 0, time.UTC)
}

// CanStartSession 判定用户当前能否开始一次教练课。
// promo 用户会在此处消耗一次周配额；重置与扣减都是存储层的
// 单条条件 UPDATE，并发请求不会把余额扣成负数。
// 存储故障一律返回 error，绝不默认放行。
func (s *EntitlementService) CanStartSession(userID int64) (*dto.CanStartResult, error) {
	ent, err := s.entRepo.GetLatestByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.CanStartResult{Allowed: false, Reason: ReasonNoEntitlement, EntitlementStatus: statusNone}, nil
		}
		return nil, err
	}

	now := time.Now()

	switch ent.Status {
	case model.EntitlementFree:
		// free 永远不能开课
		return &dto.CanStartResult{Allowed: false, Reason: ReasonFreeTier, EntitlementStatus: ent.Status}, nil

	case model.EntitlementTrial, model.EntitlementProMonthly, model.EntitlementProSeason:
		if ent.EndAt != nil && now.After(*ent.EndAt) {
			return &dto.CanStartResult{Allowed: false, Reason: ReasonExpired, EntitlementStatus: ent.Status}, nil
		}
		return &dto.CanStartResult{Allowed: true, Reason: ReasonProActive, EntitlementStatus: ent.Status}, nil

	case model.EntitlementPromo:
		if ent.EndAt != nil && now.After(*ent.EndAt) {
			// 顺手把兑换记录标记过期，失败不影响判定
			if err := s.promoRepo.ExpireByUserAndCode(userID, ent.Source); err != nil {
				log.Printf("Failed to expire redemption for user %d: %v", userID, err)
			}
			return &dto.CanStartResult{Allowed: false, Reason: ReasonPromoExpired, EntitlementStatus: ent.Status}, nil
		}

		weekStart := StartOfWeek(now)
		if ent.WeeklySessionsResetAt.Before(weekStart) {
			if err := s.entRepo.ResetWeeklyQuota(ent.ID, s.cfg.Promo.WeeklySessions, now, weekStart); err != nil {
				return nil, err
			}
		}

		consumed, err := s.entRepo.ConsumeWeeklySession(ent.ID)
		if err != nil {
			return nil, err
		}
		if !consumed {
			return &dto.CanStartResult{Allowed: false, Reason: ReasonWeeklyLimitReached, EntitlementStatus: ent.Status}, nil
		}
		return &dto.CanStartResult{Allowed: true, Reason: ReasonPromoActive, EntitlementStatus: ent.Status}, nil

	default:
		return &dto.CanStartResult{Allowed: false, Reason: ReasonUnknownStatus, EntitlementStatus: statusNone}, nil
	}
}
