package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/config"
	"github.com/elmparc/plan_go_server/internal/model"
	"github.com/elmparc/plan_go_server/internal/model/dto"
	"github.com/elmparc/plan_go_server/internal/repository"
)

var (
	ErrEmailRequired    = errors.New("Email is required.")
	ErrInvalidPromoCode = errors.New("Invalid promo code.")
	ErrMaxAttempts      = errors.New("Maximum redemption attempts reached.")
	ErrPromoExpired     = errors.New("Promo code has expired.")
)

type PromoService struct {
	promoRepo *repository.PromoRepository
	entRepo   *repository.EntitlementRepository
	cfg       *config.Config
}

func NewPromoService(promoRepo *repository.PromoRepository, entRepo *repository.EntitlementRepository, cfg *config.Config) *PromoService {
	return &PromoService{
		promoRepo: promoRepo,
		entRepo:   entRepo,
		cfg:       cfg,
	}
}

// Redeem 兑换码兑换。重复提交与并发首兑都收敛为同一个成功结果，
// 不会把唯一约束冲突暴露给调用方。
func (s *PromoService) Redeem(userID int64, email, code string) (*dto.RedeemResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" {
		return nil, ErrEmailRequired
	}
	if code != s.cfg.Promo.Code {
		return nil, ErrInvalidPromoCode
	}

	existing, err := s.promoRepo.GetByUserAndCode(userID, code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()

	if existing != nil {
		// 注意：attempts 在现有实现里从不增长，这个分支只对
		// 外部写入的计数生效，保持现状
		if existing.Attempts >= s.cfg.Promo.MaxAttempts || existing.Status == model.RedemptionExhausted {
			return nil, ErrMaxAttempts
		}
		if now.After(existing.ExpiresAt) || existing.Status == model.RedemptionExpired {
			if err := s.promoRepo.UpdateStatus(existing.ID, model.RedemptionExpired); err != nil {
				log.Printf("Failed to mark redemption %d expired: %v", existing.ID, err)
			}
			return nil, ErrPromoExpired
		}
		if existing.Status == model.RedemptionActive {
			// 幂等成功：重复提交不产生任何副作用
			return &dto.RedeemResult{
				ExpiresAt:       existing.ExpiresAt.UTC().Format(time.RFC3339),
				SessionsPerWeek: s.cfg.Promo.WeeklySessions,
				AlreadyRedeemed: true,
			}, nil
		}
	}

	// 首次兑换
	expiresAt := now.AddDate(0, 0, s.cfg.Promo.DurationDays)

	red := &model.PromoRedemption{
		UserID:    userID,
		Code:      s.cfg.Promo.Code,
		Email:     email,
		Attempts:  1,
		Status:    model.RedemptionActive,
		ExpiresAt: expiresAt,
	}
	if err := s.promoRepo.Create(red); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发首兑撞上唯一约束，对调用方等同于已兑换成功
			return &dto.RedeemResult{
				ExpiresAt:       expiresAt.UTC().Format(time.RFC3339),
				SessionsPerWeek: s.cfg.Promo.WeeklySessions,
				AlreadyRedeemed: true,
			}, nil
		}
		return nil, err
	}

	// 写入 promo 权益，覆盖原有的 free（新纪录 created_at 最新即生效）
	ent := &model.Entitlement{
		UserID:                     userID,
		Status:                     model.EntitlementPromo,
		StartAt:                    &now,
		EndAt:                      &expiresAt,
		Source:                     s.cfg.Promo.Code,
		WeeklyProSessionsRemaining: s.cfg.Promo.WeeklySessions,
		WeeklySessionsResetAt:      now,
		RedemptionAttempts:         1,
	}
	if err := s.entRepo.Create(ent); err != nil {
		// 兑换记录已落库，权益写入失败只记日志（与上游行为一致）
		log.Printf("Failed to create promo entitlement for user %d: %v", userID, err)
	}

	return &dto.RedeemResult{
		ExpiresAt:       expiresAt.UTC().Format(time.RFC3339),
		SessionsPerWeek: s.cfg.Promo.WeeklySessions,
	}, nil
}
