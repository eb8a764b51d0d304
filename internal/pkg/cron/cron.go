package cron

import (
	"context"
	"log"
	"time"

	"github.com/elmparc/plan_go_server/config"
	"github.com/elmparc/plan_go_server/internal/model"
	"github.com/elmparc/plan_go_server/internal/pkg/queue"
	"github.com/elmparc/plan_go_server/internal/repository"
)

const sweepBatchSize = 200

type Service struct {
	promoRepo     *repository.PromoRepository
	entRepo       *repository.EntitlementRepository
	reportRepo    *repository.ReportRepository
	followupQueue *queue.Queue
	cfg           *config.Config
	stopChan      chan struct{}
}

func NewService(
	promoRepo *repository.PromoRepository,
	entRepo *repository.EntitlementRepository,
	reportRepo *repository.ReportRepository,
	followupQueue *queue.Queue,
	cfg *config.Config,
) *Service {
	return &Service{
		promoRepo:     promoRepo,
		entRepo:       entRepo,
		reportRepo:    reportRepo,
		followupQueue: followupQueue,
		cfg:           cfg,
		stopChan:      make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runExpirySweep()
	go s.runFollowupSweep()
	log.Println("Cron service started (promo expiry + followup dispatch)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runExpirySweep 每小时清理过期的兑换记录
func (s *Service) runExpirySweep() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweepExpired()
		}
	}
}

// sweepExpired 把到期仍标记 active 的兑换记录改为 expired。
// 判定路径上也会惰性处理，这里只是兜底收敛存量。
func (s *Service) sweepExpired() {
	now := time.Now()

	redemptions, err := s.promoRepo.ListExpiredActive(now, sweepBatchSize)
	if err != nil {
		log.Printf("Expiry sweep: failed to list redemptions: %v", err)
		return
	}
	expired := 0
	for _, red := range redemptions {
		if err := s.promoRepo.UpdateStatus(red.ID, model.RedemptionExpired); err != nil {
			log.Printf("Expiry sweep: failed to expire redemption %d: %v", red.ID, err)
			continue
		}
		expired++
	}

	// 过期的 promo 权益对应的兑换记录也要对齐（权益是历史追加，记录本身不改）
	ents, err := s.entRepo.ListExpiredActive(now, sweepBatchSize)
	if err != nil {
		log.Printf("Expiry sweep: failed to list entitlements: %v", err)
	} else {
		for _, ent := range ents {
			if ent.Status != model.EntitlementPromo {
				continue
			}
			if err := s.promoRepo.ExpireByUserAndCode(ent.UserID, s.cfg.Promo.Code); err != nil {
				log.Printf("Expiry sweep: failed to align redemption for user %d: %v", ent.UserID, err)
			}
		}
	}

	if expired > 0 {
		log.Printf("Expiry sweep: expired %d redemptions", expired)
	}
}

// runFollowupSweep 每 5 分钟把到期未发送的后续提醒投入队列。
// 重复投递无害：worker 侧的条件更新保证只发一次。
func (s *Service) runFollowupSweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.enqueueDueFollowups()
		}
	}
}

func (s *Service) enqueueDueFollowups() {
	now := time.Now()
	followups, err := s.reportRepo.DueFollowups(now, sweepBatchSize)
	if err != nil {
		log.Printf("Followup sweep: failed to list due followups: %v", err)
		return
	}
	if len(followups) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	enqueued := 0
	for _, f := range followups {
		msg := &queue.FollowupMessage{
			FollowupID:      f.ID,
			ReportRequestID: f.ReportRequestID,
			Email:           f.Email,
			SendAt:          f.SendAt.UTC().Format(time.RFC3339),
		}
		if err := s.followupQueue.Push(ctx, msg); err != nil {
			log.Printf("Followup sweep: failed to enqueue followup %d: %v", f.ID, err)
			continue
		}
		enqueued++
	}
	log.Printf("Followup sweep: enqueued %d of %d due followups", enqueued, len(followups))
}

// RunNow 立即执行一轮清理（用于测试或手动触发）
func (s *Service) RunNow() {
	s.sweepExpired()
	s.enqueueDueFollowups()
}
