package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/elmparc/plan_go_server/config"
	"github.com/elmparc/plan_go_server/internal/model"
	"github.com/elmparc/plan_go_server/internal/model/dto"
	"github.com/elmparc/plan_go_server/internal/pkg/planner"
	"github.com/elmparc/plan_go_server/internal/repository"
)

var (
	ErrInvalidFocus            = errors.New("Invalid focus.")
	ErrPlanNotFound            = errors.New("Plan not found.")
	ErrSessionNotFound         = errors.New("Session not found.")
	ErrSessionNotStartable     = errors.New("Session is not in a startable state.")
	ErrSessionAlreadyCompleted = errors.New("Session already completed.")
)

type PlanService struct {
	planRepo   *repository.PlanRepository
	userRepo   *repository.UserRepository
	matchRepo  *repository.MatchRepository
	entService *EntitlementService
	cfg        *config.Config
}

func NewPlanService(
	planRepo *repository.PlanRepository,
	userRepo *repository.UserRepository,
	matchRepo *repository.MatchRepository,
	entService *EntitlementService,
	cfg *config.Config,
) *PlanService {
	return &PlanService{
		planRepo:   planRepo,
		userRepo:   userRepo,
		matchRepo:  matchRepo,
		entService: entService,
		cfg:        cfg,
	}
}

// GetOrGenerate 取用户最新计划，没有则自动生成一份
func (s *PlanService) GetOrGenerate(userID int64) (*dto.PlanResponse, error) {
	plan, err := s.planRepo.GetLatestByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if plan != nil {
		sessions, err := s.planRepo.ListSessionsByPlan(plan.ID)
		if err != nil {
			return nil, err
		}
		return &dto.PlanResponse{Plan: plan, Sessions: sessions}, nil
	}

	return s.generate(userID)
}

func (s *PlanService) generate(userID int64) (*dto.PlanResponse, error) {
	// 训练重点取自用户偏好，默认 late_game
	focus := model.FocusLateGame
	if user, err := s.userRepo.GetByID(userID); err == nil && user.Focus != "" {
		focus = user.Focus
	}

	var matchID *int64
	if match, err := s.matchRepo.GetLatestByUserID(userID); err == nil {
		matchID = &match.ID
	}

	plan := &model.Plan{
		UserID:          userID,
		Focus:           focus,
		SessionsPerWeek: s.cfg.Plan.SessionsPerWeek,
		MatchID:         matchID,
	}
	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}

	dates := planner.NextWeekdays(time.Now(), s.cfg.Plan.SessionsPerWeek)
	moves := planner.MovesForFocus(focus)

	sessions := make([]model.TrainingSession, 0, len(dates))
	for _, d := range dates {
		sessions = append(sessions, model.TrainingSession{
			PlanID:          plan.ID,
			ScheduledFor:    d,
			DurationMinutes: s.cfg.Plan.DurationMinutes,
			Status:          model.SessionScheduled,
			Moves:           moves,
		})
	}
	if err := s.planRepo.CreateSessions(sessions); err != nil {
		return nil, err
	}

	return &dto.PlanResponse{Plan: plan, Sessions: sessions}, nil
}

// AutoAdjust 为计划中仍未开始的训练课重新生成动作
func (s *PlanService) AutoAdjust(userID, planID int64) (int, error) {
	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrPlanNotFound
		}
		return 0, err
	}
	if plan.UserID != userID {
		return 0, ErrPlanNotFound
	}

	ids, err := s.planRepo.ListScheduledSessionIDs(planID)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := s.planRepo.UpdateSessionMoves(ids, planner.MovesForFocus(plan.Focus)); err != nil {
		return 0, err
	}

	if err := s.planRepo.Touch(planID, time.Now()); err != nil {
		log.Printf("Failed to touch plan %d: %v", planID, err)
	}

	return len(ids), nil
}

// StartSession 开始一次训练课：校验归属与状态，再过权益判定。
// 权益不通过时 result.Allowed=false，由 handler 渲染付费墙。
func (s *PlanService) StartSession(userID, sessionID int64) (*dto.SessionStartResult, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != model.SessionScheduled {
		return nil, ErrSessionNotStartable
	}

	check, err := s.entService.CanStartSession(userID)
	if err != nil {
		return nil, err
	}
	if !check.Allowed {
		return &dto.SessionStartResult{Allowed: false, Reason: check.Reason}, nil
	}

	// 记开始事件，失败不影响开课
	if err := s.planRepo.CreateSessionEvent(&model.SessionEvent{
		SessionID: sessionID,
		EventType: "started",
	}); err != nil {
		log.Printf("Failed to log start event for session %d: %v", sessionID, err)
	}

	return &dto.SessionStartResult{
		Allowed: true,
		Reason:  check.Reason,
		Session: &dto.SessionInfo{
			ID:              session.ID,
			Moves:           session.Moves,
			DurationMinutes: session.DurationMinutes,
		},
	}, nil
}

// CompleteSession 完成训练课并记录完成了哪些动作
func (s *PlanService) CompleteSession(userID, sessionID int64, completedMoves []string) (time.Time, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return time.Time{}, err
	}

	if session.Status == model.SessionCompleted {
		return time.Time{}, ErrSessionAlreadyCompleted
	}

	now := time.Now()
	done, err := s.planRepo.CompleteSession(sessionID, now)
	if err != nil {
		return time.Time{}, err
	}
	if !done {
		return time.Time{}, ErrSessionAlreadyCompleted
	}

	if completedMoves == nil {
		completedMoves = []string{}
	}
	if err := s.planRepo.CreateSessionEvent(&model.SessionEvent{
		SessionID: sessionID,
		EventType: "completed",
		Payload:   map[string]interface{}{"completed_moves": completedMoves},
	}); err != nil {
		log.Printf("Failed to log completion event for session %d: %v", sessionID, err)
	}

	return now, nil
}

// SetFocus 更新用户训练重点，只影响之后生成或重排的计划
func (s *PlanService) SetFocus(userID int64, focus string) error {
	if focus != model.FocusLateGame && focus != model.FocusInjuryPrevention {
		return ErrInvalidFocus
	}
	return s.userRepo.UpdateFocus(userID, focus)
}

// RegisterMatch 登记下一场比赛，供后续生成计划时对齐赛程
func (s *PlanService) RegisterMatch(userID int64, matchAt time.Time, leagueName *string) (*model.Match, error) {
	match := &model.Match{
		UserID:        userID,
		MatchDatetime: matchAt,
		LeagueName:    leagueName,
	}
	if err := s.matchRepo.Create(match); err != nil {
		return nil, err
	}
	return match, nil
}

// ownedSession 取训练课并校验归属；不存在与无权访问同样返回 not found
func (s *PlanService) ownedSession(userID, sessionID int64) (*model.TrainingSession, error) {
	session, err := s.planRepo.GetSessionByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	plan, err := s.planRepo.GetByID(session.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrSessionNotFound
	}

	return session, nil
}
