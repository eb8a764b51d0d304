package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elmparc/plan_go_server/internal/api/middleware"
	"github.com/elmparc/plan_go_server/internal/model/dto"
	"github.com/elmparc/plan_go_server/internal/pkg/response"
	"github.com/elmparc/plan_go_server/internal/service"
)

type SessionHandler struct {
	planService *service.PlanService
}

func NewSessionHandler(planService *service.PlanService) *SessionHandler {
	return &SessionHandler{planService: planService}
}

// Start 开始训练课，权益不足时返回付费墙
func (h *SessionHandler) Start(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "Invalid session id.")
		return
	}

	result, err := h.planService.StartSession(userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrSessionNotStartable):
			response.BadRequest(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	if !result.Allowed {
		response.Paywall(c, result.Reason)
		return
	}

	response.OK(c, gin.H{"reason": result.Reason, "session": result.Session})
}

// Complete 完成训练课
func (h *SessionHandler) Complete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "Invalid session id.")
		return
	}

	// 完课请求体可省略
	var req dto.CompleteSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationError(c, "")
			return
		}
	}

	completedAt, err := h.planService.CompleteSession(userID, sessionID, req.CompletedMoves)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrSessionAlreadyCompleted):
			response.Conflict(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.OK(c, gin.H{"completed_at": completedAt.UTC().Format(time.RFC3339)})
}
