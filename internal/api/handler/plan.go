package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/elmparc/plan_go_server/internal/api/middleware"
	"github.com/elmparc/plan_go_server/internal/model/dto"
	"github.com/elmparc/plan_go_server/internal/pkg/response"
	"github.com/elmparc/plan_go_server/internal/service"
)

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// Get 取当前计划，没有则生成
func (h *PlanHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	result, err := h.planService.GetOrGenerate(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.OK(c, gin.H{"plan": result.Plan, "sessions": result.Sessions})
}

// SetFocus 更新训练重点
func (h *PlanHandler) SetFocus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.FocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "")
		return
	}

	if err := h.planService.SetFocus(userID, req.Focus); err != nil {
		if errors.Is(err, service.ErrInvalidFocus) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, gin.H{"focus": req.Focus})
}

// AutoAdjust 重新生成未开始训练课的动作
func (h *PlanHandler) AutoAdjust(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.AutoAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "")
		return
	}

	adjusted, err := h.planService.AutoAdjust(userID, req.PlanID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, gin.H{"adjusted_sessions": adjusted})
}
