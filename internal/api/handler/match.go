package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elmparc/plan_go_server/internal/api/middleware"
	"github.com/elmparc/plan_go_server/internal/model/dto"
	"github.com/elmparc/plan_go_server/internal/pkg/response"
	"github.com/elmparc/plan_go_server/internal/service"
)

type MatchHandler struct {
	planService *service.PlanService
}

func NewMatchHandler(planService *service.PlanService) *MatchHandler {
	return &MatchHandler{planService: planService}
}

// Register 登记比赛时间
func (h *MatchHandler) Register(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "")
		return
	}

	matchAt, err := time.Parse(time.RFC3339, req.MatchDatetime)
	if err != nil {
		response.ValidationError(c, "match_datetime must be an RFC3339 timestamp.")
		return
	}

	match, err := h.planService.RegisterMatch(userID, matchAt, req.LeagueName)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.OK(c, gin.H{"match": match})
}
