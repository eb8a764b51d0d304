package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/elmparc/plan_go_server/internal/api/middleware"
	"github.com/elmparc/plan_go_server/internal/pkg/response"
	"github.com/elmparc/plan_go_server/internal/service"
)

type EntitlementHandler struct {
	entService *service.EntitlementService
}

func NewEntitlementHandler(entService *service.EntitlementService) *EntitlementHandler {
	return &EntitlementHandler{entService: entService}
}

// Check 权益判定。注意这里会真实消耗一次周额度，前端只在
// 用户点击开始训练时调用。
func (h *EntitlementHandler) Check(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	result, err := h.entService.CanStartSession(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.OK(c, gin.H{
		"allowed":           result.Allowed,
		"reason":            result.Reason,
		"entitlementStatus": result.EntitlementStatus,
	})
}
