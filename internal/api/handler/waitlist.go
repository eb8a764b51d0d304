package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/elmparc/plan_go_server/internal/model/dto"
	"github.com/elmparc/plan_go_server/internal/pkg/response"
	"github.com/elmparc/plan_go_server/internal/service"
)

type WaitlistHandler struct {
	waitlistService *service.WaitlistService
}

func NewWaitlistHandler(waitlistService *service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{waitlistService: waitlistService}
}

// Signup 等待名单登记，重复登记同样返回成功
func (h *WaitlistHandler) Signup(c *gin.Context) {
	var req dto.WaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Please enter a valid email.")
		return
	}

	status, err := h.waitlistService.Signup(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			response.ValidationError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, gin.H{"status": status})
}
