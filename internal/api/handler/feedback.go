package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/elmparc/plan_go_server/internal/model/dto"
	"github.com/elmparc/plan_go_server/internal/pkg/response"
	"github.com/elmparc/plan_go_server/internal/service"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Submit 周报反馈
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "")
		return
	}

	if err := h.feedbackService.Submit(req.FeedbackChoice, req.FeedbackOther, req.ReportContext); err != nil {
		if errors.Is(err, service.ErrInvalidFeedbackChoice) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, nil)
}
