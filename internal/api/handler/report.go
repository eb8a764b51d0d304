package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/elmparc/plan_go_server/internal/api/middleware"
	"github.com/elmparc/plan_go_server/internal/model/dto"
	"github.com/elmparc/plan_go_server/internal/pkg/response"
	"github.com/elmparc/plan_go_server/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Submit 周报提交。dev 构建下可通过请求头伪装特权档位绕过限频。
func (h *ReportHandler) Submit(c *gin.Context) {
	var req dto.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "")
		return
	}

	privileged := middleware.DevTierOverride(c) == "teammate"

	result, err := h.reportService.Submit(&req, privileged)
	if err != nil {
		response.ServerError(c, "Something went wrong. Please try again.")
		return
	}

	if result.Limited {
		response.Limit(c, result.Source, result.DaysRemaining, result.LimitMessage)
		return
	}

	response.OK(c, gin.H{
		"source":            result.Source,
		"followupScheduled": result.FollowupScheduled,
		"statusLine":        result.StatusLine,
		"planBullets":       result.PlanBullets,
		"matchDayCue":       result.MatchDayCue,
	})
}
