package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/elmparc/plan_go_server/internal/api/middleware"
	"github.com/elmparc/plan_go_server/internal/model/dto"
	"github.com/elmparc/plan_go_server/internal/pkg/response"
	"github.com/elmparc/plan_go_server/internal/service"
)

type EventHandler struct {
	eventService *service.EventService
}

func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// LogUserEvent 登录态埋点
func (h *EventHandler) LogUserEvent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.UserEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "")
		return
	}

	if err := h.eventService.LogUserEvent(userID, req.EventType, req.EventProps); err != nil {
		switch {
		case errors.Is(err, service.ErrEventTypeRequired), errors.Is(err, service.ErrEventPropsTooBig):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrDuplicateEvent):
			response.Conflict(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.OK(c, nil)
}

// LogReportEvent 匿名周报埋点，事件类型白名单之外一律拒绝
func (h *EventHandler) LogReportEvent(c *gin.Context) {
	var req dto.ReportEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "")
		return
	}

	if err := h.eventService.LogReportEvent(req.EventType, req.Payload); err != nil {
		if errors.Is(err, service.ErrInvalidEventType) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, nil)
}
