package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/elmparc/plan_go_server/internal/api/middleware"
	"github.com/elmparc/plan_go_server/internal/model/dto"
	"github.com/elmparc/plan_go_server/internal/pkg/response"
	"github.com/elmparc/plan_go_server/internal/service"
)

type PromoHandler struct {
	promoService *service.PromoService
}

func NewPromoHandler(promoService *service.PromoService) *PromoHandler {
	return &PromoHandler{promoService: promoService}
}

// Redeem 兑换推广码
func (h *PromoHandler) Redeem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "")
		return
	}

	result, err := h.promoService.Redeem(userID, req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired), errors.Is(err, service.ErrInvalidPromoCode):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrMaxAttempts), errors.Is(err, service.ErrPromoExpired):
			response.Forbidden(c, err.Error())
		default:
			response.ServerError(c, "Failed to redeem code.")
		}
		return
	}

	response.OK(c, gin.H{
		"expiresAt":       result.ExpiresAt,
		"sessionsPerWeek": result.SessionsPerWeek,
		"alreadyRedeemed": result.AlreadyRedeemed,
	})
}
