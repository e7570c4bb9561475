package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/novavoice/novavoice_go_server/internal/api/middleware"
	"github.com/novavoice/novavoice_go_server/internal/model/dto"
	"github.com/novavoice/novavoice_go_server/internal/pkg/response"
	"github.com/novavoice/novavoice_go_server/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// Subscribe 变更订阅档位（模拟支付）
// POST /api/v1/subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.subscriptionService.ChangeTier(userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, resp.Message, resp)
}

// ListPayments 支付记录
// GET /api/v1/user/payments
func (h *SubscriptionHandler) ListPayments(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	payments, err := h.subscriptionService.ListPayments(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, payments)
}
