package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/novavoice/novavoice_go_server/internal/api/middleware"
	"github.com/novavoice/novavoice_go_server/internal/pkg/response"
	"github.com/novavoice/novavoice_go_server/internal/service"
)

type UserHandler struct {
	authService  *service.AuthService
	quotaService *service.QuotaService
}

func NewUserHandler(authService *service.AuthService, quotaService *service.QuotaService) *UserHandler {
	return &UserHandler{
		authService:  authService,
		quotaService: quotaService,
	}
}

// GetProfile 获取当前用户信息
// GET /api/v1/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, h.authService.BuildUserInfo(user))
}

// GetQuota 获取当前用户配额信息
// GET /api/v1/user/quota
func (h *UserHandler) GetQuota(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.quotaService.GetQuotaInfo(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, info)
}
