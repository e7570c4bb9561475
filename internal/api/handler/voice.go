package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/novavoice/novavoice_go_server/internal/api/middleware"
	"github.com/novavoice/novavoice_go_server/internal/model/dto"
	"github.com/novavoice/novavoice_go_server/internal/pkg/response"
	"github.com/novavoice/novavoice_go_server/internal/service"
)

type VoiceHandler struct {
	catalogService *service.CatalogService
	authService    *service.AuthService
}

func NewVoiceHandler(catalogService *service.CatalogService, authService *service.AuthService) *VoiceHandler {
	return &VoiceHandler{
		catalogService: catalogService,
		authService:    authService,
	}
}

// List 列出可见音色（预置 + 本人克隆）
// GET /api/v1/voices
func (h *VoiceHandler) List(c *gin.Context) {
	var userID *int64
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	voices, err := h.catalogService.ListVoices(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, voices)
}

// Clone 克隆音色（multipart：voice_name + sample 文件）
// POST /api/v1/voices/clone
func (h *VoiceHandler) Clone(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		response.AuthError(c, "")
		return
	}

	var req dto.CloneVoiceRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	file, header, err := c.Request.FormFile("sample")
	if err != nil {
		response.ParamError(c, "请上传声音样本文件")
		return
	}
	defer file.Close()

	info, err := h.catalogService.CloneVoice(user, &req, header.Filename, file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCloningRequiresPaid):
			response.PermissionError(c, err.Error())
		case errors.Is(err, service.ErrSampleTooLarge):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrSampleTypeNotAllowed):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "声音克隆成功", info)
}
