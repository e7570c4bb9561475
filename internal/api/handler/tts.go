package handler

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/novavoice/novavoice_go_server/internal/api/middleware"
	"github.com/novavoice/novavoice_go_server/internal/model/dto"
	"github.com/novavoice/novavoice_go_server/internal/pkg/artifact"
	"github.com/novavoice/novavoice_go_server/internal/pkg/response"
	"github.com/novavoice/novavoice_go_server/internal/service"
)

type TTSHandler struct {
	ttsService   *service.TTSService
	quotaService *service.QuotaService
	store        artifact.Store
}

func NewTTSHandler(ttsService *service.TTSService, quotaService *service.QuotaService, store artifact.Store) *TTSHandler {
	return &TTSHandler{
		ttsService:   ttsService,
		quotaService: quotaService,
		store:        store,
	}
}

// Generate 同步合成
// POST /api/v1/tts/generate
func (h *TTSHandler) Generate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	// 鉴权同时完成配额预检
	user, err := h.quotaService.AuthorizeByID(userID)
	if err != nil {
		h.writeQuotaError(c, err, userID)
		return
	}

	resp, err := h.ttsService.Generate(c.Request.Context(), user, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVoiceNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrQuotaExhausted):
			response.QuotaError(c, err.Error())
		case errors.Is(err, service.ErrSynthesisTimeout):
			response.SynthesisTimeoutError(c, err.Error())
		case errors.Is(err, service.ErrSynthesisFailed):
			response.SynthesisError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}

// History 生成历史
// GET /api/v1/user/history
func (h *TTSHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.ttsService.History(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// CreateJob 创建异步合成任务
// POST /api/v1/tts/jobs
func (h *TTSHandler) CreateJob(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	user, err := h.quotaService.AuthorizeByID(userID)
	if err != nil {
		h.writeQuotaError(c, err, userID)
		return
	}

	resp, err := h.ttsService.CreateJob(c.Request.Context(), user, &req)
	if err != nil {
		if errors.Is(err, service.ErrVoiceNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, resp)
}

// GetJob 查询任务状态
// GET /api/v1/tts/jobs/:id
func (h *TTSHandler) GetJob(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的任务 ID")
		return
	}

	job, err := h.ttsService.GetJob(jobID, userID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, job)
}

// ListJobs 列出最近任务
// GET /api/v1/tts/jobs
func (h *TTSHandler) ListJobs(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	jobs, err := h.ttsService.ListJobs(userID, limit)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, jobs)
}

// DownloadArtifact 下载生成的音频
// GET /api/v1/artifacts/*ref
func (h *TTSHandler) DownloadArtifact(c *gin.Context) {
	ref := strings.TrimPrefix(c.Param("ref"), "/")
	if ref == "" {
		response.ParamError(c, "缺少音频引用")
		return
	}

	data, err := h.store.Get(ref)
	if err != nil {
		if errors.Is(err, artifact.ErrNotFound) {
			response.NotFoundError(c, "音频不存在")
			return
		}
		response.ServerError(c, "")
		return
	}

	contentType := "audio/wav"
	if filepath.Ext(ref) == ".mp3" {
		contentType = "audio/mpeg"
	}
	c.Data(200, contentType, data)
}

func (h *TTSHandler) writeQuotaError(c *gin.Context, err error, userID int64) {
	switch {
	case errors.Is(err, service.ErrQuotaExhausted):
		// 带剩余额度上下文返回
		if info, infoErr := h.quotaService.GetQuotaInfo(userID); infoErr == nil {
			c.JSON(200, response.Response{
				Code:    response.CodeQuotaExhausted,
				Message: err.Error(),
				Data:    info,
			})
			return
		}
		response.QuotaError(c, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		response.AuthError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
