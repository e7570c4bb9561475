package api

import (
	"github.com/gin-gonic/gin"

	"github.com/novavoice/novavoice_go_server/config"
	"github.com/novavoice/novavoice_go_server/internal/api/handler"
	"github.com/novavoice/novavoice_go_server/internal/api/middleware"
	"github.com/novavoice/novavoice_go_server/internal/repository"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	voiceHandler        *handler.VoiceHandler
	ttsHandler          *handler.TTSHandler
	subscriptionHandler *handler.SubscriptionHandler
	websocketHandler    *handler.WebSocketHandler
	userRepo            *repository.UserRepository
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	voiceHandler *handler.VoiceHandler,
	ttsHandler *handler.TTSHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	websocketHandler *handler.WebSocketHandler,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		voiceHandler:        voiceHandler,
		ttsHandler:          ttsHandler,
		subscriptionHandler: subscriptionHandler,
		websocketHandler:    websocketHandler,
		userRepo:            userRepo,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 音色列表（可选认证：登录后附带本人克隆音色）
		voices := api.Group("/voices")
		voices.Use(middleware.OptionalAuth(r.cfg.JWT.Secret, r.userRepo))
		{
			voices.GET("", r.voiceHandler.List)
		}

		// 音频下载（生成结果按引用取回）
		api.GET("/artifacts/*ref", r.ttsHandler.DownloadArtifact)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret, r.userRepo))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.GET("/quota", r.userHandler.GetQuota)
				user.GET("/history", r.ttsHandler.History)
				user.GET("/payments", r.subscriptionHandler.ListPayments)
			}

			// 合成
			tts := authenticated.Group("/tts")
			{
				tts.POST("/generate", r.ttsHandler.Generate)
				tts.POST("/jobs", r.ttsHandler.CreateJob)
				tts.GET("/jobs", r.ttsHandler.ListJobs)
				tts.GET("/jobs/:id", r.ttsHandler.GetJob)
			}

			// 克隆
			authenticated.POST("/voices/clone", r.voiceHandler.Clone)

			// 订阅
			authenticated.POST("/subscribe", r.subscriptionHandler.Subscribe)
		}
	}

	return engine
}
