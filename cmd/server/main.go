package main

import (
	"context"
	"fmt"
	"log"

	"github.com/novavoice/novavoice_go_server/config"
	"github.com/novavoice/novavoice_go_server/internal/api"
	"github.com/novavoice/novavoice_go_server/internal/api/handler"
	"github.com/novavoice/novavoice_go_server/internal/database"
	"github.com/novavoice/novavoice_go_server/internal/pkg/artifact"
	"github.com/novavoice/novavoice_go_server/internal/pkg/cron"
	"github.com/novavoice/novavoice_go_server/internal/pkg/pubsub"
	"github.com/novavoice/novavoice_go_server/internal/pkg/queue"
	"github.com/novavoice/novavoice_go_server/internal/pkg/synth"
	"github.com/novavoice/novavoice_go_server/internal/pkg/ws"
	"github.com/novavoice/novavoice_go_server/internal/repository"
	"github.com/novavoice/novavoice_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化音频存储
	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to init artifact store: %v", err)
	}
	log.Printf("Artifact store ready (backend: %s)", cfg.Storage.Backend)

	// 初始化合成引擎
	engine := synth.NewProcessEngine(cfg.Synthesis.Command, cfg.Synthesis.Args, cfg.Synthesis.BaseRate)

	// 初始化 Queue
	jobQueue := queue.NewQueue(rdb, cfg.Queue.SynthesisQueue)

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	voiceRepo := repository.NewVoiceRepository(db)
	generationRepo := repository.NewGenerationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	jobRepo := repository.NewJobRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, cfg)
	quotaService := service.NewQuotaService(userRepo, cfg)
	catalogService := service.NewCatalogService(voiceRepo, store, cfg)
	subscriptionService := service.NewSubscriptionService(db, userRepo, paymentRepo, authService, cfg)
	ttsService := service.NewTTSService(db, userRepo, generationRepo, jobRepo, catalogService, engine, store, jobQueue, cfg)

	// 预置音色入库
	if err := catalogService.SeedPresets(); err != nil {
		log.Fatalf("Failed to seed preset voices: %v", err)
	}
	log.Println("Preset voices ready")

	// 订阅合成进度并转发给在线用户
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.ProgressMessage) {
			wsHub.SendToUser(msg.UserID, &ws.Message{Type: msg.Type, Data: msg})
		})
		if err != nil {
			log.Printf("Progress subscriber stopped: %v", err)
		}
	}()

	// 每日配额重置（按需开启）
	if cfg.Quota.ResetEnabled {
		cronService := cron.NewService(quotaService)
		cronService.Start()
		defer cronService.Stop()
		log.Println("Daily allowance reset enabled")
	}

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService, quotaService)
	voiceHandler := handler.NewVoiceHandler(catalogService, authService)
	ttsHandler := handler.NewTTSHandler(ttsService, quotaService, store)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		userHandler,
		voiceHandler,
		ttsHandler,
		subscriptionHandler,
		websocketHandler,
		userRepo,
		cfg,
	)
	httpEngine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := httpEngine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newStore(cfg *config.Config) (artifact.Store, error) {
	if cfg.Storage.Backend == "oss" && cfg.Storage.OSS.Endpoint != "" {
		return artifact.NewOSSStore(&cfg.Storage.OSS)
	}
	dir := cfg.Storage.LocalDir
	if dir == "" {
		dir = "data"
	}
	return artifact.NewLocalStore(dir)
}
