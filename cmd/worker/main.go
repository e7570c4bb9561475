package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/novavoice/novavoice_go_server/config"
	"github.com/novavoice/novavoice_go_server/internal/database"
	"github.com/novavoice/novavoice_go_server/internal/pkg/artifact"
	"github.com/novavoice/novavoice_go_server/internal/pkg/pubsub"
	"github.com/novavoice/novavoice_go_server/internal/pkg/queue"
	"github.com/novavoice/novavoice_go_server/internal/pkg/synth"
	"github.com/novavoice/novavoice_go_server/internal/repository"
	"github.com/novavoice/novavoice_go_server/internal/service"
	"github.com/novavoice/novavoice_go_server/internal/worker"
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

	// 初始化 Queue 和 Pub/Sub
	jobQueue := queue.NewQueue(rdb, cfg.Queue.SynthesisQueue)
	publisher := pubsub.NewPublisher(rdb)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	voiceRepo := repository.NewVoiceRepository(db)
	generationRepo := repository.NewGenerationRepository(db)
	jobRepo := repository.NewJobRepository(db)

	// 初始化 Service
	catalogService := service.NewCatalogService(voiceRepo, store, cfg)
	ttsService := service.NewTTSService(db, userRepo, generationRepo, jobRepo, catalogService, engine, store, jobQueue, cfg)

	// 创建任务处理器
	processor := worker.NewProcessor(jobRepo, userRepo, ttsService, catalogService, store, publisher)

	// 创建 context 用于优雅关闭
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	log.Printf("Worker started, max workers: %d", cfg.Queue.MaxWorkers)

	// 启动 worker 循环
	for i := 0; i < cfg.Queue.MaxWorkers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("Worker %d shutting down", workerID)
					return
				default:
					// 从队列获取任务
					msg, err := jobQueue.Pop(ctx, 5*time.Second)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("Worker %d: failed to pop job: %v", workerID, err)
						continue
					}

					if msg == nil {
						continue // 超时，继续等待
					}

					log.Printf("Worker %d: processing job %d", workerID, msg.JobID)
					if err := processor.Process(ctx, msg); err != nil {
						log.Printf("Worker %d: job %d failed: %v", workerID, msg.JobID, err)
					}
				}
			}
		}(i)
	}

	// 等待 context 取消
	<-ctx.Done()
	log.Println("Worker shutdown complete")
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
