package main

import (
	"fmt"
	"log"

	"github.com/elmparc/plan_go_server/config"
	"github.com/elmparc/plan_go_server/internal/api"
	"github.com/elmparc/plan_go_server/internal/api/handler"
	"github.com/elmparc/plan_go_server/internal/database"
	"github.com/elmparc/plan_go_server/internal/pkg/cron"
	"github.com/elmparc/plan_go_server/internal/pkg/pubsub"
	"github.com/elmparc/plan_go_server/internal/pkg/queue"
	"github.com/elmparc/plan_go_server/internal/repository"
	"github.com/elmparc/plan_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
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

	// 初始化 Queue 和 Pub/Sub
	followupQueue := queue.NewQueue(rdb, cfg.Queue.FollowupQueue)
	publisher := pubsub.NewPublisher(rdb, cfg.Queue.EventChannel)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	entRepo := repository.NewEntitlementRepository(db)
	promoRepo := repository.NewPromoRepository(db)
	reportRepo := repository.NewReportRepository(db)
	planRepo := repository.NewPlanRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	waitlistRepo := repository.NewWaitlistRepository(db)
	eventRepo := repository.NewEventRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, entRepo, cfg)
	entService := service.NewEntitlementService(entRepo, promoRepo, cfg)
	promoService := service.NewPromoService(promoRepo, entRepo, cfg)
	reportService := service.NewReportService(reportRepo, followupQueue, cfg)
	planService := service.NewPlanService(planRepo, userRepo, matchRepo, entService, cfg)
	waitlistService := service.NewWaitlistService(waitlistRepo)
	eventService := service.NewEventService(eventRepo, publisher)
	feedbackService := service.NewFeedbackService(feedbackRepo)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	entitlementHandler := handler.NewEntitlementHandler(entService)
	promoHandler := handler.NewPromoHandler(promoService)
	reportHandler := handler.NewReportHandler(reportService)
	planHandler := handler.NewPlanHandler(planService)
	sessionHandler := handler.NewSessionHandler(planService)
	matchHandler := handler.NewMatchHandler(planService)
	waitlistHandler := handler.NewWaitlistHandler(waitlistService)
	eventHandler := handler.NewEventHandler(eventService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	// 启动定时任务
	cronService := cron.NewService(promoRepo, entRepo, reportRepo, followupQueue, cfg)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		entitlementHandler,
		promoHandler,
		reportHandler,
		planHandler,
		sessionHandler,
		matchHandler,
		waitlistHandler,
		eventHandler,
		feedbackHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
