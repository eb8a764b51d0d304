package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elmparc/plan_go_server/config"
	"github.com/elmparc/plan_go_server/internal/api/handler"
	"github.com/elmparc/plan_go_server/internal/api/middleware"
)

type Router struct {
	authHandler        *handler.AuthHandler
	entitlementHandler *handler.EntitlementHandler
	promoHandler       *handler.PromoHandler
	reportHandler      *handler.ReportHandler
	planHandler        *handler.PlanHandler
	sessionHandler     *handler.SessionHandler
	matchHandler       *handler.MatchHandler
	waitlistHandler    *handler.WaitlistHandler
	eventHandler       *handler.EventHandler
	feedbackHandler    *handler.FeedbackHandler
	cfg                *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	entitlementHandler *handler.EntitlementHandler,
	promoHandler *handler.PromoHandler,
	reportHandler *handler.ReportHandler,
	planHandler *handler.PlanHandler,
	sessionHandler *handler.SessionHandler,
	matchHandler *handler.MatchHandler,
	waitlistHandler *handler.WaitlistHandler,
	eventHandler *handler.EventHandler,
	feedbackHandler *handler.FeedbackHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:        authHandler,
		entitlementHandler: entitlementHandler,
		promoHandler:       promoHandler,
		reportHandler:      reportHandler,
		planHandler:        planHandler,
		sessionHandler:     sessionHandler,
		matchHandler:       matchHandler,
		waitlistHandler:    waitlistHandler,
		eventHandler:       eventHandler,
		feedbackHandler:    feedbackHandler,
		cfg:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(&r.cfg.CORS))

	// 公开接口共用一个进程内限流器
	limiter := middleware.NewRateLimiter(
		r.cfg.RateLimit.MaxRequests,
		time.Duration(r.cfg.RateLimit.WindowMs)*time.Millisecond,
	)

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口 - 周报提交（有自己的 7 天限频，不走进程内限流）
		api.POST("/weekly-report", r.reportHandler.Submit)

		// 公开接口 - 匿名提交（限流）
		public := api.Group("")
		public.Use(middleware.RateLimit(limiter))
		{
			public.POST("/waitlist", r.waitlistHandler.Signup)
			public.POST("/events/report", r.eventHandler.LogReportEvent)
			public.POST("/feedback/report", r.feedbackHandler.Submit)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 权益
			authenticated.POST("/entitlements/check", r.entitlementHandler.Check)
			authenticated.POST("/promo/redeem", r.promoHandler.Redeem)

			// 计划与训练课
			plan := authenticated.Group("/plan")
			{
				plan.GET("", r.planHandler.Get)
				plan.PUT("/focus", r.planHandler.SetFocus)
			}
			authenticated.POST("/auto-adjust", r.planHandler.AutoAdjust)
			sessions := authenticated.Group("/sessions")
			{
				sessions.POST("/:id/start", r.sessionHandler.Start)
				sessions.POST("/:id/complete", r.sessionHandler.Complete)
			}

			// 比赛与埋点
			authenticated.POST("/matches", r.matchHandler.Register)
			authenticated.POST("/events", middleware.RateLimit(limiter), r.eventHandler.LogUserEvent)
		}
	}

	return engine
}
