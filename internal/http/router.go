package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/questpath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/questpath-backend/internal/http/middleware"
	"github.com/yungbote/questpath-backend/internal/observability"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Mode        string
	FrontendURL string
	Metrics     *observability.Collector

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler        *httpH.AuthHandler
	UserHandler        *httpH.UserHandler
	GoalHandler        *httpH.GoalHandler
	LevelHandler       *httpH.LevelHandler
	LeaderboardHandler *httpH.LeaderboardHandler
	ProgressionHandler *httpH.ProgressionHandler
	HealthHandler      *httpH.HealthHandler
	MetricsHandler     *httpH.MetricsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.SecurityHeaders(cfg.Mode))
	r.Use(httpMW.CORS(cfg.FrontendURL))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/health/ready", cfg.HealthHandler.Ready)
		r.GET("/health/live", cfg.HealthHandler.Live)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
			api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
			api.POST("/auth/google", cfg.AuthHandler.OAuthGoogle)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me", cfg.UserHandler.UpdateProfile)
		}

		// Goals
		if cfg.GoalHandler != nil {
			protected.POST("/goals", cfg.GoalHandler.CreateGoal)
			protected.GET("/goals/me", cfg.GoalHandler.ListGoals)
			protected.GET("/goals/:id", cfg.GoalHandler.GetGoal)
		}

		// Levels (topics + quizzes)
		if cfg.LevelHandler != nil {
			protected.PATCH("/levels/:id/topics/:index", cfg.LevelHandler.ToggleTopic)
			protected.GET("/levels/:id/quiz", cfg.LevelHandler.GetQuiz)
			protected.POST("/levels/:id/quiz/submit", cfg.LevelHandler.SubmitQuiz)
		}

		// Leaderboard
		if cfg.LeaderboardHandler != nil {
			protected.GET("/leaderboard", cfg.LeaderboardHandler.Get)
		}

		// Progression
		if cfg.ProgressionHandler != nil {
			protected.GET("/progression/stats", cfg.ProgressionHandler.Stats)
		}
	}

	// Metrics (protected, outside /api)
	if cfg.MetricsHandler != nil {
		metricsGroup := r.Group("/metrics")
		if cfg.AuthMiddleware != nil {
			metricsGroup.Use(cfg.AuthMiddleware.RequireAuth())
		}
		metricsGroup.GET("", cfg.MetricsHandler.Get)
	}

	return r
}
