package app

import (
	"gorm.io/gorm"

	redisclient "github.com/yungbote/questpath-backend/internal/clients/redis"
	httpH "github.com/yungbote/questpath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/questpath-backend/internal/http/middleware"
	"github.com/yungbote/questpath-backend/internal/observability"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
)

type Handlers struct {
	Auth        *httpH.AuthHandler
	User        *httpH.UserHandler
	Goal        *httpH.GoalHandler
	Level       *httpH.LevelHandler
	Leaderboard *httpH.LeaderboardHandler
	Progression *httpH.ProgressionHandler
	Health      *httpH.HealthHandler
	Metrics     *httpH.MetricsHandler
}

func wireHandlers(
	log *logger.Logger,
	cfg Config,
	db *gorm.DB,
	cache redisclient.Cache,
	serviceset Services,
	metrics *observability.Collector,
) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:        httpH.NewAuthHandler(serviceset.Auth, cfg.Mode == "production"),
		User:        httpH.NewUserHandler(serviceset.User),
		Goal:        httpH.NewGoalHandler(serviceset.Goal),
		Level:       httpH.NewLevelHandler(serviceset.Progression),
		Leaderboard: httpH.NewLeaderboardHandler(serviceset.Leaderboard),
		Progression: httpH.NewProgressionHandler(serviceset.Progression),
		Health:      httpH.NewHealthHandler(log, db, cache),
		Metrics:     httpH.NewMetricsHandler(metrics),
	}
}

func wireMiddleware(log *logger.Logger, serviceset Services) *httpMW.AuthMiddleware {
	log.Info("Wiring middleware...")
	return httpMW.NewAuthMiddleware(log, serviceset.Auth)
}
