package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/questpath-backend/internal/clients/openai"
	redisclient "github.com/yungbote/questpath-backend/internal/clients/redis"
	"github.com/yungbote/questpath-backend/internal/observability"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
	"github.com/yungbote/questpath-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Goal        services.GoalService
	Progression services.ProgressionService
	Leaderboard services.LeaderboardService
	RateLimit   services.RateLimitService
}

func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	cfg Config,
	reposet Repos,
	cache redisclient.Cache,
	metrics *observability.Collector,
) (Services, error) {
	log.Info("Wiring services...")

	aiClient, err := openai.NewClient(log)
	if err != nil {
		return Services{}, fmt.Errorf("init openai client: %w", err)
	}
	roadmapGen := services.NewRoadmapGenerator(log, aiClient)
	quizGen := services.NewQuizGenerator(log, aiClient)

	var oidc services.OIDCVerifier
	if cfg.GoogleClientID != "" {
		oidc, err = services.NewOIDCVerifier(nil, cfg.GoogleClientID)
		if err != nil {
			return Services{}, fmt.Errorf("init oidc verifier: %w", err)
		}
	}

	limiter := services.NewRateLimitService(log, cache)

	return Services{
		Auth: services.NewAuthService(db, log, reposet.User, oidc, limiter,
			metrics, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User: services.NewUserService(log, reposet.User),
		Goal: services.NewGoalService(db, log, reposet.Goal, reposet.Roadmap,
			reposet.Level, roadmapGen, limiter, metrics),
		Progression: services.NewProgressionService(db, log, reposet.User,
			reposet.Goal, reposet.Roadmap, reposet.Level, quizGen, cache, metrics),
		Leaderboard: services.NewLeaderboardService(log, reposet.User, cache),
		RateLimit:   limiter,
	}, nil
}
