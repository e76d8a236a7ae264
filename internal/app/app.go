package app

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	redisclient "github.com/yungbote/questpath-backend/internal/clients/redis"
	"github.com/yungbote/questpath-backend/internal/data/db"
	httpserver "github.com/yungbote/questpath-backend/internal/http"
	"github.com/yungbote/questpath-backend/internal/observability"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *httpserver.Server
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Collector
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	cache, err := redisclient.NewCache(log, cfg.RedisAddr)
	if err != nil {
		// Cache features degrade gracefully; the API still serves.
		log.Warn("Redis unavailable, running without cache", "error", err)
		cache = nil
	}

	metrics := observability.NewCollector()

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet, cache, metrics)
	if err != nil {
		log.Sync()
		return nil, err
	}
	handlerset := wireHandlers(log, cfg, theDB, cache, serviceset, metrics)
	authMW := wireMiddleware(log, serviceset)

	server := httpserver.NewServer(httpserver.RouterConfig{
		Log:         log,
		Mode:        cfg.Mode,
		FrontendURL: cfg.FrontendURL,
		Metrics:     metrics,

		AuthMiddleware: authMW,

		AuthHandler:        handlerset.Auth,
		UserHandler:        handlerset.User,
		GoalHandler:        handlerset.Goal,
		LevelHandler:       handlerset.Level,
		LeaderboardHandler: handlerset.Leaderboard,
		ProgressionHandler: handlerset.Progression,
		HealthHandler:      handlerset.Health,
		MetricsHandler:     handlerset.Metrics,
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Server:   server,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Metrics:  metrics,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
