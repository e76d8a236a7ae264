package app

import (
	"time"

	"github.com/yungbote/questpath-backend/internal/platform/logger"
	"github.com/yungbote/questpath-backend/internal/utils"
)

type Config struct {
	Mode            string
	Port            string
	FrontendURL     string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	GoogleClientID  string
	RedisAddr       string
}

func LoadConfig(log *logger.Logger) Config {
	mode := utils.GetEnv("APP_MODE", "development", log)
	port := utils.GetEnv("PORT", "8000", log)
	frontendURL := utils.GetEnv("FRONTEND_URL", "", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 900, log)
	refreshTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 2592000, log)
	googleClientID := utils.GetEnv("GOOGLE_CLIENT_ID", "", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "localhost:6379", log)

	return Config{
		Mode:            mode,
		Port:            port,
		FrontendURL:     frontendURL,
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTTLSeconds) * time.Second,
		GoogleClientID:  googleClientID,
		RedisAddr:       redisAddr,
	}
}
