package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/questpath-backend/internal/apperr"
	redisclient "github.com/yungbote/questpath-backend/internal/clients/redis"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
)

// RateLimitService enforces a fixed-window counter per (client, action).
// Counter-store failures degrade to allowing the request.
type RateLimitService interface {
	Check(ctx context.Context, clientID, action string, limit int, window time.Duration) error
}

type rateLimitService struct {
	log   *logger.Logger
	cache redisclient.Cache
}

func NewRateLimitService(log *logger.Logger, cache redisclient.Cache) RateLimitService {
	serviceLog := log.With("service", "RateLimitService")
	return &rateLimitService{log: serviceLog, cache: cache}
}

func (s *rateLimitService) Check(ctx context.Context, clientID, action string, limit int, window time.Duration) error {
	if s.cache == nil {
		return nil
	}
	key := fmt.Sprintf("rate_limit:%s:%s", clientID, action)

	val, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("Rate limit check failed, allowing request", "key", key, "error", err)
		return nil
	}
	if found {
		var count int
		if _, scanErr := fmt.Sscanf(val, "%d", &count); scanErr == nil && count >= limit {
			return apperr.RateLimited(window)
		}
	}

	if _, err := s.cache.IncrWithTTL(ctx, key, window); err != nil {
		s.log.Warn("Rate limit increment failed, allowing request", "key", key, "error", err)
	}
	return nil
}
