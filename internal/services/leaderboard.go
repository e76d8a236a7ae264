package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yungbote/questpath-backend/internal/apperr"
	redisclient "github.com/yungbote/questpath-backend/internal/clients/redis"
	"github.com/yungbote/questpath-backend/internal/data/repos"
	types "github.com/yungbote/questpath-backend/internal/domain"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
)

const (
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = 300 * time.Second
	leaderboardSize     = 10
)

type LeaderboardService interface {
	// Get returns the top standings plus the caller's own rank. The top
	// list is served from cache when fresh; the caller's entry is always
	// read live so a user sees their own XP immediately.
	Get(ctx context.Context, userID uint) (*types.Leaderboard, error)
}

type leaderboardService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	cache    redisclient.Cache
}

func NewLeaderboardService(log *logger.Logger, userRepo repos.UserRepo, cache redisclient.Cache) LeaderboardService {
	serviceLog := log.With("service", "LeaderboardService")
	return &leaderboardService{log: serviceLog, userRepo: userRepo, cache: cache}
}

func (ls *leaderboardService) Get(ctx context.Context, userID uint) (*types.Leaderboard, error) {
	entries, err := ls.topEntries(ctx)
	if err != nil {
		return nil, err
	}

	user, err := ls.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load user")
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	rank, err := ls.userRepo.RankByExp(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to compute rank")
	}

	return &types.Leaderboard{
		Leaderboard: entries,
		CurrentUser: types.LeaderboardEntry{
			Rank:     rank,
			UserID:   user.ID,
			Email:    user.Email,
			TotalExp: user.TotalExp,
		},
	}, nil
}

func (ls *leaderboardService) topEntries(ctx context.Context) ([]types.LeaderboardEntry, error) {
	if ls.cache != nil {
		cached, found, err := ls.cache.Get(ctx, leaderboardCacheKey)
		if err != nil {
			ls.log.Warn("Leaderboard cache read failed", "error", err)
		} else if found {
			var entries []types.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
			ls.log.Warn("Dropping undecodable leaderboard cache entry")
		}
	}

	users, err := ls.userRepo.TopByExp(ctx, nil, leaderboardSize)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load leaderboard")
	}
	entries := make([]types.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, types.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   u.ID,
			Email:    u.Email,
			TotalExp: u.TotalExp,
		})
	}

	if ls.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := ls.cache.Set(ctx, leaderboardCacheKey, string(payload), leaderboardCacheTTL); err != nil {
				ls.log.Warn("Leaderboard cache write failed", "error", err)
			}
		}
	}
	return entries, nil
}
