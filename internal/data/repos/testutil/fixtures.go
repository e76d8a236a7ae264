package testutil

import (
	"context"
	"fmt"
	"testing"

	types "github.com/yungbote/questpath-backend/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	hash := "$2a$10$seeded-hash-not-a-real-one"
	u := &types.User{
		Email:        email,
		PasswordHash: &hash,
		DisplayName:  "Seed User",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedGoal(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uint) *types.Goal {
	tb.Helper()
	g := &types.Goal{
		UserID:          userID,
		Title:           "Learn Go",
		Description:     "I want to learn Go for backend development",
		Category:        "Programming",
		DifficultyLevel: types.DifficultyBeginner,
		Status:          types.GoalNotStarted,
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed goal: %v", err)
	}
	return g
}

func SeedRoadmap(tb testing.TB, ctx context.Context, tx *gorm.DB, goalID uint) *types.Roadmap {
	tb.Helper()
	r := &types.Roadmap{
		GoalID: goalID,
		Name:   "Go Fundamentals",
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed roadmap: %v", err)
	}
	return r
}

// SeedLevels creates n levels with dense order 1..n, only the first unlocked.
func SeedLevels(tb testing.TB, ctx context.Context, tx *gorm.DB, roadmapID uint, n int) []*types.Level {
	tb.Helper()
	levels := make([]*types.Level, 0, n)
	for i := 1; i <= n; i++ {
		status := types.LevelLocked
		if i == 1 {
			status = types.LevelUnlocked
		}
		l := &types.Level{
			RoadmapID:   roadmapID,
			Order:       i,
			Title:       fmt.Sprintf("Level %d", i),
			Description: "seeded",
			Topics: datatypes.NewJSONSlice([]types.Topic{
				{Name: "Topic A"},
				{Name: "Topic B"},
			}),
			XPReward: 100,
			Status:   status,
		}
		if err := tx.WithContext(ctx).Create(l).Error; err != nil {
			tb.Fatalf("seed level %d: %v", i, err)
		}
		levels = append(levels, l)
	}
	return levels
}
