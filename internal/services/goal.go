package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/questpath-backend/internal/apperr"
	"github.com/yungbote/questpath-backend/internal/data/repos"
	types "github.com/yungbote/questpath-backend/internal/domain"
	"github.com/yungbote/questpath-backend/internal/observability"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
)

const (
	goalDescriptionMin = 10
	goalDescriptionMax = 500

	createGoalLimit  = 5
	createGoalWindow = time.Hour
)

type GoalService interface {
	// CreateGoal generates a roadmap for the description and persists the
	// whole goal aggregate in one transaction. Nothing is stored when
	// generation or validation fails.
	CreateGoal(ctx context.Context, userID uint, description string) (*types.Goal, error)
	ListGoals(ctx context.Context, userID uint) ([]*types.Goal, error)
	GetGoal(ctx context.Context, userID, goalID uint) (*types.Goal, error)
}

type goalService struct {
	db          *gorm.DB
	log         *logger.Logger
	goalRepo    repos.GoalRepo
	roadmapRepo repos.RoadmapRepo
	levelRepo   repos.LevelRepo
	generator   RoadmapGenerator
	limiter     RateLimitService
	metrics     *observability.Collector
}

func NewGoalService(
	db *gorm.DB,
	log *logger.Logger,
	goalRepo repos.GoalRepo,
	roadmapRepo repos.RoadmapRepo,
	levelRepo repos.LevelRepo,
	generator RoadmapGenerator,
	limiter RateLimitService,
	metrics *observability.Collector,
) GoalService {
	serviceLog := log.With("service", "GoalService")
	return &goalService{
		db:          db,
		log:         serviceLog,
		goalRepo:    goalRepo,
		roadmapRepo: roadmapRepo,
		levelRepo:   levelRepo,
		generator:   generator,
		limiter:     limiter,
		metrics:     metrics,
	}
}

func (gs *goalService) CreateGoal(ctx context.Context, userID uint, description string) (*types.Goal, error) {
	description = strings.TrimSpace(description)
	if len(description) < goalDescriptionMin || len(description) > goalDescriptionMax {
		return nil, apperr.Validation("description must be between %d and %d characters", goalDescriptionMin, goalDescriptionMax)
	}

	clientID := fmt.Sprintf("user:%d", userID)
	if err := gs.limiter.Check(ctx, clientID, "create_goal", createGoalLimit, createGoalWindow); err != nil {
		return nil, err
	}

	doc, err := gs.generator.Generate(ctx, description)
	if err != nil {
		return nil, err
	}

	var goalID uint
	err = gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goal := &types.Goal{
			UserID:          userID,
			Title:           doc.Title,
			Description:     description,
			Category:        doc.Category,
			DifficultyLevel: types.DifficultyLevel(doc.Difficulty),
			Status:          types.GoalNotStarted,
		}
		if _, err := gs.goalRepo.Create(ctx, tx, goal); err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}

		roadmap := &types.Roadmap{GoalID: goal.ID, Name: doc.Roadmap.Name}
		if _, err := gs.roadmapRepo.Create(ctx, tx, roadmap); err != nil {
			return fmt.Errorf("failed to create roadmap: %w", err)
		}

		levels := make([]*types.Level, 0, len(doc.Roadmap.Levels))
		for _, plan := range doc.Roadmap.Levels {
			status := types.LevelLocked
			if plan.Order == 1 {
				status = types.LevelUnlocked
			}
			levels = append(levels, &types.Level{
				RoadmapID:   roadmap.ID,
				Order:       plan.Order,
				Title:       plan.Title,
				Description: plan.Description,
				Topics:      datatypes.NewJSONSlice(plan.Topics),
				XPReward:    plan.XPReward,
				Status:      status,
			})
		}
		if _, err := gs.levelRepo.Create(ctx, tx, levels); err != nil {
			return fmt.Errorf("failed to create levels: %w", err)
		}

		goalID = goal.ID
		return nil
	})
	if err != nil {
		gs.log.Error("Goal creation transaction failed", "user_id", userID, "error", err)
		return nil, apperr.Internal(err, "failed to persist goal")
	}

	gs.metrics.IncBusiness(observability.MetricGoalsCreated)
	gs.log.Info("Goal created", "user_id", userID, "goal_id", goalID)
	return gs.GetGoal(ctx, userID, goalID)
}

func (gs *goalService) ListGoals(ctx context.Context, userID uint) ([]*types.Goal, error) {
	goals, err := gs.goalRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list goals")
	}
	return goals, nil
}

func (gs *goalService) GetGoal(ctx context.Context, userID, goalID uint) (*types.Goal, error) {
	goal, err := gs.goalRepo.GetWithLevels(ctx, nil, goalID, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load goal")
	}
	if goal == nil {
		return nil, apperr.NotFound("goal not found")
	}
	return goal, nil
}
