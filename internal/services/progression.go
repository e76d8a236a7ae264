package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/questpath-backend/internal/apperr"
	redisclient "github.com/yungbote/questpath-backend/internal/clients/redis"
	"github.com/yungbote/questpath-backend/internal/data/repos"
	types "github.com/yungbote/questpath-backend/internal/domain"
	"github.com/yungbote/questpath-backend/internal/observability"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
)

const quizTimeLimitSeconds = 300

type ProgressionService interface {
	// ToggleTopic flips the completion flag of one topic on an owned level.
	ToggleTopic(ctx context.Context, userID, levelID uint, topicIndex int) (*types.Level, error)
	// GetQuiz generates a fresh quiz for a level whose topics are all done.
	GetQuiz(ctx context.Context, userID, levelID uint) (*types.Quiz, error)
	// SubmitQuiz applies a graded result. A pass completes the level,
	// awards XP on the first completion only, recomputes the goal status
	// and unlocks the next level. A fail mutates nothing.
	SubmitQuiz(ctx context.Context, userID, levelID uint, submission types.QuizSubmission) (*types.QuizResult, error)
	Stats(ctx context.Context, userID uint) (*types.ProgressionStats, error)
}

type progressionService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	goalRepo    repos.GoalRepo
	roadmapRepo repos.RoadmapRepo
	levelRepo   repos.LevelRepo
	generator   QuizGenerator
	cache       redisclient.Cache
	metrics     *observability.Collector
}

func NewProgressionService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	goalRepo repos.GoalRepo,
	roadmapRepo repos.RoadmapRepo,
	levelRepo repos.LevelRepo,
	generator QuizGenerator,
	cache redisclient.Cache,
	metrics *observability.Collector,
) ProgressionService {
	serviceLog := log.With("service", "ProgressionService")
	return &progressionService{
		db:          db,
		log:         serviceLog,
		userRepo:    userRepo,
		goalRepo:    goalRepo,
		roadmapRepo: roadmapRepo,
		levelRepo:   levelRepo,
		generator:   generator,
		cache:       cache,
		metrics:     metrics,
	}
}

func (ps *progressionService) ToggleTopic(ctx context.Context, userID, levelID uint, topicIndex int) (*types.Level, error) {
	level, err := ps.levelRepo.GetOwned(ctx, nil, levelID, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load level")
	}
	if level == nil {
		return nil, apperr.NotFound("level not found")
	}
	if topicIndex < 0 || topicIndex >= len(level.Topics) {
		return nil, apperr.Validation("invalid topic index")
	}

	topics := make([]types.Topic, len(level.Topics))
	copy(topics, level.Topics)
	topics[topicIndex].Completed = !topics[topicIndex].Completed
	if err := ps.levelRepo.UpdateTopics(ctx, nil, levelID, topics); err != nil {
		return nil, apperr.Internal(err, "failed to update topics")
	}

	level.Topics = topics
	return level, nil
}

func (ps *progressionService) GetQuiz(ctx context.Context, userID, levelID uint) (*types.Quiz, error) {
	level, err := ps.levelRepo.GetOwned(ctx, nil, levelID, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load level")
	}
	if level == nil {
		return nil, apperr.NotFound("level not found")
	}
	if !level.AllTopicsCompleted() {
		return nil, apperr.PermissionDenied("complete all topics before taking the quiz")
	}

	names := make([]string, 0, len(level.Topics))
	for _, t := range level.Topics {
		names = append(names, t.Name)
	}
	doc, err := ps.generator.Generate(ctx, level.Title, names)
	if err != nil {
		return nil, err
	}

	ps.metrics.IncBusiness(observability.MetricQuizzesGenerated)
	return &types.Quiz{
		LevelID:    level.ID,
		LevelTitle: level.Title,
		TimeLimit:  quizTimeLimitSeconds,
		Questions:  doc.Questions,
	}, nil
}

func (ps *progressionService) SubmitQuiz(ctx context.Context, userID, levelID uint, submission types.QuizSubmission) (*types.QuizResult, error) {
	level, err := ps.levelRepo.GetOwned(ctx, nil, levelID, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load level")
	}
	if level == nil {
		return nil, apperr.NotFound("level not found")
	}

	if !submission.Passed {
		return &types.QuizResult{
			Passed:  false,
			Message: "You didn't pass this time. Review the topics and try again!",
		}, nil
	}

	result := &types.QuizResult{Passed: true}
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// XP is awarded once per level. The conditional update decides who
		// made the transition, so a resubmission or a concurrent duplicate
		// earns nothing even when both loaded the level before committing.
		transitioned, err := ps.levelRepo.MarkCompleted(ctx, tx, level.ID)
		if err != nil {
			return fmt.Errorf("failed to complete level: %w", err)
		}
		if transitioned {
			result.XPEarned = level.XPReward
			if err := ps.userRepo.AddExp(ctx, tx, userID, level.XPReward); err != nil {
				return fmt.Errorf("failed to award xp: %w", err)
			}
		}

		siblings, err := ps.levelRepo.ListByRoadmapID(ctx, tx, level.RoadmapID)
		if err != nil {
			return fmt.Errorf("failed to list levels: %w", err)
		}
		allCompleted := true
		for _, sibling := range siblings {
			if sibling.ID == level.ID {
				continue
			}
			if sibling.Status != types.LevelCompleted {
				allCompleted = false
				break
			}
		}
		goalStatus := types.GoalInProgress
		if allCompleted {
			goalStatus = types.GoalCompleted
		}

		roadmap, err := ps.roadmapRepo.GetByID(ctx, tx, level.RoadmapID)
		if err != nil {
			return fmt.Errorf("failed to load roadmap: %w", err)
		}
		if roadmap == nil {
			return fmt.Errorf("roadmap %d not found", level.RoadmapID)
		}
		if err := ps.goalRepo.UpdateStatus(ctx, tx, roadmap.GoalID, goalStatus); err != nil {
			return fmt.Errorf("failed to update goal status: %w", err)
		}

		next, err := ps.levelRepo.GetByRoadmapAndOrder(ctx, tx, level.RoadmapID, level.Order+1)
		if err != nil {
			return fmt.Errorf("failed to look up next level: %w", err)
		}
		if next != nil && next.Status == types.LevelLocked {
			if err := ps.levelRepo.UpdateStatus(ctx, tx, next.ID, types.LevelUnlocked); err != nil {
				return fmt.Errorf("failed to unlock next level: %w", err)
			}
			result.NextLevelUnlocked = true
		}
		return nil
	})
	if err != nil {
		ps.log.Error("Quiz submission transaction failed", "user_id", userID, "level_id", levelID, "error", err)
		return nil, apperr.Internal(err, "failed to record quiz result")
	}

	if result.NextLevelUnlocked {
		result.Message = fmt.Sprintf("Congratulations! You earned %d XP and unlocked the next level!", result.XPEarned)
	} else {
		result.Message = fmt.Sprintf("Congratulations! You earned %d XP!", result.XPEarned)
	}

	// Standings changed, drop the cached leaderboard. Best effort.
	if result.XPEarned > 0 && ps.cache != nil {
		if err := ps.cache.Delete(ctx, leaderboardCacheKey); err != nil {
			ps.log.Warn("Failed to invalidate leaderboard cache", "error", err)
		}
	}

	ps.metrics.IncBusiness(observability.MetricQuizzesCompleted)
	return result, nil
}

func (ps *progressionService) Stats(ctx context.Context, userID uint) (*types.ProgressionStats, error) {
	user, err := ps.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load user")
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	completedStatus := types.LevelCompleted
	completed, err := ps.levelRepo.CountByOwnerAndStatus(ctx, nil, userID, &completedStatus)
	if err != nil {
		return nil, apperr.Internal(err, "failed to count completed levels")
	}
	total, err := ps.levelRepo.CountByOwnerAndStatus(ctx, nil, userID, nil)
	if err != nil {
		return nil, apperr.Internal(err, "failed to count levels")
	}

	stats := &types.ProgressionStats{
		TotalExp:        user.TotalExp,
		LevelsCompleted: int(completed),
	}
	if total > 0 {
		stats.GoalCompletionPercentage = int(completed * 100 / total)
	}
	return stats, nil
}
