package repos

import (
	"context"

	types "github.com/yungbote/questpath-backend/internal/domain"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LevelRepo interface {
	Create(ctx context.Context, tx *gorm.DB, levels []*types.Level) ([]*types.Level, error)
	// GetOwned loads a level only when its roadmap's goal belongs to userID.
	// Returns nil when the level is missing or foreign-owned.
	GetOwned(ctx context.Context, tx *gorm.DB, levelID, userID uint) (*types.Level, error)
	ListByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uint) ([]*types.Level, error)
	GetByRoadmapAndOrder(ctx context.Context, tx *gorm.DB, roadmapID uint, order int) (*types.Level, error)
	UpdateTopics(ctx context.Context, tx *gorm.DB, levelID uint, topics []types.Topic) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, levelID uint, status types.LevelStatus) error
	// MarkCompleted transitions a level into completed as a conditional
	// update and reports whether this call made the transition. Concurrent
	// callers racing on the same level see true exactly once, so XP tied
	// to the transition cannot be awarded twice.
	MarkCompleted(ctx context.Context, tx *gorm.DB, levelID uint) (bool, error)
	CountByOwnerAndStatus(ctx context.Context, tx *gorm.DB, userID uint, status *types.LevelStatus) (int64, error)
}

type levelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLevelRepo(db *gorm.DB, baseLog *logger.Logger) LevelRepo {
	repoLog := baseLog.With("repo", "LevelRepo")
	return &levelRepo{db: db, log: repoLog}
}

func (r *levelRepo) Create(ctx context.Context, tx *gorm.DB, levels []*types.Level) ([]*types.Level, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(levels) == 0 {
		return []*types.Level{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *levelRepo) GetOwned(ctx context.Context, tx *gorm.DB, levelID, userID uint) (*types.Level, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Level
	err := transaction.WithContext(ctx).
		Joins("JOIN roadmaps ON roadmaps.id = levels.roadmap_id").
		Joins("JOIN goals ON goals.id = roadmaps.goal_id").
		Where("levels.id = ? AND goals.user_id = ?", levelID, userID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *levelRepo) ListByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uint) ([]*types.Level, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Level
	if err := transaction.WithContext(ctx).
		Where("roadmap_id = ?", roadmapID).
		Order("order_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *levelRepo) GetByRoadmapAndOrder(ctx context.Context, tx *gorm.DB, roadmapID uint, order int) (*types.Level, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Level
	err := transaction.WithContext(ctx).
		Where("roadmap_id = ? AND order_index = ?", roadmapID, order).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *levelRepo) UpdateTopics(ctx context.Context, tx *gorm.DB, levelID uint, topics []types.Topic) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Level{}).
		Where("id = ?", levelID).
		Update("topics", datatypes.NewJSONSlice(topics)).Error
}

func (r *levelRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, levelID uint, status types.LevelStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Level{}).
		Where("id = ?", levelID).
		Update("status", status).Error
}

func (r *levelRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, levelID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Level{}).
		Where("id = ? AND status <> ?", levelID, types.LevelCompleted).
		Update("status", types.LevelCompleted)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CountByOwnerAndStatus counts levels across all of a user's roadmaps,
// optionally filtered by status.
func (r *levelRepo) CountByOwnerAndStatus(ctx context.Context, tx *gorm.DB, userID uint, status *types.LevelStatus) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Model(&types.Level{}).
		Joins("JOIN roadmaps ON roadmaps.id = levels.roadmap_id").
		Joins("JOIN goals ON goals.id = roadmaps.goal_id").
		Where("goals.user_id = ?", userID)
	if status != nil {
		q = q.Where("levels.status = ?", *status)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
