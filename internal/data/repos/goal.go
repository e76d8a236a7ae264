package repos

import (
	"context"

	types "github.com/yungbote/questpath-backend/internal/domain"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type GoalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, goal *types.Goal) (*types.Goal, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.Goal, error)
	// GetWithLevels eagerly loads the full Goal+Roadmap+Levels aggregate for
	// an owning user in one read, levels ordered by their roadmap position.
	// Returns nil when the goal does not exist or belongs to someone else.
	GetWithLevels(ctx context.Context, tx *gorm.DB, goalID, userID uint) (*types.Goal, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, goalID uint, status types.GoalStatus) error
}

type goalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGoalRepo(db *gorm.DB, baseLog *logger.Logger) GoalRepo {
	repoLog := baseLog.With("repo", "GoalRepo")
	return &goalRepo{db: db, log: repoLog}
}

func (r *goalRepo) Create(ctx context.Context, tx *gorm.DB, goal *types.Goal) (*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

func (r *goalRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Goal
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *goalRepo) GetWithLevels(ctx context.Context, tx *gorm.DB, goalID, userID uint) (*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Goal
	err := transaction.WithContext(ctx).
		Preload("Roadmap").
		Preload("Roadmap.Levels", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *goalRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, goalID uint, status types.GoalStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Goal{}).
		Where("id = ?", goalID).
		Update("status", status).Error
}
