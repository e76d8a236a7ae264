package repos

import (
	"context"

	types "github.com/yungbote/questpath-backend/internal/domain"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uint) (*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	GetByGoogleID(ctx context.Context, tx *gorm.DB, googleID string) (*types.User, error)
	UpdateDisplayName(ctx context.Context, tx *gorm.DB, userID uint, displayName string) error
	SetRefreshTokenHash(ctx context.Context, tx *gorm.DB, userID uint, hash *string) error
	AddExp(ctx context.Context, tx *gorm.DB, userID uint, delta int) error
	TopByExp(ctx context.Context, tx *gorm.DB, limit int) ([]*types.User, error)
	RankByExp(ctx context.Context, tx *gorm.DB, userID uint) (int, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uint) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.User
	err := transaction.WithContext(ctx).
		Where("id = ?", userID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.User
	err := transaction.WithContext(ctx).
		Where("email = ?", email).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepo) GetByGoogleID(ctx context.Context, tx *gorm.DB, googleID string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.User
	err := transaction.WithContext(ctx).
		Where("google_id = ?", googleID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepo) UpdateDisplayName(ctx context.Context, tx *gorm.DB, userID uint, displayName string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("display_name", displayName).Error
}

func (r *userRepo) SetRefreshTokenHash(ctx context.Context, tx *gorm.DB, userID uint, hash *string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("refresh_token_hash", hash).Error
}

// AddExp applies the delta as a relative update so concurrent awards for the
// same user cannot lose increments.
func (r *userRepo) AddExp(ctx context.Context, tx *gorm.DB, userID uint, delta int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("total_exp", gorm.Expr("total_exp + ?", delta)).Error
}

func (r *userRepo) TopByExp(ctx context.Context, tx *gorm.DB, limit int) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.User
	if err := transaction.WithContext(ctx).
		Order("total_exp DESC, id ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// RankByExp is 1-based: one plus the number of users with strictly more XP.
func (r *userRepo) RankByExp(ctx context.Context, tx *gorm.DB, userID uint) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	user, err := r.GetByID(ctx, transaction, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, gorm.ErrRecordNotFound
	}

	var ahead int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("total_exp > ?", user.TotalExp).
		Count(&ahead).Error; err != nil {
		return 0, err
	}
	return int(ahead) + 1, nil
}
