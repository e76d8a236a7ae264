package services

import (
	"context"
	"strings"

	"github.com/yungbote/questpath-backend/internal/apperr"
	"github.com/yungbote/questpath-backend/internal/data/repos"
	types "github.com/yungbote/questpath-backend/internal/domain"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
)

type UserService interface {
	GetMe(ctx context.Context, userID uint) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uint, displayName string) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context, userID uint) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load user")
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uint, displayName string) (*types.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" || len(displayName) > 100 {
		return nil, apperr.Validation("display name must be between 1 and 100 characters")
	}
	if err := us.userRepo.UpdateDisplayName(ctx, nil, userID, displayName); err != nil {
		return nil, apperr.Internal(err, "failed to update profile")
	}
	return us.GetMe(ctx, userID)
}
