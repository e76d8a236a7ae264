package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/questpath-backend/internal/data/repos"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
)

type Repos struct {
	User    repos.UserRepo
	Goal    repos.GoalRepo
	Roadmap repos.RoadmapRepo
	Level   repos.LevelRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:    repos.NewUserRepo(db, log),
		Goal:    repos.NewGoalRepo(db, log),
		Roadmap: repos.NewRoadmapRepo(db, log),
		Level:   repos.NewLevelRepo(db, log),
	}
}
