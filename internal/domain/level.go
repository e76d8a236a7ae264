package domain

import (
	"time"

	"gorm.io/datatypes"
)

type LevelStatus string

const (
	LevelLocked   LevelStatus = "locked"
	LevelUnlocked LevelStatus = "unlocked"
	// LevelInProgress is representable but no operation currently
	// transitions a level into it.
	LevelInProgress LevelStatus = "in_progress"
	LevelCompleted  LevelStatus = "completed"
)

// Topic is a named sub-item of a level with a completion flag. Topics are
// stored as one ordered jsonb list on the level row; toggling a topic
// rewrites the whole list in a single field update.
type Topic struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type Level struct {
	ID          uint                           `gorm:"primaryKey" json:"id"`
	RoadmapID   uint                           `gorm:"not null;index" json:"roadmap_id"`
	Roadmap     *Roadmap                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"-"`
	Order       int                            `gorm:"column:order_index;not null" json:"order"`
	Title       string                         `gorm:"size:200;not null;column:title" json:"title"`
	Description string                         `gorm:"type:text;column:description" json:"description"`
	Topics      datatypes.JSONSlice[Topic]     `gorm:"column:topics" json:"topics"`
	XPReward    int                            `gorm:"not null;default:100;column:xp_reward" json:"xp_reward"`
	Status      LevelStatus                    `gorm:"size:20;not null;default:locked;column:status" json:"status"`
	CreatedAt   time.Time                      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time                      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Level) TableName() string { return "levels" }

// AllTopicsCompleted reports whether every topic on the level is done.
// A level with no topics counts as complete, matching quiz gating.
func (l *Level) AllTopicsCompleted() bool {
	for _, t := range l.Topics {
		if !t.Completed {
			return false
		}
	}
	return true
}
