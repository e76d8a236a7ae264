package domain

import (
	"time"
)

type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
)

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

func ValidDifficulty(d string) bool {
	switch DifficultyLevel(d) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Goal status is derived from the level set, never set by clients.
type Goal struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	User            *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Title           string          `gorm:"size:200;not null;column:title" json:"title"`
	Description     string          `gorm:"type:text;not null;column:description" json:"description"`
	Category        string          `gorm:"size:100;not null;column:category" json:"category"`
	DifficultyLevel DifficultyLevel `gorm:"size:20;not null;column:difficulty_level" json:"difficulty_level"`
	Status          GoalStatus      `gorm:"size:20;not null;default:not_started;column:status" json:"status"`
	CreatedAt       time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;default:now()" json:"updated_at"`

	Roadmap *Roadmap `gorm:"foreignKey:GoalID" json:"roadmap,omitempty"`
}

func (Goal) TableName() string { return "goals" }
