package domain

import (
	"time"
)

type Roadmap struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GoalID    uint      `gorm:"uniqueIndex;not null" json:"goal_id"`
	Goal      *Goal     `gorm:"constraint:OnDelete:CASCADE;foreignKey:GoalID;references:ID" json:"-"`
	Name      string    `gorm:"size:200;not null;column:name" json:"name"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`

	Levels []*Level `gorm:"foreignKey:RoadmapID" json:"levels,omitempty"`
}

func (Roadmap) TableName() string { return "roadmaps" }
