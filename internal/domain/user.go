package domain

import (
	"time"
)

type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Email            string    `gorm:"uniqueIndex;size:100;not null;column:email" json:"email"`
	PasswordHash     *string   `gorm:"size:255;column:password_hash" json:"-"`
	GoogleID         *string   `gorm:"uniqueIndex;size:255;column:google_id" json:"-"`
	DisplayName      string    `gorm:"size:100;column:display_name" json:"display_name"`
	TotalExp         int       `gorm:"not null;default:0;index;column:total_exp" json:"total_exp"`
	RefreshTokenHash *string   `gorm:"size:64;column:refresh_token_hash" json:"-"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:now()" json:"updated_at"`

	Goals []*Goal `gorm:"foreignKey:UserID" json:"goals,omitempty"`
}

func (User) TableName() string { return "users" }
