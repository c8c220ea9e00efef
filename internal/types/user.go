package types

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser   UserRole = "USER"
	UserRoleCritic UserRole = "CRITIC"
	UserRoleAdmin  UserRole = "ADMIN"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null;column:username" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:100;not null;column:email" json:"email"`
	Password     string    `gorm:"size:255;not null;column:password" json:"-"`
	Role         UserRole  `gorm:"size:20;not null;default:USER;column:role" json:"role"`
	AvatarURL    string    `gorm:"size:500;column:avatar_url" json:"avatar_url"`
	Bio          string    `gorm:"type:text;column:bio" json:"bio"`
	TotalReviews int       `gorm:"not null;default:0;column:total_reviews" json:"total_reviews"`
	Reputation   int       `gorm:"not null;default:0;column:reputation" json:"reputation"`
	IsActive     bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
