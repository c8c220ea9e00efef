package types

import (
	"time"

	"github.com/google/uuid"
)

type HeroSlide struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID        *uuid.UUID `gorm:"type:uuid;column:content_id" json:"content_id,omitempty"`
	Title            string     `gorm:"size:255;not null;column:title" json:"title"`
	Subtitle         string     `gorm:"size:500;column:subtitle" json:"subtitle"`
	Description      string     `gorm:"type:text;column:description" json:"description"`
	BackgroundImage  string     `gorm:"size:500;column:background_image" json:"background_image"`
	CallToActionText string     `gorm:"size:100;column:call_to_action_text" json:"call_to_action_text"`
	CallToActionLink string     `gorm:"size:500;column:call_to_action_link" json:"call_to_action_link"`
	DisplayOrder     int        `gorm:"not null;default:0;index;column:display_order" json:"display_order"`
	IsActive         bool       `gorm:"not null;default:true;index;column:is_active" json:"is_active"`
	CreatedAt        time.Time  `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;column:updated_at" json:"updated_at"`
}

func (HeroSlide) TableName() string {
	return "hero_carousel"
}

type ComingSoonItem struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string      `gorm:"size:255;not null;column:title" json:"title"`
	ContentType   ContentType `gorm:"size:20;not null;column:content_type" json:"content_type"`
	ReleaseDate   time.Time   `gorm:"not null;index;column:release_date" json:"release_date"`
	Description   string      `gorm:"type:text;column:description" json:"description"`
	PosterURL     string      `gorm:"size:500;column:poster_url" json:"poster_url"`
	TrailerURL    string      `gorm:"size:500;column:trailer_url" json:"trailer_url"`
	ExpectedScore int         `gorm:"column:expected_score" json:"expected_score"`
	Genre         string      `gorm:"size:100;column:genre" json:"genre"`
	Director      string      `gorm:"size:255;column:director" json:"director,omitempty"`
	Developer     string      `gorm:"size:255;column:developer" json:"developer,omitempty"`
	CreatedAt     time.Time   `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null;column:updated_at" json:"updated_at"`
}

func (ComingSoonItem) TableName() string {
	return "coming_soon_items"
}
