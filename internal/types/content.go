package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ContentType string

const (
	ContentTypeMovie    ContentType = "MOVIE"
	ContentTypeTVSeries ContentType = "TV_SERIES"
	ContentTypeGame     ContentType = "GAME"
)

// Content is the unified catalog row for movies, TV series and games.
// PerceptionMap and EmotionalCloud are open numeric records (name -> score)
// stored as jsonb and validated at decode time, see NumericMap.
type Content struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string         `gorm:"size:255;not null;index;column:title" json:"title"`
	ContentType     ContentType    `gorm:"size:20;not null;default:MOVIE;index;column:content_type" json:"content_type"`
	ReleaseYear     int            `gorm:"column:release_year" json:"release_year"`
	Genre           string         `gorm:"size:100;index;column:genre" json:"genre"`
	Description     string         `gorm:"type:text;column:description" json:"description"`
	AvgRating       float64        `gorm:"not null;default:0;column:avg_rating" json:"avg_rating"`
	CriticsRating   float64        `gorm:"not null;default:0;column:critics_rating" json:"critics_rating"`
	AudienceRating  float64        `gorm:"not null;default:0;column:audience_rating" json:"audience_rating"`
	HypeIndex       int            `gorm:"not null;default:0;column:hype_index" json:"hype_index"`
	ReviewsCount    int            `gorm:"not null;default:0;column:reviews_count" json:"reviews_count"`
	PositiveReviews int            `gorm:"not null;default:0;column:positive_reviews" json:"positive_reviews"`
	MixedReviews    int            `gorm:"not null;default:0;column:mixed_reviews" json:"mixed_reviews"`
	NegativeReviews int            `gorm:"not null;default:0;column:negative_reviews" json:"negative_reviews"`
	EmotionalCloud  datatypes.JSON `gorm:"type:jsonb;column:emotional_cloud" json:"emotional_cloud,omitempty"`
	PerceptionMap   datatypes.JSON `gorm:"type:jsonb;column:perception_map" json:"perception_map,omitempty"`
	PosterURL       string         `gorm:"size:500;column:poster_url" json:"poster_url"`
	TrailerURL      string         `gorm:"size:500;column:trailer_url" json:"trailer_url"`
	Director        string         `gorm:"size:255;column:director" json:"director,omitempty"`
	Cast            string         `gorm:"type:text;column:cast" json:"cast,omitempty"`
	Runtime         int            `gorm:"column:runtime" json:"runtime,omitempty"`
	Developer       string         `gorm:"size:255;column:developer" json:"developer,omitempty"`
	Publisher       string         `gorm:"size:255;column:publisher" json:"publisher,omitempty"`
	Platforms       datatypes.JSON `gorm:"type:jsonb;column:platforms" json:"platforms,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;column:updated_at" json:"updated_at"`
}

func (Content) TableName() string {
	return "content"
}
