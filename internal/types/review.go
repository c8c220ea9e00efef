package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Review is user feedback on a catalog item. Rating is nullable:
// a review may carry only text. Aspects and Emotions are open numeric records
// (aspect name -> sub-score, emotion name -> intensity 0-100) stored as jsonb.
type Review struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID uuid.UUID      `gorm:"type:uuid;index;not null;column:content_id" json:"content_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	Body      string         `gorm:"type:text;column:body" json:"body"`
	Rating    *float64       `gorm:"column:rating" json:"rating,omitempty"`
	Aspects   datatypes.JSON `gorm:"type:jsonb;column:aspects" json:"aspects,omitempty"`
	Emotions  datatypes.JSON `gorm:"type:jsonb;column:emotions" json:"emotions,omitempty"`
	CreatedAt time.Time      `gorm:"not null;index;column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;column:updated_at" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
