package types

import "github.com/google/uuid"

// GenreAffinity is one ranked entry of a user's favorite genres.
type GenreAffinity struct {
	Genre     string  `json:"genre"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avgRating"`
}

// TypeAffinity aggregates a user's reviews per content type.
type TypeAffinity struct {
	Type      ContentType `json:"type"`
	Count     int         `json:"count"`
	AvgRating float64     `json:"avgRating"`
}

// EmotionAffinity is one ranked entry of a user's dominant emotions.
// Intensity is the average recorded intensity across the user's reviews.
type EmotionAffinity struct {
	Emotion   string  `json:"emotion"`
	Intensity float64 `json:"intensity"`
	Count     int     `json:"count"`
}

// RatingDistribution holds per-bucket shares of a user's ratings as integer
// percentages. Each bucket is rounded independently, so the three values may
// not sum to exactly 100.
type RatingDistribution struct {
	Harsh    int `json:"harsh"`
	Balanced int `json:"balanced"`
	Generous int `json:"generous"`
}

type RatingTendency struct {
	Average      float64            `json:"average"`
	Min          float64            `json:"min"`
	Max          float64            `json:"max"`
	Distribution RatingDistribution `json:"distribution"`
}

// TasteProfile is the derived, per-call summary of a user's review history.
// It is never persisted; identical review history yields an identical profile.
type TasteProfile struct {
	UserID                uuid.UUID         `json:"userId"`
	FavoriteGenres        []GenreAffinity   `json:"favoriteGenres"`
	FavoriteAspects       NumericMap        `json:"favoriteAspects"`
	DominantEmotions      []EmotionAffinity `json:"dominantEmotions"`
	PreferredContentTypes []TypeAffinity    `json:"preferredContentTypes"`
	RatingTendency        RatingTendency    `json:"ratingTendency"`
	TotalReviews          int               `json:"totalReviews"`
}

// EmptyTasteProfile is the safe default returned when the review store cannot
// be reached: all-zero, which downstream treats as a cold start.
func EmptyTasteProfile(userID uuid.UUID) TasteProfile {
	return TasteProfile{
		UserID:                userID,
		FavoriteGenres:        []GenreAffinity{},
		FavoriteAspects:       NumericMap{},
		DominantEmotions:      []EmotionAffinity{},
		PreferredContentTypes: []TypeAffinity{},
	}
}

// Recommendation is one scored catalog candidate, 0-100, with ordered
// human-readable reasons.
type Recommendation struct {
	ContentID    uuid.UUID   `json:"contentId"`
	Title        string      `json:"title"`
	ContentType  ContentType `json:"contentType"`
	Genre        string      `json:"genre"`
	AvgRating    float64     `json:"avgRating"`
	MatchScore   int         `json:"matchScore"`
	MatchReasons []string    `json:"matchReasons"`
	PosterURL    string      `json:"posterUrl,omitempty"`
	ReleaseYear  int         `json:"releaseYear,omitempty"`
}
