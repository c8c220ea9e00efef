package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/repos"
)

const xpPerReview = 10

// UserLevel is the derived gamification standing of a user. Nothing here is
// persisted; it is recomputed from review counters on every call.
type UserLevel struct {
	Level       int    `json:"level"`
	Title       string `json:"title"`
	CurrentXP   int    `json:"currentXP"`
	NextLevelXP int    `json:"nextLevelXP"`
}

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Requirement int    `json:"requirement"`
	Progress    int    `json:"progress"`
	Unlocked    bool   `json:"unlocked"`
}

var levelThresholds = []struct {
	xp    int
	title string
}{
	{0, "Novice"},
	{50, "Viewer"},
	{150, "Enthusiast"},
	{300, "Critic"},
	{600, "Expert"},
	{1000, "Legend"},
}

type GamificationService interface {
	GetUserLevel(ctx context.Context, userID uuid.UUID) UserLevel
	GetAchievements(ctx context.Context, userID uuid.UUID) []Achievement
}

type gamificationService struct {
	db         *gorm.DB
	log        *logger.Logger
	reviewRepo repos.ReviewRepo
}

func NewGamificationService(db *gorm.DB, log *logger.Logger, reviewRepo repos.ReviewRepo) GamificationService {
	return &gamificationService{
		db:         db,
		log:        log.With("service", "GamificationService"),
		reviewRepo: reviewRepo,
	}
}

// GetUserLevel derives XP from the user's review count. Counter lookups that
// fail degrade to zero, the level endpoint never errors.
func (gs *gamificationService) GetUserLevel(ctx context.Context, userID uuid.UUID) UserLevel {
	count, err := gs.reviewRepo.CountByUser(ctx, nil, userID)
	if err != nil {
		gs.log.Warn("Review count failed, degrading to zero XP", "user_id", userID, "error", err)
		count = 0
	}
	return levelForXP(int(count) * xpPerReview)
}

func levelForXP(xp int) UserLevel {
	level := UserLevel{Level: 1, Title: levelThresholds[0].title, CurrentXP: xp}
	for i, threshold := range levelThresholds {
		if xp >= threshold.xp {
			level.Level = i + 1
			level.Title = threshold.title
		}
	}
	if level.Level < len(levelThresholds) {
		level.NextLevelXP = levelThresholds[level.Level].xp
	} else {
		level.NextLevelXP = xp
	}
	return level
}

func (gs *gamificationService) GetAchievements(ctx context.Context, userID uuid.UUID) []Achievement {
	reviewCount := 0
	if count, err := gs.reviewRepo.CountByUser(ctx, nil, userID); err == nil {
		reviewCount = int(count)
	}
	genreCount := 0
	if count, err := gs.reviewRepo.DistinctGenres(ctx, nil, userID); err == nil {
		genreCount = count
	}
	typeCount := 0
	if count, err := gs.reviewRepo.DistinctContentTypes(ctx, nil, userID); err == nil {
		typeCount = count
	}
	detailedCount := 0
	if count, err := gs.reviewRepo.DetailedReviewCount(ctx, nil, userID); err == nil {
		detailedCount = int(count)
	}

	defs := []Achievement{
		{ID: "first_review", Title: "First Step", Description: "Write your first review", Category: "reviews", Requirement: 1, Progress: reviewCount},
		{ID: "review_5", Title: "Active Viewer", Description: "Write 5 reviews", Category: "reviews", Requirement: 5, Progress: reviewCount},
		{ID: "review_10", Title: "Avid Critic", Description: "Write 10 reviews", Category: "reviews", Requirement: 10, Progress: reviewCount},
		{ID: "review_25", Title: "Expert", Description: "Write 25 reviews", Category: "reviews", Requirement: 25, Progress: reviewCount},
		{ID: "review_50", Title: "Review Master", Description: "Write 50 reviews", Category: "reviews", Requirement: 50, Progress: reviewCount},
		{ID: "review_100", Title: "Legend", Description: "Write 100 reviews", Category: "reviews", Requirement: 100, Progress: reviewCount},
		{ID: "genre_3", Title: "Open Mind", Description: "Review content across 3 different genres", Category: "diversity", Requirement: 3, Progress: genreCount},
		{ID: "genre_5", Title: "All-Rounder", Description: "Review content across 5 different genres", Category: "diversity", Requirement: 5, Progress: genreCount},
		{ID: "all_types", Title: "Omnivore", Description: "Review movies, series and games", Category: "diversity", Requirement: 3, Progress: typeCount},
		{ID: "detailed_review", Title: "Deep Dive", Description: "Write a review with all aspects and emotions filled in", Category: "engagement", Requirement: 1, Progress: detailedCount},
	}
	for i := range defs {
		if defs[i].Progress >= defs[i].Requirement {
			defs[i].Unlocked = true
			defs[i].Progress = defs[i].Requirement
		}
	}
	return defs
}
